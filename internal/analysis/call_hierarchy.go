package analysis

import (
	"fmt"
	"strings"

	"github.com/stefdev49/vs-zx-sub002/internal/index"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// CallItem is one node of the call hierarchy: a numbered program line.
type CallItem struct {
	Line   int
	Name   string
	Detail string
	// Range spans the whole line, SelectionRange its line-number token.
	Range          token.Range
	SelectionRange token.Range
	// Subroutine is set when the line is the target of a GOSUB.
	Subroutine bool
}

// CallIncoming is a caller of a line together with the jump targets in the
// caller that reference it.
type CallIncoming struct {
	From       CallItem
	FromRanges []token.Range
}

// CallOutgoing is a line called from within a line or subroutine.
type CallOutgoing struct {
	To         CallItem
	FromRanges []token.Range
}

// PrepareCallHierarchy returns the line the hierarchy starts from: the
// target of a literal jump under pos, or else the line containing pos.
func (s *Snapshot) PrepareCallHierarchy(pos token.Position) (CallItem, error) {
	if i, ok := s.TokenAt(pos); ok && s.Lex.Tokens[i].Kind == token.Number {
		if j, ok := s.Index.JumpAt(s.Lex.Tokens[i].Start); ok {
			e, ok := s.Index.Line(j.Target)
			if !ok {
				return CallItem{}, notApplicable("line %d does not exist", j.Target)
			}
			return s.callItem(e), nil
		}
	}
	e, ok := s.Index.LineAt(pos.Line)
	if !ok || !e.Valid {
		return CallItem{}, notApplicable("no numbered line at %s", pos)
	}
	return s.callItem(e), nil
}

// CallItemFor returns the item for line n.
func (s *Snapshot) CallItemFor(n int) (CallItem, error) {
	e, ok := s.Index.Line(n)
	if !ok {
		return CallItem{}, notApplicable("line %d does not exist", n)
	}
	return s.callItem(e), nil
}

func (s *Snapshot) callItem(e *index.LineEntry) CallItem {
	_, sub := s.Index.SubroutineAt(e.Number)
	name := fmt.Sprintf("line %d", e.Number)
	if sub {
		name = fmt.Sprintf("subroutine %d", e.Number)
	}
	return CallItem{
		Line:           e.Number,
		Name:           name,
		Detail:         strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(e.Text), e.Token.Text)),
		Range:          e.Line.Range(),
		SelectionRange: e.Range(),
		Subroutine:     sub,
	}
}

// IncomingCalls returns the lines that GOTO or GOSUB line n, one item per
// calling line, in source order.
func (s *Snapshot) IncomingCalls(n int) []CallIncoming {
	var out []CallIncoming
	bySource := map[int]int{}
	for _, j := range s.Index.CallEdges() {
		if j.Target != n {
			continue
		}
		if i, ok := bySource[j.CallerSourceLine]; ok {
			out[i].FromRanges = append(out[i].FromRanges, j.TargetRange())
			continue
		}
		caller, ok := s.Index.LineAt(j.CallerSourceLine)
		if !ok {
			continue
		}
		bySource[j.CallerSourceLine] = len(out)
		out = append(out, CallIncoming{From: s.callItem(caller), FromRanges: []token.Range{j.TargetRange()}})
	}
	return out
}

// OutgoingCalls returns the existing lines jumped to from line n. When n
// starts a subroutine every line down to its RETURN is searched, otherwise
// only line n itself.
func (s *Snapshot) OutgoingCalls(n int) []CallOutgoing {
	start, ok := s.Index.Line(n)
	if !ok {
		return nil
	}
	within := func(sourceLine int) bool { return sourceLine == start.SourceLine }
	if sub, ok := s.Index.SubroutineAt(n); ok {
		within = sub.Contains
	}

	var out []CallOutgoing
	byTarget := map[int]int{}
	for _, j := range s.Index.CallEdges() {
		if !within(j.CallerSourceLine) {
			continue
		}
		if i, ok := byTarget[j.Target]; ok {
			out[i].FromRanges = append(out[i].FromRanges, j.TargetRange())
			continue
		}
		target, ok := s.Index.Line(j.Target)
		if !ok {
			continue
		}
		byTarget[j.Target] = len(out)
		out = append(out, CallOutgoing{To: s.callItem(target), FromRanges: []token.Range{j.TargetRange()}})
	}
	return out
}
