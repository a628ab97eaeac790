package analysis

import (
	"sort"
	"strconv"
	"strings"

	"github.com/stefdev49/vs-zx-sub002/internal/builtins"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// CompletionKind classifies a completion item.
type CompletionKind int

const (
	CompletionKeyword CompletionKind = iota
	CompletionFunction
	CompletionVariable
	CompletionArray
	CompletionUserFunction
	CompletionLine
)

// Completion is one completion proposal.
type Completion struct {
	Label         string
	Detail        string
	Documentation string
	InsertText    string
	Kind          CompletionKind
}

// Completions returns the proposals for pos, filtered by the word being
// typed. Nothing is proposed inside strings and comments. After GOTO,
// GOSUB, RUN, RESTORE, LIST and SAVE ... LINE the existing line numbers are
// proposed in numeric order; at the start of a statement only the
// dialect's statement keywords. Everything else is sorted by label.
func (s *Snapshot) Completions(pos token.Position) []Completion {
	ctx := s.DetermineContext(pos)

	var items []Completion
	switch ctx.Type {
	case CompletionContextNone:
		return nil
	case CompletionContextLineNumber:
		items = s.lineCompletions()
	case CompletionContextStatement:
		items = s.keywordCompletions(true)
	default:
		items = append(items, functionCompletions()...)
		items = append(items, s.variableCompletions()...)
		items = append(items, s.keywordCompletions(false)...)
	}

	prefix := strings.ToUpper(ctx.Prefix)
	out := items[:0]
	seen := map[string]bool{}
	for _, it := range items {
		if seen[it.Label] || !strings.HasPrefix(strings.ToUpper(it.Label), prefix) {
			continue
		}
		seen[it.Label] = true
		out = append(out, it)
	}
	if ctx.Type != CompletionContextLineNumber {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	}
	return out
}

func (s *Snapshot) lineCompletions() []Completion {
	var out []Completion
	for _, e := range s.Index.Lines {
		if !e.Valid {
			continue
		}
		n := strconv.Itoa(e.Number)
		out = append(out, Completion{
			Label:  n,
			Detail: strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(e.Text), e.Token.Text)),
			Kind:   CompletionLine,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i].Label)
		b, _ := strconv.Atoi(out[j].Label)
		return a < b
	})
	return out
}

func (s *Snapshot) keywordCompletions(statementsOnly bool) []Completion {
	var out []Completion
	for _, kw := range token.Keywords(s.Options.Dialect) {
		doc, ok := builtins.GetKeywordDoc(kw)
		if statementsOnly && !ok {
			continue
		}
		c := Completion{Label: kw, InsertText: kw, Kind: CompletionKeyword}
		if ok {
			c.Detail, c.Documentation = doc.Syntax, doc.Documentation
		}
		out = append(out, c)
	}
	return out
}

func functionCompletions() []Completion {
	var out []Completion
	for _, name := range token.Functions() {
		c := Completion{Label: name, InsertText: name, Kind: CompletionFunction}
		if sig := builtins.GetBuiltinSignature(name); sig != nil {
			c.Detail, c.Documentation = sig.Label(), sig.Documentation
		}
		out = append(out, c)
	}
	return out
}

func (s *Snapshot) variableCompletions() []Completion {
	var out []Completion
	for _, v := range s.Index.Variables() {
		c := Completion{
			Label:      v.Key.SourceName(),
			Detail:     VariableDetail(v),
			InsertText: v.Key.SourceName(),
			Kind:       CompletionVariable,
		}
		if v.Key.Kind.IsArray() {
			c.Label = v.Key.DisplayName()
			c.InsertText = v.Key.SourceName() + "("
			c.Kind = CompletionArray
		}
		out = append(out, c)
	}
	for _, f := range s.Index.Functions() {
		if f.Definition == nil {
			continue
		}
		out = append(out, Completion{
			Label:      "FN " + f.Name,
			Detail:     f.Definition.String(),
			InsertText: "FN " + f.Name + "(",
			Kind:       CompletionUserFunction,
		})
	}
	return out
}
