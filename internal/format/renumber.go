// Package format rewrites ZX BASIC programs: canonical keyword spelling and
// spacing, and line renumbering that keeps every literal jump target
// pointing at the same line.
package format

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/stefdev49/vs-zx-sub002/internal/analysis"
	"github.com/stefdev49/vs-zx-sub002/internal/index"
)

// ErrLineOverflow is returned when renumbering would produce a line
// number above 9999.
var ErrLineOverflow = errors.New("renumbering exceeds the highest line number")

// Mapping maps old line numbers to new ones.
type Mapping map[int]int

// Edit replaces the source bytes [Start, End) with Text.
type Edit struct {
	Start, End int
	Text       string
}

// Plan computes the renumbering of snap: every numbered line in source
// order gets start, start+step and so on. A duplicated line number maps to
// its last occurrence, the one the Spectrum would keep.
//
// The returned edits cover line-number tokens and literal jump targets
// whose line exists. GO TO and GO SUB in front of a rewritten target are
// respelled GOTO and GOSUB. Edits are sorted by offset and never overlap.
func Plan(snap *analysis.Snapshot, start, step int) (Mapping, []Edit, error) {
	if step <= 0 {
		return nil, nil, fmt.Errorf("invalid renumber step %d", step)
	}
	if start <= 0 {
		start = step
	}
	lines := snap.Index.Lines
	if n := len(lines); n > 0 && start+(n-1)*step > index.MaxLineNumber {
		return nil, nil, fmt.Errorf("%w: %d lines from %d step %d", ErrLineOverflow, n, start, step)
	}

	mapping := Mapping{}
	var edits []Edit
	for i, e := range lines {
		next := start + i*step
		if e.Number >= 0 {
			mapping[e.Number] = next
		}
		edits = append(edits, Edit{Start: e.Token.Start.Offset, End: e.Token.End.Offset, Text: strconv.Itoa(next)})
	}

	for _, j := range snap.Index.Jumps {
		next, ok := mapping[j.Target]
		if !ok {
			continue
		}
		edits = append(edits, Edit{Start: j.TargetToken.Start.Offset, End: j.TargetToken.End.Offset, Text: strconv.Itoa(next)})
		if kw := j.Keyword; kw.Text != kw.Value && (j.Kind == index.JumpGoto || j.Kind == index.JumpGosub) {
			edits = append(edits, Edit{Start: kw.Start.Offset, End: kw.End.Offset, Text: kw.Value})
		}
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].Start < edits[j].Start })
	return mapping, edits, nil
}

// Renumber returns the text of snap renumbered from start by step. Only
// line-number tokens and literal jump targets change; a number that is not
// a jump target is left as written even if it equals a renumbered line.
func Renumber(snap *analysis.Snapshot, start, step int) (string, Mapping, error) {
	mapping, edits, err := Plan(snap, start, step)
	if err != nil {
		return "", nil, err
	}
	return Apply(snap.Text, edits), mapping, nil
}

// Apply performs edits in one left-to-right pass over the original text.
// Replacement text is never scanned again.
func Apply(text string, edits []Edit) string {
	var sb strings.Builder
	sb.Grow(len(text))
	pos := 0
	for _, e := range edits {
		if e.Start < pos {
			continue
		}
		sb.WriteString(text[pos:e.Start])
		sb.WriteString(e.Text)
		pos = e.End
	}
	sb.WriteString(text[pos:])
	return sb.String()
}
