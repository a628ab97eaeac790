// Package analysis answers editor questions about one ZX BASIC document.
//
// Analyze runs the whole pipeline (lex, parse, index, validate) and returns
// an immutable Snapshot. Every query is a pure function of a snapshot;
// a query that does not apply at the given position returns an error
// wrapping ErrNotApplicable.
package analysis

import (
	"errors"
	"fmt"

	"github.com/stefdev49/vs-zx-sub002/internal/diagnostics"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// ErrNotApplicable is returned when a query has no answer at a position,
// for example a rename on a keyword.
var ErrNotApplicable = errors.New("not applicable")

// Options configure analysis.
type Options = diagnostics.Options

// Snapshot is the analysis of one document version. It must not be
// modified once returned.
type Snapshot struct {
	*diagnostics.Context
	Findings []diagnostics.Finding
}

// Analyze lexes, parses, indexes and validates text.
//
// Parameters:
//   - text: the complete document
//   - opts: dialect and rule configuration
//
// Returns a snapshot whose Findings are ordered by position.
func Analyze(text string, opts Options) *Snapshot {
	ctx := diagnostics.NewContext(text, opts)
	return &Snapshot{Context: ctx, Findings: diagnostics.Validate(ctx)}
}

// TokenAt returns the index into Lex.Tokens of the token under pos. A
// position just past the end of a token counts as on it when no token
// starts there, so a cursor at the end of a word still finds the word.
func (s *Snapshot) TokenAt(pos token.Position) (int, bool) {
	toks := s.Lex.Tokens
	after := -1
	for i, t := range toks {
		if t.Start.Line != pos.Line || t.Kind == token.Newline || t.Kind == token.EOF {
			continue
		}
		if t.Start.Column <= pos.Column && pos.Column < t.End.Column {
			return i, true
		}
		if t.End.Column == pos.Column {
			after = i
		}
	}
	if after >= 0 {
		return after, true
	}
	return -1, false
}

func notApplicable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotApplicable, fmt.Sprintf(format, args...))
}
