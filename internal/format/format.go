package format

import (
	"strings"

	"github.com/stefdev49/vs-zx-sub002/internal/analysis"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// Options control Format.
type Options struct {
	// Renumber renumbers the program from Start by Step after formatting.
	Renumber bool
	Start    int
	Step     int
}

// Format rewrites every line from its tokens: keywords and functions in
// upper case, GO TO and GO SUB spelled GOTO and GOSUB, one space after the
// line number and between words, none around operators, and ": " between
// statements. Strings, comments, variable names and numbers are kept as
// written. Blank lines, line endings and a final newline are preserved.
//
// Format is idempotent: formatting its own output changes nothing.
func Format(snap *analysis.Snapshot, opts Options) (string, error) {
	replace := map[int]string{}
	if opts.Renumber {
		step := opts.Step
		if step <= 0 {
			step = 10
		}
		_, edits, err := Plan(snap, opts.Start, step)
		if err != nil {
			return "", err
		}
		for _, e := range edits {
			replace[e.Start] = e.Text
		}
	}

	eol := "\n"
	if strings.Contains(snap.Text, "\r\n") {
		eol = "\r\n"
	}
	physical := strings.Split(snap.Text, "\n")
	out := make([]string, len(physical))
	for _, line := range snap.Program.Lines {
		out[line.SourceLine-1] = formatLine(snap.Text, line.Tokens, replace)
	}
	return strings.Join(out, eol), nil
}

func formatLine(src string, toks []token.Token, replace map[int]string) string {
	var sb strings.Builder
	for i, t := range toks {
		if i > 0 {
			sb.WriteString(gap(src, toks[i-1], t))
		}
		if text, ok := replace[t.Start.Offset]; ok {
			sb.WriteString(text)
			continue
		}
		sb.WriteString(spell(t))
	}
	return sb.String()
}

func spell(t token.Token) string {
	switch t.Kind {
	case token.Keyword, token.Function, token.Operator:
		return t.Value
	}
	return t.Text
}

// gap returns the whitespace between two adjacent tokens.
func gap(src string, prev, next token.Token) string {
	switch {
	case prev.Kind == token.Invalid || next.Kind == token.Invalid:
		// Keep the text around a character we do not understand as it is.
		return src[prev.End.Offset:next.Start.Offset]
	case next.Kind == token.Comment:
		return ""
	case next.Kind == token.Colon:
		return ""
	case prev.Kind == token.Colon, prev.Kind == token.LineNumber:
		return " "
	case prev.Kind == token.Operator && next.Kind == token.Operator:
		// "< >" must not become "<>".
		if (prev.Value == "<" || prev.Value == ">") && (next.Value == "=" || next.Value == ">") {
			return " "
		}
		return ""
	case prev.Kind == token.Keyword:
		switch next.Kind {
		case token.Comma, token.Semicolon, token.RParen:
			return ""
		}
		return " "
	case next.Kind == token.Keyword:
		switch prev.Kind {
		case token.Comma, token.Semicolon, token.LParen, token.Apostrophe, token.Operator, token.Hash:
			return ""
		}
		return " "
	case prev.Kind == token.Function && next.Kind == token.Operator:
		// SIN -x and RND*6 are both common; keep whichever was written.
		if prev.End.Offset < next.Start.Offset {
			return " "
		}
		return ""
	case isWord(prev) && isWord(next):
		return " "
	}
	return ""
}

func isWord(t token.Token) bool {
	switch t.Kind {
	case token.Function, token.Identifier, token.Number, token.String:
		return true
	}
	return false
}
