package analysis

import (
	"strings"

	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// CompletionContextType represents the type of completion context.
type CompletionContextType int

const (
	// CompletionContextNone means no completion should be offered (inside a
	// string or comment).
	CompletionContextNone CompletionContextType = iota

	// CompletionContextStatement is the start of a statement, where only a
	// keyword can follow.
	CompletionContextStatement

	// CompletionContextLineNumber follows a keyword taking a line number.
	CompletionContextLineNumber

	// CompletionContextExpression is anywhere else.
	CompletionContextExpression
)

// CompletionContext holds information about the completion request context.
type CompletionContext struct {
	Type CompletionContextType

	// Prefix is the partial word the user has typed, used for filtering.
	Prefix string
}

// DetermineContext works out what may be typed at pos.
func (s *Snapshot) DetermineContext(pos token.Position) *CompletionContext {
	ctx := &CompletionContext{Type: CompletionContextExpression}

	before := s.lineBefore(pos)
	if isInsideString(before) {
		ctx.Type = CompletionContextNone
		return ctx
	}
	ctx.Prefix = extractPartialIdentifier(before)

	prefixStart := pos.Column - len(ctx.Prefix)
	var prev []token.Token
	for _, t := range s.Lex.Tokens {
		if t.Start.Line != pos.Line || t.Kind == token.Newline || t.Kind == token.EOF {
			continue
		}
		if t.Kind == token.Comment && t.Start.Column <= pos.Column {
			ctx.Type = CompletionContextNone
			return ctx
		}
		if t.End.Column <= prefixStart {
			prev = append(prev, t)
		}
	}

	if len(prev) == 0 {
		ctx.Type = CompletionContextStatement
		return ctx
	}
	last := prev[len(prev)-1]
	if last.Kind == token.Number && last.End.Column == pos.Column && len(prev) > 1 && takesLine(prev[:len(prev)-1]) {
		// A partly typed jump target.
		ctx.Type = CompletionContextLineNumber
		ctx.Prefix = last.Text
		return ctx
	}
	switch {
	case last.IsKeyword("REM"):
		ctx.Type = CompletionContextNone
	case last.Kind == token.LineNumber, last.Kind == token.Colon, last.IsKeyword("THEN"):
		ctx.Type = CompletionContextStatement
	case takesLine(prev):
		ctx.Type = CompletionContextLineNumber
	}
	return ctx
}

// takesLine reports whether the last token is a keyword followed by a line
// number.
func takesLine(toks []token.Token) bool {
	last := toks[len(toks)-1]
	if last.Kind == token.Keyword && token.JumpKeywords[last.Value] {
		return true
	}
	return last.IsKeyword("LINE") && isSaveStatement(toks)
}

// isSaveStatement reports whether the statement the tokens end in is SAVE.
func isSaveStatement(toks []token.Token) bool {
	for i := len(toks) - 1; i >= 0; i-- {
		t := toks[i]
		if t.Kind == token.Colon || t.IsKeyword("THEN") {
			return false
		}
		if t.IsKeyword("SAVE") {
			return true
		}
	}
	return false
}

// lineBefore returns the text of pos's line up to pos.
func (s *Snapshot) lineBefore(pos token.Position) string {
	lines := strings.Split(s.Text, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return ""
	}
	line := strings.TrimRight(lines[pos.Line-1], "\r")
	col := pos.Column - 1
	if col > len(line) {
		col = len(line)
	}
	if col < 0 {
		col = 0
	}
	return line[:col]
}

// isInsideString checks if the end of the text lies inside a string
// literal. A doubled quote inside a string is an escaped quote, which
// counts twice and so leaves the parity unchanged.
func isInsideString(textBeforeCursor string) bool {
	return strings.Count(textBeforeCursor, "\"")%2 == 1
}

// extractPartialIdentifier returns the word being typed at the end of the
// text, including a trailing $.
// Example: "10 PRINT na" -> "na"
// Example: "10 LET a$" -> "a$".
func extractPartialIdentifier(textBeforeCursor string) string {
	i := len(textBeforeCursor)
	if i > 0 && textBeforeCursor[i-1] == '$' {
		i--
	}
	for i > 0 {
		c := textBeforeCursor[i-1]
		if !isAlnum(c) {
			break
		}
		i--
	}
	word := textBeforeCursor[i:]
	if word == "" || !isLetter(word[0]) {
		return ""
	}
	return word
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9')
}
