// Package parser builds statement trees from lexer output.
//
// Each physical line is split into colon-separated statements. A statement
// that does not fit any known shape becomes an ast.RawStatement carrying the
// error message; parsing of the document always continues.
package parser

import (
	"fmt"
	"strings"

	"github.com/stefdev49/vs-zx-sub002/internal/ast"
	"github.com/stefdev49/vs-zx-sub002/internal/lexer"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// Parse groups the tokens of res into lines and parses every statement.
// text must be the source res was produced from.
func Parse(text string, res *lexer.Result) *ast.Program {
	prog := &ast.Program{Tokens: res.Tokens}
	sourceLines := strings.Split(text, "\n")

	var current []token.Token
	flush := func() {
		if len(current) == 0 {
			return
		}
		n := current[0].Start.Line
		line := &ast.Line{SourceLine: n, Tokens: current}
		if n-1 < len(sourceLines) {
			line.Text = strings.TrimRight(sourceLines[n-1], "\r")
		}
		cursor := 0
		if current[0].Kind == token.LineNumber {
			num := current[0]
			line.Number = &num
			cursor = 1
		}
		line.Statements = ParseStatements(current, cursor)
		prog.Lines = append(prog.Lines, line)
		current = nil
	}

	for _, tok := range res.Tokens {
		switch tok.Kind {
		case token.Newline, token.EOF:
			flush()
		default:
			current = append(current, tok)
		}
	}
	flush()
	return prog
}

// ParseStatements parses every statement from cursor to the end of toks.
// Empty statements (consecutive colons) are skipped.
func ParseStatements(toks []token.Token, cursor int) []ast.Statement {
	var stmts []ast.Statement
	for cursor < len(toks) {
		stmt, next := ParseStatement(toks, cursor)
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if next <= cursor {
			next = cursor + 1
		}
		cursor = next
	}
	return stmts
}

// ParseStatement parses one statement of a physical line starting at
// cursor. It returns the statement and the cursor just past the closing
// colon. The statement is nil when there is nothing but a colon at cursor.
func ParseStatement(toks []token.Token, cursor int) (ast.Statement, int) {
	p := &parser{toks: toks, pos: cursor}
	if p.atEnd() {
		return nil, p.skipColon()
	}

	stmt, err := p.statement()
	if err == nil && !p.atEnd() {
		err = p.errorf(p.cur(), "Unexpected %s", describe(p.cur()))
	}
	if err != nil {
		end := cursor
		if toks[cursor].IsKeyword("IF") {
			end = len(toks)
		}
		for end < len(toks) && toks[end].Kind != token.Colon {
			end++
		}
		p.pos = end
		stmt = newRaw(toks[cursor:end], err)
	}
	return stmt, p.skipColon()
}

type syntaxError struct {
	msg string
	at  token.Range
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.at.Start, e.msg)
}

func newRaw(toks []token.Token, err error) *ast.RawStatement {
	raw := &ast.RawStatement{Tokens: toks, Message: err.Error()}
	if len(toks) > 0 {
		raw.Span = token.Range{Start: toks[0].Start, End: toks[len(toks)-1].End}
		if toks[0].Kind == token.Keyword {
			raw.Keyword = toks[0]
		}
	}
	if se, ok := err.(*syntaxError); ok {
		raw.Message = se.msg
		raw.ErrorRange = se.at
	} else {
		raw.ErrorRange = raw.Span
	}
	return raw
}

type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) cur() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return p.endToken()
}

func (p *parser) peekAt(n int) token.Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return p.endToken()
}

// endToken is a synthetic EOF positioned after the last real token.
func (p *parser) endToken() token.Token {
	var at token.Position
	if len(p.toks) > 0 {
		at = p.toks[len(p.toks)-1].End
	}
	return token.Token{Kind: token.EOF, Start: at, End: at}
}

func (p *parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) atEnd() bool {
	return p.cur().Kind.IsSeparator()
}

func (p *parser) skipColon() int {
	if p.pos < len(p.toks) && p.toks[p.pos].Kind == token.Colon {
		p.pos++
	}
	return p.pos
}

// last returns the most recently consumed token.
func (p *parser) last() token.Token {
	if p.pos > 0 && p.pos <= len(p.toks) {
		return p.toks[p.pos-1]
	}
	return p.cur()
}

func (p *parser) errorf(at token.Token, format string, args ...any) error {
	r := at.Range()
	if at.Kind == token.EOF || at.Kind == token.Colon {
		r = p.last().Range()
	}
	return &syntaxError{msg: fmt.Sprintf(format, args...), at: r}
}

func (p *parser) expect(kind token.Kind, what string) (token.Token, error) {
	t := p.cur()
	if t.Kind != kind {
		return t, p.errorf(t, "Expected %s, found %s", what, describe(t))
	}
	return p.advance(), nil
}

func (p *parser) expectOperator(op string, context string) error {
	t := p.cur()
	if !t.IsOperator(op) {
		return p.errorf(t, "Expected '%s' %s, found %s", op, context, describe(t))
	}
	p.advance()
	return nil
}

func (p *parser) expectKeyword(kw string, context string) (token.Token, error) {
	t := p.cur()
	if !t.IsKeyword(kw) {
		return t, p.errorf(t, "Expected %s %s, found %s", kw, context, describe(t))
	}
	return p.advance(), nil
}

// finish sets the statement span to end at the last consumed token.
func (p *parser) finish(b *ast.Base, start token.Position) {
	b.Span = token.Range{Start: start, End: p.last().End}
}

func describe(t token.Token) string {
	switch t.Kind {
	case token.EOF, token.Newline:
		return "end of line"
	case token.Colon:
		return "':'"
	case token.String:
		return "string " + t.Text
	case token.Keyword, token.Function:
		return t.Value
	}
	return fmt.Sprintf("'%s'", t.Text)
}
