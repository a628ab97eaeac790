// Package lexer turns ZX BASIC program text into a flat token stream.
//
// Tokenize is total: characters it cannot classify become token.Invalid
// tokens and a Problem, and lexing carries on with the next character.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// ProblemKind identifies a lexical anomaly.
type ProblemKind int

const (
	InvalidCharacter ProblemKind = iota
	UnterminatedString
	NameLength
)

func (k ProblemKind) String() string {
	switch k {
	case InvalidCharacter:
		return "invalid-character"
	case UnterminatedString:
		return "unterminated-string"
	case NameLength:
		return "name-length"
	}
	return "unknown"
}

// Problem is a lexical anomaly. The token stream still covers the text.
type Problem struct {
	Kind    ProblemKind
	Message string
	Range   token.Range
}

// Result holds the tokens of a document and the problems found on the way.
type Result struct {
	Tokens   []token.Token
	Problems []Problem
}

// Tokenize lexes a whole document. The last token is always token.EOF.
func Tokenize(text string) *Result {
	l := &lexer{src: text, line: 1, col: 1, atLineStart: true}
	l.run()
	return &Result{Tokens: l.tokens, Problems: l.problems}
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int

	atLineStart bool

	tokens   []token.Token
	problems []Problem
}

func (l *lexer) here() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *lexer) peek(ahead int) byte {
	if l.pos+ahead < len(l.src) {
		return l.src[l.pos+ahead]
	}
	return 0
}

// advance moves over n bytes that are known not to contain a newline.
func (l *lexer) advance(n int) {
	l.pos += n
	l.col += n
}

func (l *lexer) emit(kind token.Kind, start token.Position, value string) token.Token {
	tok := token.Token{
		Kind:  kind,
		Text:  l.src[start.Offset:l.pos],
		Value: value,
		Start: start,
		End:   l.here(),
	}
	l.tokens = append(l.tokens, tok)
	if kind != token.Newline {
		l.atLineStart = false
	}
	return tok
}

func (l *lexer) problem(kind ProblemKind, r token.Range, format string, args ...any) {
	l.problems = append(l.problems, Problem{Kind: kind, Message: fmt.Sprintf(format, args...), Range: r})
}

func (l *lexer) run() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			start := l.here()
			l.pos++
			tok := token.Token{Kind: token.Newline, Text: "\n", Value: "\n", Start: start,
				End: token.Position{Line: l.line, Column: l.col + 1, Offset: l.pos}}
			l.tokens = append(l.tokens, tok)
			l.line++
			l.col = 1
			l.atLineStart = true
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			l.advance(1)
		case isDigit(c) || (c == '.' && isDigit(l.peek(1))):
			l.lexNumber()
		case isLetter(c):
			l.lexWord()
		case c == '"':
			l.lexString()
		default:
			l.lexPunct()
		}
	}
	l.tokens = append(l.tokens, token.Token{Kind: token.EOF, Start: l.here(), End: l.here()})
}

func (l *lexer) lexNumber() {
	start := l.here()
	kind := token.Number
	if l.atLineStart {
		kind = token.LineNumber
	}
	for isDigit(l.peek(0)) {
		l.advance(1)
	}
	if l.peek(0) == '.' {
		l.advance(1)
		for isDigit(l.peek(0)) {
			l.advance(1)
		}
	}
	if c := l.peek(0); c == 'e' || c == 'E' {
		n := 1
		if s := l.peek(1); s == '+' || s == '-' {
			n = 2
		}
		if isDigit(l.peek(n)) {
			l.advance(n)
			for isDigit(l.peek(0)) {
				l.advance(1)
			}
		}
	}
	text := l.src[start.Offset:l.pos]
	l.emit(kind, start, strings.ToUpper(text))
}

// letters returns the run of letters starting at offset from.
func (l *lexer) letters(from int) string {
	end := from
	for end < len(l.src) && isLetter(l.src[end]) {
		end++
	}
	return l.src[from:end]
}

func (l *lexer) lexWord() {
	start := l.here()
	run := l.letters(l.pos)
	word := strings.ToUpper(run)

	// $-suffixed function names take priority over the bare word (VAL$ over VAL).
	if l.peek(len(run)) == '$' {
		if kind, ok := token.Lookup(word + "$"); ok && kind == token.Function {
			l.advance(len(run) + 1)
			l.emit(token.Function, start, word+"$")
			return
		}
	}

	if second, ok := twoWord[word]; ok && !(word == "GO" && l.expectsOperand()) {
		if n, value := l.secondWord(len(run), second); n > 0 {
			l.advance(n)
			l.emit(token.Keyword, start, value)
			return
		}
	}

	if kind, ok := token.Lookup(word); ok {
		l.advance(len(run))
		l.emit(kind, start, word)
		if word == "REM" {
			l.lexComment()
		}
		return
	}

	// Plain name: letters then digits, then an optional type suffix.
	end := l.pos
	for end < len(l.src) && (isLetter(l.src[end]) || isDigit(l.src[end])) {
		end++
	}
	base := l.src[l.pos:end]
	suffix := ""
	if end < len(l.src) && (l.src[end] == '$' || l.src[end] == '%') {
		suffix = string(l.src[end])
		end++
	}
	l.advance(end - l.pos)
	tok := l.emit(token.Identifier, start, strings.ToUpper(l.src[start.Offset:l.pos]))
	if suffix != "" && len(base) > 1 {
		what := "String"
		if suffix == "%" {
			what = "Integer"
		}
		l.problem(NameLength, tok.Range(), "%s variable name '%s' must be 1 character", what, tok.Value)
	}
}

// twoWord maps the first word of a two-word keyword to its possible
// second words and their normalized values.
var twoWord = map[string]map[string]string{
	"GO":    {"TO": token.GoTo, "SUB": token.GoSub},
	"DEF":   {"FN": token.DefFn},
	"INPUT": {"LINE": token.InputLine},
}

// secondWord looks past blanks after the first word. It returns the number
// of bytes the whole keyword spans, or zero when no second word matches.
func (l *lexer) secondWord(firstLen int, second map[string]string) (int, string) {
	i := l.pos + firstLen
	for i < len(l.src) && (l.src[i] == ' ' || l.src[i] == '\t') {
		i++
	}
	run := l.letters(i)
	value, ok := second[strings.ToUpper(run)]
	if !ok {
		return 0, ""
	}
	return i + len(run) - l.pos, value
}

// expectsOperand reports whether the previous token leaves the lexer in
// the middle of an expression, where GO can only be a variable.
func (l *lexer) expectsOperand() bool {
	if len(l.tokens) == 0 {
		return false
	}
	switch l.tokens[len(l.tokens)-1].Kind {
	case token.Operator, token.LParen, token.Comma:
		return true
	}
	return false
}

func (l *lexer) lexComment() {
	end := l.pos
	for end < len(l.src) && l.src[end] != '\n' {
		end++
	}
	text := strings.TrimRight(l.src[l.pos:end], "\r")
	if text == "" {
		l.advance(end - l.pos)
		return
	}
	start := l.here()
	l.advance(len(text))
	l.emit(token.Comment, start, strings.TrimSpace(text))
	l.advance(end - l.pos)
}

func (l *lexer) lexString() {
	start := l.here()
	l.advance(1)
	var sb strings.Builder
	for {
		c := l.peek(0)
		if l.pos >= len(l.src) || c == '\n' {
			// Trailing \r belongs to the line ending, not the string.
			for l.pos > start.Offset+1 && l.src[l.pos-1] == '\r' {
				l.pos--
				l.col--
			}
			tok := l.emit(token.String, start, strings.TrimRight(sb.String(), "\r"))
			l.problem(UnterminatedString, tok.Range(), "Unterminated string literal")
			return
		}
		if c == '"' {
			if l.peek(1) == '"' {
				sb.WriteByte('"')
				l.advance(2)
				continue
			}
			l.advance(1)
			l.emit(token.String, start, sb.String())
			return
		}
		sb.WriteByte(c)
		l.advance(1)
	}
}

func (l *lexer) lexPunct() {
	start := l.here()
	c := l.src[l.pos]
	switch c {
	case ':':
		l.advance(1)
		l.emit(token.Colon, start, ":")
	case ',':
		l.advance(1)
		l.emit(token.Comma, start, ",")
	case ';':
		l.advance(1)
		l.emit(token.Semicolon, start, ";")
	case '\'':
		l.advance(1)
		l.emit(token.Apostrophe, start, "'")
	case '#':
		l.advance(1)
		l.emit(token.Hash, start, "#")
	case '(':
		l.advance(1)
		l.emit(token.LParen, start, "(")
	case ')':
		l.advance(1)
		l.emit(token.RParen, start, ")")
	case '+', '-', '*', '/', '^', '=':
		l.advance(1)
		l.emit(token.Operator, start, string(c))
	case '<':
		switch l.peek(1) {
		case '=', '>':
			l.advance(2)
		default:
			l.advance(1)
		}
		l.emit(token.Operator, start, l.src[start.Offset:l.pos])
	case '>':
		if l.peek(1) == '=' {
			l.advance(2)
		} else {
			l.advance(1)
		}
		l.emit(token.Operator, start, l.src[start.Offset:l.pos])
	default:
		_, n := utf8.DecodeRuneInString(l.src[l.pos:])
		l.advance(n)
		tok := l.emit(token.Invalid, start, l.src[start.Offset:l.pos])
		l.problem(InvalidCharacter, tok.Range(), "Invalid character '%s'", tok.Text)
	}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
