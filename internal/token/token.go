// Package token defines the lexical vocabulary of Sinclair ZX Spectrum BASIC.
package token

import "fmt"

// Kind classifies a token.
type Kind int

// List of all token kinds. Invalid is the zero value so an uninitialized
// token never masquerades as something meaningful.
const (
	Invalid Kind = iota
	EOF
	Newline
	LineNumber
	Number
	String
	Identifier
	Keyword
	Function
	Comment
	Operator
	Colon
	Comma
	Semicolon
	Apostrophe
	Hash
	LParen
	RParen
)

var kindNames = [...]string{
	Invalid:    "INVALID",
	EOF:        "EOF",
	Newline:    "NEWLINE",
	LineNumber: "LINE_NUMBER",
	Number:     "NUMBER",
	String:     "STRING",
	Identifier: "IDENTIFIER",
	Keyword:    "KEYWORD",
	Function:   "FUNCTION",
	Comment:    "COMMENT",
	Operator:   "OPERATOR",
	Colon:      "COLON",
	Comma:      "COMMA",
	Semicolon:  "SEMICOLON",
	Apostrophe: "APOSTROPHE",
	Hash:       "HASH",
	LParen:     "LPAREN",
	RParen:     "RPAREN",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsSeparator reports whether the kind ends a statement.
func (k Kind) IsSeparator() bool {
	return k == Colon || k == Newline || k == EOF
}

// IsWord reports whether tokens of this kind are spelled with letters or
// digits and therefore need whitespace between each other when printed.
func (k Kind) IsWord() bool {
	switch k {
	case LineNumber, Number, Identifier, Keyword, Function:
		return true
	}
	return false
}

// Position is a location in the source text.
// Line and Column are 1-based; Column counts bytes. Offset is the 0-based
// byte offset from the start of the document.
type Position struct {
	Line   int
	Column int
	Offset int
}

// IsValid reports whether the position was set.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p lies strictly before q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Range is a half-open span [Start, End) of source text.
type Range struct {
	Start Position
	End   Position
}

// Contains reports whether p lies inside the range. The end position is
// included so that a cursor placed right after a word still selects it.
func (r Range) Contains(p Position) bool {
	return !p.Before(r.Start) && !r.End.Before(p)
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End.Offset - r.Start.Offset
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Token is one lexeme. Text is the raw source spelling; Value is the
// normalized spelling (upper-case names, canonical keywords such as GOTO
// for "go to").
type Token struct {
	Kind  Kind
	Text  string
	Value string
	Start Position
	End   Position
}

// Range returns the source span of the token.
func (t Token) Range() Range {
	return Range{Start: t.Start, End: t.End}
}

// IsKeyword reports whether t is a keyword with one of the given values.
// With no values it reports whether t is any keyword.
func (t Token) IsKeyword(values ...string) bool {
	if t.Kind != Keyword {
		return false
	}
	if len(values) == 0 {
		return true
	}
	for _, v := range values {
		if t.Value == v {
			return true
		}
	}
	return false
}

// IsOperator reports whether t is the operator op.
func (t Token) IsOperator(op string) bool {
	return t.Kind == Operator && t.Value == op
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Start)
}
