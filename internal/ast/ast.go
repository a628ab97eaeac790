// Package ast declares the syntax tree of a ZX BASIC program: one Line per
// physical source line, each holding its colon-separated statements.
package ast

import (
	"strconv"
	"strings"

	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// Node is implemented by every statement and expression.
type Node interface {
	Range() token.Range
	String() string
}

// Statement is one colon-separated command.
type Statement interface {
	Node
	// KeywordToken returns the leading keyword, or a zero token for an
	// implicit LET.
	KeywordToken() token.Token
	statementNode()
}

// Expression is a value-producing node.
type Expression interface {
	Node
	expressionNode()
}

// Program is a parsed document.
type Program struct {
	Lines  []*Line
	Tokens []token.Token
}

// Line is one non-blank physical line.
type Line struct {
	// Number is nil when the line does not start with a line number.
	Number     *token.Token
	SourceLine int
	Statements []Statement
	// Tokens excludes the trailing Newline and EOF.
	Tokens []token.Token
	Text   string
}

// Range spans the line's text without its line ending.
func (l *Line) Range() token.Range {
	if len(l.Tokens) == 0 {
		p := token.Position{Line: l.SourceLine, Column: 1}
		return token.Range{Start: p, End: p}
	}
	return token.Range{Start: l.Tokens[0].Start, End: l.Tokens[len(l.Tokens)-1].End}
}

// Base carries the fields shared by every statement.
type Base struct {
	Keyword token.Token
	Span    token.Range
}

func (b *Base) Range() token.Range        { return b.Span }
func (b *Base) KeywordToken() token.Token { return b.Keyword }
func (b *Base) statementNode()            {}

// LetStatement assigns Value to Target. Implicit is set when the LET
// keyword was omitted.
type LetStatement struct {
	Base
	Implicit bool
	Target   Expression
	Value    Expression
}

func (s *LetStatement) String() string {
	out := s.Target.String() + " = " + exprString(s.Value)
	if s.Implicit {
		return out
	}
	return "LET " + out
}

// PrintItem is one element of a PRINT or INPUT list. Modifier is set for
// AT, TAB, colour items and #stream; Separator is the ; , or ' that
// follows the item, if any.
type PrintItem struct {
	Modifier  *token.Token
	Args      []Expression
	Separator token.Token
}

func (p PrintItem) String() string {
	var sb strings.Builder
	if p.Modifier != nil {
		sb.WriteString(p.Modifier.Value)
		if p.Modifier.Kind != token.Hash {
			sb.WriteByte(' ')
		}
	}
	sb.WriteString(joinExprs(p.Args, ","))
	if p.Separator.Kind != token.Invalid {
		sb.WriteString(p.Separator.Value)
	}
	return sb.String()
}

// PrintStatement is PRINT or LPRINT.
type PrintStatement struct {
	Base
	Items []PrintItem
}

func (s *PrintStatement) String() string {
	return s.Keyword.Value + printItems(s.Items)
}

// InputStatement reads values into Targets. Line is set for INPUT LINE.
type InputStatement struct {
	Base
	Line    bool
	Items   []PrintItem
	Targets []Expression
}

func (s *InputStatement) String() string {
	return s.Keyword.Value + printItems(s.Items)
}

// IfStatement runs Consequence, which extends to the end of the physical
// line, when Condition holds.
type IfStatement struct {
	Base
	Condition   Expression
	HasThen     bool
	Then        token.Token
	Consequence []Statement
}

func (s *IfStatement) String() string {
	var sb strings.Builder
	sb.WriteString("IF " + exprString(s.Condition))
	if s.HasThen {
		sb.WriteString(" THEN")
	}
	for i, st := range s.Consequence {
		if i > 0 {
			sb.WriteString(":")
		}
		sb.WriteString(" " + st.String())
	}
	return sb.String()
}

// ForStatement is FOR Variable = Start TO End [STEP Step].
type ForStatement struct {
	Base
	Variable *Identifier
	Start    Expression
	End      Expression
	Step     Expression
}

func (s *ForStatement) String() string {
	out := "FOR " + s.Variable.String() + " = " + exprString(s.Start) + " TO " + exprString(s.End)
	if s.Step != nil {
		out += " STEP " + s.Step.String()
	}
	return out
}

// NextStatement closes a FOR loop. Variable is nil for a bare NEXT.
type NextStatement struct {
	Base
	Variable *Identifier
}

func (s *NextStatement) String() string {
	if s.Variable == nil {
		return "NEXT"
	}
	return "NEXT " + s.Variable.String()
}

// DimDecl declares one array.
type DimDecl struct {
	Name       *Identifier
	Dimensions []Expression
	Span       token.Range
}

// DimStatement declares one or more arrays.
type DimStatement struct {
	Base
	Arrays []*DimDecl
}

func (s *DimStatement) String() string {
	parts := make([]string, len(s.Arrays))
	for i, d := range s.Arrays {
		parts[i] = d.Name.String() + "(" + joinExprs(d.Dimensions, ",") + ")"
	}
	return "DIM " + strings.Join(parts, ",")
}

// GotoStatement is GOTO or GO TO.
type GotoStatement struct {
	Base
	Target Expression
}

func (s *GotoStatement) String() string { return "GOTO " + exprString(s.Target) }

// GosubStatement is GOSUB or GO SUB.
type GosubStatement struct {
	Base
	Target Expression
}

func (s *GosubStatement) String() string { return "GOSUB " + exprString(s.Target) }

// ReadStatement reads DATA values into Targets.
type ReadStatement struct {
	Base
	Targets []Expression
}

func (s *ReadStatement) String() string { return "READ " + joinExprs(s.Targets, ",") }

// DataStatement holds constant values for READ.
type DataStatement struct {
	Base
	Values []Expression
}

func (s *DataStatement) String() string { return "DATA " + joinExprs(s.Values, ",") }

// ReturnStatement ends a subroutine.
type ReturnStatement struct {
	Base
}

func (s *ReturnStatement) String() string { return "RETURN" }

// RemStatement is a comment; it swallows the rest of the line.
type RemStatement struct {
	Base
	Comment *token.Token
}

func (s *RemStatement) String() string {
	if s.Comment == nil {
		return "REM"
	}
	return "REM " + s.Comment.Value
}

// DefFnStatement defines a user function: DEF FN f(x,y)=expr.
type DefFnStatement struct {
	Base
	Name   *Identifier
	Params []*Identifier
	Body   Expression
}

func (s *DefFnStatement) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.String()
	}
	return "DEF FN " + s.Name.String() + "(" + strings.Join(params, ",") + ") = " + exprString(s.Body)
}

// Clause is a secondary keyword with its own arguments inside a command,
// such as LINE 10 in SAVE "x" LINE 10 or #2 in CLOSE #2.
type Clause struct {
	Keyword token.Token
	Args    []Expression
}

// CommandStatement is any other statement keyword followed by a plain
// argument list.
type CommandStatement struct {
	Base
	Args    []Expression
	Clauses []Clause
}

// Name returns the command keyword.
func (s *CommandStatement) Name() string { return s.Keyword.Value }

// Clause returns the first clause introduced by keyword.
func (s *CommandStatement) Clause(keyword string) (Clause, bool) {
	for _, c := range s.Clauses {
		if c.Keyword.Value == keyword {
			return c, true
		}
	}
	return Clause{}, false
}

func (s *CommandStatement) String() string {
	var sb strings.Builder
	sb.WriteString(s.Keyword.Value)
	if len(s.Args) > 0 {
		sb.WriteString(" " + joinExprs(s.Args, ","))
	}
	for _, c := range s.Clauses {
		sb.WriteString(" " + c.Keyword.Value)
		if len(c.Args) > 0 {
			sb.WriteString(" " + joinExprs(c.Args, ","))
		}
	}
	return sb.String()
}

// RawStatement is the fallback for text that matches no statement shape.
type RawStatement struct {
	Base
	Tokens  []token.Token
	Message string
	// ErrorRange points at the offending token.
	ErrorRange token.Range
}

func (s *RawStatement) String() string {
	parts := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// NumberLiteral is a numeric constant.
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (e *NumberLiteral) Range() token.Range { return e.Token.Range() }
func (e *NumberLiteral) String() string     { return e.Token.Value }
func (e *NumberLiteral) expressionNode()    {}

// IsInteger reports whether the literal is a whole number.
func (e *NumberLiteral) IsInteger() bool {
	return e.Value == float64(int64(e.Value))
}

// StringLiteral is a quoted string; Value is unescaped.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (e *StringLiteral) Range() token.Range { return e.Token.Range() }
func (e *StringLiteral) String() string     { return strconv.Quote(e.Value) }
func (e *StringLiteral) expressionNode()    {}

// Identifier is a variable name. Name is upper-case and keeps its suffix.
type Identifier struct {
	Token token.Token
	Name  string
}

func (e *Identifier) Range() token.Range { return e.Token.Range() }
func (e *Identifier) String() string     { return e.Name }
func (e *Identifier) expressionNode()    {}

// IsString reports whether the name carries the $ suffix.
func (e *Identifier) IsString() bool { return strings.HasSuffix(e.Name, "$") }

// BaseName strips the $ suffix; the % suffix is part of the name.
func (e *Identifier) BaseName() string { return strings.TrimSuffix(e.Name, "$") }

// IndexExpression is an array element or string slice: Name(Args).
type IndexExpression struct {
	Name   *Identifier
	Args   []Expression
	RParen token.Token
}

func (e *IndexExpression) Range() token.Range {
	return token.Range{Start: e.Name.Token.Start, End: e.RParen.End}
}
func (e *IndexExpression) String() string  { return e.Name.String() + "(" + joinExprs(e.Args, ",") + ")" }
func (e *IndexExpression) expressionNode() {}

// HasSlice reports whether any argument is a TO range.
func (e *IndexExpression) HasSlice() bool {
	for _, a := range e.Args {
		if _, ok := a.(*SliceRange); ok {
			return true
		}
	}
	return false
}

// SliceRange is "From TO To" inside a subscript list; either end may be nil.
type SliceRange struct {
	From Expression
	To   Expression
	Tok  token.Token
}

func (e *SliceRange) Range() token.Range {
	r := e.Tok.Range()
	if e.From != nil {
		r.Start = e.From.Range().Start
	}
	if e.To != nil {
		r.End = e.To.Range().End
	}
	return r
}

func (e *SliceRange) String() string {
	out := "TO"
	if e.From != nil {
		out = e.From.String() + " " + out
	}
	if e.To != nil {
		out += " " + e.To.String()
	}
	return out
}
func (e *SliceRange) expressionNode() {}

// UnaryExpression is a prefix minus, plus, or NOT.
type UnaryExpression struct {
	Operator token.Token
	Operand  Expression
}

func (e *UnaryExpression) Range() token.Range {
	return token.Range{Start: e.Operator.Start, End: e.Operand.Range().End}
}

func (e *UnaryExpression) String() string {
	if e.Operator.Kind == token.Keyword {
		return "(" + e.Operator.Value + " " + e.Operand.String() + ")"
	}
	return "(" + e.Operator.Value + e.Operand.String() + ")"
}
func (e *UnaryExpression) expressionNode() {}

// BinaryExpression is Left Operator Right.
type BinaryExpression struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (e *BinaryExpression) Range() token.Range {
	return token.Range{Start: e.Left.Range().Start, End: e.Right.Range().End}
}

func (e *BinaryExpression) String() string {
	return "(" + e.Left.String() + " " + e.Operator.Value + " " + e.Right.String() + ")"
}
func (e *BinaryExpression) expressionNode() {}

// Op returns the normalized operator spelling.
func (e *BinaryExpression) Op() string { return e.Operator.Value }

// CallExpression applies a built-in function. Parens is set when the
// arguments were written in parentheses.
type CallExpression struct {
	Function token.Token
	Args     []Expression
	Parens   bool
	RParen   token.Token
}

func (e *CallExpression) Range() token.Range {
	r := e.Function.Range()
	if e.Parens {
		r.End = e.RParen.End
	} else if n := len(e.Args); n > 0 {
		r.End = e.Args[n-1].Range().End
	}
	return r
}

func (e *CallExpression) String() string {
	if len(e.Args) == 0 {
		return e.Function.Value
	}
	if e.Parens {
		return e.Function.Value + "(" + joinExprs(e.Args, ",") + ")"
	}
	return e.Function.Value + " " + joinExprs(e.Args, ",")
}
func (e *CallExpression) expressionNode() {}

// FnCall calls a DEF FN function: FN f(args).
type FnCall struct {
	Fn     token.Token
	Name   *Identifier
	Args   []Expression
	RParen token.Token
}

func (e *FnCall) Range() token.Range {
	end := e.Name.Token.End
	if e.RParen.Kind == token.RParen {
		end = e.RParen.End
	}
	return token.Range{Start: e.Fn.Start, End: end}
}
func (e *FnCall) String() string  { return "FN " + e.Name.String() + "(" + joinExprs(e.Args, ",") + ")" }
func (e *FnCall) expressionNode() {}

// ParenExpression is a parenthesized expression.
type ParenExpression struct {
	LParen token.Token
	Inner  Expression
	RParen token.Token
}

func (e *ParenExpression) Range() token.Range {
	return token.Range{Start: e.LParen.Start, End: e.RParen.End}
}
func (e *ParenExpression) String() string  { return "(" + e.Inner.String() + ")" }
func (e *ParenExpression) expressionNode() {}

func exprString(e Expression) string {
	if e == nil {
		return ""
	}
	return e.String()
}

func joinExprs(exprs []Expression, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = exprString(e)
	}
	return strings.Join(parts, sep)
}

func printItems(items []PrintItem) string {
	if len(items) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte(' ')
	for _, it := range items {
		sb.WriteString(it.String())
	}
	return sb.String()
}
