package parser

import (
	"strconv"

	"github.com/stefdev49/vs-zx-sub002/internal/ast"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// Binding powers, lowest first.
const (
	precLowest = iota
	precOr
	precAnd
	precNot
	precCompare
	precAdd
	precMul
	precUnary
	precPower
)

// noArgFunctions take no operand.
var noArgFunctions = map[string]bool{
	"PI": true, "RND": true, "INKEY$": true,
}

// parenFunctions always take a parenthesized argument list.
var parenFunctions = map[string]bool{
	"ATTR": true, "POINT": true, "SCREEN$": true,
}

// ParseExpression parses a complete expression from toks. It is used by
// tools that need to evaluate a fragment outside a statement.
func ParseExpression(toks []token.Token) (ast.Expression, error) {
	p := &parser{toks: toks}
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.toks) {
		return nil, p.errorf(p.cur(), "Unexpected %s", describe(p.cur()))
	}
	return e, nil
}

func (p *parser) expression() (ast.Expression, error) {
	return p.binary(precOr)
}

func binaryPrecedence(t token.Token) int {
	switch t.Kind {
	case token.Keyword:
		switch t.Value {
		case "OR":
			return precOr
		case "AND":
			return precAnd
		}
	case token.Operator:
		switch t.Value {
		case "=", "<", ">", "<=", ">=", "<>":
			return precCompare
		case "+", "-":
			return precAdd
		case "*", "/":
			return precMul
		case "^":
			return precPower
		}
	}
	return precLowest
}

// binary implements precedence climbing. Every binary operator is left
// associative.
func (p *parser) binary(minPrec int) (ast.Expression, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.cur()
		prec := binaryPrecedence(op)
		if prec == precLowest || prec < minPrec {
			return left, nil
		}
		p.advance()
		right, err := p.binary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Operator: op, Right: right}
	}
}

func (p *parser) unary() (ast.Expression, error) {
	t := p.cur()
	switch {
	case t.IsKeyword("NOT"):
		p.advance()
		operand, err := p.binary(precCompare)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: t, Operand: operand}, nil
	case t.IsOperator("-") || t.IsOperator("+"):
		p.advance()
		operand, err := p.binary(precUnary)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: t, Operand: operand}, nil
	}
	return p.primary()
}

func (p *parser) primary() (ast.Expression, error) {
	t := p.cur()
	switch t.Kind {
	case token.Number, token.LineNumber:
		p.advance()
		v, err := strconv.ParseFloat(t.Value, 64)
		if err != nil {
			return nil, p.errorf(t, "Invalid number %s", t.Text)
		}
		return &ast.NumberLiteral{Token: t, Value: v}, nil
	case token.String:
		p.advance()
		return &ast.StringLiteral{Token: t, Value: t.Value}, nil
	case token.Identifier:
		p.advance()
		ident := &ast.Identifier{Token: t, Name: t.Value}
		if p.cur().Kind == token.LParen {
			return p.indexExpression(ident)
		}
		return ident, nil
	case token.LParen:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		rp, err := p.expect(token.RParen, "')'")
		if err != nil {
			return nil, err
		}
		return &ast.ParenExpression{LParen: t, Inner: inner, RParen: rp}, nil
	case token.Function:
		return p.call()
	case token.Keyword:
		if t.Value == "FN" {
			return p.fnCall()
		}
	}
	return nil, p.errorf(t, "Expected an expression, found %s", describe(t))
}

// operand parses the argument of a function written without parentheses.
// Function application binds tighter than any operator: SIN X+1 is
// (SIN X)+1.
func (p *parser) operand() (ast.Expression, error) {
	t := p.cur()
	if t.IsOperator("-") || t.IsOperator("+") {
		p.advance()
		inner, err := p.operand()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: t, Operand: inner}, nil
	}
	return p.primary()
}

func (p *parser) call() (ast.Expression, error) {
	fn := p.advance()
	call := &ast.CallExpression{Function: fn}
	switch {
	case noArgFunctions[fn.Value]:
		return call, nil
	case parenFunctions[fn.Value]:
		if _, err := p.expect(token.LParen, "'(' after "+fn.Value); err != nil {
			return nil, err
		}
		args, rp, err := p.argumentList()
		if err != nil {
			return nil, err
		}
		call.Args, call.RParen, call.Parens = args, rp, true
		return call, nil
	}
	arg, err := p.operand()
	if err != nil {
		return nil, err
	}
	call.Args = []ast.Expression{arg}
	return call, nil
}

func (p *parser) fnCall() (ast.Expression, error) {
	fn := p.advance()
	t, err := p.expect(token.Identifier, "a function name after FN")
	if err != nil {
		return nil, err
	}
	call := &ast.FnCall{Fn: fn, Name: &ast.Identifier{Token: t, Name: t.Value}}
	if _, err := p.expect(token.LParen, "'(' after FN "+t.Value); err != nil {
		return nil, err
	}
	if call.Args, call.RParen, err = p.argumentList(); err != nil {
		return nil, err
	}
	return call, nil
}

// argumentList parses comma-separated expressions up to and including
// the closing parenthesis. The opening parenthesis is already consumed.
func (p *parser) argumentList() ([]ast.Expression, token.Token, error) {
	var args []ast.Expression
	if rp := p.cur(); rp.Kind == token.RParen {
		p.advance()
		return args, rp, nil
	}
	for {
		e, err := p.expression()
		if err != nil {
			return nil, token.Token{}, err
		}
		args = append(args, e)
		if p.cur().Kind != token.Comma {
			break
		}
		p.advance()
	}
	rp, err := p.expect(token.RParen, "')'")
	return args, rp, err
}

// indexExpression parses subscripts or a string slice after a name.
func (p *parser) indexExpression(name *ast.Identifier) (ast.Expression, error) {
	p.advance() // (
	idx := &ast.IndexExpression{Name: name}
	if rp := p.cur(); rp.Kind == token.RParen {
		idx.RParen = p.advance()
		return idx, nil
	}
	for {
		arg, err := p.subscript()
		if err != nil {
			return nil, err
		}
		idx.Args = append(idx.Args, arg)
		if p.cur().Kind != token.Comma {
			break
		}
		p.advance()
	}
	rp, err := p.expect(token.RParen, "')' after subscripts")
	if err != nil {
		return nil, err
	}
	idx.RParen = rp
	return idx, nil
}

// subscript parses "expr", "expr TO expr", "TO expr", "expr TO" or "TO".
func (p *parser) subscript() (ast.Expression, error) {
	var from ast.Expression
	if !p.cur().IsKeyword("TO") {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if !p.cur().IsKeyword("TO") {
			return e, nil
		}
		from = e
	}
	slice := &ast.SliceRange{From: from, Tok: p.advance()}
	if c := p.cur(); c.Kind != token.RParen && c.Kind != token.Comma {
		to, err := p.expression()
		if err != nil {
			return nil, err
		}
		slice.To = to
	}
	return slice, nil
}
