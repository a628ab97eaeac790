package parser

import (
	"github.com/stefdev49/vs-zx-sub002/internal/ast"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// notStatements are keywords that can only appear inside a statement.
var notStatements = map[string]bool{
	"THEN": true, "TO": true, "STEP": true, "AND": true, "OR": true,
	"NOT": true, "AT": true, "TAB": true, "LINE": true, "FN": true,
}

// printModifiers may prefix an item of a PRINT or INPUT list.
var printModifiers = map[string]bool{
	"AT": true, "TAB": true, "INK": true, "PAPER": true, "FLASH": true,
	"BRIGHT": true, "INVERSE": true, "OVER": true,
}

// clauseKeywords introduce a clause inside a generic command.
var clauseKeywords = map[string]bool{
	"LINE": true, "TO": true, "STEP": true, "DATA": true, "AT": true, "TAB": true,
	"INK": true, "PAPER": true, "FLASH": true, "BRIGHT": true, "INVERSE": true, "OVER": true,
}

// fileCommands accept CODE and SCREEN$ as clauses.
var fileCommands = map[string]bool{
	"SAVE": true, "LOAD": true, "VERIFY": true, "MERGE": true,
}

func (p *parser) statement() (ast.Statement, error) {
	t := p.cur()
	switch t.Kind {
	case token.Identifier:
		return p.letStatement(token.Token{}, true)
	case token.Keyword:
		if notStatements[t.Value] {
			return nil, p.errorf(t, "%s cannot start a statement", t.Value)
		}
	case token.Function:
		return nil, p.errorf(t, "%s is a function, not a statement", t.Value)
	default:
		return nil, p.errorf(t, "Expected a statement, found %s", describe(t))
	}

	kw := p.advance()
	switch kw.Value {
	case "LET":
		return p.letStatement(kw, false)
	case "PRINT", "LPRINT":
		return p.printStatement(kw)
	case "INPUT", token.InputLine:
		return p.inputStatement(kw)
	case "IF":
		return p.ifStatement(kw)
	case "FOR":
		return p.forStatement(kw)
	case "NEXT":
		return p.nextStatement(kw)
	case "DIM":
		return p.dimStatement(kw)
	case token.GoTo:
		target, err := p.expression()
		if err != nil {
			return nil, err
		}
		s := &ast.GotoStatement{Target: target}
		s.Keyword = kw
		p.finish(&s.Base, kw.Start)
		return s, nil
	case token.GoSub:
		target, err := p.expression()
		if err != nil {
			return nil, err
		}
		s := &ast.GosubStatement{Target: target}
		s.Keyword = kw
		p.finish(&s.Base, kw.Start)
		return s, nil
	case "READ":
		return p.readStatement(kw)
	case "DATA":
		return p.dataStatement(kw)
	case "RETURN":
		s := &ast.ReturnStatement{}
		s.Keyword = kw
		p.finish(&s.Base, kw.Start)
		return s, nil
	case "REM":
		s := &ast.RemStatement{}
		s.Keyword = kw
		if c := p.cur(); c.Kind == token.Comment {
			p.advance()
			s.Comment = &c
		}
		p.finish(&s.Base, kw.Start)
		return s, nil
	case token.DefFn:
		return p.defFnStatement(kw)
	}
	return p.commandStatement(kw)
}

func (p *parser) letStatement(kw token.Token, implicit bool) (ast.Statement, error) {
	start := p.cur().Start
	if !implicit {
		start = kw.Start
	}
	target, err := p.assignTarget()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator("=", "in assignment"); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	s := &ast.LetStatement{Implicit: implicit, Target: target, Value: value}
	s.Keyword = kw
	p.finish(&s.Base, start)
	return s, nil
}

// assignTarget parses a variable, array element or string slice.
func (p *parser) assignTarget() (ast.Expression, error) {
	t := p.cur()
	if t.Kind != token.Identifier {
		return nil, p.errorf(t, "Expected a variable name, found %s", describe(t))
	}
	p.advance()
	ident := &ast.Identifier{Token: t, Name: t.Value}
	if p.cur().Kind == token.LParen {
		return p.indexExpression(ident)
	}
	return ident, nil
}

func (p *parser) printItems(input bool) ([]ast.PrintItem, error) {
	var items []ast.PrintItem
	for !p.atEnd() {
		t := p.cur()
		var item ast.PrintItem
		switch {
		case isPrintSeparator(t):
			item.Separator = p.advance()
			items = append(items, item)
			continue
		case t.Kind == token.Hash || (t.Kind == token.Keyword && printModifiers[t.Value]):
			mod := p.advance()
			item.Modifier = &mod
			e, err := p.expression()
			if err != nil {
				return nil, err
			}
			item.Args = append(item.Args, e)
			if mod.IsKeyword("AT") {
				if _, err := p.expect(token.Comma, "',' between AT coordinates"); err != nil {
					return nil, err
				}
				e, err := p.expression()
				if err != nil {
					return nil, err
				}
				item.Args = append(item.Args, e)
			}
		case input && t.IsKeyword("LINE"):
			mod := p.advance()
			item.Modifier = &mod
			target, err := p.assignTarget()
			if err != nil {
				return nil, err
			}
			item.Args = append(item.Args, target)
		default:
			e, err := p.expression()
			if err != nil {
				return nil, err
			}
			item.Args = append(item.Args, e)
		}
		if isPrintSeparator(p.cur()) {
			item.Separator = p.advance()
		} else if !p.atEnd() {
			return nil, p.errorf(p.cur(), "Expected a separator between items, found %s", describe(p.cur()))
		}
		items = append(items, item)
	}
	return items, nil
}

func isPrintSeparator(t token.Token) bool {
	return t.Kind == token.Semicolon || t.Kind == token.Comma || t.Kind == token.Apostrophe
}

func (p *parser) printStatement(kw token.Token) (ast.Statement, error) {
	items, err := p.printItems(false)
	if err != nil {
		return nil, err
	}
	s := &ast.PrintStatement{Items: items}
	s.Keyword = kw
	p.finish(&s.Base, kw.Start)
	return s, nil
}

func (p *parser) inputStatement(kw token.Token) (ast.Statement, error) {
	items, err := p.printItems(true)
	if err != nil {
		return nil, err
	}
	s := &ast.InputStatement{Line: kw.Value == token.InputLine, Items: items}
	s.Keyword = kw
	for _, it := range items {
		if len(it.Args) != 1 {
			continue
		}
		if it.Modifier != nil && !it.Modifier.IsKeyword("LINE") {
			continue
		}
		switch it.Args[0].(type) {
		case *ast.Identifier, *ast.IndexExpression:
			s.Targets = append(s.Targets, it.Args[0])
		}
	}
	if len(s.Targets) == 0 {
		return nil, p.errorf(kw, "INPUT needs at least one variable")
	}
	p.finish(&s.Base, kw.Start)
	return s, nil
}

func (p *parser) ifStatement(kw token.Token) (ast.Statement, error) {
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	s := &ast.IfStatement{Condition: cond}
	s.Keyword = kw
	if t := p.cur(); t.IsKeyword("THEN") {
		s.HasThen = true
		s.Then = p.advance()
	}
	s.Consequence = ParseStatements(p.toks, p.pos)
	p.pos = len(p.toks)
	p.finish(&s.Base, kw.Start)
	return s, nil
}

func (p *parser) forStatement(kw token.Token) (ast.Statement, error) {
	t, err := p.expect(token.Identifier, "a loop variable after FOR")
	if err != nil {
		return nil, err
	}
	s := &ast.ForStatement{Variable: &ast.Identifier{Token: t, Name: t.Value}}
	s.Keyword = kw
	if err := p.expectOperator("=", "after FOR variable"); err != nil {
		return nil, err
	}
	if s.Start, err = p.expression(); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("TO", "in FOR statement"); err != nil {
		return nil, err
	}
	if s.End, err = p.expression(); err != nil {
		return nil, err
	}
	if p.cur().IsKeyword("STEP") {
		p.advance()
		if s.Step, err = p.expression(); err != nil {
			return nil, err
		}
	}
	p.finish(&s.Base, kw.Start)
	return s, nil
}

func (p *parser) nextStatement(kw token.Token) (ast.Statement, error) {
	s := &ast.NextStatement{}
	s.Keyword = kw
	if t := p.cur(); t.Kind == token.Identifier {
		p.advance()
		s.Variable = &ast.Identifier{Token: t, Name: t.Value}
	}
	p.finish(&s.Base, kw.Start)
	return s, nil
}

func (p *parser) dimStatement(kw token.Token) (ast.Statement, error) {
	s := &ast.DimStatement{}
	s.Keyword = kw
	for {
		t, err := p.expect(token.Identifier, "an array name after DIM")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LParen, "'(' after array name"); err != nil {
			return nil, err
		}
		decl := &ast.DimDecl{Name: &ast.Identifier{Token: t, Name: t.Value}}
		for {
			e, err := p.expression()
			if err != nil {
				return nil, err
			}
			decl.Dimensions = append(decl.Dimensions, e)
			if p.cur().Kind != token.Comma {
				break
			}
			p.advance()
		}
		rp, err := p.expect(token.RParen, "')' after array dimensions")
		if err != nil {
			return nil, err
		}
		decl.Span = token.Range{Start: t.Start, End: rp.End}
		s.Arrays = append(s.Arrays, decl)
		if p.cur().Kind != token.Comma {
			break
		}
		p.advance()
	}
	p.finish(&s.Base, kw.Start)
	return s, nil
}

func (p *parser) readStatement(kw token.Token) (ast.Statement, error) {
	s := &ast.ReadStatement{}
	s.Keyword = kw
	for {
		target, err := p.assignTarget()
		if err != nil {
			return nil, err
		}
		s.Targets = append(s.Targets, target)
		if p.cur().Kind != token.Comma {
			break
		}
		p.advance()
	}
	p.finish(&s.Base, kw.Start)
	return s, nil
}

func (p *parser) dataStatement(kw token.Token) (ast.Statement, error) {
	s := &ast.DataStatement{}
	s.Keyword = kw
	for !p.atEnd() {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		s.Values = append(s.Values, e)
		if p.cur().Kind != token.Comma {
			break
		}
		p.advance()
	}
	p.finish(&s.Base, kw.Start)
	return s, nil
}

func (p *parser) defFnStatement(kw token.Token) (ast.Statement, error) {
	t, err := p.expect(token.Identifier, "a function name after DEF FN")
	if err != nil {
		return nil, err
	}
	s := &ast.DefFnStatement{Name: &ast.Identifier{Token: t, Name: t.Value}}
	s.Keyword = kw
	if _, err := p.expect(token.LParen, "'(' after function name"); err != nil {
		return nil, err
	}
	for p.cur().Kind != token.RParen {
		pt, err := p.expect(token.Identifier, "a parameter name")
		if err != nil {
			return nil, err
		}
		s.Params = append(s.Params, &ast.Identifier{Token: pt, Name: pt.Value})
		if p.cur().Kind != token.Comma {
			break
		}
		p.advance()
	}
	if _, err := p.expect(token.RParen, "')' after parameters"); err != nil {
		return nil, err
	}
	if err := p.expectOperator("=", "in DEF FN"); err != nil {
		return nil, err
	}
	if s.Body, err = p.expression(); err != nil {
		return nil, err
	}
	p.finish(&s.Base, kw.Start)
	return s, nil
}

func (p *parser) isClauseStart(cmd string) bool {
	t := p.cur()
	switch t.Kind {
	case token.Hash:
		return true
	case token.Keyword:
		return clauseKeywords[t.Value]
	case token.Function:
		return fileCommands[cmd] && (t.Value == "CODE" || t.Value == "SCREEN$")
	}
	return false
}

func (p *parser) commandStatement(kw token.Token) (ast.Statement, error) {
	s := &ast.CommandStatement{}
	s.Keyword = kw
	var clause *ast.Clause
	for !p.atEnd() {
		if p.isClauseStart(kw.Value) {
			s.Clauses = append(s.Clauses, ast.Clause{Keyword: p.advance()})
			clause = &s.Clauses[len(s.Clauses)-1]
			continue
		}
		switch p.cur().Kind {
		case token.Semicolon:
			// A colour or stream clause ends at the next ';'.
			p.advance()
			if clause != nil && !clause.Keyword.IsKeyword("LINE", "TO", "STEP", "DATA") && clause.Keyword.Kind != token.Function {
				clause = nil
			}
			continue
		case token.Comma:
			p.advance()
			continue
		}
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if clause != nil {
			clause.Args = append(clause.Args, e)
		} else {
			s.Args = append(s.Args, e)
		}
	}
	p.finish(&s.Base, kw.Start)
	return s, nil
}
