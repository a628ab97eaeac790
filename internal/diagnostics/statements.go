package diagnostics

import (
	"fmt"
	"math"
	"strings"

	"github.com/stefdev49/vs-zx-sub002/internal/ast"
	"github.com/stefdev49/vs-zx-sub002/internal/lexer"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// lexProblems turns the lexer's problems of one kind into findings. The
// rule ID is the problem kind's name.
func lexProblems(kind lexer.ProblemKind) func(*Context) []Finding {
	return func(ctx *Context) []Finding {
		var out []Finding
		for _, p := range ctx.Lex.Problems {
			if p.Kind == kind {
				out = append(out, finding(kind.String(), Error, p.Range, p.Message))
			}
		}
		return out
	}
}

// checkSyntax reports statements the parser could not match. A statement
// holding an invalid character is skipped: invalid-character covers it.
func checkSyntax(ctx *Context) []Finding {
	var out []Finding
	ctx.Program.Statements(func(_ *ast.Line, stmt ast.Statement) {
		raw, ok := stmt.(*ast.RawStatement)
		if !ok {
			return
		}
		for _, t := range raw.Tokens {
			if t.Kind == token.Invalid {
				return
			}
		}
		out = append(out, finding(RuleSyntax, Error, raw.ErrorRange, raw.Message))
	})
	return out
}

func checkDialectKeywords(ctx *Context) []Finding {
	d := ctx.Options.Dialect
	var out []Finding
	for _, t := range ctx.Lex.Tokens {
		if t.Kind != token.Keyword || token.KeywordAvailable(t.Value, d) {
			continue
		}
		var names []string
		for _, other := range token.KeywordDialects(t.Value) {
			names = append(names, other.String())
		}
		out = append(out, finding(RuleDialectKeyword, Error, t.Range(),
			fmt.Sprintf("%s is not available in %s BASIC (needs %s)", t.Value, d, strings.Join(names, " or "))))
	}
	return out
}

func checkImplicitLet(ctx *Context) []Finding {
	var out []Finding
	ctx.Program.Statements(func(_ *ast.Line, stmt ast.Statement) {
		s, ok := stmt.(*ast.LetStatement)
		if !ok || !s.Implicit {
			return
		}
		out = append(out, finding(RuleImplicitLet, ctx.strictly(Warning), s.Range(),
			fmt.Sprintf("Assignment to %s without LET", s.Target)))
	})
	return out
}

// colorValues lists the literal values each colour attribute accepts.
// Only INK and PAPER take 8 (no change) and 9 (contrast).
var colorValues = map[string][]int{
	"INK":     {0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	"PAPER":   {0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	"BORDER":  {0, 1, 2, 3, 4, 5, 6, 7},
	"FLASH":   {0, 1},
	"BRIGHT":  {0, 1},
	"INVERSE": {0, 1},
	"OVER":    {0, 1},
}

func checkColorRange(ctx *Context) []Finding {
	var out []Finding
	check := func(kw token.Token, args []ast.Expression) {
		allowed, ok := colorValues[kw.Value]
		if !ok || len(args) == 0 {
			return
		}
		v, ok := literal(args[0])
		if !ok || accepts(allowed, v) {
			return
		}
		out = append(out, finding(RuleColorRange, Error, args[0].Range(),
			fmt.Sprintf("%s value %s is out of range (%s)", kw.Value, args[0], describe(allowed))))
	}
	items := func(items []ast.PrintItem) {
		for _, it := range items {
			if it.Modifier != nil {
				check(*it.Modifier, it.Args)
			}
		}
	}
	ctx.Program.Statements(func(_ *ast.Line, stmt ast.Statement) {
		switch s := stmt.(type) {
		case *ast.CommandStatement:
			check(s.Keyword, s.Args)
			for _, c := range s.Clauses {
				check(c.Keyword, c.Args)
			}
		case *ast.PrintStatement:
			items(s.Items)
		case *ast.InputStatement:
			items(s.Items)
		}
	})
	return out
}

// literal evaluates a constant number, allowing parentheses and a sign.
func literal(e ast.Expression) (float64, bool) {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		return n.Value, true
	case *ast.ParenExpression:
		return literal(n.Inner)
	case *ast.UnaryExpression:
		v, ok := literal(n.Operand)
		if !ok {
			return 0, false
		}
		switch n.Operator.Value {
		case "-":
			return -v, true
		case "+":
			return v, true
		}
	}
	return 0, false
}

func accepts(allowed []int, v float64) bool {
	if v != math.Trunc(v) {
		return false
	}
	for _, a := range allowed {
		if float64(a) == v {
			return true
		}
	}
	return false
}

func describe(allowed []int) string {
	return fmt.Sprintf("%d-%d", allowed[0], allowed[len(allowed)-1])
}
