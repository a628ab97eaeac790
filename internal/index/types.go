package index

import (
	"github.com/stefdev49/vs-zx-sub002/internal/ast"
	"github.com/stefdev49/vs-zx-sub002/internal/builtins"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

type valueKind int

const (
	kindUnknown valueKind = iota
	kindNumeric
	kindString
)

func (k valueKind) String() string {
	switch k {
	case kindNumeric:
		return "number"
	case kindString:
		return "string"
	}
	return "value"
}

func fromBuiltin(k builtins.ValueKind) valueKind {
	switch k {
	case builtins.Numeric:
		return kindNumeric
	case builtins.String:
		return kindString
	}
	return kindUnknown
}

// kindOf infers the kind of an assignment target from its suffix.
func kindOf(e ast.Expression) valueKind {
	switch t := e.(type) {
	case *ast.Identifier:
		if t.IsString() {
			return kindString
		}
		return kindNumeric
	case *ast.IndexExpression:
		if t.Name.IsString() {
			return kindString
		}
		return kindNumeric
	}
	return kindUnknown
}

// expr records the variables used by e and returns its kind. Operator and
// argument mismatches are recorded as conflicts; the result is then
// kindUnknown so that one mistake is reported once.
func (b *builder) expr(e ast.Expression) valueKind {
	switch n := e.(type) {
	case nil:
		return kindUnknown
	case *ast.NumberLiteral:
		return kindNumeric
	case *ast.StringLiteral:
		return kindString
	case *ast.Identifier:
		if b.params[n.Name] {
			return kindOf(n)
		}
		b.occurrence(b.scalarKey(n), n.Range(), Use)
		return kindOf(n)
	case *ast.IndexExpression:
		b.index(n, Use)
		return kindOf(n)
	case *ast.SliceRange:
		for _, part := range []ast.Expression{n.From, n.To} {
			if part != nil && b.expr(part) == kindString {
				b.conflict(part.Range(), "Slice bounds must be numeric")
			}
		}
		return kindNumeric
	case *ast.ParenExpression:
		return b.expr(n.Inner)
	case *ast.UnaryExpression:
		if b.expr(n.Operand) == kindString {
			b.conflict(n.Range(), "Operator %s needs a numeric operand", n.Operator.Value)
			return kindUnknown
		}
		return kindNumeric
	case *ast.BinaryExpression:
		return b.binary(n)
	case *ast.CallExpression:
		return b.call(n)
	case *ast.FnCall:
		b.fnCall(n)
		for _, a := range n.Args {
			b.expr(a)
		}
		if n.Name.IsString() {
			return kindString
		}
		return kindNumeric
	}
	return kindUnknown
}

func (b *builder) binary(n *ast.BinaryExpression) valueKind {
	left := b.expr(n.Left)
	right := b.expr(n.Right)
	if left == kindUnknown || right == kindUnknown {
		return resultOf(n.Op(), left, right)
	}
	op := n.Op()
	switch op {
	case "+":
		if left != right {
			b.conflict(n.Range(), "Cannot add a %s and a %s", left, right)
			return kindUnknown
		}
		return left
	case "=", "<", ">", "<=", ">=", "<>":
		if left != right {
			b.conflict(n.Range(), "Cannot compare a %s with a %s", left, right)
			return kindUnknown
		}
		return kindNumeric
	case "AND":
		// a$ AND n is a string; n AND a$ is not allowed.
		if right == kindString {
			b.conflict(n.Right.Range(), "The right operand of AND must be numeric")
			return kindUnknown
		}
		return left
	default:
		if left == kindString || right == kindString {
			b.conflict(n.Operator.Range(), "Operator %s needs numeric operands", op)
			return kindUnknown
		}
		return kindNumeric
	}
}

// resultOf gives the kind of an operation whose operand kinds are only
// partially known.
func resultOf(op string, left, right valueKind) valueKind {
	switch op {
	case "+":
		if left != kindUnknown {
			return left
		}
		return right
	case "AND":
		return left
	}
	return kindNumeric
}

func (b *builder) call(n *ast.CallExpression) valueKind {
	sig := builtins.GetBuiltinSignature(n.Function.Value)
	kinds := make([]valueKind, len(n.Args))
	for i, a := range n.Args {
		kinds[i] = b.expr(a)
	}
	if sig == nil {
		return kindUnknown
	}
	if len(sig.Parameters) > 0 && len(n.Args) != len(sig.Parameters) && !isBin(n) {
		b.conflict(n.Range(), "%s takes %d argument(s), got %d", sig.Name, len(sig.Parameters), len(n.Args))
	}
	for i, p := range sig.Parameters {
		if i >= len(kinds) {
			break
		}
		want := fromBuiltin(p.Type)
		if want != kindUnknown && kinds[i] != kindUnknown && kinds[i] != want {
			b.conflict(n.Args[i].Range(), "%s expects a %s argument, got a %s", sig.Name, want, kinds[i])
		}
	}
	return fromBuiltin(sig.ReturnType)
}

func isBin(n *ast.CallExpression) bool {
	return n.Function.Value == "BIN"
}

// IsNumericLiteral reports whether e is a plain number and returns it.
func IsNumericLiteral(e ast.Expression) (float64, token.Range, bool) {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		return n.Value, n.Range(), true
	case *ast.ParenExpression:
		return IsNumericLiteral(n.Inner)
	}
	return 0, token.Range{}, false
}
