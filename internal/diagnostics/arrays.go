package diagnostics

import (
	"fmt"
	"strings"

	"github.com/stefdev49/vs-zx-sub002/internal/ast"
	"github.com/stefdev49/vs-zx-sub002/internal/index"
	"github.com/stefdev49/vs-zx-sub002/internal/lexer"
)

// MaxDimensions is the largest number of dimensions DIM accepts.
const MaxDimensions = 3

// checkArrayDimensions compares every subscripted use with the DIM of the
// same (name, kind). A string array also accepts one subscript fewer than
// declared, which selects a whole string.
func checkArrayDimensions(ctx *Context) []Finding {
	var out []Finding
	for _, d := range ctx.Index.Dims {
		if n := len(d.Decl.Dimensions); n > MaxDimensions {
			out = append(out, finding(RuleArrayDimensions, Error, d.Decl.Span,
				fmt.Sprintf("Array %s declared with %d dimensions; at most %d are allowed", d.Key.DisplayName(), n, MaxDimensions)))
		}
	}
	for _, u := range ctx.Index.ArrayUses {
		v, ok := ctx.Index.Variable(u.Key)
		if !ok || !v.Declared() {
			continue
		}
		if u.Subscripts == v.Dimensions {
			continue
		}
		if u.Key.Kind == index.StringArray && u.Subscripts == v.Dimensions-1 {
			continue
		}
		out = append(out, finding(RuleArrayDimensions, Error, u.Range,
			fmt.Sprintf("Array %s declared with %d dimension(s) but used with %d", u.Key.DisplayName(), v.Dimensions, u.Subscripts)))
	}
	return out
}

func checkUndeclaredArrays(ctx *Context) []Finding {
	var out []Finding
	for _, u := range ctx.Index.ArrayUses {
		v, ok := ctx.Index.Variable(u.Key)
		if ok && v.Declared() {
			continue
		}
		out = append(out, finding(RuleUndeclaredArray, Warning, u.Range,
			fmt.Sprintf("Array %s is used but never DIMensioned", u.Key.DisplayName())))
	}
	return out
}

// checkNameLength reports names that must be a single letter. The lexer
// already covers every $ and % name; this adds loop variables and
// numeric arrays, whose rule depends on context.
func checkNameLength(ctx *Context) []Finding {
	out := lexProblems(lexer.NameLength)(ctx)

	single := func(id *ast.Identifier, what string) {
		if id == nil || len(id.Name) <= 1 || strings.ContainsAny(id.Name, "$%") {
			return
		}
		out = append(out, finding(RuleNameLength, Error, id.Range(),
			fmt.Sprintf("%s name '%s' must be 1 character", what, id.Name)))
	}
	ctx.Program.Statements(func(_ *ast.Line, stmt ast.Statement) {
		switch s := stmt.(type) {
		case *ast.ForStatement:
			single(s.Variable, "FOR loop variable")
		case *ast.NextStatement:
			single(s.Variable, "NEXT loop variable")
		case *ast.DimStatement:
			for _, d := range s.Arrays {
				single(d.Name, "Array")
			}
		}
	})
	return out
}

func checkTypeMismatch(ctx *Context) []Finding {
	var out []Finding
	for _, c := range ctx.Index.Conflicts {
		out = append(out, finding(RuleTypeMismatch, Error, c.Range, c.Message))
	}
	return out
}
