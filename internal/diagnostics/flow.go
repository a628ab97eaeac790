package diagnostics

import (
	"fmt"

	"github.com/stefdev49/vs-zx-sub002/internal/ast"
	"github.com/stefdev49/vs-zx-sub002/internal/index"
)

// checkJumpTargets flags literal targets that cannot be line numbers. A
// target that names a line which does not exist is legal and not reported.
// RUN, RESTORE, LIST and SAVE LINE also accept 0.
func checkJumpTargets(ctx *Context) []Finding {
	var out []Finding
	for _, j := range ctx.Index.Jumps {
		low := index.MinLineNumber
		if j.Kind != index.JumpGoto && j.Kind != index.JumpGosub {
			low = 0
		}
		if j.Target >= low && j.Target <= index.MaxLineNumber {
			continue
		}
		out = append(out, finding(RuleJumpTargetRange, Error, j.TargetRange(),
			fmt.Sprintf("%s target %s is out of range (%d-%d)", j.Kind, j.TargetToken.Text, low, index.MaxLineNumber)))
	}
	return out
}

func checkComputedJumps(ctx *Context) []Finding {
	var out []Finding
	for _, j := range ctx.Index.ComputedJumps {
		out = append(out, finding(RuleComputedJump, Hint, j.Expr.Range(),
			fmt.Sprintf("Computed %s target; renumbering will not update it", j.Kind)))
	}
	return out
}

// checkForNext is existential: a FOR needs some NEXT for the same variable
// somewhere in the program and vice versa. Nesting is not checked.
func checkForNext(ctx *Context) []Finding {
	fors := map[string]bool{}
	nexts := map[string]bool{}
	for _, m := range ctx.Index.Fors {
		fors[m.Name] = true
	}
	for _, m := range ctx.Index.Nexts {
		nexts[m.Name] = true
	}

	var out []Finding
	for _, m := range ctx.Index.Fors {
		if !nexts[m.Name] {
			out = append(out, finding(RuleForNextBalance, Warning, m.Statement.Range(),
				fmt.Sprintf("FOR %s has no matching NEXT %s", m.Name, m.Name)))
		}
	}
	for _, m := range ctx.Index.Nexts {
		if m.Name != "" && !fors[m.Name] {
			out = append(out, finding(RuleForNextBalance, Error, m.Statement.Range(),
				fmt.Sprintf("NEXT %s has no matching FOR %s", m.Name, m.Name)))
		}
	}
	return out
}

func checkGosubReturn(ctx *Context) []Finding {
	ix := ctx.Index
	var out []Finding
	if len(ix.Returns) == 0 {
		for _, m := range ix.Gosubs {
			out = append(out, finding(RuleGosubReturnBalance, Warning, m.Statement.Range(),
				"GOSUB without any RETURN in the program"))
		}
	}
	if len(ix.Gosubs) == 0 {
		for _, m := range ix.Returns {
			out = append(out, finding(RuleGosubReturnBalance, Error, m.Statement.Range(),
				"RETURN without any GOSUB in the program"))
		}
	}
	return out
}

func checkIfThen(ctx *Context) []Finding {
	var out []Finding
	ctx.Program.Statements(func(_ *ast.Line, stmt ast.Statement) {
		s, ok := stmt.(*ast.IfStatement)
		if !ok || s.HasThen {
			return
		}
		r := s.Keyword.Range()
		if s.Condition != nil {
			r.End = s.Condition.Range().End
		}
		out = append(out, finding(RuleIfThen, Error, r, "IF requires THEN"))
	})
	return out
}
