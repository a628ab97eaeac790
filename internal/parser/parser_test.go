package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefdev49/vs-zx-sub002/internal/ast"
	"github.com/stefdev49/vs-zx-sub002/internal/lexer"
)

func parse(src string) *ast.Program {
	return Parse(src, lexer.Tokenize(src))
}

func statementsOf(t *testing.T, src string) []ast.Statement {
	t.Helper()
	prog := parse(src)
	require.Len(t, prog.Lines, 1)
	return prog.Lines[0].Statements
}

func TestParse_ExpressionPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1+2*3", "(1 + (2 * 3))"},
		{"(1+2)*3", "((1 + 2) * 3)"},
		{"-2^2", "(-(2 ^ 2))"},
		{"2^3^2", "((2 ^ 3) ^ 2)"},
		{"2^-1", "(2 ^ (-1))"},
		{"-a*b", "((-A) * B)"},
		{"a-b-c", "((A - B) - C)"},
		{"NOT a=1 AND b", "((NOT (A = 1)) AND B)"},
		{"a OR b AND c", "(A OR (B AND C))"},
		{"a<>b OR c<=d", "((A <> B) OR (C <= D))"},
		{"SIN x+1", "(SIN X + 1)"},
		{"ABS -5", "ABS (-5)"},
		{"LEN (a$+b$)", "LEN ((A$ + B$))"},
		{"a$(2 TO 5)", "A$(2 TO 5)"},
		{"a$( TO 3)", "A$(TO 3)"},
		{"b(1,2)+c", "(B(1,2) + C)"},
		{"FN f(1,2)", "FN F(1,2)"},
		{"ATTR (1,2)", "ATTR(1,2)"},
		{"RND*10", "(RND * 10)"},
		{"CODE INKEY$", "CODE INKEY$"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			stmts := statementsOf(t, "10 LET z="+tt.src)
			require.Len(t, stmts, 1)
			let, ok := stmts[0].(*ast.LetStatement)
			require.True(t, ok, "got %T", stmts[0])
			assert.Equal(t, tt.want, let.Value.String())
		})
	}
}

func TestParse_For(t *testing.T) {
	stmts := statementsOf(t, "10 FOR i=1 TO 10 STEP 2: NEXT i")
	require.Len(t, stmts, 2)

	f, ok := stmts[0].(*ast.ForStatement)
	require.True(t, ok)
	assert.Equal(t, "I", f.Variable.Name)
	assert.Equal(t, "1", f.Start.String())
	assert.Equal(t, "10", f.End.String())
	require.NotNil(t, f.Step)
	assert.Equal(t, "2", f.Step.String())

	n, ok := stmts[1].(*ast.NextStatement)
	require.True(t, ok)
	assert.Equal(t, "I", n.Variable.Name)
}

func TestParse_If(t *testing.T) {
	stmts := statementsOf(t, "10 IF a=1 THEN PRINT 1: GO TO 20")
	require.Len(t, stmts, 1)
	ifs, ok := stmts[0].(*ast.IfStatement)
	require.True(t, ok)
	assert.True(t, ifs.HasThen)
	assert.Equal(t, "(A = 1)", ifs.Condition.String())
	require.Len(t, ifs.Consequence, 2)
	assert.IsType(t, &ast.PrintStatement{}, ifs.Consequence[0])
	assert.IsType(t, &ast.GotoStatement{}, ifs.Consequence[1])

	stmts = statementsOf(t, "20 IF a=1 GOTO 10")
	ifs = stmts[0].(*ast.IfStatement)
	assert.False(t, ifs.HasThen)
	require.Len(t, ifs.Consequence, 1)
}

func TestParse_ImplicitLet(t *testing.T) {
	stmts := statementsOf(t, "10 a$(1)=\"x\"")
	let, ok := stmts[0].(*ast.LetStatement)
	require.True(t, ok)
	assert.True(t, let.Implicit)
	assert.IsType(t, &ast.IndexExpression{}, let.Target)
	assert.Equal(t, 4, let.Range().Start.Column)
}

func TestParse_Dim(t *testing.T) {
	stmts := statementsOf(t, "10 DIM n(12): DIM n$(12,9),m(2,3,4)")
	require.Len(t, stmts, 2)
	d := stmts[1].(*ast.DimStatement)
	require.Len(t, d.Arrays, 2)
	assert.Equal(t, "N$", d.Arrays[0].Name.Name)
	assert.Len(t, d.Arrays[0].Dimensions, 2)
	assert.Len(t, d.Arrays[1].Dimensions, 3)
}

func TestParse_InputTargets(t *testing.T) {
	stmts := statementsOf(t, "10 INPUT \"Name? \";n$;(\"Age\");a")
	in := stmts[0].(*ast.InputStatement)
	require.Len(t, in.Targets, 2)
	assert.Equal(t, "N$", in.Targets[0].String())
	assert.Equal(t, "A", in.Targets[1].String())

	stmts = statementsOf(t, "20 INPUT LINE a$")
	in = stmts[0].(*ast.InputStatement)
	assert.True(t, in.Line)
	require.Len(t, in.Targets, 1)
}

func TestParse_PrintItems(t *testing.T) {
	stmts := statementsOf(t, "10 PRINT AT 1,2;\"hi\";TAB 5;x,y'")
	p := stmts[0].(*ast.PrintStatement)
	require.Len(t, p.Items, 5)
	require.NotNil(t, p.Items[0].Modifier)
	assert.Equal(t, "AT", p.Items[0].Modifier.Value)
	assert.Len(t, p.Items[0].Args, 2)
	assert.Equal(t, "TAB", p.Items[2].Modifier.Value)
	assert.Equal(t, "'", p.Items[4].Separator.Value)
}

func TestParse_Commands(t *testing.T) {
	stmts := statementsOf(t, "10 SAVE \"prog\" LINE 10: BORDER 1: CLS: SAVE \"s\" CODE 16384,6912: PLOT INK 2;10,20")
	require.Len(t, stmts, 5)

	save := stmts[0].(*ast.CommandStatement)
	assert.Equal(t, "SAVE", save.Name())
	require.Len(t, save.Args, 1)
	line, ok := save.Clause("LINE")
	require.True(t, ok)
	require.Len(t, line.Args, 1)
	assert.Equal(t, "10", line.Args[0].String())

	border := stmts[1].(*ast.CommandStatement)
	assert.Equal(t, "BORDER", border.Name())
	assert.Len(t, border.Args, 1)

	cls := stmts[2].(*ast.CommandStatement)
	assert.Empty(t, cls.Args)

	code, ok := stmts[3].(*ast.CommandStatement).Clause("CODE")
	require.True(t, ok)
	assert.Len(t, code.Args, 2)

	plot := stmts[4].(*ast.CommandStatement)
	assert.Len(t, plot.Args, 2)
	ink, ok := plot.Clause("INK")
	require.True(t, ok)
	assert.Len(t, ink.Args, 1)
}

func TestParse_DefFn(t *testing.T) {
	stmts := statementsOf(t, "10 DEF FN s(x,y)=x*x+y")
	d, ok := stmts[0].(*ast.DefFnStatement)
	require.True(t, ok)
	assert.Equal(t, "S", d.Name.Name)
	require.Len(t, d.Params, 2)
	assert.Equal(t, "((X * X) + Y)", d.Body.String())
}

func TestParse_RemSwallowsLine(t *testing.T) {
	stmts := statementsOf(t, "10 PRINT: REM hello: GOTO 10")
	require.Len(t, stmts, 2)
	rem := stmts[1].(*ast.RemStatement)
	require.NotNil(t, rem.Comment)
	assert.Equal(t, "hello: GOTO 10", rem.Comment.Value)
}

func TestParse_RecoversFromErrors(t *testing.T) {
	stmts := statementsOf(t, "10 FOR =1 TO 5: PRINT \"ok\"")
	require.Len(t, stmts, 2)
	raw, ok := stmts[0].(*ast.RawStatement)
	require.True(t, ok)
	assert.Contains(t, raw.Message, "loop variable")
	assert.Equal(t, "FOR", raw.Keyword.Value)
	assert.IsType(t, &ast.PrintStatement{}, stmts[1])

	stmts = statementsOf(t, "20 PRINT 1 2")
	raw, ok = stmts[0].(*ast.RawStatement)
	require.True(t, ok)
	assert.Contains(t, raw.Message, "separator between items")
	assert.Equal(t, 12, raw.ErrorRange.Start.Column)

	stmts = statementsOf(t, "30 THEN")
	assert.IsType(t, &ast.RawStatement{}, stmts[0])

	stmts = statementsOf(t, "40 IF (: PRINT")
	require.Len(t, stmts, 1, "a broken IF swallows its line")
	assert.IsType(t, &ast.RawStatement{}, stmts[0])
}

func TestParse_Lines(t *testing.T) {
	prog := parse("10 PRINT\n\n   \nPRINT 2\r\n20 STOP::STOP\n")
	require.Len(t, prog.Lines, 3)

	assert.Equal(t, "10", prog.Lines[0].Number.Value)
	assert.Equal(t, 1, prog.Lines[0].SourceLine)

	assert.Nil(t, prog.Lines[1].Number)
	assert.Equal(t, 4, prog.Lines[1].SourceLine)
	assert.Equal(t, "PRINT 2", prog.Lines[1].Text)
	require.Len(t, prog.Lines[1].Statements, 1)

	assert.Equal(t, "20", prog.Lines[2].Number.Value)
	assert.Len(t, prog.Lines[2].Statements, 2)
}

func TestParseStatement_Cursor(t *testing.T) {
	toks := lexer.Tokenize("10 CLS: BEEP 1,2").Tokens
	toks = toks[:len(toks)-1] // drop EOF

	stmt, next := ParseStatement(toks, 1)
	assert.IsType(t, &ast.CommandStatement{}, stmt)
	assert.Equal(t, 3, next)

	stmt, next = ParseStatement(toks, next)
	assert.Equal(t, "BEEP 1,2", stmt.String())
	assert.Equal(t, len(toks), next)
}
