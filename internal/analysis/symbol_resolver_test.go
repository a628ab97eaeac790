package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

const navProgram = "10 LET a=1\n" +
	"20 PRINT a: GOSUB 100\n" +
	"30 LET a=a+1: GOTO 20\n" +
	"100 RETURN"

func starts(rs []token.Range) []token.Position {
	out := make([]token.Position, len(rs))
	for i, r := range rs {
		out[i] = token.Position{Line: r.Start.Line, Column: r.Start.Column}
	}
	return out
}

func TestResolve(t *testing.T) {
	snap := Analyze(navProgram, Options{})

	sym, err := snap.Resolve(posAt(t, navProgram, "a", 1))
	require.NoError(t, err)
	assert.Equal(t, SymbolVariable, sym.Kind)
	assert.Equal(t, "A", sym.Variable.Key.BaseName)

	sym, err = snap.Resolve(posAt(t, navProgram, "100", 0))
	require.NoError(t, err)
	assert.Equal(t, SymbolLine, sym.Kind)
	assert.Equal(t, 100, sym.Line)

	sym, err = snap.Resolve(posAt(t, navProgram, "30", 0))
	require.NoError(t, err)
	assert.Equal(t, 30, sym.Line)

	_, err = snap.Resolve(posAt(t, navProgram, "PRINT", 0))
	assert.ErrorIs(t, err, ErrNotApplicable)

	// A number that is not a jump target.
	_, err = snap.Resolve(after(t, navProgram, "a+", 0))
	assert.ErrorIs(t, err, ErrNotApplicable)
}

func TestDefinition(t *testing.T) {
	snap := Analyze(navProgram, Options{})

	got, err := snap.Definition(posAt(t, navProgram, "a", 2))
	require.NoError(t, err)
	assert.Equal(t, []token.Position{{Line: 1, Column: 8}}, starts(got))

	got, err = snap.Definition(after(t, navProgram, "GOTO ", 0))
	require.NoError(t, err)
	assert.Equal(t, []token.Position{{Line: 2, Column: 1}}, starts(got))

	_, err = snap.Definition(posAt(t, navProgram, "LET", 0))
	assert.ErrorIs(t, err, ErrNotApplicable)
}

func TestDefinition_MissingLineAndDuplicates(t *testing.T) {
	src := "10 GOTO 500\n20 PRINT\n20 STOP\n30 GOTO 20"
	snap := Analyze(src, Options{})

	_, err := snap.Definition(after(t, src, "GOTO ", 0))
	assert.ErrorIs(t, err, ErrNotApplicable)

	got, err := snap.Definition(after(t, src, "GOTO ", 1))
	require.NoError(t, err)
	assert.Equal(t, []token.Position{{Line: 2, Column: 1}, {Line: 3, Column: 1}}, starts(got))
}

func TestDefinition_Function(t *testing.T) {
	src := "10 DEF FN f(x)=x*2\n20 PRINT FN f(3)"
	snap := Analyze(src, Options{})

	got, err := snap.Definition(posAt(t, src, "f(3", 0))
	require.NoError(t, err)
	assert.Equal(t, []token.Position{{Line: 1, Column: 11}}, starts(got))

	refs, err := snap.References(posAt(t, src, "f(x", 0), true)
	require.NoError(t, err)
	assert.Len(t, refs, 2)

	refs, err = snap.References(posAt(t, src, "f(x", 0), false)
	require.NoError(t, err)
	assert.Equal(t, []token.Position{{Line: 2, Column: 13}}, starts(refs))
}

func TestReferences_Variable(t *testing.T) {
	snap := Analyze(navProgram, Options{})

	got, err := snap.References(posAt(t, navProgram, "a", 1), true)
	require.NoError(t, err)
	assert.Equal(t, []token.Position{
		{Line: 1, Column: 8},
		{Line: 2, Column: 10},
		{Line: 3, Column: 8},
		{Line: 3, Column: 10},
	}, starts(got))

	got, err = snap.References(posAt(t, navProgram, "a", 1), false)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestReferences_Line(t *testing.T) {
	snap := Analyze(navProgram, Options{})

	got, err := snap.References(posAt(t, navProgram, "20", 0), true)
	require.NoError(t, err)
	assert.Equal(t, []token.Position{{Line: 2, Column: 1}, {Line: 3, Column: 20}}, starts(got))

	got, err = snap.References(posAt(t, navProgram, "20", 0), false)
	require.NoError(t, err)
	assert.Equal(t, []token.Position{{Line: 3, Column: 20}}, starts(got))
}

func TestReferences_Completeness(t *testing.T) {
	src := "10 INPUT n\n" +
		"20 FOR i=1 TO n\n" +
		"30 PRINT n*i\n" +
		"40 NEXT i\n" +
		"50 IF n>10 THEN LET n=10\n" +
		"60 DIM n(3): LET n(1)=n"
	snap := Analyze(src, Options{})

	got, err := snap.References(posAt(t, src, "n", 0), true)
	require.NoError(t, err)
	// The array n() is a different variable.
	assert.Equal(t, []token.Position{
		{Line: 1, Column: 10},
		{Line: 2, Column: 15},
		{Line: 3, Column: 10},
		{Line: 5, Column: 7},
		{Line: 5, Column: 21},
		{Line: 6, Column: 23},
	}, starts(got))
}
