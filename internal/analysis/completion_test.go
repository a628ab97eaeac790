package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

func labels(items []Completion) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestDetermineContext(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		want   CompletionContextType
		prefix string
	}{
		{"inside string", "10 PRINT \"ab", CompletionContextNone, ""},
		{"inside comment", "10 REM hello", CompletionContextNone, ""},
		{"after REM", "10 REM ", CompletionContextNone, ""},
		{"after line number", "10 PR", CompletionContextStatement, "PR"},
		{"after colon", "10 CLS: BE", CompletionContextStatement, "BE"},
		{"after THEN", "10 IF a THEN ", CompletionContextStatement, ""},
		{"after GOTO", "10 GOTO ", CompletionContextLineNumber, ""},
		{"partial target", "10 GO SUB 1", CompletionContextLineNumber, "1"},
		{"after SAVE LINE", "10 SAVE \"x\" LINE ", CompletionContextLineNumber, ""},
		{"LINE outside SAVE", "10 INPUT LINE ", CompletionContextExpression, ""},
		{"expression", "10 PRINT a$", CompletionContextExpression, "a$"},
		{"closed string", "10 PRINT \"a\";x", CompletionContextExpression, "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Analyze(tt.src, Options{})
			ctx := snap.DetermineContext(end(tt.src))
			assert.Equal(t, tt.want, ctx.Type)
			if tt.want != CompletionContextNone {
				assert.Equal(t, tt.prefix, ctx.Prefix)
			}
		})
	}
}

func TestCompletions_LineNumbers(t *testing.T) {
	src := "10 PRINT\n20 GOTO \n100 STOP\n5 CLS"
	snap := Analyze(src, Options{})

	got := snap.Completions(token.Position{Line: 2, Column: 9})
	assert.Equal(t, []string{"5", "10", "20", "100"}, labels(got))
	assert.Equal(t, "PRINT", got[1].Detail)
	assert.Equal(t, CompletionLine, got[1].Kind)

	src = "10 PRINT\n20 GOTO 1\n100 STOP"
	got = Analyze(src, Options{}).Completions(after(t, src, "GOTO 1", 0))
	assert.Equal(t, []string{"10", "100"}, labels(got))
}

func TestCompletions_Statements(t *testing.T) {
	src := "10 PR"
	assert.Equal(t, []string{"PRINT"}, labels(Analyze(src, Options{}).Completions(end(src))))

	src = "10 PL"
	assert.Equal(t, []string{"PLOT"}, labels(Analyze(src, Options{}).Completions(end(src))))
	assert.Equal(t, []string{"PLAY", "PLOT"},
		labels(Analyze(src, Options{Dialect: token.Dialect128K}).Completions(end(src))))

	got := Analyze("10 BEEP 1,2: BE", Options{}).Completions(token.Position{Line: 1, Column: 16})
	require.Len(t, got, 1)
	assert.Equal(t, "BEEP duration,pitch", got[0].Detail)
}

func TestCompletions_Expression(t *testing.T) {
	src := "10 LET total=1: DIM t$(3)\n20 PRINT to"
	got := Analyze(src, Options{}).Completions(end(src))
	assert.Equal(t, []string{"TO", "TOTAL"}, labels(got))

	src = "10 DIM n(5): DEF FN c(x)=x\n20 PRINT "
	got = Analyze(src, Options{}).Completions(end(src))
	byLabel := map[string]Completion{}
	for _, c := range got {
		byLabel[c.Label] = c
	}
	require.Contains(t, byLabel, "N()")
	assert.Equal(t, "N(", byLabel["N()"].InsertText)
	assert.Equal(t, CompletionArray, byLabel["N()"].Kind)
	require.Contains(t, byLabel, "FN C")
	assert.Equal(t, "FN C(", byLabel["FN C"].InsertText)
	require.Contains(t, byLabel, "CHR$")
	assert.Equal(t, "CHR$ x", byLabel["CHR$"].Detail)
	assert.Contains(t, byLabel, "AND")
	assert.Equal(t, labels(got), sortedCopy(labels(got)))
}

func TestCompletions_None(t *testing.T) {
	src := "10 PRINT \"abc"
	assert.Empty(t, Analyze(src, Options{}).Completions(end(src)))
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
