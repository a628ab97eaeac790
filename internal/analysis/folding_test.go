package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldingRanges(t *testing.T) {
	src := "10 REM one\n" +
		"20 REM two\n" +
		"30 FOR i=1 TO 3\n" +
		"40 FOR j=1 TO 2\n" +
		"50 NEXT j\n" +
		"60 NEXT i\n" +
		"70 GOSUB 200\n" +
		"80 STOP\n" +
		"200 PRINT\n" +
		"210 RETURN\n" +
		"300 DATA 1\n" +
		"310 DATA 2\n" +
		"320 DATA 3"

	got := Analyze(src, Options{}).FoldingRanges()
	assert.Equal(t, []FoldingRange{
		{StartLine: 1, EndLine: 2, Kind: FoldingComment},
		{StartLine: 3, EndLine: 6, Kind: FoldingRegion},
		{StartLine: 4, EndLine: 5, Kind: FoldingRegion},
		{StartLine: 9, EndLine: 10, Kind: FoldingRegion},
		{StartLine: 11, EndLine: 13, Kind: FoldingRegion},
	}, got)
}

func TestFoldingRanges_Unbalanced(t *testing.T) {
	src := "10 FOR i=1 TO 3\n" +
		"20 NEXT j\n" +
		"30 DATA 1\n" +
		"40 PRINT\n" +
		"50 DATA 2\n" +
		"60 GOSUB 70\n" +
		"70 PRINT\n" +
		"80 PRINT"

	got := Analyze(src, Options{}).FoldingRanges()
	// No NEXT i, single DATA lines, and a subroutine without RETURN that
	// folds to the end of the program.
	require.Len(t, got, 1)
	assert.Equal(t, FoldingRange{StartLine: 7, EndLine: 8, Kind: FoldingRegion}, got[0])
}

func TestOutline(t *testing.T) {
	src := "10 DEF FN f(x)=x*2\n" +
		"20 DIM n(5): DIM n$(3,4)\n" +
		"30 LET a=1: GOSUB 100: PRINT b\n" +
		"100 RETURN"
	got := Analyze(src, Options{}).Outline()

	var names []string
	for _, s := range got {
		names = append(names, s.Name)
	}
	// b is never assigned, so it is not listed.
	assert.Equal(t, []string{"GOSUB 100", "FN F", "N()", "N$()", "A"}, names)

	assert.Equal(t, OutlineSubroutine, got[0].Kind)
	assert.Equal(t, "lines 100-100", got[0].Detail)
	assert.Equal(t, OutlineFunction, got[1].Kind)
	assert.Equal(t, OutlineArray, got[3].Kind)
	assert.Equal(t, "string array, 2 dimension(s)", got[3].Detail)
	assert.Equal(t, 2, got[3].SelectionRange.Start.Line)
	assert.Equal(t, 18, got[3].SelectionRange.Start.Column)
	assert.Equal(t, OutlineVariable, got[4].Kind)
}
