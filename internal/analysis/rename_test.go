package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTexts(edits []TextEdit) []string {
	out := make([]string, len(edits))
	for i, e := range edits {
		out[i] = e.NewText
	}
	return out
}

func TestRename_Variable(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		needle  string
		newName string
		want    []string
	}{
		{"string keeps its suffix", "10 LET a$=\"x\"\n20 PRINT a$", "a$", "b", []string{"b$", "b$"}},
		{"suffix may be typed", "10 LET a$=\"x\"\n20 PRINT a$", "a$", "c$", []string{"c$", "c$"}},
		{"numeric names may be long", "10 LET total=1\n20 PRINT total", "total", "sum", []string{"sum", "sum"}},
		{"case change of the same name", "10 LET a=1\n20 PRINT a", "a", "A", []string{"A", "A"}},
		{"loop variable", "10 FOR i=1 TO 2\n20 NEXT i", "i", "j", []string{"j", "j"}},
		{"array", "10 DIM m(3)\n20 LET m(1)=2", "m", "k", []string{"k", "k"}},
		{"string array and slice", "10 DIM s$(2,5)\n20 PRINT s$(1,2 TO 3)", "s$", "t", []string{"t$", "t$"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Analyze(tt.src, Options{})
			edits, err := snap.Rename(posAt(t, tt.src, tt.needle, 0), tt.newName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, newTexts(edits))
		})
	}
}

func TestRename_VariableErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		needle  string
		newName string
	}{
		{"numeric cannot gain $", "10 LET a=1", "a", "b$"},
		{"string must be one letter", "10 LET a$=\"\"", "a$", "ab"},
		{"loop variable must be one letter", "10 FOR i=1 TO 2: NEXT i", "i", "jj"},
		{"array must be one letter", "10 DIM m(3)", "m", "mm"},
		{"reserved word", "10 LET a=1", "a", "print"},
		{"reserved function", "10 LET a$=\"\"", "a$", "chr$"},
		{"must start with a letter", "10 LET a=1", "a", "1a"},
		{"no punctuation", "10 LET a=1", "a", "a_b"},
		{"empty", "10 LET a=1", "a", " "},
		{"collision", "10 LET a=1: LET b=2", "a", "b"},
		{"collision with loop variable", "10 LET a=1: FOR b=1 TO 2: NEXT b", "a", "B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Analyze(tt.src, Options{})
			_, err := snap.Rename(posAt(t, tt.src, tt.needle, 0), tt.newName)
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

func TestRename_KindsDoNotCollide(t *testing.T) {
	src := "10 LET a=1: LET b$=\"\""
	snap := Analyze(src, Options{})
	edits, err := snap.Rename(posAt(t, src, "a", 0), "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, newTexts(edits))
}

func TestRename_Function(t *testing.T) {
	src := "10 DEF FN f(x)=x*2\n20 PRINT FN f(1)+FN f(2)"
	snap := Analyze(src, Options{})

	edits, err := snap.Rename(posAt(t, src, "f(1", 0), "g")
	require.NoError(t, err)
	assert.Equal(t, []string{"g", "g", "g"}, newTexts(edits))

	_, err = snap.Rename(posAt(t, src, "f(1", 0), "gg")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestRename_Line(t *testing.T) {
	src := "10 PRINT\n20 GOTO 10: GOSUB 10\n30 RETURN"
	snap := Analyze(src, Options{})

	edits, err := snap.Rename(posAt(t, src, "10", 0), "15")
	require.NoError(t, err)
	require.Len(t, edits, 3)
	assert.Equal(t, []string{"15", "15", "15"}, newTexts(edits))
	assert.Equal(t, 1, edits[0].Range.Start.Line)
	assert.Equal(t, 2, edits[1].Range.Start.Line)

	// Renaming through a jump target works the same way.
	edits, err = snap.Rename(after(t, src, "GOSUB ", 0), "5")
	require.NoError(t, err)
	assert.Len(t, edits, 3)

	for _, bad := range []string{"20", "0", "10000", "abc", "1.5"} {
		_, err := snap.Rename(posAt(t, src, "10", 0), bad)
		assert.ErrorIs(t, err, ErrInvalidName, bad)
	}

	edits, err = snap.Rename(posAt(t, src, "10", 0), "10")
	require.NoError(t, err)
	assert.Empty(t, edits)
}

func TestPrepareRename(t *testing.T) {
	src := "10 LET abc=1\n20 GOTO 10: GOTO 50"
	snap := Analyze(src, Options{})

	r, placeholder, err := snap.PrepareRename(posAt(t, src, "abc", 0))
	require.NoError(t, err)
	assert.Equal(t, "abc", placeholder)
	assert.Equal(t, 8, r.Start.Column)
	assert.Equal(t, 11, r.End.Column)

	_, placeholder, err = snap.PrepareRename(after(t, src, "GOTO ", 0))
	require.NoError(t, err)
	assert.Equal(t, "10", placeholder)

	_, _, err = snap.PrepareRename(after(t, src, "GOTO ", 1))
	assert.ErrorIs(t, err, ErrNotApplicable)

	_, _, err = snap.PrepareRename(posAt(t, src, "LET", 0))
	assert.ErrorIs(t, err, ErrNotApplicable)
}
