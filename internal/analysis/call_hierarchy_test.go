package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

const callProgram = "10 GOSUB 100\n" +
	"20 GOSUB 100: GOTO 10\n" +
	"30 STOP\n" +
	"100 PRINT: GOSUB 200\n" +
	"110 GOTO 120\n" +
	"120 RETURN\n" +
	"200 RETURN"

func TestPrepareCallHierarchy(t *testing.T) {
	snap := Analyze(callProgram, Options{})

	item, err := snap.PrepareCallHierarchy(posAt(t, callProgram, "100", 0))
	require.NoError(t, err)
	assert.Equal(t, 100, item.Line)
	assert.Equal(t, "subroutine 100", item.Name)
	assert.Equal(t, "PRINT: GOSUB 200", item.Detail)
	assert.True(t, item.Subroutine)
	assert.Equal(t, 4, item.SelectionRange.Start.Line)

	item, err = snap.PrepareCallHierarchy(token.Position{Line: 3, Column: 5})
	require.NoError(t, err)
	assert.Equal(t, 30, item.Line)
	assert.Equal(t, "line 30", item.Name)
	assert.False(t, item.Subroutine)

	_, err = snap.PrepareCallHierarchy(token.Position{Line: 9, Column: 1})
	assert.ErrorIs(t, err, ErrNotApplicable)
}

func TestIncomingCalls(t *testing.T) {
	snap := Analyze(callProgram, Options{})

	calls := snap.IncomingCalls(100)
	require.Len(t, calls, 2)
	assert.Equal(t, 10, calls[0].From.Line)
	assert.Equal(t, 20, calls[1].From.Line)
	assert.Equal(t, []token.Position{{Line: 2, Column: 10}}, starts(calls[1].FromRanges))

	calls = snap.IncomingCalls(10)
	require.Len(t, calls, 1)
	assert.Equal(t, 20, calls[0].From.Line)

	assert.Empty(t, snap.IncomingCalls(30))
}

func TestIncomingCalls_GroupsByCaller(t *testing.T) {
	src := "10 GOSUB 50: GOSUB 50\n50 RETURN"
	snap := Analyze(src, Options{})

	calls := snap.IncomingCalls(50)
	require.Len(t, calls, 1)
	assert.Len(t, calls[0].FromRanges, 2)
}

func TestOutgoingCalls(t *testing.T) {
	snap := Analyze(callProgram, Options{})

	// Subroutine 100 runs down to the RETURN on line 120.
	calls := snap.OutgoingCalls(100)
	require.Len(t, calls, 2)
	assert.Equal(t, 200, calls[0].To.Line)
	assert.True(t, calls[0].To.Subroutine)
	assert.Equal(t, 120, calls[1].To.Line)

	calls = snap.OutgoingCalls(20)
	require.Len(t, calls, 2)
	assert.Equal(t, 100, calls[0].To.Line)
	assert.Equal(t, 10, calls[1].To.Line)

	assert.Empty(t, snap.OutgoingCalls(30))
	assert.Empty(t, snap.OutgoingCalls(999))
}

func TestOutgoingCalls_SkipsMissingLines(t *testing.T) {
	snap := Analyze("10 GOTO 500: GOSUB 20\n20 RETURN", Options{})
	calls := snap.OutgoingCalls(10)
	require.Len(t, calls, 1)
	assert.Equal(t, 20, calls[0].To.Line)
}
