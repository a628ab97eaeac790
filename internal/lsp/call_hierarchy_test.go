package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const callProgram = "10 GOSUB 100\n" +
	"20 GOSUB 100: GOTO 10\n" +
	"30 STOP\n" +
	"100 PRINT: GOSUB 200\n" +
	"110 GOTO 120\n" +
	"120 RETURN\n" +
	"200 RETURN"

func TestPrepareCallHierarchy(t *testing.T) {
	openTest(t, callProgram)

	items, err := PrepareCallHierarchy(nil, &protocol.CallHierarchyPrepareParams{TextDocumentPositionParams: at(0, 10)})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "subroutine 100", items[0].Name)
	assert.Equal(t, protocol.SymbolKindMethod, items[0].Kind)
	assert.Equal(t, span(3, 0, 3, 3), items[0].SelectionRange)
	assert.Equal(t, 100, items[0].Data)

	items, err = PrepareCallHierarchy(nil, &protocol.CallHierarchyPrepareParams{TextDocumentPositionParams: at(2, 4)})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "line 30", items[0].Name)
	assert.Equal(t, protocol.SymbolKindKey, items[0].Kind)
}

func TestIncomingCalls(t *testing.T) {
	openTest(t, callProgram)
	items, err := PrepareCallHierarchy(nil, &protocol.CallHierarchyPrepareParams{TextDocumentPositionParams: at(0, 10)})
	require.NoError(t, err)

	calls, err := IncomingCalls(nil, &protocol.CallHierarchyIncomingCallsParams{Item: items[0]})
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, "line 10", calls[0].From.Name)
	assert.Equal(t, "line 20", calls[1].From.Name)
	assert.Equal(t, []protocol.Range{span(1, 9, 1, 12)}, calls[1].FromRanges)
}

func TestOutgoingCalls(t *testing.T) {
	openTest(t, callProgram)

	// Items coming back from the client carry Data as a JSON number.
	item := protocol.CallHierarchyItem{URI: testURI, Data: float64(100)}
	calls, err := OutgoingCalls(nil, &protocol.CallHierarchyOutgoingCallsParams{Item: item})
	require.NoError(t, err)

	var names []string
	for _, c := range calls {
		names = append(names, c.To.Name)
	}
	assert.ElementsMatch(t, []string{"subroutine 200", "line 120"}, names)
}

func TestCallHierarchy_BadItem(t *testing.T) {
	openTest(t, callProgram)

	calls, err := IncomingCalls(nil, &protocol.CallHierarchyIncomingCallsParams{
		Item: protocol.CallHierarchyItem{URI: testURI, Data: "100"},
	})
	require.NoError(t, err)
	assert.Nil(t, calls)
}
