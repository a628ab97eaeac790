package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/server"
)

func TestDidOpen(t *testing.T) {
	srv := server.New()
	SetServer(srv)
	defer SetServer(nil)

	ctx, sent := recorder()
	err := DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        testURI,
			LanguageID: "zx-basic",
			Version:    4,
			Text:       "10 GOTO 99999",
		},
	})
	require.NoError(t, err)

	doc, ok := srv.Documents().Get(testURI)
	require.True(t, ok)
	assert.Equal(t, 4, doc.Version)
	assert.Equal(t, "zx-basic", doc.LanguageID)

	require.Len(t, *sent, 1)
	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, (*sent)[0].method)
	params := (*sent)[0].params.(*protocol.PublishDiagnosticsParams)
	assert.Equal(t, testURI, params.URI)
	require.Len(t, params.Diagnostics, 1)
	assert.Equal(t, "jump-target-range", params.Diagnostics[0].Code.Value)
	assert.Equal(t, span(0, 8, 0, 13), params.Diagnostics[0].Range)
}

func TestDidChange_Incremental(t *testing.T) {
	srv := openTest(t, "10 PRINT a\n20 GOTO 10")

	ctx, sent := recorder()
	err := DidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{Range: ptr(span(1, 8, 1, 10)), Text: "30"},
			protocol.TextDocumentContentChangeEvent{Range: ptr(span(0, 9, 0, 10)), Text: "b"},
		},
	})
	require.NoError(t, err)

	doc, _ := srv.Documents().Get(testURI)
	assert.Equal(t, "10 PRINT b\n20 GOTO 30", doc.Text)
	assert.Equal(t, 2, doc.Version)
	assert.Len(t, *sent, 1)

	// The snapshot follows the new text.
	assert.Empty(t, doc.Snapshot.Index.JumpsTo(10))
	assert.Len(t, doc.Snapshot.Index.JumpsTo(30), 1)
}

func TestDidChange_Whole(t *testing.T) {
	srv := openTest(t, "10 PRINT")

	err := DidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                3,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "10 CLS"},
		},
	})
	require.NoError(t, err)

	doc, _ := srv.Documents().Get(testURI)
	assert.Equal(t, "10 CLS", doc.Text)
}

func TestDidChange_BadRangeKeepsText(t *testing.T) {
	srv := openTest(t, "10 PRINT")

	err := DidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{Range: ptr(span(7, 0, 7, 1)), Text: "x"},
		},
	})
	require.NoError(t, err)

	doc, _ := srv.Documents().Get(testURI)
	assert.Equal(t, "10 PRINT", doc.Text)
	assert.Equal(t, 2, doc.Version)
}

func TestDidChange_UnknownDocument(t *testing.T) {
	openTest(t, "10 PRINT")
	err := DidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///other.bas"},
		},
	})
	assert.NoError(t, err)
}

func TestDidClose(t *testing.T) {
	srv := openTest(t, "10 GOTO 99999")

	ctx, sent := recorder()
	require.NoError(t, DidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	}))

	_, ok := srv.Documents().Get(testURI)
	assert.False(t, ok)
	require.Len(t, *sent, 1)
	assert.Empty(t, (*sent)[0].params.(*protocol.PublishDiagnosticsParams).Diagnostics)
}

func TestDiagnostics(t *testing.T) {
	srv := openTest(t, "10 GOTO 99999\n20 IF a=1 PRINT 1\n30 a=2")
	doc, _ := srv.Documents().Get(testURI)

	all := Diagnostics(doc, 0)
	require.Len(t, all, 3)
	assert.Equal(t, protocol.DiagnosticSeverityError, *all[0].Severity)
	assert.Equal(t, "if-then", all[1].Code.Value)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *all[2].Severity)
	assert.Equal(t, diagnosticSource, *all[2].Source)

	assert.Len(t, Diagnostics(doc, 2), 2)
}

func TestDiagnostics_UTF16(t *testing.T) {
	srv := openTest(t, "10 PRINT \"😀\": GOTO 99999")
	doc, _ := srv.Documents().Get(testURI)

	diags := Diagnostics(doc, 0)
	require.Len(t, diags, 1)
	// The emoji is four bytes but two UTF-16 units.
	assert.Equal(t, span(0, 20, 0, 25), diags[0].Range)
}
