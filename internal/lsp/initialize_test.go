package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/server"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

func TestInitialize(t *testing.T) {
	srv := server.New()
	SetServer(srv)
	defer SetServer(nil)

	root := "file:///work"
	got, err := Initialize(nil, &protocol.InitializeParams{
		RootURI:               &root,
		InitializationOptions: map[string]any{"dialect": "128k"},
	})
	require.NoError(t, err)

	result, ok := got.(protocol.InitializeResult)
	require.True(t, ok, "%T", got)
	assert.Equal(t, "zxbasic-lsp", result.ServerInfo.Name)
	assert.Equal(t, Version, *result.ServerInfo.Version)

	caps := result.Capabilities
	sync, ok := caps.TextDocumentSync.(protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	assert.Equal(t, protocol.TextDocumentSyncKindIncremental, *sync.Change)
	assert.NotNil(t, caps.RenameProvider)
	assert.NotNil(t, caps.CallHierarchyProvider)
	assert.NotNil(t, caps.FoldingRangeProvider)
	assert.NotNil(t, caps.DocumentFormattingProvider)

	tokens, ok := caps.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	require.True(t, ok)
	assert.Equal(t, srv.SemanticTokensLegend().TokenTypes, tokens.Legend.TokenTypes)

	assert.Equal(t, []string{root}, srv.GetWorkspaceFolders())
	assert.Equal(t, token.Dialect128K, srv.Config().Dialect)
	assert.NotNil(t, srv.GetClientCapabilities())
}

func TestInitialize_WorkspaceFolders(t *testing.T) {
	srv := server.New()
	SetServer(srv)
	defer SetServer(nil)

	root := "file:///ignored"
	_, err := Initialize(nil, &protocol.InitializeParams{
		RootURI: &root,
		WorkspaceFolders: []protocol.WorkspaceFolder{
			{URI: "file:///one", Name: "one"},
			{URI: "file:///two", Name: "two"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"file:///one", "file:///two"}, srv.GetWorkspaceFolders())
}

func TestShutdown(t *testing.T) {
	srv := openTest(t, "10 PRINT")

	require.NoError(t, Shutdown(nil))
	assert.True(t, srv.IsShuttingDown())
	assert.Empty(t, srv.Documents().List())
}

func TestSetTrace(t *testing.T) {
	srv := openTest(t, "10 PRINT")
	require.NoError(t, SetTrace(nil, &protocol.SetTraceParams{Value: protocol.TraceValueVerbose}))
	assert.Equal(t, "verbose", srv.Config().Trace)
}

func TestNewHandler(t *testing.T) {
	h := NewHandler()
	assert.NotNil(t, h.Initialize)
	assert.NotNil(t, h.TextDocumentDidChange)
	assert.NotNil(t, h.TextDocumentPrepareCallHierarchy)
	assert.NotNil(t, h.TextDocumentSemanticTokensFull)
}

func TestHandlers_WithoutServer(t *testing.T) {
	SetServer(nil)

	assert.NoError(t, DidOpen(nil, &protocol.DidOpenTextDocumentParams{}))
	got, err := Hover(nil, &protocol.HoverParams{TextDocumentPositionParams: at(0, 0)})
	assert.NoError(t, err)
	assert.Nil(t, got)
	syms, err := WorkspaceSymbol(nil, &protocol.WorkspaceSymbolParams{})
	assert.NoError(t, err)
	assert.Nil(t, syms)
}
