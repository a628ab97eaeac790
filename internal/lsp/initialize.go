// Package lsp implements LSP protocol handlers on top of the analysis core.
//
// Handlers are thin: they look up the document, convert positions between
// LSP's UTF-16 coordinates and the core's byte coordinates, call one
// analysis query and convert the answer back.
package lsp

import (
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/server"
)

// Version is reported to the client in the initialize result.
const Version = "0.1.0"

var log = commonlog.GetLogger("zxbasic.lsp")

var (
	// serverInstance holds the global server instance
	// This is set by SetServer and accessed by handlers
	serverInstance *server.Server
)

// SetServer sets the global server instance for handlers to access.
func SetServer(srv *server.Server) {
	serverInstance = srv
}

// Initialize handles the LSP initialize request.
// This is the first request sent by the client and establishes the server capabilities.
func Initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if srv := serverInstance; srv != nil {
		srv.SetClientCapabilities(&params.Capabilities)

		var folders []string
		for _, f := range params.WorkspaceFolders {
			folders = append(folders, f.URI)
		}
		if len(folders) == 0 && params.RootURI != nil {
			folders = append(folders, *params.RootURI)
		}
		srv.SetWorkspaceFolders(folders)

		if params.InitializationOptions != nil {
			applySettings(srv, params.InitializationOptions)
		}
	}

	return protocol.InitializeResult{
		Capabilities: capabilities(),
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    "zxbasic-lsp",
			Version: &[]string{Version}[0],
		},
	}, nil
}

func capabilities() protocol.ServerCapabilities {
	changeKind := protocol.TextDocumentSyncKindIncremental
	trueVal := true
	falseVal := false

	legend := serverLegend()

	return protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: &trueVal,
			Change:    &changeKind,
			WillSave:  &falseVal,
			Save: &protocol.SaveOptions{
				IncludeText: &falseVal,
			},
		},
		HoverProvider:              &trueVal,
		DefinitionProvider:         &trueVal,
		ReferencesProvider:         &trueVal,
		DocumentSymbolProvider:     &trueVal,
		WorkspaceSymbolProvider:    &trueVal,
		FoldingRangeProvider:       &trueVal,
		CallHierarchyProvider:      &trueVal,
		DocumentFormattingProvider: &trueVal,
		CompletionProvider: &protocol.CompletionOptions{
			// A space after GOTO or THEN and a colon between statements
			// change what may come next.
			TriggerCharacters: []string{" ", ":"},
			ResolveProvider:   &falseVal,
		},
		SignatureHelpProvider: &protocol.SignatureHelpOptions{
			TriggerCharacters:   []string{"(", ",", " "},
			RetriggerCharacters: []string{","},
		},
		RenameProvider: &protocol.RenameOptions{
			PrepareProvider: &trueVal,
		},
		SemanticTokensProvider: &protocol.SemanticTokensOptions{
			Legend: protocol.SemanticTokensLegend{
				TokenTypes:     legend.TokenTypes,
				TokenModifiers: legend.TokenModifiers,
			},
			Full: &trueVal,
		},
		CodeActionProvider: &protocol.CodeActionOptions{
			CodeActionKinds: []protocol.CodeActionKind{
				protocol.CodeActionKindQuickFix,
				codeActionKindRenumber,
			},
			ResolveProvider: &falseVal,
		},
	}
}

// Initialized handles the initialized notification from the client.
func Initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("client initialized")
	return nil
}

// Shutdown handles the shutdown request.
func Shutdown(context *glsp.Context) error {
	if srv := serverInstance; srv != nil {
		srv.SetShuttingDown()
		srv.Documents().Clear()
	}
	log.Info("shutting down")
	return nil
}

// SetTrace handles $/setTrace.
func SetTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	if srv := serverInstance; srv != nil {
		srv.UpdateConfig(func(cfg *server.Config) {
			cfg.Trace = string(params.Value)
		})
	}
	return nil
}
