package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// NewHandler returns the protocol handler with every supported request and
// notification wired to this package.
func NewHandler() *protocol.Handler {
	return &protocol.Handler{
		Initialize:  Initialize,
		Initialized: Initialized,
		Shutdown:    Shutdown,
		SetTrace:    SetTrace,

		WorkspaceDidChangeConfiguration:    DidChangeConfiguration,
		WorkspaceDidChangeWorkspaceFolders: DidChangeWorkspaceFolders,
		WorkspaceSymbol:                    WorkspaceSymbol,

		TextDocumentDidOpen:   DidOpen,
		TextDocumentDidChange: DidChange,
		TextDocumentDidClose:  DidClose,

		TextDocumentHover:                Hover,
		TextDocumentDefinition:           Definition,
		TextDocumentReferences:           References,
		TextDocumentCompletion:           Completion,
		TextDocumentSignatureHelp:        SignatureHelp,
		TextDocumentDocumentSymbol:       DocumentSymbol,
		TextDocumentCodeAction:           CodeAction,
		TextDocumentFormatting:           Formatting,
		TextDocumentPrepareRename:        PrepareRename,
		TextDocumentRename:               Rename,
		TextDocumentFoldingRange:         FoldingRange,
		TextDocumentPrepareCallHierarchy: PrepareCallHierarchy,
		CallHierarchyIncomingCalls:       IncomingCalls,
		CallHierarchyOutgoingCalls:       OutgoingCalls,
		TextDocumentSemanticTokensFull:   SemanticTokensFull,
	}
}
