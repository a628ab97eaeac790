package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/document"
)

// DidOpen handles the textDocument/didOpen notification: the document is
// analyzed and its diagnostics published.
func DidOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	srv := serverInstance
	if srv == nil {
		log.Warning("server instance not available in DidOpen")
		return nil
	}

	item := params.TextDocument
	log.Debugf("document opened: %s (version %d, language %s, %d bytes)",
		item.URI, item.Version, item.LanguageID, len(item.Text))

	doc := srv.Analyze(item.URI, item.LanguageID, item.Text, int(item.Version))
	PublishDiagnostics(context, doc, srv.Config().MaxProblems)

	return nil
}

// DidClose handles the textDocument/didClose notification.
func DidClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	srv := serverInstance
	if srv == nil {
		log.Warning("server instance not available in DidClose")
		return nil
	}

	uri := params.TextDocument.URI
	srv.Documents().Delete(uri)
	log.Debugf("document closed: %s", uri)

	// Clear the editor's markers for the closed document.
	if context != nil && context.Notify != nil {
		context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: []protocol.Diagnostic{},
		})
	}

	return nil
}

// DidChange handles the textDocument/didChange notification. Both full and
// incremental changes are applied in order, then the document is analyzed
// again.
func DidChange(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	srv := serverInstance
	if srv == nil {
		log.Warning("server instance not available in DidChange")
		return nil
	}

	uri := params.TextDocument.URI
	version := int(params.TextDocument.Version)

	doc, exists := srv.Documents().Get(uri)
	if !exists {
		log.Warningf("document not found for didChange: %s", uri)
		return nil
	}

	text := doc.Text
	for i, raw := range params.ContentChanges {
		var change protocol.TextDocumentContentChangeEvent
		switch c := raw.(type) {
		case protocol.TextDocumentContentChangeEvent:
			change = c
		case protocol.TextDocumentContentChangeEventWhole:
			change = protocol.TextDocumentContentChangeEvent{Text: c.Text}
		default:
			log.Warningf("invalid content change type %T at index %d for %s", raw, i, uri)
			continue
		}

		updated, err := document.ApplyContentChange(text, change)
		if err != nil {
			// Skip the change rather than corrupt the text.
			log.Errorf("applying change %d/%d to %s: %s", i+1, len(params.ContentChanges), uri, err)
			continue
		}
		text = updated
	}

	doc = srv.Analyze(uri, doc.LanguageID, text, version)
	log.Debugf("document changed: %s (version %d, %d finding(s))", uri, version, len(doc.Snapshot.Findings))
	PublishDiagnostics(context, doc, srv.Config().MaxProblems)

	return nil
}
