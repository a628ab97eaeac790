package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/format"
	"github.com/stefdev49/vs-zx-sub002/internal/server"
)

// Formatting handles the textDocument/formatting request. The document is
// rewritten as one edit; nothing is returned when it is already formatted.
func Formatting(context *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	_, doc, ok := openDocument("formatting", params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	text, err := format.Format(doc.Snapshot, format.Options{})
	if err != nil {
		return nil, err
	}
	return replaceAll(doc, text), nil
}

// replaceAll returns the edit that turns doc into text, or none when they
// are equal.
func replaceAll(doc *server.Document, text string) []protocol.TextEdit {
	if text == doc.Text {
		return []protocol.TextEdit{}
	}
	return []protocol.TextEdit{{
		Range:   protocol.Range{End: doc.Positions.End()},
		NewText: text,
	}}
}
