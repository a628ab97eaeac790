package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Hover handles the textDocument/hover request: keywords and built-ins show
// their syntax, variables their kind and use, line numbers their line.
func Hover(context *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	_, doc, ok := openDocument("hover", params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	pos := position(doc, params.Position)
	text, r, err := doc.Snapshot.Hover(pos)
	if err != nil {
		log.Debugf("hover at %s %s: %s", doc.URI, pos, err)
		return nil, nil
	}

	return &protocol.Hover{
		Contents: markdown(text),
		Range:    ptr(toRange(doc, r)),
	}, nil
}
