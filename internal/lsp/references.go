package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// References handles the textDocument/references request.
func References(context *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	_, doc, ok := openDocument("references", params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	pos := position(doc, params.Position)
	ranges, err := doc.Snapshot.References(pos, params.Context.IncludeDeclaration)
	if err != nil {
		log.Debugf("references at %s %s: %s", doc.URI, pos, err)
		return nil, nil
	}

	log.Debugf("found %d reference(s) at %s %s", len(ranges), doc.URI, pos)
	return toLocations(doc, ranges), nil
}
