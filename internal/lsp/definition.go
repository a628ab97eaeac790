package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Definition handles the textDocument/definition request. A variable
// resolves to its first binding, FN to its DEF FN and a jump target to the
// line it names; a duplicated line number yields every line carrying it.
func Definition(context *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	_, doc, ok := openDocument("definition", params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	pos := position(doc, params.Position)
	ranges, err := doc.Snapshot.Definition(pos)
	if err != nil {
		log.Debugf("definition at %s %s: %s", doc.URI, pos, err)
		return nil, nil
	}

	locations := toLocations(doc, ranges)
	if len(locations) == 1 {
		return &locations[0], nil
	}
	return locations, nil
}
