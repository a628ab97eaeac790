package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// FoldingRange handles the textDocument/foldingRange request.
func FoldingRange(context *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	_, doc, ok := openDocument("foldingRange", params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	ranges := doc.Snapshot.FoldingRanges()
	out := make([]protocol.FoldingRange, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, protocol.FoldingRange{
			StartLine: protocol.UInteger(r.StartLine - 1),
			EndLine:   protocol.UInteger(r.EndLine - 1),
			Kind:      ptr(r.Kind),
		})
	}
	return out, nil
}
