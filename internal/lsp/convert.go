package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/analysis"
	"github.com/stefdev49/vs-zx-sub002/internal/server"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// openDocument returns the server and the open document for uri. It logs
// and reports false when either is missing.
func openDocument(method string, uri protocol.DocumentUri) (*server.Server, *server.Document, bool) {
	srv := serverInstance
	if srv == nil {
		log.Warningf("server instance not available in %s", method)
		return nil, nil, false
	}
	doc, ok := srv.Documents().Get(uri)
	if !ok {
		log.Debugf("%s: document not open: %s", method, uri)
		return srv, nil, false
	}
	return srv, doc, true
}

// position converts an LSP position in doc to a core position.
func position(doc *server.Document, p protocol.Position) token.Position {
	return doc.Positions.Position(p)
}

func toRange(doc *server.Document, r token.Range) protocol.Range {
	return doc.Positions.ProtocolRange(r)
}

func toLocations(doc *server.Document, rs []token.Range) []protocol.Location {
	out := make([]protocol.Location, 0, len(rs))
	for _, r := range rs {
		out = append(out, protocol.Location{URI: doc.URI, Range: toRange(doc, r)})
	}
	return out
}

func serverLegend() *analysis.SemanticTokensLegend {
	if srv := serverInstance; srv != nil {
		return srv.SemanticTokensLegend()
	}
	return analysis.NewSemanticTokensLegend()
}

func markdown(value string) protocol.MarkupContent {
	return protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: value}
}

func ptr[T any](v T) *T {
	return &v
}
