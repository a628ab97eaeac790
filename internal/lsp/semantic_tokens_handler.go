package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/analysis"
	"github.com/stefdev49/vs-zx-sub002/internal/server"
)

// SemanticTokensFull handles textDocument/semanticTokens/full requests.
func SemanticTokensFull(context *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	srv, doc, ok := openDocument("semanticTokens", params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	tokens := doc.Snapshot.SemanticTokens(srv.SemanticTokensLegend())
	log.Debugf("collected %d semantic token(s) for %s", len(tokens), doc.URI)

	return &protocol.SemanticTokens{Data: encodeSemanticTokens(doc, tokens)}, nil
}

// encodeSemanticTokens produces the relative five-integer encoding: line
// delta, start delta (relative to the previous token on the same line),
// length, type and modifier mask. Lengths and starts are in UTF-16 units.
func encodeSemanticTokens(doc *server.Document, tokens []analysis.SemanticToken) []protocol.UInteger {
	data := make([]protocol.UInteger, 0, len(tokens)*5)
	var prevLine, prevChar protocol.UInteger
	for _, t := range tokens {
		r := toRange(doc, t.Range)
		if r.End.Line != r.Start.Line || r.End.Character <= r.Start.Character {
			continue
		}
		deltaLine := r.Start.Line - prevLine
		deltaChar := r.Start.Character
		if deltaLine == 0 {
			deltaChar -= prevChar
		}
		data = append(data,
			deltaLine,
			deltaChar,
			r.End.Character-r.Start.Character,
			protocol.UInteger(t.TokenType),
			protocol.UInteger(t.Modifiers),
		)
		prevLine, prevChar = r.Start.Line, r.Start.Character
	}
	return data
}
