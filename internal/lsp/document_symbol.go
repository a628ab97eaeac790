package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/analysis"
	"github.com/stefdev49/vs-zx-sub002/internal/server"
)

// DocumentSymbol handles the textDocument/documentSymbol request with the
// program outline: subroutines, DEF FN functions, arrays and variables.
// Clients without hierarchical symbol support get SymbolInformation.
func DocumentSymbol(context *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	srv, doc, ok := openDocument("documentSymbol", params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	outline := doc.Snapshot.Outline()
	if !srv.SupportsHierarchicalSymbols() {
		return symbolInformation(doc, outline), nil
	}

	out := make([]protocol.DocumentSymbol, 0, len(outline))
	for _, sym := range outline {
		ds := protocol.DocumentSymbol{
			Name:           sym.Name,
			Kind:           symbolKind(sym.Kind),
			Range:          toRange(doc, sym.Range),
			SelectionRange: toRange(doc, sym.SelectionRange),
		}
		if sym.Detail != "" {
			ds.Detail = ptr(sym.Detail)
		}
		out = append(out, ds)
	}
	return out, nil
}

func symbolInformation(doc *server.Document, outline []analysis.OutlineSymbol) []protocol.SymbolInformation {
	out := make([]protocol.SymbolInformation, 0, len(outline))
	for _, sym := range outline {
		out = append(out, protocol.SymbolInformation{
			Name: sym.Name,
			Kind: symbolKind(sym.Kind),
			Location: protocol.Location{
				URI:   doc.URI,
				Range: toRange(doc, sym.SelectionRange),
			},
		})
	}
	return out
}

func symbolKind(k analysis.OutlineKind) protocol.SymbolKind {
	switch k {
	case analysis.OutlineSubroutine:
		return protocol.SymbolKindMethod
	case analysis.OutlineFunction:
		return protocol.SymbolKindFunction
	case analysis.OutlineArray:
		return protocol.SymbolKindArray
	}
	return protocol.SymbolKindVariable
}
