package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// WorkspaceSymbol handles the workspace/symbol request. It searches the
// outlines of all open documents; the query matches any part of a name,
// ignoring case.
func WorkspaceSymbol(context *glsp.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	srv := serverInstance
	if srv == nil {
		log.Warning("server instance not available in WorkspaceSymbol")
		return nil, nil
	}

	query := strings.ToUpper(strings.TrimSpace(params.Query))
	out := []protocol.SymbolInformation{}
	for _, uri := range srv.Documents().List() {
		doc, ok := srv.Documents().Get(uri)
		if !ok {
			continue
		}
		for _, sym := range symbolInformation(doc, doc.Snapshot.Outline()) {
			if query == "" || strings.Contains(strings.ToUpper(sym.Name), query) {
				out = append(out, sym)
			}
		}
	}

	log.Debugf("workspace symbol %q: %d match(es)", params.Query, len(out))
	return out, nil
}
