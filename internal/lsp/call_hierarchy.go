package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/analysis"
	"github.com/stefdev49/vs-zx-sub002/internal/server"
)

// PrepareCallHierarchy handles textDocument/prepareCallHierarchy. The item
// is the line named by a jump target under the cursor, or the cursor's line.
func PrepareCallHierarchy(context *glsp.Context, params *protocol.CallHierarchyPrepareParams) ([]protocol.CallHierarchyItem, error) {
	_, doc, ok := openDocument("prepareCallHierarchy", params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	pos := position(doc, params.Position)
	item, err := doc.Snapshot.PrepareCallHierarchy(pos)
	if err != nil {
		log.Debugf("prepareCallHierarchy at %s %s: %s", doc.URI, pos, err)
		return nil, nil
	}
	return []protocol.CallHierarchyItem{callItem(doc, item)}, nil
}

// IncomingCalls handles callHierarchy/incomingCalls: the lines that jump to
// the item's line.
func IncomingCalls(context *glsp.Context, params *protocol.CallHierarchyIncomingCallsParams) ([]protocol.CallHierarchyIncomingCall, error) {
	doc, line, ok := callTarget("incomingCalls", params.Item)
	if !ok {
		return nil, nil
	}

	calls := doc.Snapshot.IncomingCalls(line)
	out := make([]protocol.CallHierarchyIncomingCall, 0, len(calls))
	for _, c := range calls {
		out = append(out, protocol.CallHierarchyIncomingCall{
			From:       callItem(doc, c.From),
			FromRanges: ranges(doc, c),
		})
	}
	return out, nil
}

// OutgoingCalls handles callHierarchy/outgoingCalls: the lines jumped to
// from the item's line, or from its whole subroutine.
func OutgoingCalls(context *glsp.Context, params *protocol.CallHierarchyOutgoingCallsParams) ([]protocol.CallHierarchyOutgoingCall, error) {
	doc, line, ok := callTarget("outgoingCalls", params.Item)
	if !ok {
		return nil, nil
	}

	calls := doc.Snapshot.OutgoingCalls(line)
	out := make([]protocol.CallHierarchyOutgoingCall, 0, len(calls))
	for _, c := range calls {
		from := make([]protocol.Range, 0, len(c.FromRanges))
		for _, r := range c.FromRanges {
			from = append(from, toRange(doc, r))
		}
		out = append(out, protocol.CallHierarchyOutgoingCall{
			To:         callItem(doc, c.To),
			FromRanges: from,
		})
	}
	return out, nil
}

func ranges(doc *server.Document, c analysis.CallIncoming) []protocol.Range {
	out := make([]protocol.Range, 0, len(c.FromRanges))
	for _, r := range c.FromRanges {
		out = append(out, toRange(doc, r))
	}
	return out
}

func callItem(doc *server.Document, item analysis.CallItem) protocol.CallHierarchyItem {
	kind := protocol.SymbolKindKey
	if item.Subroutine {
		kind = protocol.SymbolKindMethod
	}
	out := protocol.CallHierarchyItem{
		Name:           item.Name,
		Kind:           kind,
		URI:            doc.URI,
		Range:          toRange(doc, item.Range),
		SelectionRange: toRange(doc, item.SelectionRange),
		Data:           item.Line,
	}
	if item.Detail != "" {
		out.Detail = ptr(item.Detail)
	}
	return out
}

// callTarget recovers the document and line number of an item produced by
// callItem. The line number travels in Data, which arrives from the client
// as a JSON number.
func callTarget(method string, item protocol.CallHierarchyItem) (*server.Document, int, bool) {
	_, doc, ok := openDocument(method, item.URI)
	if !ok {
		return nil, 0, false
	}
	switch n := item.Data.(type) {
	case float64:
		return doc, int(n), true
	case int:
		return doc, n, true
	}
	log.Warningf("%s: item without a line number: %v", method, item.Data)
	return nil, 0, false
}
