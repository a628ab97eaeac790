package lsp

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/analysis"
)

// Completion handles the textDocument/completion request.
func Completion(context *glsp.Context, params *protocol.CompletionParams) (any, error) {
	_, doc, ok := openDocument("completion", params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	pos := position(doc, params.Position)
	items := doc.Snapshot.Completions(pos)
	log.Debugf("%d completion(s) at %s %s", len(items), doc.URI, pos)

	out := make([]protocol.CompletionItem, 0, len(items))
	for i, c := range items {
		item := protocol.CompletionItem{
			Label: c.Label,
			Kind:  ptr(completionKind(c.Kind)),
			// The analysis already ordered the items; line numbers in
			// particular must not be sorted as text.
			SortText: ptr(fmt.Sprintf("%05d", i)),
		}
		if c.Detail != "" {
			item.Detail = ptr(c.Detail)
		}
		if c.Documentation != "" {
			item.Documentation = markdown(c.Documentation)
		}
		if c.InsertText != "" {
			item.InsertText = ptr(c.InsertText)
		}
		out = append(out, item)
	}

	return &protocol.CompletionList{IsIncomplete: false, Items: out}, nil
}

func completionKind(k analysis.CompletionKind) protocol.CompletionItemKind {
	switch k {
	case analysis.CompletionKeyword:
		return protocol.CompletionItemKindKeyword
	case analysis.CompletionFunction, analysis.CompletionUserFunction:
		return protocol.CompletionItemKindFunction
	case analysis.CompletionArray:
		return protocol.CompletionItemKindStruct
	case analysis.CompletionLine:
		return protocol.CompletionItemKindReference
	}
	return protocol.CompletionItemKindVariable
}
