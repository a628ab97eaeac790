package lsp

import (
	"errors"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/analysis"
	"github.com/stefdev49/vs-zx-sub002/internal/server"
)

// renamePlaceholder is the prepareRename result with the name to offer.
type renamePlaceholder struct {
	Range       protocol.Range `json:"range"`
	Placeholder string         `json:"placeholder"`
}

// PrepareRename handles the textDocument/prepareRename request.
func PrepareRename(context *glsp.Context, params *protocol.PrepareRenameParams) (any, error) {
	_, doc, ok := openDocument("prepareRename", params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	pos := position(doc, params.Position)
	r, name, err := doc.Snapshot.PrepareRename(pos)
	if err != nil {
		log.Debugf("prepareRename at %s %s: %s", doc.URI, pos, err)
		return nil, nil
	}
	return &renamePlaceholder{Range: toRange(doc, r), Placeholder: name}, nil
}

// Rename handles the textDocument/rename request. An invalid new name is
// reported to the client as an error.
func Rename(context *glsp.Context, params *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	srv, doc, ok := openDocument("rename", params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	pos := position(doc, params.Position)
	edits, err := doc.Snapshot.Rename(pos, params.NewName)
	switch {
	case errors.Is(err, analysis.ErrNotApplicable):
		log.Debugf("rename at %s %s: %s", doc.URI, pos, err)
		return nil, nil
	case err != nil:
		return nil, err
	}

	log.Infof("rename to %q: %d edit(s) in %s", params.NewName, len(edits), doc.URI)
	return buildWorkspaceEdit(srv, doc, textEdits(doc, edits)), nil
}

func textEdits(doc *server.Document, edits []analysis.TextEdit) []protocol.TextEdit {
	out := make([]protocol.TextEdit, 0, len(edits))
	for _, e := range edits {
		out = append(out, protocol.TextEdit{Range: toRange(doc, e.Range), NewText: e.NewText})
	}
	return out
}

// buildWorkspaceEdit wraps edits to doc, as versioned documentChanges when
// the client supports them and as plain changes otherwise.
func buildWorkspaceEdit(srv *server.Server, doc *server.Document, edits []protocol.TextEdit) *protocol.WorkspaceEdit {
	if srv == nil || !srv.SupportsDocumentChanges() {
		return &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{doc.URI: edits},
		}
	}

	anyEdits := make([]any, len(edits))
	for i, e := range edits {
		anyEdits[i] = e
	}
	return &protocol.WorkspaceEdit{
		DocumentChanges: []any{
			protocol.TextDocumentEdit{
				TextDocument: protocol.OptionalVersionedTextDocumentIdentifier{
					TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: doc.URI},
					Version:                ptr(protocol.Integer(doc.Version)),
				},
				Edits: anyEdits,
			},
		},
	}
}
