package lsp

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/diagnostics"
	"github.com/stefdev49/vs-zx-sub002/internal/format"
	"github.com/stefdev49/vs-zx-sub002/internal/server"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// codeActionKindRenumber renumbers the whole program.
const codeActionKindRenumber protocol.CodeActionKind = "source.renumber"

// CodeAction handles the textDocument/codeAction request: quick fixes for
// the findings in the requested range, and renumbering of the program.
func CodeAction(context *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	srv, doc, ok := openDocument("codeAction", params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	want := func(kind protocol.CodeActionKind) bool {
		if len(params.Context.Only) == 0 {
			return true
		}
		for _, k := range params.Context.Only {
			if k == kind || (k == protocol.CodeActionKindSource && kind == codeActionKindRenumber) {
				return true
			}
		}
		return false
	}

	actions := []protocol.CodeAction{}
	if want(protocol.CodeActionKindQuickFix) {
		for _, f := range doc.Snapshot.Findings {
			if !overlaps(toRange(doc, f.Range), params.Range) {
				continue
			}
			if action, ok := quickFix(srv, doc, f); ok {
				actions = append(actions, action)
			}
		}
	}
	if want(codeActionKindRenumber) {
		if action, ok := renumberAction(srv, doc); ok {
			actions = append(actions, action)
		}
	}

	log.Debugf("%d code action(s) for %s", len(actions), doc.URI)
	return actions, nil
}

func quickFix(srv *server.Server, doc *server.Document, f diagnostics.Finding) (protocol.CodeAction, bool) {
	var title string
	var edit protocol.TextEdit
	switch f.Rule {
	case diagnostics.RuleIfThen:
		title = "Insert THEN"
		edit = insertAt(doc, f.Range.End, " THEN")
	case diagnostics.RuleImplicitLet:
		title = "Insert LET"
		edit = insertAt(doc, f.Range.Start, "LET ")
	case diagnostics.RuleInvalidCharacter:
		title = "Remove invalid character"
		edit = protocol.TextEdit{Range: toRange(doc, f.Range)}
	default:
		return protocol.CodeAction{}, false
	}

	diag := protocol.Diagnostic{
		Range:    toRange(doc, f.Range),
		Severity: ptr(severity(f.Severity)),
		Code:     &protocol.IntegerOrString{Value: f.Rule},
		Source:   ptr(diagnosticSource),
		Message:  f.Message,
	}
	return protocol.CodeAction{
		Title:       title,
		Kind:        ptr(protocol.CodeActionKindQuickFix),
		Diagnostics: []protocol.Diagnostic{diag},
		IsPreferred: ptr(true),
		Edit:        buildWorkspaceEdit(srv, doc, []protocol.TextEdit{edit}),
	}, true
}

// renumberAction renumbers from the configured increment by the same step.
func renumberAction(srv *server.Server, doc *server.Document) (protocol.CodeAction, bool) {
	if len(doc.Snapshot.Index.Lines) == 0 {
		return protocol.CodeAction{}, false
	}
	step := srv.Config().RenumberIncrement
	if step <= 0 {
		step = 10
	}
	text, _, err := format.Renumber(doc.Snapshot, step, step)
	if err != nil {
		log.Debugf("renumber %s: %s", doc.URI, err)
		return protocol.CodeAction{}, false
	}
	edits := replaceAll(doc, text)
	if len(edits) == 0 {
		return protocol.CodeAction{}, false
	}
	return protocol.CodeAction{
		Title: fmt.Sprintf("Renumber lines from %d by %d", step, step),
		Kind:  ptr(codeActionKindRenumber),
		Edit:  buildWorkspaceEdit(srv, doc, edits),
	}, true
}

func insertAt(doc *server.Document, pos token.Position, text string) protocol.TextEdit {
	p := doc.Positions.ProtocolPosition(pos)
	return protocol.TextEdit{Range: protocol.Range{Start: p, End: p}, NewText: text}
}

// overlaps reports whether two ranges share at least one position. Touching
// ranges overlap, so a cursor at the end of a finding still gets its fixes.
func overlaps(a, b protocol.Range) bool {
	return !before(a.End, b.Start) && !before(b.End, a.Start)
}

func before(p, q protocol.Position) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Character < q.Character)
}
