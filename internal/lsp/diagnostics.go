package lsp

import (
	"sort"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/diagnostics"
	"github.com/stefdev49/vs-zx-sub002/internal/server"
)

// diagnosticSource names this server in every published diagnostic.
const diagnosticSource = "zxbasic"

// Diagnostics converts the findings of doc to LSP diagnostics, keeping at
// most maxProblems of them when maxProblems is positive. The rule ID is
// carried as the diagnostic code.
func Diagnostics(doc *server.Document, maxProblems int) []protocol.Diagnostic {
	findings := doc.Snapshot.Findings
	if maxProblems > 0 && len(findings) > maxProblems {
		findings = findings[:maxProblems]
	}

	out := make([]protocol.Diagnostic, 0, len(findings))
	for _, f := range findings {
		out = append(out, protocol.Diagnostic{
			Range:    toRange(doc, f.Range),
			Severity: ptr(severity(f.Severity)),
			Code:     &protocol.IntegerOrString{Value: f.Rule},
			Source:   ptr(diagnosticSource),
			Message:  f.Message,
		})
	}
	sortDiagnostics(out)
	return out
}

func severity(s diagnostics.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diagnostics.Error:
		return protocol.DiagnosticSeverityError
	case diagnostics.Warning:
		return protocol.DiagnosticSeverityWarning
	case diagnostics.Information:
		return protocol.DiagnosticSeverityInformation
	}
	return protocol.DiagnosticSeverityHint
}

// PublishDiagnostics sends the diagnostics of doc to the client.
func PublishDiagnostics(context *glsp.Context, doc *server.Document, maxProblems int) {
	if context == nil || context.Notify == nil {
		log.Debug("cannot publish diagnostics: no client context")
		return
	}

	params := &protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     ptr(protocol.UInteger(doc.Version)),
		Diagnostics: Diagnostics(doc, maxProblems),
	}

	log.Debugf("publishing %d diagnostic(s) for %s", len(params.Diagnostics), doc.URI)
	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, params)
}

// sortDiagnostics sorts diagnostics by position (line first, then column).
func sortDiagnostics(diagnostics []protocol.Diagnostic) {
	sort.SliceStable(diagnostics, func(i, j int) bool {
		if diagnostics[i].Range.Start.Line != diagnostics[j].Range.Start.Line {
			return diagnostics[i].Range.Start.Line < diagnostics[j].Range.Start.Line
		}
		return diagnostics[i].Range.Start.Character < diagnostics[j].Range.Start.Character
	})
}
