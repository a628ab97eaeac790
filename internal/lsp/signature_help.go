package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SignatureHelp handles the textDocument/signatureHelp request for
// built-in functions, FN calls and statements with arguments.
func SignatureHelp(context *glsp.Context, params *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error) {
	_, doc, ok := openDocument("signatureHelp", params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	pos := position(doc, params.Position)
	sig, err := doc.Snapshot.SignatureAt(pos)
	if err != nil {
		log.Debugf("signatureHelp at %s %s: %s", doc.URI, pos, err)
		return nil, nil
	}

	info := protocol.SignatureInformation{Label: sig.Label}
	if sig.Documentation != "" {
		info.Documentation = markdown(sig.Documentation)
	}
	for _, p := range sig.Parameters {
		info.Parameters = append(info.Parameters, protocol.ParameterInformation{Label: p})
	}

	return &protocol.SignatureHelp{
		Signatures:      []protocol.SignatureInformation{info},
		ActiveSignature: ptr(protocol.UInteger(0)),
		ActiveParameter: ptr(protocol.UInteger(sig.ActiveParameter)),
	}, nil
}
