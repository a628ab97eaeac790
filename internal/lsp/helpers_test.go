package lsp

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/server"
)

const testURI = "file:///test/program.bas"

// testProgram is shared by the navigation tests.
const testProgram = "10 LET a=1\n" +
	"20 GOSUB 100\n" +
	"30 PRINT a: GOTO 10\n" +
	"100 DIM m(3)\n" +
	"110 RETURN"

// notification is one message sent to the client.
type notification struct {
	method string
	params any
}

// recorder returns a context that records notifications.
func recorder() (*glsp.Context, *[]notification) {
	var sent []notification
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			sent = append(sent, notification{method, params})
		},
	}
	return ctx, &sent
}

// openTest installs a fresh server and opens text under testURI.
func openTest(t *testing.T, text string) *server.Server {
	t.Helper()
	srv := server.New()
	SetServer(srv)
	t.Cleanup(func() { SetServer(nil) })

	err := DidOpen(&glsp.Context{}, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        testURI,
			LanguageID: "zx-basic",
			Version:    1,
			Text:       text,
		},
	})
	require.NoError(t, err)
	return srv
}

func at(line, char protocol.UInteger) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Position:     protocol.Position{Line: line, Character: char},
	}
}

func span(sl, sc, el, ec protocol.UInteger) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: sl, Character: sc},
		End:   protocol.Position{Line: el, Character: ec},
	}
}

// newOf allocates a zero value of the type p points to; glsp declares
// ClientCapabilities.Workspace as an anonymous struct that cannot be named.
func newOf[T any](*T) *T { return new(T) }
