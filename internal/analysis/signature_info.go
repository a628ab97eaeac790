package analysis

import (
	"strings"

	"github.com/stefdev49/vs-zx-sub002/internal/builtins"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// Signature describes the callee at the cursor for signature help.
type Signature struct {
	Label         string
	Documentation string
	Parameters    []string
	// ActiveParameter is the index into Parameters of the argument under
	// the cursor, clamped to the last parameter.
	ActiveParameter int
}

// SignatureAt returns the signature of the call surrounding pos.
func (s *Snapshot) SignatureAt(pos token.Position) (*Signature, error) {
	call := s.DetermineCallContext(pos)
	if call == nil {
		return nil, notApplicable("no call at %s", pos)
	}

	var sig *Signature
	switch call.Kind {
	case CallBuiltin:
		b := builtins.GetBuiltinSignature(call.Name)
		if b == nil {
			return nil, notApplicable("no signature for %s", call.Name)
		}
		sig = &Signature{Label: b.Label(), Documentation: b.Documentation}
		for _, p := range b.Parameters {
			sig.Parameters = append(sig.Parameters, p.Name)
		}

	case CallUserFunction:
		f, ok := s.Index.Function(call.Name)
		if !ok || f.Definition == nil {
			return nil, notApplicable("FN %s has no DEF FN", call.Name)
		}
		var params []string
		for _, p := range f.Definition.Params {
			params = append(params, p.Token.Text)
		}
		sig = &Signature{
			Label:         "FN " + f.Definition.Name.Token.Text + "(" + strings.Join(params, ",") + ")",
			Documentation: f.Definition.String(),
			Parameters:    params,
		}

	case CallStatement:
		doc, _ := builtins.GetKeywordDoc(call.Name)
		sig = &Signature{Label: doc.Syntax, Documentation: doc.Documentation, Parameters: doc.Params}
	}

	sig.ActiveParameter = call.ParameterIndex
	if n := len(sig.Parameters); sig.ActiveParameter >= n && n > 0 {
		sig.ActiveParameter = n - 1
	}
	return sig, nil
}
