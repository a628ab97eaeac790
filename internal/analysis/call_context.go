package analysis

import (
	"github.com/stefdev49/vs-zx-sub002/internal/builtins"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// CallKind says what kind of callee a CallContext refers to.
type CallKind int

const (
	CallBuiltin CallKind = iota
	CallUserFunction
	CallStatement
)

// CallContext holds information about the call surrounding the cursor.
type CallContext struct {
	Kind CallKind
	// Name is the built-in function, the FN name (with $ if any) or the
	// statement keyword.
	Name string
	// ParameterIndex is the 0-based index of the argument under the cursor.
	ParameterIndex int
}

// DetermineCallContext scans the tokens before pos on its line for the
// innermost unclosed call: a built-in function or FN call before an open
// parenthesis, a command keyword taking an argument list, or a built-in
// function written without parentheses. It returns nil when pos is not in
// an argument list.
func (s *Snapshot) DetermineCallContext(pos token.Position) *CallContext {
	var toks []token.Token
	for _, t := range s.Lex.Tokens {
		if t.Start.Line == pos.Line && t.Start.Column < pos.Column && t.Kind != token.Newline && t.Kind != token.EOF {
			toks = append(toks, t)
		}
	}
	if n := len(toks); n > 0 && (toks[n-1].Kind == token.Comment || toks[n-1].IsKeyword("REM")) {
		return nil
	}

	depth, commas := 0, 0
	for i := len(toks) - 1; i >= 0; i-- {
		t := toks[i]
		switch t.Kind {
		case token.RParen:
			depth++
		case token.LParen:
			if depth > 0 {
				depth--
				continue
			}
			return parenCallee(toks[:i], commas)
		case token.Comma:
			if depth == 0 {
				commas++
			}
		case token.Colon, token.Semicolon, token.Apostrophe:
			if depth == 0 {
				return nil
			}
		case token.Function:
			if depth == 0 && commas == 0 {
				return &CallContext{Kind: CallBuiltin, Name: t.Value}
			}
		case token.Keyword:
			if depth > 0 {
				continue
			}
			if doc, ok := builtins.GetKeywordDoc(t.Value); ok && len(doc.Params) > 0 {
				return &CallContext{Kind: CallStatement, Name: t.Value, ParameterIndex: commas}
			}
			if t.IsKeyword("AND", "OR", "NOT", "TO", "STEP") {
				continue
			}
			return nil
		}
	}
	return nil
}

// parenCallee identifies the call whose "(" ends before.
func parenCallee(before []token.Token, commas int) *CallContext {
	n := len(before)
	if n == 0 {
		return nil
	}
	callee := before[n-1]
	switch {
	case callee.Kind == token.Function:
		return &CallContext{Kind: CallBuiltin, Name: callee.Value, ParameterIndex: commas}
	case callee.Kind == token.Identifier && n > 1 && before[n-2].IsKeyword("FN"):
		return &CallContext{Kind: CallUserFunction, Name: callee.Value, ParameterIndex: commas}
	}
	return nil
}
