package analysis

import (
	"github.com/stefdev49/vs-zx-sub002/internal/ast"
	"github.com/stefdev49/vs-zx-sub002/internal/index"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// Token types. The order is the order of the legend.
const (
	TokenTypeKeyword   = "keyword"
	TokenTypeFunction  = "function"
	TokenTypeVariable  = "variable"
	TokenTypeParameter = "parameter"
	TokenTypeNumber    = "number"
	TokenTypeString    = "string"
	TokenTypeComment   = "comment"
	TokenTypeOperator  = "operator"
	// TokenTypeLabel marks line numbers and literal jump targets.
	TokenTypeLabel = "label"
)

// Token modifiers. Each is one bit, in legend order.
const (
	TokenModifierDeclaration    = "declaration"
	TokenModifierDefinition     = "definition"
	TokenModifierModification   = "modification"
	TokenModifierReadonly       = "readonly"
	TokenModifierDefaultLibrary = "defaultLibrary"
)

// SemanticTokensLegend names the token types and modifiers. A token's type
// is an index into TokenTypes and its modifiers a bit set over
// TokenModifiers.
type SemanticTokensLegend struct {
	TokenTypes     []string
	TokenModifiers []string
}

// NewSemanticTokensLegend returns the legend used for ZX BASIC.
func NewSemanticTokensLegend() *SemanticTokensLegend {
	return &SemanticTokensLegend{
		TokenTypes: []string{
			TokenTypeKeyword,
			TokenTypeFunction,
			TokenTypeVariable,
			TokenTypeParameter,
			TokenTypeNumber,
			TokenTypeString,
			TokenTypeComment,
			TokenTypeOperator,
			TokenTypeLabel,
		},
		TokenModifiers: []string{
			TokenModifierDeclaration,
			TokenModifierDefinition,
			TokenModifierModification,
			TokenModifierReadonly,
			TokenModifierDefaultLibrary,
		},
	}
}

// GetTokenTypeIndex returns the index of a token type, or -1.
func (l *SemanticTokensLegend) GetTokenTypeIndex(tokenType string) int {
	for i, t := range l.TokenTypes {
		if t == tokenType {
			return i
		}
	}
	return -1
}

// GetModifierMask returns the bit mask for the given modifiers. Unknown
// modifiers are ignored.
func (l *SemanticTokensLegend) GetModifierMask(modifiers ...string) uint32 {
	var mask uint32
	for _, modifier := range modifiers {
		for i, m := range l.TokenModifiers {
			if m == modifier {
				mask |= 1 << uint32(i)
				break
			}
		}
	}
	return mask
}

// SemanticToken classifies one source token.
type SemanticToken struct {
	Range     token.Range
	TokenType uint32
	Modifiers uint32
}

// SemanticTokens classifies every meaningful token of the document in
// source order. Token types missing from the legend are skipped.
func (s *Snapshot) SemanticTokens(legend *SemanticTokensLegend) []SemanticToken {
	c := &tokenClassifier{
		roles:   map[int]index.Role{},
		defs:    map[int]bool{},
		jumps:   map[int]bool{},
		fnNames: map[int]bool{},
		params:  map[int]bool{},
	}
	c.collect(s)

	var out []SemanticToken
	for _, t := range s.Lex.Tokens {
		typ, mods := c.classify(t)
		if typ == "" {
			continue
		}
		i := legend.GetTokenTypeIndex(typ)
		if i < 0 {
			continue
		}
		out = append(out, SemanticToken{
			Range:     t.Range(),
			TokenType: uint32(i),
			Modifiers: legend.GetModifierMask(mods...),
		})
	}
	return out
}

// tokenClassifier holds facts keyed by token start offset.
type tokenClassifier struct {
	roles   map[int]index.Role
	defs    map[int]bool
	jumps   map[int]bool
	fnNames map[int]bool
	params  map[int]bool
}

func (c *tokenClassifier) collect(s *Snapshot) {
	for _, v := range s.Index.Variables() {
		for _, o := range v.Occurrences {
			c.roles[o.Range.Start.Offset] = o.Role
		}
		if v.Definition != nil {
			c.defs[v.Definition.Range.Start.Offset] = true
		}
	}
	for _, j := range s.Index.Jumps {
		c.jumps[j.TargetToken.Start.Offset] = true
	}
	for _, f := range s.Index.Functions() {
		for _, o := range f.Occurrences {
			c.fnNames[o.Range.Start.Offset] = true
			if o.Role == index.Declare {
				c.defs[o.Range.Start.Offset] = true
			}
		}
	}
	s.Program.Statements(func(_ *ast.Line, stmt ast.Statement) {
		def, ok := stmt.(*ast.DefFnStatement)
		if !ok {
			return
		}
		names := map[string]bool{}
		for _, p := range def.Params {
			names[p.Name] = true
			c.params[p.Token.Start.Offset] = true
		}
		ast.Inspect(def.Body, func(n ast.Node) bool {
			if id, ok := n.(*ast.Identifier); ok && names[id.Name] {
				c.params[id.Token.Start.Offset] = true
			}
			return true
		})
	})
}

func (c *tokenClassifier) classify(t token.Token) (string, []string) {
	off := t.Start.Offset
	switch t.Kind {
	case token.LineNumber:
		return TokenTypeLabel, []string{TokenModifierDeclaration}
	case token.Number:
		if c.jumps[off] {
			return TokenTypeLabel, nil
		}
		return TokenTypeNumber, nil
	case token.String:
		return TokenTypeString, nil
	case token.Comment:
		return TokenTypeComment, nil
	case token.Keyword:
		return TokenTypeKeyword, nil
	case token.Function:
		return TokenTypeFunction, []string{TokenModifierDefaultLibrary}
	case token.Operator:
		return TokenTypeOperator, nil
	case token.Identifier:
		return c.identifier(off)
	}
	return "", nil
}

func (c *tokenClassifier) identifier(off int) (string, []string) {
	if c.fnNames[off] {
		if c.defs[off] {
			return TokenTypeFunction, []string{TokenModifierDeclaration, TokenModifierDefinition}
		}
		return TokenTypeFunction, nil
	}
	if c.params[off] {
		return TokenTypeParameter, nil
	}
	var mods []string
	switch c.roles[off] {
	case index.Declare:
		mods = append(mods, TokenModifierDeclaration)
	case index.Assign:
		mods = append(mods, TokenModifierModification)
	}
	if c.defs[off] {
		mods = append(mods, TokenModifierDefinition)
	}
	return TokenTypeVariable, mods
}
