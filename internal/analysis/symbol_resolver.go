package analysis

import (
	"sort"

	"github.com/stefdev49/vs-zx-sub002/internal/index"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// SymbolKind says what a resolved symbol is.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolLine
)

// Symbol is what the token at a position refers to.
type Symbol struct {
	Kind SymbolKind
	// Token is the token the position resolved through.
	Token token.Token

	Variable   *index.VariableEntity
	Occurrence *index.Occurrence
	Function   *index.Function
	// Line is the line number for SymbolLine.
	Line int
}

// Resolve finds the symbol under pos: a variable, a DEF FN function, a
// line-number token or a literal jump target.
func (s *Snapshot) Resolve(pos token.Position) (*Symbol, error) {
	i, ok := s.TokenAt(pos)
	if !ok {
		return nil, notApplicable("no token at %s", pos)
	}
	tok := s.Lex.Tokens[i]
	sym := &Symbol{Token: tok}

	switch tok.Kind {
	case token.Identifier:
		if v, occ, ok := s.Index.VariableAt(tok.Start); ok {
			sym.Kind, sym.Variable, sym.Occurrence = SymbolVariable, v, occ
			return sym, nil
		}
		if f, occ, ok := s.Index.FunctionAt(tok.Start); ok {
			sym.Kind, sym.Function, sym.Occurrence = SymbolFunction, f, occ
			return sym, nil
		}
		return nil, notApplicable("%s is not a program variable", tok.Value)

	case token.LineNumber:
		e, ok := s.Index.LineAt(tok.Start.Line)
		if !ok || e.Number < 0 {
			return nil, notApplicable("%s is not a valid line number", tok.Text)
		}
		sym.Kind, sym.Line = SymbolLine, e.Number
		return sym, nil

	case token.Number:
		if j, ok := s.Index.JumpAt(tok.Start); ok {
			sym.Kind, sym.Line = SymbolLine, j.Target
			return sym, nil
		}
	}
	return nil, notApplicable("nothing to resolve at %s", pos)
}

// Definition returns where the symbol under pos is defined: the first
// binding of a variable (or its first use when it is never bound), the
// DEF FN of a function, or every line carrying a line number.
func (s *Snapshot) Definition(pos token.Position) ([]token.Range, error) {
	sym, err := s.Resolve(pos)
	if err != nil {
		return nil, err
	}
	switch sym.Kind {
	case SymbolVariable:
		def := sym.Variable.Definition
		if def == nil {
			def = &sym.Variable.Occurrences[0]
		}
		return []token.Range{def.Range}, nil
	case SymbolFunction:
		if sym.Function.Definition == nil {
			return nil, notApplicable("FN %s has no DEF FN", sym.Function.Name)
		}
		return []token.Range{sym.Function.Definition.Name.Range()}, nil
	}

	entries := s.Index.LinesByNumber(sym.Line)
	if len(entries) == 0 {
		return nil, notApplicable("line %d does not exist", sym.Line)
	}
	out := make([]token.Range, len(entries))
	for i, e := range entries {
		out[i] = e.Range()
	}
	return out, nil
}

// References returns every occurrence of the symbol under pos in source
// order. For a line number the occurrences are its line-number tokens and
// every literal jump to it. includeDeclaration controls whether the
// defining occurrences are part of the result.
func (s *Snapshot) References(pos token.Position, includeDeclaration bool) ([]token.Range, error) {
	sym, err := s.Resolve(pos)
	if err != nil {
		return nil, err
	}

	var out []token.Range
	switch sym.Kind {
	case SymbolVariable:
		def := sym.Variable.Definition
		for i := range sym.Variable.Occurrences {
			o := &sym.Variable.Occurrences[i]
			if !includeDeclaration && o == def {
				continue
			}
			out = append(out, o.Range)
		}
	case SymbolFunction:
		for _, o := range sym.Function.Occurrences {
			if !includeDeclaration && o.Role == index.Declare {
				continue
			}
			out = append(out, o.Range)
		}
	case SymbolLine:
		if includeDeclaration {
			for _, e := range s.Index.LinesByNumber(sym.Line) {
				out = append(out, e.Range())
			}
		}
		for _, j := range s.Index.JumpsTo(sym.Line) {
			out = append(out, j.TargetRange())
		}
	}
	sortRanges(out)
	return out, nil
}

func sortRanges(rs []token.Range) {
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Start.Offset < rs[j].Start.Offset })
}
