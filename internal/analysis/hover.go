package analysis

import (
	"fmt"
	"strings"

	"github.com/stefdev49/vs-zx-sub002/internal/builtins"
	"github.com/stefdev49/vs-zx-sub002/internal/index"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// Hover returns markdown describing the token under pos and the range it
// applies to. Keywords and built-in functions show their documentation,
// variables their kind and use, line numbers the line they address.
func (s *Snapshot) Hover(pos token.Position) (string, token.Range, error) {
	i, ok := s.TokenAt(pos)
	if !ok {
		return "", token.Range{}, notApplicable("no token at %s", pos)
	}
	tok := s.Lex.Tokens[i]

	switch tok.Kind {
	case token.Keyword:
		doc, ok := builtins.GetKeywordDoc(tok.Value)
		if !ok {
			return "", token.Range{}, notApplicable("no documentation for %s", tok.Value)
		}
		return codeBlock(doc.Syntax) + doc.Documentation, tok.Range(), nil

	case token.Function:
		sig := builtins.GetBuiltinSignature(tok.Value)
		if sig == nil {
			return "", token.Range{}, notApplicable("no signature for %s", tok.Value)
		}
		return codeBlock(sig.Label()+" -> "+sig.ReturnType.String()) + sig.Documentation, tok.Range(), nil
	}

	sym, err := s.Resolve(pos)
	if err != nil {
		return "", token.Range{}, err
	}
	switch sym.Kind {
	case SymbolVariable:
		return s.hoverVariable(sym.Variable), sym.Occurrence.Range, nil
	case SymbolFunction:
		return s.hoverFunction(sym.Function), sym.Occurrence.Range, nil
	}
	return s.hoverLine(sym.Line), tok.Range(), nil
}

func codeBlock(code string) string {
	return "```zxbasic\n" + code + "\n```\n\n"
}

func (s *Snapshot) hoverVariable(v *index.VariableEntity) string {
	var sb strings.Builder
	sb.WriteString(codeBlock(VariableDetail(v)))
	if v.Definition != nil {
		fmt.Fprintf(&sb, "First assigned on line %s.\n\n", lineLabel(v.Definition))
	} else {
		sb.WriteString("Never assigned.\n\n")
	}
	fmt.Fprintf(&sb, "%d reference(s).", len(v.Occurrences))
	return sb.String()
}

func lineLabel(o *index.Occurrence) string {
	if o.LineNumber > 0 {
		return fmt.Sprint(o.LineNumber)
	}
	return fmt.Sprintf("%d of the file", o.SourceLine)
}

func (s *Snapshot) hoverFunction(f *index.Function) string {
	if f.Definition == nil {
		return codeBlock("FN "+f.Name) + "No DEF FN defines this function."
	}
	return codeBlock(f.Definition.String()) + fmt.Sprintf("%d use(s).", len(f.Occurrences)-1)
}

func (s *Snapshot) hoverLine(n int) string {
	entries := s.Index.LinesByNumber(n)
	if len(entries) == 0 {
		return fmt.Sprintf("Line %d does not exist.", n)
	}
	var sb strings.Builder
	sb.WriteString(codeBlock(strings.TrimSpace(entries[0].Text)))
	if len(entries) > 1 {
		fmt.Fprintf(&sb, "Line %d is defined %d times.\n\n", n, len(entries))
	}
	if _, ok := s.Index.SubroutineAt(n); ok {
		sb.WriteString("Subroutine entry point.\n\n")
	}
	var callers []string
	for _, j := range s.Index.JumpsTo(n) {
		callers = append(callers, fmt.Sprintf("%s from %d", j.Kind, j.CallerLine))
	}
	if len(callers) == 0 {
		sb.WriteString("Not referenced.")
	} else {
		sb.WriteString("Referenced by " + strings.Join(callers, ", ") + ".")
	}
	return sb.String()
}
