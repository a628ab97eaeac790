package analysis

import (
	"fmt"

	"github.com/stefdev49/vs-zx-sub002/internal/index"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// OutlineKind classifies an outline entry.
type OutlineKind int

const (
	OutlineSubroutine OutlineKind = iota
	OutlineFunction
	OutlineArray
	OutlineVariable
)

// OutlineSymbol is one entry of the document outline.
type OutlineSymbol struct {
	Name   string
	Detail string
	Kind   OutlineKind
	// Range covers the whole declaration, SelectionRange its name.
	Range          token.Range
	SelectionRange token.Range
}

// Outline lists the program's subroutines, DEF FN functions, arrays and
// variables, in that order.
func (s *Snapshot) Outline() []OutlineSymbol {
	var out []OutlineSymbol

	for _, sub := range s.Index.Subroutines() {
		r := sub.Start.Line.Range()
		detail := "no RETURN"
		if sub.End != nil {
			r.End = sub.End.Line.Range().End
			detail = fmt.Sprintf("lines %d-%d", sub.Start.Number, sub.End.Number)
		}
		out = append(out, OutlineSymbol{
			Name:           fmt.Sprintf("GOSUB %d", sub.Start.Number),
			Detail:         detail,
			Kind:           OutlineSubroutine,
			Range:          r,
			SelectionRange: sub.Start.Range(),
		})
	}

	for _, f := range s.Index.Functions() {
		if f.Definition == nil {
			continue
		}
		out = append(out, OutlineSymbol{
			Name:           "FN " + f.Name,
			Detail:         f.Definition.String(),
			Kind:           OutlineFunction,
			Range:          f.Definition.Range(),
			SelectionRange: f.Definition.Name.Range(),
		})
	}

	var scalars []OutlineSymbol
	for _, v := range s.Index.Variables() {
		if v.Key.Kind.IsArray() {
			if !v.Declared() {
				continue
			}
			out = append(out, OutlineSymbol{
				Name:           v.Key.DisplayName(),
				Detail:         fmt.Sprintf("%s, %d dimension(s)", v.Key.Kind, v.Dimensions),
				Kind:           OutlineArray,
				Range:          v.DimRange,
				SelectionRange: firstDeclaration(v).Range,
			})
			continue
		}
		if v.Definition == nil {
			continue
		}
		scalars = append(scalars, OutlineSymbol{
			Name:           v.Key.DisplayName(),
			Detail:         v.Key.Kind.String(),
			Kind:           OutlineVariable,
			Range:          v.Definition.Range,
			SelectionRange: v.Definition.Range,
		})
	}
	return append(out, scalars...)
}

func firstDeclaration(v *index.VariableEntity) *index.Occurrence {
	for i := range v.Occurrences {
		if v.Occurrences[i].Role == index.Declare {
			return &v.Occurrences[i]
		}
	}
	return &v.Occurrences[0]
}

// VariableDetail describes a variable for hovers and completion items.
func VariableDetail(v *index.VariableEntity) string {
	if v.Declared() {
		return fmt.Sprintf("%s %s, %d dimension(s)", v.Key.Kind, v.Key.DisplayName(), v.Dimensions)
	}
	return fmt.Sprintf("%s %s", v.Key.Kind, v.Key.DisplayName())
}
