package analysis

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/stefdev49/vs-zx-sub002/internal/index"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// ErrInvalidName is returned by Rename when the new name cannot be used.
var ErrInvalidName = errors.New("invalid new name")

// TextEdit replaces the text of Range with NewText.
type TextEdit struct {
	Range   token.Range
	NewText string
}

// PrepareRename checks that the symbol under pos can be renamed and
// returns the range of its token and the current name to offer.
func (s *Snapshot) PrepareRename(pos token.Position) (token.Range, string, error) {
	sym, err := s.Resolve(pos)
	if err != nil {
		return token.Range{}, "", err
	}
	switch sym.Kind {
	case SymbolVariable:
		return sym.Occurrence.Range, sym.Token.Text, nil
	case SymbolFunction:
		return sym.Occurrence.Range, sym.Token.Text, nil
	}
	if len(s.Index.LinesByNumber(sym.Line)) == 0 {
		return token.Range{}, "", notApplicable("line %d does not exist", sym.Line)
	}
	return sym.Token.Range(), strconv.Itoa(sym.Line), nil
}

// Rename returns the edits that rename the symbol under pos to newName.
//
// A variable keeps its kind: the $ suffix is added when missing and may
// not be added to a numeric name. A line number must be a free number in
// 1-9999; the line and every literal jump to it are rewritten.
func (s *Snapshot) Rename(pos token.Position, newName string) ([]TextEdit, error) {
	sym, err := s.Resolve(pos)
	if err != nil {
		return nil, err
	}
	switch sym.Kind {
	case SymbolVariable:
		return s.renameVariable(sym.Variable, newName)
	case SymbolFunction:
		return s.renameFunction(sym.Function, newName)
	}
	return s.renameLine(sym.Line, newName)
}

func (s *Snapshot) renameVariable(v *index.VariableEntity, newName string) ([]TextEdit, error) {
	stringKind := v.Key.Kind == index.String || v.Key.Kind == index.StringArray
	base, err := checkName(newName, stringKind, v.Key.Kind != index.Numeric)
	if err != nil {
		return nil, err
	}
	upper := strings.ToUpper(base)
	if upper != v.Key.BaseName {
		for _, k := range collisionKinds(v.Key.Kind) {
			if other, ok := s.Index.Variable(index.Key{BaseName: upper, Kind: k}); ok {
				return nil, fmt.Errorf("%w: %s already exists", ErrInvalidName, other.Key.DisplayName())
			}
		}
	}

	text := base
	if stringKind {
		text += "$"
	}
	edits := make([]TextEdit, len(v.Occurrences))
	for i, o := range v.Occurrences {
		edits[i] = TextEdit{Range: o.Range, NewText: text}
	}
	return edits, nil
}

// collisionKinds lists the kinds that share a name slot with k. Numeric
// scalars and loop variables are the same Spectrum variable.
func collisionKinds(k index.Kind) []index.Kind {
	if k == index.Numeric || k == index.LoopVariable {
		return []index.Kind{index.Numeric, index.LoopVariable}
	}
	return []index.Kind{k}
}

func (s *Snapshot) renameFunction(f *index.Function, newName string) ([]TextEdit, error) {
	stringKind := strings.HasSuffix(f.Name, "$")
	base, err := checkName(newName, stringKind, true)
	if err != nil {
		return nil, err
	}
	text := base
	if stringKind {
		text += "$"
	}
	if upper := strings.ToUpper(text); upper != f.Name {
		if _, ok := s.Index.Function(upper); ok {
			return nil, fmt.Errorf("%w: FN %s already exists", ErrInvalidName, upper)
		}
	}
	edits := make([]TextEdit, len(f.Occurrences))
	for i, o := range f.Occurrences {
		edits[i] = TextEdit{Range: o.Range, NewText: text}
	}
	return edits, nil
}

// checkName validates a new variable or function name and returns it
// without its $ suffix.
func checkName(name string, stringKind, single bool) (string, error) {
	base := strings.TrimSpace(name)
	if strings.HasSuffix(base, "$") {
		if !stringKind {
			return "", fmt.Errorf("%w: a numeric name cannot end in $", ErrInvalidName)
		}
		base = strings.TrimSuffix(base, "$")
	}
	if base == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	for i, c := range base {
		letter := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
		digit := c >= '0' && c <= '9'
		if !letter && (i == 0 || !digit) {
			return "", fmt.Errorf("%w: %q must be a letter followed by letters or digits", ErrInvalidName, name)
		}
	}
	if single && len(base) > 1 {
		return "", fmt.Errorf("%w: %q must be a single letter", ErrInvalidName, name)
	}
	upper := strings.ToUpper(base)
	if token.IsReserved(upper) || token.IsReserved(upper+"$") {
		return "", fmt.Errorf("%w: %s is a reserved word", ErrInvalidName, upper)
	}
	return base, nil
}

func (s *Snapshot) renameLine(old int, newName string) ([]TextEdit, error) {
	entries := s.Index.LinesByNumber(old)
	if len(entries) == 0 {
		return nil, notApplicable("line %d does not exist", old)
	}
	n, err := strconv.Atoi(strings.TrimSpace(newName))
	if err != nil || n < index.MinLineNumber || n > index.MaxLineNumber {
		return nil, fmt.Errorf("%w: %q is not a line number (%d-%d)", ErrInvalidName, newName, index.MinLineNumber, index.MaxLineNumber)
	}
	if n == old {
		return nil, nil
	}
	if len(s.Index.LinesByNumber(n)) > 0 {
		return nil, fmt.Errorf("%w: line %d already exists", ErrInvalidName, n)
	}

	text := strconv.Itoa(n)
	var edits []TextEdit
	for _, e := range entries {
		edits = append(edits, TextEdit{Range: e.Range(), NewText: text})
	}
	for _, j := range s.Index.JumpsTo(old) {
		edits = append(edits, TextEdit{Range: j.TargetRange(), NewText: text})
	}
	return edits, nil
}
