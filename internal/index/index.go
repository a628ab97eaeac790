// Package index builds the Program Index of one document snapshot: the
// line-number table, variable entities keyed by (name, kind), control-flow
// jumps, subroutines, DEF FN functions and the type facts diagnostics rely
// on. An Index is built once per snapshot and never mutated afterwards.
package index

import (
	"sort"

	"github.com/stefdev49/vs-zx-sub002/internal/ast"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// Line numbers outside this range are invalid.
const (
	MinLineNumber = 1
	MaxLineNumber = 9999
)

// Kind is the coarse type tag of a variable.
type Kind int

const (
	Numeric Kind = iota
	String
	NumericArray
	StringArray
	LoopVariable
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric variable"
	case String:
		return "string variable"
	case NumericArray:
		return "numeric array"
	case StringArray:
		return "string array"
	case LoopVariable:
		return "loop variable"
	}
	return "unknown"
}

// IsArray reports whether the kind is an array kind.
func (k Kind) IsArray() bool {
	return k == NumericArray || k == StringArray
}

// Key identifies a variable. BaseName is upper-case without the $ suffix.
type Key struct {
	BaseName string
	Kind     Kind
}

// DisplayName returns the name as written in a program: A, A$, A() or A$().
func (k Key) DisplayName() string {
	switch k.Kind {
	case String:
		return k.BaseName + "$"
	case NumericArray:
		return k.BaseName + "()"
	case StringArray:
		return k.BaseName + "$()"
	}
	return k.BaseName
}

// SourceName returns the name with its $ suffix but without parentheses.
func (k Key) SourceName() string {
	if k.Kind == String || k.Kind == StringArray {
		return k.BaseName + "$"
	}
	return k.BaseName
}

// Role says how an occurrence uses its variable.
type Role int

const (
	Use Role = iota
	Assign
	Declare
)

// Occurrence is one appearance of a name in the program.
type Occurrence struct {
	Range      token.Range
	Role       Role
	LineNumber int
	SourceLine int
}

// VariableEntity is one variable of the program.
type VariableEntity struct {
	Key Key
	// Definition is the first binding occurrence, nil when the variable is
	// only ever read.
	Definition  *Occurrence
	Occurrences []Occurrence
	// Dimensions is set for arrays declared by DIM.
	Dimensions int
	DimRange   token.Range
}

// Declared reports whether an array has a DIM statement.
func (v *VariableEntity) Declared() bool {
	return v.Dimensions > 0
}

// LineEntry is one numbered program line. Duplicates get their own entry.
type LineEntry struct {
	Number     int
	Token      token.Token
	SourceLine int
	Text       string
	// Valid is false for numbers that are not integers in 1..9999.
	Valid bool
	Line  *ast.Line
}

// Range returns the range of the line-number token.
func (e *LineEntry) Range() token.Range {
	return e.Token.Range()
}

// JumpKind classifies a control-flow reference to a line number.
type JumpKind int

const (
	JumpGoto JumpKind = iota
	JumpGosub
	JumpRun
	JumpRestore
	JumpList
	JumpSaveLine
)

func (k JumpKind) String() string {
	switch k {
	case JumpGoto:
		return "GOTO"
	case JumpGosub:
		return "GOSUB"
	case JumpRun:
		return "RUN"
	case JumpRestore:
		return "RESTORE"
	case JumpList:
		return "LIST"
	case JumpSaveLine:
		return "SAVE LINE"
	}
	return "unknown"
}

// Jump is a literal line-number reference. It is recorded whether or not
// the target line exists.
type Jump struct {
	Kind             JumpKind
	CallerLine       int
	CallerSourceLine int
	Target           int
	TargetToken      token.Token
	Keyword          token.Token
}

// TargetRange is the range of the literal target.
func (j Jump) TargetRange() token.Range {
	return j.TargetToken.Range()
}

// ComputedJump is a jump whose target is an expression.
type ComputedJump struct {
	Kind             JumpKind
	CallerLine       int
	CallerSourceLine int
	Keyword          token.Token
	Expr             ast.Expression
}

// Conflict is a type-consistency fact: a use that disagrees with the kind
// of its operands or variable.
type Conflict struct {
	Range   token.Range
	Message string
}

// Marker points at a statement of interest, such as FOR, NEXT or RETURN.
type Marker struct {
	Name      string
	Statement ast.Statement
	Line      *ast.Line
}

// ArrayUse is one subscripted reference to an array variable.
type ArrayUse struct {
	Key        Key
	Range      token.Range
	Subscripts int
	HasSlice   bool
}

// DimDecl is one array declared by DIM.
type DimDecl struct {
	Key  Key
	Name *ast.Identifier
	Decl *ast.DimDecl
}

// Function is a DEF FN function and its FN call sites.
type Function struct {
	Name        string
	Definition  *ast.DefFnStatement
	Occurrences []Occurrence
}

// Subroutine is the range from a GOSUB target line down to the first
// line (in source order) containing a RETURN.
type Subroutine struct {
	Start *LineEntry
	// End is nil when no RETURN follows the start line.
	End     *LineEntry
	Callers []Jump
}

// Index is the Program Index of one document snapshot.
type Index struct {
	Program *ast.Program

	Lines         []*LineEntry
	Jumps         []Jump
	ComputedJumps []ComputedJump
	Conflicts     []Conflict
	ArrayUses     []ArrayUse
	Dims          []DimDecl

	Fors    []Marker
	Nexts   []Marker
	Gosubs  []Marker
	Returns []Marker

	byNumber  map[int][]*LineEntry
	variables map[Key]*VariableEntity
	order     []Key
	functions map[string]*Function
	fnOrder   []string

	subroutines []*Subroutine
}

// LinesByNumber returns every line entry with number n in source order.
func (ix *Index) LinesByNumber(n int) []*LineEntry {
	return ix.byNumber[n]
}

// Line returns the first line entry numbered n.
func (ix *Index) Line(n int) (*LineEntry, bool) {
	entries := ix.byNumber[n]
	if len(entries) == 0 {
		return nil, false
	}
	return entries[0], true
}

// LineAt returns the entry whose text is on the given 1-based source line.
func (ix *Index) LineAt(sourceLine int) (*LineEntry, bool) {
	i := sort.Search(len(ix.Lines), func(i int) bool { return ix.Lines[i].SourceLine >= sourceLine })
	if i < len(ix.Lines) && ix.Lines[i].SourceLine == sourceLine {
		return ix.Lines[i], true
	}
	return nil, false
}

// Variable returns the entity for key.
func (ix *Index) Variable(key Key) (*VariableEntity, bool) {
	v, ok := ix.variables[key]
	return v, ok
}

// Variables returns every entity ordered by first occurrence.
func (ix *Index) Variables() []*VariableEntity {
	out := make([]*VariableEntity, 0, len(ix.order))
	for _, k := range ix.order {
		out = append(out, ix.variables[k])
	}
	return out
}

// VariableAt returns the entity with an occurrence at pos.
func (ix *Index) VariableAt(pos token.Position) (*VariableEntity, *Occurrence, bool) {
	for _, k := range ix.order {
		v := ix.variables[k]
		for i := range v.Occurrences {
			if v.Occurrences[i].Range.Contains(pos) {
				return v, &v.Occurrences[i], true
			}
		}
	}
	return nil, nil, false
}

// Functions returns every DEF FN function ordered by first occurrence.
func (ix *Index) Functions() []*Function {
	out := make([]*Function, 0, len(ix.fnOrder))
	for _, name := range ix.fnOrder {
		out = append(out, ix.functions[name])
	}
	return out
}

// Function returns the DEF FN function named name (with $ suffix if any).
func (ix *Index) Function(name string) (*Function, bool) {
	f, ok := ix.functions[name]
	return f, ok
}

// FunctionAt returns the function whose name occurs at pos.
func (ix *Index) FunctionAt(pos token.Position) (*Function, *Occurrence, bool) {
	for _, name := range ix.fnOrder {
		f := ix.functions[name]
		for i := range f.Occurrences {
			if f.Occurrences[i].Range.Contains(pos) {
				return f, &f.Occurrences[i], true
			}
		}
	}
	return nil, nil, false
}

// JumpsTo returns every jump targeting line n in source order.
func (ix *Index) JumpsTo(n int) []Jump {
	var out []Jump
	for _, j := range ix.Jumps {
		if j.Target == n {
			out = append(out, j)
		}
	}
	return out
}

// JumpAt returns the jump whose target literal lies at pos.
func (ix *Index) JumpAt(pos token.Position) (Jump, bool) {
	for _, j := range ix.Jumps {
		if j.TargetRange().Contains(pos) {
			return j, true
		}
	}
	return Jump{}, false
}

// CallEdges returns the GOTO and GOSUB jumps, which form the call graph.
func (ix *Index) CallEdges() []Jump {
	var out []Jump
	for _, j := range ix.Jumps {
		if j.Kind == JumpGoto || j.Kind == JumpGosub {
			out = append(out, j)
		}
	}
	return out
}

// Subroutines returns one subroutine per distinct existing GOSUB target,
// ordered by start line in source order.
func (ix *Index) Subroutines() []*Subroutine {
	return ix.subroutines
}

// SubroutineAt returns the subroutine starting at line n.
func (ix *Index) SubroutineAt(n int) (*Subroutine, bool) {
	for _, s := range ix.Subroutines() {
		if s.Start.Number == n {
			return s, true
		}
	}
	return nil, false
}

// Contains reports whether the source line lies within the subroutine.
func (s *Subroutine) Contains(sourceLine int) bool {
	if sourceLine < s.Start.SourceLine {
		return false
	}
	return s.End == nil || sourceLine <= s.End.SourceLine
}

func (ix *Index) buildSubroutines() {
	targets := map[int][]Jump{}
	var order []int
	for _, j := range ix.Jumps {
		if j.Kind != JumpGosub {
			continue
		}
		if _, seen := targets[j.Target]; !seen {
			order = append(order, j.Target)
		}
		targets[j.Target] = append(targets[j.Target], j)
	}

	returnLines := map[int]bool{}
	for _, r := range ix.Returns {
		returnLines[r.Line.SourceLine] = true
	}

	for _, n := range order {
		start, ok := ix.Line(n)
		if !ok {
			continue
		}
		sub := &Subroutine{Start: start, Callers: targets[n]}
		for _, e := range ix.Lines {
			if e.SourceLine >= start.SourceLine && returnLines[e.SourceLine] {
				sub.End = e
				break
			}
		}
		ix.subroutines = append(ix.subroutines, sub)
	}
	sort.SliceStable(ix.subroutines, func(i, j int) bool {
		return ix.subroutines[i].Start.SourceLine < ix.subroutines[j].Start.SourceLine
	})
}
