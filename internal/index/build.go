package index

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/stefdev49/vs-zx-sub002/internal/ast"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// Build indexes a parsed program.
func Build(prog *ast.Program) *Index {
	ix := &Index{
		Program:   prog,
		byNumber:  map[int][]*LineEntry{},
		variables: map[Key]*VariableEntity{},
		functions: map[string]*Function{},
	}
	b := &builder{ix: ix, dims: map[Key]int{}, loopVars: map[string]bool{}}
	b.prescan(prog)

	for _, line := range prog.Lines {
		b.line = line
		b.lineNumber = 0
		if line.Number != nil {
			entry := newLineEntry(line)
			ix.Lines = append(ix.Lines, entry)
			if entry.Number >= 0 {
				ix.byNumber[entry.Number] = append(ix.byNumber[entry.Number], entry)
			}
			if entry.Valid {
				b.lineNumber = entry.Number
			}
		}
		b.statements(line.Statements)
	}

	for _, v := range ix.variables {
		sort.SliceStable(v.Occurrences, func(i, j int) bool {
			return v.Occurrences[i].Range.Start.Offset < v.Occurrences[j].Range.Start.Offset
		})
		for i := range v.Occurrences {
			if v.Occurrences[i].Role != Use {
				v.Definition = &v.Occurrences[i]
				break
			}
		}
	}
	sort.SliceStable(ix.order, func(i, j int) bool {
		return ix.variables[ix.order[i]].Occurrences[0].Range.Start.Offset <
			ix.variables[ix.order[j]].Occurrences[0].Range.Start.Offset
	})
	ix.buildSubroutines()
	return ix
}

func newLineEntry(line *ast.Line) *LineEntry {
	e := &LineEntry{Number: -1, Token: *line.Number, SourceLine: line.SourceLine, Text: line.Text, Line: line}
	v, err := strconv.ParseFloat(line.Number.Value, 64)
	if err != nil || v != math.Trunc(v) {
		return e
	}
	e.Number = int(math.Min(v, math.MaxInt32))
	e.Valid = e.Number >= MinLineNumber && e.Number <= MaxLineNumber
	return e
}

type builder struct {
	ix         *Index
	line       *ast.Line
	lineNumber int

	// dims holds the dimension count of the first DIM per array key.
	dims map[Key]int
	// loopVars holds numeric names whose first binding is a FOR.
	loopVars map[string]bool
	// params holds DEF FN parameter names while indexing a function body.
	params map[string]bool
}

// prescan collects declarations whose effect does not depend on source
// order: array dimensions and the binding kind of numeric scalars.
func (b *builder) prescan(prog *ast.Program) {
	bound := map[string]bool{}
	bind := func(name string, loop bool) {
		if !bound[name] {
			bound[name] = true
			b.loopVars[name] = loop
		}
	}
	bindTarget := func(e ast.Expression) {
		if id, ok := e.(*ast.Identifier); ok && !id.IsString() {
			bind(id.Name, false)
		}
	}
	prog.Statements(func(_ *ast.Line, stmt ast.Statement) {
		switch s := stmt.(type) {
		case *ast.DimStatement:
			for _, d := range s.Arrays {
				key := arrayKey(d.Name)
				if _, seen := b.dims[key]; !seen {
					b.dims[key] = len(d.Dimensions)
				}
			}
		case *ast.ForStatement:
			if !s.Variable.IsString() {
				bind(s.Variable.Name, true)
			}
		case *ast.LetStatement:
			bindTarget(s.Target)
		case *ast.InputStatement:
			for _, t := range s.Targets {
				bindTarget(t)
			}
		case *ast.ReadStatement:
			for _, t := range s.Targets {
				bindTarget(t)
			}
		}
	})
}

func arrayKey(id *ast.Identifier) Key {
	if id.IsString() {
		return Key{BaseName: id.BaseName(), Kind: StringArray}
	}
	return Key{BaseName: id.Name, Kind: NumericArray}
}

// scalarKey resolves a plain identifier.
func (b *builder) scalarKey(id *ast.Identifier) Key {
	if id.IsString() {
		return Key{BaseName: id.BaseName(), Kind: String}
	}
	if b.loopVars[id.Name] {
		return Key{BaseName: id.Name, Kind: LoopVariable}
	}
	return Key{BaseName: id.Name, Kind: Numeric}
}

// indexedKey resolves Name(...). A$(...) is a string array element when A$
// is DIMensioned anywhere, otherwise a slice of the string A$.
func (b *builder) indexedKey(id *ast.Identifier) (Key, bool) {
	if id.IsString() {
		key := Key{BaseName: id.BaseName(), Kind: StringArray}
		if _, declared := b.dims[key]; declared {
			return key, true
		}
		return Key{BaseName: id.BaseName(), Kind: String}, false
	}
	return Key{BaseName: id.Name, Kind: NumericArray}, true
}

func (b *builder) occurrence(key Key, r token.Range, role Role) {
	v, ok := b.ix.variables[key]
	if !ok {
		v = &VariableEntity{Key: key}
		b.ix.variables[key] = v
		b.ix.order = append(b.ix.order, key)
	}
	v.Occurrences = append(v.Occurrences, Occurrence{
		Range:      r,
		Role:       role,
		LineNumber: b.lineNumber,
		SourceLine: b.line.SourceLine,
	})
}

func (b *builder) conflict(r token.Range, format string, args ...any) {
	b.ix.Conflicts = append(b.ix.Conflicts, Conflict{Range: r, Message: fmt.Sprintf(format, args...)})
}

func (b *builder) marker(list *[]Marker, name string, stmt ast.Statement) {
	*list = append(*list, Marker{Name: name, Statement: stmt, Line: b.line})
}

func (b *builder) statements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		b.statement(stmt)
	}
}

func (b *builder) statement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		b.target(s.Target)
		valueKind := b.expr(s.Value)
		b.checkAssign(s.Target, valueKind, s.Value.Range())

	case *ast.PrintStatement:
		b.printItems(s.Items, false)

	case *ast.InputStatement:
		b.printItems(s.Items, true)
		if s.Line {
			for _, t := range s.Targets {
				if kindOf(t) != kindString {
					b.conflict(t.Range(), "INPUT LINE needs a string variable, not %s", t.String())
				}
			}
		}

	case *ast.IfStatement:
		b.expr(s.Condition)
		b.statements(s.Consequence)

	case *ast.ForStatement:
		key := b.scalarKey(s.Variable)
		b.occurrence(key, s.Variable.Range(), Assign)
		if s.Variable.IsString() {
			b.conflict(s.Variable.Range(), "FOR loop variable %s must be numeric", s.Variable.Name)
		}
		for _, e := range []ast.Expression{s.Start, s.End, s.Step} {
			if e != nil && b.expr(e) == kindString {
				b.conflict(e.Range(), "FOR limits must be numeric")
			}
		}
		b.marker(&b.ix.Fors, s.Variable.Name, s)

	case *ast.NextStatement:
		name := ""
		if s.Variable != nil {
			name = s.Variable.Name
			b.occurrence(b.scalarKey(s.Variable), s.Variable.Range(), Use)
		}
		b.marker(&b.ix.Nexts, name, s)

	case *ast.DimStatement:
		for _, d := range s.Arrays {
			key := arrayKey(d.Name)
			b.occurrence(key, d.Name.Range(), Declare)
			v := b.ix.variables[key]
			if v.Dimensions == 0 {
				v.Dimensions = len(d.Dimensions)
				v.DimRange = d.Span
			}
			for _, dim := range d.Dimensions {
				if b.expr(dim) == kindString {
					b.conflict(dim.Range(), "Array dimensions must be numeric")
				}
			}
			b.ix.Dims = append(b.ix.Dims, DimDecl{Key: key, Name: d.Name, Decl: d})
		}

	case *ast.GotoStatement:
		b.jump(JumpGoto, s.Keyword, s.Target)

	case *ast.GosubStatement:
		b.jump(JumpGosub, s.Keyword, s.Target)
		b.marker(&b.ix.Gosubs, "", s)

	case *ast.ReadStatement:
		for _, t := range s.Targets {
			b.target(t)
		}

	case *ast.DataStatement:
		for _, v := range s.Values {
			b.expr(v)
		}

	case *ast.ReturnStatement:
		b.marker(&b.ix.Returns, "", s)

	case *ast.DefFnStatement:
		b.defFn(s)

	case *ast.CommandStatement:
		b.command(s)

	case *ast.RawStatement:
		b.rawJumps(s)
	}
}

// rawJumps recovers literal GOTO and GOSUB targets from a statement that
// failed to parse, so renumbering still rewrites them.
func (b *builder) rawJumps(s *ast.RawStatement) {
	toks := s.Tokens
	for i := 0; i+1 < len(toks); i++ {
		kw, num := toks[i], toks[i+1]
		if !kw.IsKeyword("GOTO", "GOSUB") || num.Kind != token.Number {
			continue
		}
		if i+2 < len(toks) && toks[i+2].Kind != token.Colon {
			continue
		}
		v, err := strconv.ParseFloat(num.Value, 64)
		if err != nil || v != math.Trunc(v) {
			continue
		}
		kind := JumpGoto
		if kw.IsKeyword("GOSUB") {
			kind = JumpGosub
			b.marker(&b.ix.Gosubs, "", s)
		}
		b.ix.Jumps = append(b.ix.Jumps, Jump{
			Kind:             kind,
			CallerLine:       b.lineNumber,
			CallerSourceLine: b.line.SourceLine,
			Target:           int(math.Min(v, math.MaxInt32)),
			TargetToken:      num,
			Keyword:          kw,
		})
	}
}

func (b *builder) printItems(items []ast.PrintItem, input bool) {
	for _, it := range items {
		for _, arg := range it.Args {
			isTarget := it.Modifier == nil || it.Modifier.IsKeyword("LINE")
			if input && isTarget {
				switch arg.(type) {
				case *ast.Identifier, *ast.IndexExpression:
					b.target(arg)
					continue
				}
			}
			k := b.expr(arg)
			if it.Modifier != nil && k == kindString {
				b.conflict(arg.Range(), "%s needs a numeric argument", it.Modifier.Value)
			}
		}
	}
}

// target records an assignment to a variable, array element or slice.
func (b *builder) target(e ast.Expression) {
	switch t := e.(type) {
	case *ast.Identifier:
		b.occurrence(b.scalarKey(t), t.Range(), Assign)
	case *ast.IndexExpression:
		b.index(t, Assign)
	default:
		b.expr(e)
	}
}

func (b *builder) checkAssign(target ast.Expression, value valueKind, valueRange token.Range) {
	want := kindOf(target)
	if value == kindUnknown || want == kindUnknown || value == want {
		return
	}
	name := target.String()
	if id, ok := target.(*ast.IndexExpression); ok {
		name = id.Name.Name
	}
	if want == kindString {
		b.conflict(valueRange, "Cannot assign a number to string variable %s", name)
	} else {
		b.conflict(valueRange, "Cannot assign a string to numeric variable %s", name)
	}
}

func (b *builder) jump(kind JumpKind, kw token.Token, target ast.Expression) {
	if target == nil {
		return
	}
	if lit, ok := target.(*ast.NumberLiteral); ok && lit.IsInteger() {
		b.ix.Jumps = append(b.ix.Jumps, Jump{
			Kind:             kind,
			CallerLine:       b.lineNumber,
			CallerSourceLine: b.line.SourceLine,
			Target:           int(math.Min(lit.Value, math.MaxInt32)),
			TargetToken:      lit.Token,
			Keyword:          kw,
		})
		return
	}
	if b.expr(target) == kindString {
		b.conflict(target.Range(), "%s needs a numeric line number", kind)
	}
	b.ix.ComputedJumps = append(b.ix.ComputedJumps, ComputedJump{
		Kind:             kind,
		CallerLine:       b.lineNumber,
		CallerSourceLine: b.line.SourceLine,
		Keyword:          kw,
		Expr:             target,
	})
}

var commandJumps = map[string]JumpKind{
	"RUN":     JumpRun,
	"RESTORE": JumpRestore,
	"LIST":    JumpList,
	"LLIST":   JumpList,
}

func (b *builder) command(s *ast.CommandStatement) {
	args := s.Args
	if kind, ok := commandJumps[s.Name()]; ok && len(args) > 0 {
		b.jump(kind, s.Keyword, args[0])
		args = args[1:]
	}
	for _, a := range args {
		b.expr(a)
	}
	for _, c := range s.Clauses {
		cargs := c.Args
		if c.Keyword.IsKeyword("LINE") && s.Name() == "SAVE" && len(cargs) > 0 {
			b.jump(JumpSaveLine, c.Keyword, cargs[0])
			cargs = cargs[1:]
		}
		if c.Keyword.IsKeyword("DATA") {
			// SAVE "x" DATA a() names an array without subscripts.
			for _, a := range cargs {
				if idx, ok := a.(*ast.IndexExpression); ok && len(idx.Args) == 0 {
					key, _ := b.indexedKey(idx.Name)
					b.occurrence(key, idx.Name.Range(), Use)
					continue
				}
				b.expr(a)
			}
			continue
		}
		for _, a := range cargs {
			b.expr(a)
		}
	}
}

func (b *builder) defFn(s *ast.DefFnStatement) {
	name := s.Name.Name
	f, ok := b.ix.functions[name]
	if !ok {
		f = &Function{Name: name}
		b.ix.functions[name] = f
		b.ix.fnOrder = append(b.ix.fnOrder, name)
	}
	if f.Definition == nil {
		f.Definition = s
	}
	f.Occurrences = append(f.Occurrences, Occurrence{
		Range: s.Name.Range(), Role: Declare, LineNumber: b.lineNumber, SourceLine: b.line.SourceLine,
	})

	b.params = map[string]bool{}
	for _, p := range s.Params {
		b.params[p.Name] = true
	}
	bodyKind := b.expr(s.Body)
	b.params = nil

	want := kindNumeric
	if s.Name.IsString() {
		want = kindString
	}
	if bodyKind != kindUnknown && bodyKind != want {
		b.conflict(s.Body.Range(), "FN %s must return a %s", name, want)
	}
}

func (b *builder) fnCall(c *ast.FnCall) {
	name := c.Name.Name
	f, ok := b.ix.functions[name]
	if !ok {
		f = &Function{Name: name}
		b.ix.functions[name] = f
		b.ix.fnOrder = append(b.ix.fnOrder, name)
	}
	f.Occurrences = append(f.Occurrences, Occurrence{
		Range: c.Name.Range(), Role: Use, LineNumber: b.lineNumber, SourceLine: b.line.SourceLine,
	})
}

// index records Name(args) and checks it against the array's kind.
func (b *builder) index(e *ast.IndexExpression, role Role) {
	key, isArray := b.indexedKey(e.Name)
	b.occurrence(key, e.Name.Range(), role)
	for _, a := range e.Args {
		if b.expr(a) == kindString {
			b.conflict(a.Range(), "Subscripts must be numeric")
		}
	}
	if !isArray {
		if len(e.Args) > 1 {
			b.conflict(e.Range(), "String %s is not an array; DIM %s(...) first", e.Name.Name, e.Name.Name)
		}
		return
	}
	if key.Kind == NumericArray && e.HasSlice() {
		b.conflict(e.Range(), "Cannot slice numeric array %s", e.Name.Name)
	}
	b.ix.ArrayUses = append(b.ix.ArrayUses, ArrayUse{
		Key:        key,
		Range:      e.Range(),
		Subscripts: len(e.Args),
		HasSlice:   e.HasSlice(),
	})
}
