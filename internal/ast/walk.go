package ast

// Inspect traverses node depth-first in source order, calling f for each
// node. If f returns false the children of that node are skipped. Nested
// IF consequences are visited as children of the IF statement.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	each := func(exprs []Expression) {
		for _, e := range exprs {
			if e != nil {
				Inspect(e, f)
			}
		}
	}
	one := func(e Expression) {
		if e != nil {
			Inspect(e, f)
		}
	}

	switch n := node.(type) {
	case *LetStatement:
		one(n.Target)
		one(n.Value)
	case *PrintStatement:
		for _, it := range n.Items {
			each(it.Args)
		}
	case *InputStatement:
		for _, it := range n.Items {
			each(it.Args)
		}
	case *IfStatement:
		one(n.Condition)
		for _, s := range n.Consequence {
			Inspect(s, f)
		}
	case *ForStatement:
		if n.Variable != nil {
			Inspect(n.Variable, f)
		}
		one(n.Start)
		one(n.End)
		one(n.Step)
	case *NextStatement:
		if n.Variable != nil {
			Inspect(n.Variable, f)
		}
	case *DimStatement:
		for _, d := range n.Arrays {
			Inspect(d.Name, f)
			each(d.Dimensions)
		}
	case *GotoStatement:
		one(n.Target)
	case *GosubStatement:
		one(n.Target)
	case *ReadStatement:
		each(n.Targets)
	case *DataStatement:
		each(n.Values)
	case *DefFnStatement:
		if n.Name != nil {
			Inspect(n.Name, f)
		}
		for _, p := range n.Params {
			Inspect(p, f)
		}
		one(n.Body)
	case *CommandStatement:
		each(n.Args)
		for _, c := range n.Clauses {
			each(c.Args)
		}
	case *IndexExpression:
		Inspect(n.Name, f)
		each(n.Args)
	case *SliceRange:
		one(n.From)
		one(n.To)
	case *UnaryExpression:
		one(n.Operand)
	case *BinaryExpression:
		one(n.Left)
		one(n.Right)
	case *CallExpression:
		each(n.Args)
	case *FnCall:
		Inspect(n.Name, f)
		each(n.Args)
	case *ParenExpression:
		one(n.Inner)
	}
}

// Statements calls f for every statement of the program in source order,
// descending into IF consequences. The IF statement itself is visited
// before its consequence.
func (p *Program) Statements(f func(line *Line, stmt Statement)) {
	var visit func(line *Line, stmts []Statement)
	visit = func(line *Line, stmts []Statement) {
		for _, s := range stmts {
			f(line, s)
			if ifs, ok := s.(*IfStatement); ok {
				visit(line, ifs.Consequence)
			}
		}
	}
	for _, line := range p.Lines {
		visit(line, line.Statements)
	}
}
