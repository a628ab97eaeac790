package analysis

import (
	"sort"

	"github.com/stefdev49/vs-zx-sub002/internal/ast"
)

// Folding range kinds.
const (
	FoldingRegion  = "region"
	FoldingComment = "comment"
)

// FoldingRange spans whole source lines, both 1-based and inclusive.
type FoldingRange struct {
	StartLine int
	EndLine   int
	Kind      string
}

// FoldingRanges returns the foldable regions of the program: each FOR with
// its matching NEXT, each subroutine from its first line to its RETURN,
// and runs of two or more DATA lines or REM lines. Ranges are ordered by
// start line; ranges covering a single line are dropped.
func (s *Snapshot) FoldingRanges() []FoldingRange {
	var out []FoldingRange
	add := func(start, end int, kind string) {
		if end > start {
			out = append(out, FoldingRange{StartLine: start, EndLine: end, Kind: kind})
		}
	}

	open := map[string][]int{}
	for _, line := range s.Program.Lines {
		for _, stmt := range line.Statements {
			switch st := stmt.(type) {
			case *ast.ForStatement:
				if st.Variable != nil {
					open[st.Variable.Name] = append(open[st.Variable.Name], line.SourceLine)
				}
			case *ast.NextStatement:
				if st.Variable == nil {
					continue
				}
				stack := open[st.Variable.Name]
				if len(stack) == 0 {
					continue
				}
				add(stack[len(stack)-1], line.SourceLine, FoldingRegion)
				open[st.Variable.Name] = stack[:len(stack)-1]
			}
		}
	}

	last := 0
	if n := len(s.Program.Lines); n > 0 {
		last = s.Program.Lines[n-1].SourceLine
	}
	for _, sub := range s.Index.Subroutines() {
		end := last
		if sub.End != nil {
			end = sub.End.SourceLine
		}
		add(sub.Start.SourceLine, end, FoldingRegion)
	}

	s.runs(func(l *ast.Line) bool { return onlyStatements[*ast.DataStatement](l) }, func(a, b int) {
		add(a, b, FoldingRegion)
	})
	s.runs(func(l *ast.Line) bool { return onlyStatements[*ast.RemStatement](l) }, func(a, b int) {
		add(a, b, FoldingComment)
	})

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartLine != out[j].StartLine {
			return out[i].StartLine < out[j].StartLine
		}
		return out[i].EndLine > out[j].EndLine
	})
	return out
}

// runs calls emit for every maximal run of consecutive program lines
// matching match.
func (s *Snapshot) runs(match func(*ast.Line) bool, emit func(start, end int)) {
	start, prev := 0, 0
	for _, line := range s.Program.Lines {
		if !match(line) {
			if start > 0 {
				emit(start, prev)
			}
			start = 0
			continue
		}
		if start == 0 {
			start = line.SourceLine
		}
		prev = line.SourceLine
	}
	if start > 0 {
		emit(start, prev)
	}
}

// onlyStatements reports whether every statement of the line has type T.
func onlyStatements[T ast.Statement](l *ast.Line) bool {
	if len(l.Statements) == 0 {
		return false
	}
	for _, st := range l.Statements {
		if _, ok := st.(T); !ok {
			return false
		}
	}
	return true
}
