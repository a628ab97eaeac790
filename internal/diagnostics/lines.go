package diagnostics

import (
	"fmt"
	"strings"

	"github.com/stefdev49/vs-zx-sub002/internal/index"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

func checkLineNumberRange(ctx *Context) []Finding {
	var out []Finding
	for _, e := range ctx.Index.Lines {
		if e.Valid {
			continue
		}
		msg := fmt.Sprintf("Line number %s is out of range (%d-%d)", e.Token.Text, index.MinLineNumber, index.MaxLineNumber)
		if e.Number < 0 {
			msg = fmt.Sprintf("Line number %s must be a whole number", e.Token.Text)
		}
		out = append(out, finding(RuleLineNumberRange, Error, e.Range(), msg))
	}
	return out
}

func checkDuplicateLineNumbers(ctx *Context) []Finding {
	var out []Finding
	for _, e := range ctx.Index.Lines {
		if e.Number < 0 {
			continue
		}
		first := ctx.Index.LinesByNumber(e.Number)[0]
		if first == e {
			continue
		}
		out = append(out, finding(RuleDuplicateLineNumber, Error, e.Range(),
			fmt.Sprintf("Duplicate line number %d (first used on line %d)", e.Number, first.SourceLine)))
	}
	return out
}

// checkLineOrder flags a line whose number is lower than one before it.
// Equal numbers are left to the duplicate rule.
func checkLineOrder(ctx *Context) []Finding {
	var out []Finding
	highest := 0
	for _, e := range ctx.Index.Lines {
		if !e.Valid {
			continue
		}
		if e.Number < highest {
			out = append(out, finding(RuleLineOrder, ctx.strictly(Information), e.Range(),
				fmt.Sprintf("Line %d comes after line %d; the Spectrum will sort it on entry", e.Number, highest)))
			continue
		}
		highest = e.Number
	}
	return out
}

func checkMissingLineNumbers(ctx *Context) []Finding {
	var out []Finding
	for _, line := range ctx.Program.Lines {
		if line.Number != nil {
			continue
		}
		out = append(out, finding(RuleMissingLineNumber, Error, line.Range(),
			"Line must start with a line number"))
	}
	return out
}

func checkLineLength(ctx *Context) []Finding {
	limit := ctx.Options.MaxLineLength
	if limit <= 0 {
		return nil
	}
	var out []Finding
	offset := 0
	for i, text := range strings.Split(ctx.Text, "\n") {
		start := offset
		offset += len(text) + 1
		text = strings.TrimSuffix(text, "\r")
		if len(text) <= limit {
			continue
		}
		r := token.Range{
			Start: token.Position{Line: i + 1, Column: limit + 1, Offset: start + limit},
			End:   token.Position{Line: i + 1, Column: len(text) + 1, Offset: start + len(text)},
		}
		out = append(out, finding(RuleLineLength, Warning, r,
			fmt.Sprintf("Line is %d characters long (limit %d)", len(text), limit)))
	}
	return out
}
