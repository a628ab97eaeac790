// Package diagnostics validates a ZX BASIC program.
//
// Each check is a Rule: an independent, pure function of a Context that
// returns Findings. Validate runs every rule and orders the findings by
// position, so the order in which rules are listed never matters.
package diagnostics

import (
	"sort"
	"strings"

	"github.com/stefdev49/vs-zx-sub002/internal/ast"
	"github.com/stefdev49/vs-zx-sub002/internal/index"
	"github.com/stefdev49/vs-zx-sub002/internal/lexer"
	"github.com/stefdev49/vs-zx-sub002/internal/parser"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// Severity of a finding. The values match the LSP DiagnosticSeverity codes.
type Severity int

const (
	Error Severity = iota + 1
	Warning
	Information
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Information:
		return "info"
	case Hint:
		return "hint"
	}
	return "unknown"
}

// Finding is one diagnostic produced by a rule.
type Finding struct {
	Severity Severity
	Range    token.Range
	Message  string
	Rule     string
}

// Options tune the rules that depend on configuration.
type Options struct {
	Dialect token.Dialect
	Strict  bool
	// MaxLineLength enables the line-length rule when positive.
	MaxLineLength int
}

// Context is everything a rule may look at. Rules must not modify it.
type Context struct {
	Text    string
	Lex     *lexer.Result
	Program *ast.Program
	Index   *index.Index
	Options Options
}

// NewContext lexes, parses and indexes text.
func NewContext(text string, opts Options) *Context {
	res := lexer.Tokenize(text)
	prog := parser.Parse(text, res)
	return &Context{
		Text:    text,
		Lex:     res,
		Program: prog,
		Index:   index.Build(prog),
		Options: opts,
	}
}

// Rule is one validation check.
type Rule interface {
	ID() string
	Check(ctx *Context) []Finding
}

// ruleFunc adapts a function to the Rule interface.
type ruleFunc struct {
	id    string
	check func(*Context) []Finding
}

func (r ruleFunc) ID() string                   { return r.id }
func (r ruleFunc) Check(ctx *Context) []Finding { return r.check(ctx) }

// Rule identifiers.
const (
	RuleLineNumberRange     = "line-number-range"
	RuleDuplicateLineNumber = "duplicate-line-number"
	RuleLineOrder           = "line-order"
	RuleMissingLineNumber   = "missing-line-number"
	RuleJumpTargetRange     = "jump-target-range"
	RuleComputedJump        = "computed-jump"
	RuleForNextBalance      = "for-next-balance"
	RuleGosubReturnBalance  = "gosub-return-balance"
	RuleIfThen              = "if-then"
	RuleArrayDimensions     = "array-dimensions"
	RuleUndeclaredArray     = "undeclared-array"
	RuleColorRange          = "color-range"
	RuleNameLength          = "name-length"
	RuleInvalidCharacter    = "invalid-character"
	RuleUnterminatedString  = "unterminated-string"
	RuleTypeMismatch        = "type-mismatch"
	RuleSyntax              = "syntax"
	RuleDialectKeyword      = "dialect-keyword"
	RuleLineLength          = "line-length"
	RuleImplicitLet         = "implicit-let"
)

// Rules returns the full rule set.
func Rules() []Rule {
	return []Rule{
		ruleFunc{RuleLineNumberRange, checkLineNumberRange},
		ruleFunc{RuleDuplicateLineNumber, checkDuplicateLineNumbers},
		ruleFunc{RuleLineOrder, checkLineOrder},
		ruleFunc{RuleMissingLineNumber, checkMissingLineNumbers},
		ruleFunc{RuleJumpTargetRange, checkJumpTargets},
		ruleFunc{RuleComputedJump, checkComputedJumps},
		ruleFunc{RuleForNextBalance, checkForNext},
		ruleFunc{RuleGosubReturnBalance, checkGosubReturn},
		ruleFunc{RuleIfThen, checkIfThen},
		ruleFunc{RuleArrayDimensions, checkArrayDimensions},
		ruleFunc{RuleUndeclaredArray, checkUndeclaredArrays},
		ruleFunc{RuleColorRange, checkColorRange},
		ruleFunc{RuleNameLength, checkNameLength},
		ruleFunc{RuleInvalidCharacter, lexProblems(lexer.InvalidCharacter)},
		ruleFunc{RuleUnterminatedString, lexProblems(lexer.UnterminatedString)},
		ruleFunc{RuleTypeMismatch, checkTypeMismatch},
		ruleFunc{RuleSyntax, checkSyntax},
		ruleFunc{RuleDialectKeyword, checkDialectKeywords},
		ruleFunc{RuleLineLength, checkLineLength},
		ruleFunc{RuleImplicitLet, checkImplicitLet},
	}
}

// Validate runs rules (all of Rules when none are given) and returns their
// findings ordered by position, then by rule ID.
func Validate(ctx *Context, rules ...Rule) []Finding {
	if len(rules) == 0 {
		rules = Rules()
	}
	var out []Finding
	for _, r := range rules {
		out = append(out, r.Check(ctx)...)
	}
	sortFindings(out)
	return out
}

func sortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i].Range.Start, findings[j].Range.Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return strings.Compare(findings[i].Rule, findings[j].Rule) < 0
	})
}

// strictly returns sev raised to the next level when strict mode is on.
func (ctx *Context) strictly(sev Severity) Severity {
	if ctx.Options.Strict && sev > Error {
		return sev - 1
	}
	return sev
}

func finding(rule string, sev Severity, r token.Range, msg string) Finding {
	return Finding{Severity: sev, Range: r, Message: msg, Rule: rule}
}
