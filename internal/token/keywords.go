package token

import "strings"

// Dialect selects which keyword set is legal.
type Dialect int

const (
	Dialect48K Dialect = iota
	Dialect128K
	DialectInterface1
)

var dialectNames = map[Dialect]string{
	Dialect48K:        "48k",
	Dialect128K:       "128k",
	DialectInterface1: "interface1",
}

func (d Dialect) String() string {
	if s, ok := dialectNames[d]; ok {
		return s
	}
	return "unknown"
}

// ParseDialect accepts "48k", "128k", "interface1" (or "if1"), case-insensitive.
func ParseDialect(s string) (Dialect, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "48k", "48", "":
		return Dialect48K, true
	case "128k", "128":
		return Dialect128K, true
	case "interface1", "interface-1", "if1":
		return DialectInterface1, true
	}
	return Dialect48K, false
}

// Two-word keywords, normalized.
const (
	GoTo      = "GOTO"
	GoSub     = "GOSUB"
	DefFn     = "DEF FN"
	InputLine = "INPUT LINE"
)

// keywords lists statement and secondary keywords. The value is the set of
// dialects that may use them; nil means every dialect.
var keywords = map[string][]Dialect{
	"AND": nil, "AT": nil, "BEEP": nil, "BORDER": nil, "BRIGHT": nil,
	"CIRCLE": nil, "CLEAR": nil, "CLOSE": nil, "CLS": nil, "CONTINUE": nil,
	"COPY": nil, "DATA": nil, "DIM": nil, "DRAW": nil, "FLASH": nil,
	"FN": nil, "FOR": nil, "GOSUB": nil, "GOTO": nil, "IF": nil,
	"INK": nil, "INPUT": nil, "INVERSE": nil, "LET": nil, "LINE": nil,
	"LIST": nil, "LLIST": nil, "LOAD": nil, "LPRINT": nil, "MERGE": nil,
	"NEW": nil, "NEXT": nil, "NOT": nil, "OPEN": nil, "OR": nil,
	"OUT": nil, "OVER": nil, "PAPER": nil, "PAUSE": nil, "PLOT": nil,
	"POKE": nil, "PRINT": nil, "RANDOMIZE": nil, "READ": nil, "REM": nil,
	"RESTORE": nil, "RETURN": nil, "RUN": nil, "SAVE": nil, "STEP": nil,
	"STOP": nil, "TAB": nil, "THEN": nil, "TO": nil, "VERIFY": nil,

	"DEF FN":     nil,
	"INPUT LINE": nil,

	"SPECTRUM": {Dialect128K},
	"PLAY":     {Dialect128K},

	"CAT":    {DialectInterface1},
	"FORMAT": {DialectInterface1},
	"MOVE":   {DialectInterface1},
	"ERASE":  {DialectInterface1},
}

// functions lists built-in function names. Their signatures live in the
// builtins package.
var functions = map[string]bool{
	"ABS": true, "ACS": true, "ASN": true, "ATN": true, "ATTR": true,
	"BIN": true, "CHR$": true, "CODE": true, "COS": true, "EXP": true,
	"IN": true, "INKEY$": true, "INT": true, "LEN": true, "LN": true,
	"PEEK": true, "PI": true, "POINT": true, "RND": true, "SCREEN$": true,
	"SGN": true, "SIN": true, "SQR": true, "STR$": true, "TAN": true,
	"USR": true, "VAL": true, "VAL$": true,
}

// Lookup classifies an upper-case word as Keyword or Function.
func Lookup(word string) (Kind, bool) {
	if _, ok := keywords[word]; ok {
		return Keyword, true
	}
	if functions[word] {
		return Function, true
	}
	return Identifier, false
}

// IsReserved reports whether an upper-case word is a keyword or function
// name and therefore cannot be used as a variable name.
func IsReserved(word string) bool {
	_, ok := Lookup(word)
	return ok
}

// KeywordAvailable reports whether the keyword may be used in the dialect.
// Unknown words are reported as available.
func KeywordAvailable(word string, d Dialect) bool {
	dialects, ok := keywords[word]
	if !ok || dialects == nil {
		return true
	}
	for _, allowed := range dialects {
		if allowed == d {
			return true
		}
	}
	return false
}

// KeywordDialects returns the dialects restricting a keyword, or nil when
// the keyword is part of the base language.
func KeywordDialects(word string) []Dialect {
	return keywords[word]
}

// Keywords returns every keyword usable in the dialect, in no particular order.
func Keywords(d Dialect) []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		if KeywordAvailable(k, d) {
			out = append(out, k)
		}
	}
	return out
}

// Functions returns every built-in function name, in no particular order.
func Functions() []string {
	out := make([]string, 0, len(functions))
	for f := range functions {
		out = append(out, f)
	}
	return out
}

// JumpKeywords take a line number as their argument.
var JumpKeywords = map[string]bool{
	GoTo:      true,
	GoSub:     true,
	"RUN":     true,
	"RESTORE": true,
	"LIST":    true,
	"LLIST":   true,
}
