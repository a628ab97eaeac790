// Package builtins describes the built-in functions and statement keywords
// of ZX Spectrum BASIC.
package builtins

// ValueKind is the coarse type of a value.
type ValueKind int

const (
	Numeric ValueKind = iota
	String
	// Any accepts both kinds (USR takes an address or a UDG letter).
	Any
)

func (k ValueKind) String() string {
	switch k {
	case Numeric:
		return "number"
	case String:
		return "string"
	}
	return "any"
}

// ParameterInfo describes one argument.
type ParameterInfo struct {
	Name       string
	Type       ValueKind
	IsOptional bool
}

// FunctionSignature describes a built-in function.
type FunctionSignature struct {
	Name          string
	Parameters    []ParameterInfo
	ReturnType    ValueKind
	Documentation string
}

// Label renders the signature the way the Spectrum manual writes it.
func (s FunctionSignature) Label() string {
	label := s.Name
	if len(s.Parameters) == 0 {
		return label
	}
	open, close := " ", ""
	if len(s.Parameters) > 1 {
		open, close = " (", ")"
	}
	label += open
	for i, p := range s.Parameters {
		if i > 0 {
			label += ","
		}
		label += p.Name
	}
	return label + close
}

// GetBuiltinSignature returns the signature for a built-in function if it exists.
// Returns nil if the function is not a known built-in.
func GetBuiltinSignature(functionName string) *FunctionSignature {
	if sig, exists := builtinSignatures[functionName]; exists {
		return &sig
	}
	return nil
}

func num(name string) []ParameterInfo { return []ParameterInfo{{Name: name, Type: Numeric}} }
func str(name string) []ParameterInfo { return []ParameterInfo{{Name: name, Type: String}} }

// builtinSignatures contains the functions of the Spectrum ROM.
var builtinSignatures = map[string]FunctionSignature{
	// Arithmetic
	"ABS": {Name: "ABS", Parameters: num("x"), ReturnType: Numeric, Documentation: "Absolute value of x."},
	"INT": {Name: "INT", Parameters: num("x"), ReturnType: Numeric, Documentation: "Rounds x down to the nearest integer."},
	"SGN": {Name: "SGN", Parameters: num("x"), ReturnType: Numeric, Documentation: "Sign of x: -1, 0 or 1."},
	"SQR": {Name: "SQR", Parameters: num("x"), ReturnType: Numeric, Documentation: "Square root of x."},
	"EXP": {Name: "EXP", Parameters: num("x"), ReturnType: Numeric, Documentation: "e raised to the power x."},
	"LN":  {Name: "LN", Parameters: num("x"), ReturnType: Numeric, Documentation: "Natural logarithm of x."},
	"PI":  {Name: "PI", ReturnType: Numeric, Documentation: "The constant 3.14159265."},
	"RND": {Name: "RND", ReturnType: Numeric, Documentation: "Next pseudo-random number, 0 <= RND < 1."},

	// Trigonometry
	"SIN": {Name: "SIN", Parameters: num("x"), ReturnType: Numeric, Documentation: "Sine of x radians."},
	"COS": {Name: "COS", Parameters: num("x"), ReturnType: Numeric, Documentation: "Cosine of x radians."},
	"TAN": {Name: "TAN", Parameters: num("x"), ReturnType: Numeric, Documentation: "Tangent of x radians."},
	"ASN": {Name: "ASN", Parameters: num("x"), ReturnType: Numeric, Documentation: "Arcsine of x, in radians."},
	"ACS": {Name: "ACS", Parameters: num("x"), ReturnType: Numeric, Documentation: "Arccosine of x, in radians."},
	"ATN": {Name: "ATN", Parameters: num("x"), ReturnType: Numeric, Documentation: "Arctangent of x, in radians."},

	// Strings
	"LEN":  {Name: "LEN", Parameters: str("s$"), ReturnType: Numeric, Documentation: "Length of the string s$."},
	"CODE": {Name: "CODE", Parameters: str("s$"), ReturnType: Numeric, Documentation: "Character code of the first character of s$, 0 for an empty string."},
	"VAL":  {Name: "VAL", Parameters: str("s$"), ReturnType: Numeric, Documentation: "Evaluates s$ as a numeric expression."},
	"VAL$": {Name: "VAL$", Parameters: str("s$"), ReturnType: String, Documentation: "Evaluates s$ as a string expression."},
	"STR$": {Name: "STR$", Parameters: num("x"), ReturnType: String, Documentation: "The string PRINT would display for x."},
	"CHR$": {Name: "CHR$", Parameters: num("x"), ReturnType: String, Documentation: "The character whose code is x."},

	// Machine and screen
	"PEEK": {Name: "PEEK", Parameters: num("address"), ReturnType: Numeric, Documentation: "Byte stored at address."},
	"IN":   {Name: "IN", Parameters: num("port"), ReturnType: Numeric, Documentation: "Byte read from the I/O port."},
	"USR": {Name: "USR", Parameters: []ParameterInfo{{Name: "address", Type: Any}}, ReturnType: Numeric,
		Documentation: "Calls machine code at address and returns BC. With a one-letter string, returns the address of that user-defined graphic."},
	"BIN": {Name: "BIN", Parameters: num("binary"), ReturnType: Numeric, Documentation: "Reads the following digits as a binary number."},
	"INKEY$": {Name: "INKEY$", ReturnType: String, Documentation: "The key being pressed, or an empty string."},
	"ATTR": {Name: "ATTR", Parameters: []ParameterInfo{{Name: "line", Type: Numeric}, {Name: "column", Type: Numeric}},
		ReturnType: Numeric, Documentation: "Attribute byte of the character cell at line, column."},
	"POINT": {Name: "POINT", Parameters: []ParameterInfo{{Name: "x", Type: Numeric}, {Name: "y", Type: Numeric}},
		ReturnType: Numeric, Documentation: "1 if the pixel at x, y has ink colour, otherwise 0."},
	"SCREEN$": {Name: "SCREEN$", Parameters: []ParameterInfo{{Name: "line", Type: Numeric}, {Name: "column", Type: Numeric}},
		ReturnType: String, Documentation: "The character shown at line, column."},
}

// Names returns the names of all built-in functions.
func Names() []string {
	names := make([]string, 0, len(builtinSignatures))
	for name := range builtinSignatures {
		names = append(names, name)
	}
	return names
}
