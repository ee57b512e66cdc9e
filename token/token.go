/*
File    : go-mix/token/token.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package token defines the lexical token vocabulary shared by the lexer,
// parser, checker, and diagnostics.
package token

import (
	"fmt"

	"github.com/gomix-lang/gomix/diag"
)

// Type identifies the category of a Token. Its string value is the
// operator's or keyword's source spelling; dumps and error messages use
// the display name from TypeName instead.
type Type string

const (
	EOF     Type = "Eof"
	INVALID Type = "Invalid"

	// single-character delimiters and operators
	LEFT_PAREN  Type = "("
	RIGHT_PAREN Type = ")"
	LEFT_BRACE  Type = "{"
	RIGHT_BRACE Type = "}"
	COMMA       Type = ","
	DOT         Type = "."
	MINUS       Type = "-"
	PLUS        Type = "+"
	SEMICOLON   Type = ";"
	STAR        Type = "*"
	SLASH       Type = "/"
	PERCENT     Type = "%"

	// one-or-two-character operators
	NOT          Type = "!"
	NOT_EQUAL    Type = "!="
	ASSIGN       Type = "="
	EQUAL        Type = "=="
	GREATER      Type = ">"
	GREATER_EQUAL Type = ">="
	LESS         Type = "<"
	LESS_EQUAL   Type = "<="

	// literals
	IDENTIFIER Type = "Identifier"
	STRING     Type = "String"
	NUMBER     Type = "Number"

	// keywords
	AND      Type = "and"
	ASSERT   Type = "assert"
	BREAK    Type = "break"
	CLASS    Type = "class"
	CONTINUE Type = "continue"
	ELSE     Type = "else"
	FALSE    Type = "false"
	FN       Type = "fn"
	FOR      Type = "for"
	IF       Type = "if"
	IN       Type = "in"
	NIL      Type = "nil"
	OR       Type = "or"
	RETURN   Type = "return"
	SUPER    Type = "super"
	THIS     Type = "this"
	TRUE     Type = "true"
	VAR      Type = "var"
	WHILE    Type = "while"
)

// Keywords maps reserved identifier text to its keyword Type. Populated
// from spec.md's exact keyword list; anything not in this table lexes as
// a plain IDENTIFIER.
var Keywords = map[string]Type{
	"and":      AND,
	"assert":   ASSERT,
	"break":    BREAK,
	"class":    CLASS,
	"continue": CONTINUE,
	"else":     ELSE,
	"false":    FALSE,
	"fn":       FN,
	"for":      FOR,
	"if":       IF,
	"in":       IN,
	"nil":      NIL,
	"or":       OR,
	"return":   RETURN,
	"super":    SUPER,
	"this":     THIS,
	"true":     TRUE,
	"var":      VAR,
	"while":    WHILE,
}

// Lookup returns the keyword Type for ident, or IDENTIFIER if ident is not
// a reserved word.
func Lookup(ident string) Type {
	if t, ok := Keywords[ident]; ok {
		return t
	}
	return IDENTIFIER
}

// Value is the tagged union a Token's literal value is parsed into: none,
// bool, double, or string, per spec.md §3.
type Value struct {
	hasBool   bool
	hasNumber bool
	hasString bool
	Bool      bool
	Number    float64
	Str       string
}

// NoValue is the zero Value, used for tokens with no attached literal.
var NoValue = Value{}

// BoolValue builds a Value carrying a bool.
func BoolValue(b bool) Value { return Value{hasBool: true, Bool: b} }

// NumberValue builds a Value carrying a parsed double.
func NumberValue(n float64) Value { return Value{hasNumber: true, Number: n} }

// StringValue builds a Value carrying an unescaped string.
func StringValue(s string) Value { return Value{hasString: true, Str: s} }

// IsNone reports whether the Value carries no literal.
func (v Value) IsNone() bool { return !v.hasBool && !v.hasNumber && !v.hasString }

// String renders the value the way the token-dump format (spec.md §6.6)
// expects: "<none>" when empty, otherwise the literal's natural text.
func (v Value) String() string {
	switch {
	case v.hasBool:
		return fmt.Sprintf("%t", v.Bool)
	case v.hasNumber:
		return formatNumber(v.Number)
	case v.hasString:
		return v.Str
	default:
		return "<none>"
	}
}

// formatNumber renders a float64 using the shortest round-trip decimal
// representation, as spec.md §6.5/§6.6 require for numeric literals.
func formatNumber(f float64) string {
	return fmt.Sprintf("%g", f)
}

// Token is one lexical unit: its type, the literal value parsed from it
// (if any), and the byte span of the source text it came from.
type Token struct {
	Type  Type
	Value Value
	Span  diag.Span
}

// Text returns the exact source bytes the token was scanned from.
func (t Token) Text(src string) string {
	return t.Span.Text(src)
}

// typeNames gives each Type a Go-identifier-style display name for the
// token dump format (spec.md §6.6), independent of the Type's own string
// value (which doubles as the operator's source spelling).
var typeNames = map[Type]string{
	EOF:     "Eof",
	INVALID: "Invalid",

	LEFT_PAREN:  "LeftParen",
	RIGHT_PAREN: "RightParen",
	LEFT_BRACE:  "LeftBrace",
	RIGHT_BRACE: "RightBrace",
	COMMA:       "Comma",
	DOT:         "Dot",
	MINUS:       "Minus",
	PLUS:        "Plus",
	SEMICOLON:   "Semicolon",
	STAR:        "Star",
	SLASH:       "Slash",
	PERCENT:     "Percent",

	NOT:           "Not",
	NOT_EQUAL:     "NotEqual",
	ASSIGN:        "Assign",
	EQUAL:         "Equal",
	GREATER:       "Greater",
	GREATER_EQUAL: "GreaterEqual",
	LESS:          "Less",
	LESS_EQUAL:    "LessEqual",

	IDENTIFIER: "Identifier",
	STRING:     "String",
	NUMBER:     "Number",

	AND:      "And",
	ASSERT:   "Assert",
	BREAK:    "Break",
	CLASS:    "Class",
	CONTINUE: "Continue",
	ELSE:     "Else",
	FALSE:    "False",
	FN:       "Fn",
	FOR:      "For",
	IF:       "If",
	IN:       "In",
	NIL:      "Nil",
	OR:       "Or",
	RETURN:   "Return",
	SUPER:    "Super",
	THIS:     "This",
	TRUE:     "True",
	VAR:      "Var",
	WHILE:    "While",
}

// TypeName returns the display name used by the token dump format.
func (t Type) TypeName() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return string(t)
}

// New builds a Token with no attached literal value.
func New(typ Type, span diag.Span) Token {
	return Token{Type: typ, Value: NoValue, Span: span}
}

// NewWithValue builds a Token carrying a literal value.
func NewWithValue(typ Type, span diag.Span, value Value) Token {
	return Token{Type: typ, Value: value, Span: span}
}

// EscapeString renders s the way a String literal's source text would
// look, escaping the same characters the lexer recognizes as escapes
// (spec.md §4.1), so dump/unescape round-trip exactly (spec.md §8
// invariant 4).
func EscapeString(s string) string {
	var b []byte
	b = append(b, '"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\t':
			b = append(b, '\\', 't')
		case '\r':
			b = append(b, '\\', 'r')
		case '\n':
			b = append(b, '\\', 'n')
		case '"':
			b = append(b, '\\', '"')
		case '\\':
			b = append(b, '\\', '\\')
		default:
			b = append(b, c)
		}
	}
	b = append(b, '"')
	return string(b)
}

// DumpLine renders tok in the token dump format (spec.md §6.6):
// "<TypeName> <value-or-\"<none>\"> <escaped-source-text>".
func DumpLine(tok Token, src string) string {
	text := tok.Text(src)
	escaped := text
	if tok.Type == STRING {
		escaped = EscapeString(tok.Value.Str)
	}
	return fmt.Sprintf("%s %s %s", tok.Type.TypeName(), tok.Value.String(), escaped)
}
