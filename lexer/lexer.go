/*
File    : go-mix/lexer/lexer.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package lexer performs lexical analysis (tokenization) of Go-Mix source
// code: it scans source bytes left to right and produces an ordered token
// sequence, or a non-empty error list if scanning cannot complete.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gomix-lang/gomix/diag"
	"github.com/gomix-lang/gomix/token"
)

// Lexer scans one source string into tokens. It is single-pass, left to
// right, and non-restartable: create a fresh Lexer per source fragment.
type Lexer struct {
	Src       string
	Current   byte
	Position  int
	SrcLength int
	Line      int
	Column    int

	Errors []*diag.Error
}

// NewLexer creates a Lexer positioned at the first byte of src.
func NewLexer(src string) *Lexer {
	current := byte(0)
	if len(src) > 0 {
		current = src[0]
	}
	return &Lexer{
		Src:       src,
		Current:   current,
		Position:  0,
		SrcLength: len(src),
		Line:      1,
		Column:    1,
	}
}

// HasErrors reports whether scanning has recorded any error.
func (lex *Lexer) HasErrors() bool {
	return len(lex.Errors) > 0
}

func (lex *Lexer) errorf(span diag.Span, format string, args ...interface{}) {
	lex.Errors = append(lex.Errors, &diag.Error{
		Message: fmt.Sprintf(format, args...),
		Source:  lex.Src,
		Span:    span,
	})
}

// Peek looks at the next byte without consuming it, or 0 at end of source.
func (lex *Lexer) Peek() byte {
	if lex.Position+1 >= lex.SrcLength {
		return 0
	}
	return lex.Src[lex.Position+1]
}

// Advance consumes the current byte and moves to the next one.
func (lex *Lexer) Advance() {
	lex.Position++
	lex.Column++
	if lex.Position >= lex.SrcLength {
		lex.Current = 0
		lex.Position = lex.SrcLength
	} else {
		lex.Current = lex.Src[lex.Position]
	}
}

func (lex *Lexer) atEnd() bool {
	return lex.Position >= lex.SrcLength
}

// IgnoreWhitespaceAndComments skips spaces and line comments (// to EOL).
func (lex *Lexer) IgnoreWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(lex.Current):
			if lex.Current == '\n' {
				lex.Line++
				lex.Column = 1
			}
			lex.Advance()
		case lex.Current == '/' && lex.Peek() == '/':
			for lex.Current != '\n' && lex.Current != 0 {
				lex.Advance()
			}
		default:
			return
		}
	}
}

// simple2 builds a single-char token, or upgrades to a two-char token if
// the next byte is second, consuming it in that case.
func (lex *Lexer) simple2(one token.Type, second byte, two token.Type) token.Token {
	start := lex.Position
	if lex.Peek() == second {
		lex.Advance()
		lex.Advance()
		return token.New(two, diag.NewSpan(start, lex.Position))
	}
	lex.Advance()
	return token.New(one, diag.NewSpan(start, lex.Position))
}

// NextToken scans and returns the next token, or an Eof token at end of
// source. Errors are appended to lex.Errors; the lexer stops scanning
// meaningful tokens and returns Eof once an error has been recorded,
// matching spec.md §4.1's "stops at the first error" rule.
func (lex *Lexer) NextToken() token.Token {
	if lex.HasErrors() {
		return token.New(token.EOF, diag.NewSpan(lex.Position, lex.Position))
	}

	lex.IgnoreWhitespaceAndComments()
	start := lex.Position

	if lex.atEnd() {
		return token.New(token.EOF, diag.NewSpan(start, start))
	}

	c := lex.Current
	switch {
	case c == '(':
		lex.Advance()
		return token.New(token.LEFT_PAREN, diag.NewSpan(start, lex.Position))
	case c == ')':
		lex.Advance()
		return token.New(token.RIGHT_PAREN, diag.NewSpan(start, lex.Position))
	case c == '{':
		lex.Advance()
		return token.New(token.LEFT_BRACE, diag.NewSpan(start, lex.Position))
	case c == '}':
		lex.Advance()
		return token.New(token.RIGHT_BRACE, diag.NewSpan(start, lex.Position))
	case c == ',':
		lex.Advance()
		return token.New(token.COMMA, diag.NewSpan(start, lex.Position))
	case c == '.':
		lex.Advance()
		return token.New(token.DOT, diag.NewSpan(start, lex.Position))
	case c == '-':
		lex.Advance()
		return token.New(token.MINUS, diag.NewSpan(start, lex.Position))
	case c == '+':
		lex.Advance()
		return token.New(token.PLUS, diag.NewSpan(start, lex.Position))
	case c == ';':
		lex.Advance()
		return token.New(token.SEMICOLON, diag.NewSpan(start, lex.Position))
	case c == '*':
		lex.Advance()
		return token.New(token.STAR, diag.NewSpan(start, lex.Position))
	case c == '/':
		lex.Advance()
		return token.New(token.SLASH, diag.NewSpan(start, lex.Position))
	case c == '%':
		lex.Advance()
		return token.New(token.PERCENT, diag.NewSpan(start, lex.Position))
	case c == '!':
		return lex.simple2(token.NOT, '=', token.NOT_EQUAL)
	case c == '=':
		return lex.simple2(token.ASSIGN, '=', token.EQUAL)
	case c == '>':
		return lex.simple2(token.GREATER, '=', token.GREATER_EQUAL)
	case c == '<':
		return lex.simple2(token.LESS, '=', token.LESS_EQUAL)
	case c == '"':
		return lex.readString(start)
	case isDigit(c):
		return lex.readNumber(start)
	case isAlpha(c) || c == '_':
		return lex.readIdentifier(start)
	default:
		lex.Advance()
		span := diag.NewSpan(start, lex.Position)
		lex.errorf(span, "unknown token '%c'", c)
		return token.New(token.EOF, diag.NewSpan(lex.Position, lex.Position))
	}
}

// ConsumeTokens tokenizes the entire source, ending with an Eof token. On
// error, it returns nil and leaves lex.Errors populated; callers check
// HasErrors() to tell an error apart from a successful scan.
func (lex *Lexer) ConsumeTokens() []token.Token {
	var toks []token.Token
	for {
		tok := lex.NextToken()
		if tok.Type == token.EOF {
			toks = append(toks, tok)
			break
		}
		toks = append(toks, tok)
	}
	if lex.HasErrors() {
		return nil
	}
	return toks
}

func (lex *Lexer) readString(start int) token.Token {
	lex.Advance() // consume opening quote
	var b strings.Builder
	for lex.Current != '"' {
		if lex.Current == 0 {
			span := diag.NewSpan(start, lex.Position)
			lex.errorf(span, "unterminated string literal")
			return token.New(token.EOF, diag.NewSpan(lex.Position, lex.Position))
		}
		if lex.Current == '\\' {
			escStart := lex.Position
			lex.Advance() // consume backslash
			if lex.Current == 0 {
				span := diag.NewSpan(start, lex.Position)
				lex.errorf(span, "unterminated string literal")
				return token.New(token.EOF, diag.NewSpan(lex.Position, lex.Position))
			}
			switch lex.Current {
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'n':
				b.WriteByte('\n')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case '\n':
				// line continuation: erase, and track the newline
				lex.Line++
				lex.Column = 1
			default:
				escSpan := diag.NewSpan(escStart, lex.Position+1)
				lex.errorf(escSpan, "unknown escape sequence '\\%c'", lex.Current)
				return token.New(token.EOF, diag.NewSpan(lex.Position, lex.Position))
			}
			lex.Advance()
			continue
		}
		if lex.Current == '\n' {
			lex.Line++
			lex.Column = 1
		}
		b.WriteByte(lex.Current)
		lex.Advance()
	}
	lex.Advance() // consume closing quote
	span := diag.NewSpan(start, lex.Position)
	return token.NewWithValue(token.STRING, span, token.StringValue(b.String()))
}

func (lex *Lexer) readNumber(start int) token.Token {
	for isDigit(lex.Current) {
		lex.Advance()
	}
	if lex.Current == '.' && isDigit(lex.Peek()) {
		lex.Advance() // consume '.'
		for isDigit(lex.Current) {
			lex.Advance()
		}
	}
	if lex.Current == 'e' || lex.Current == 'E' {
		mark := lex.Position
		markCol, markLine := lex.Column, lex.Line
		lex.Advance()
		if lex.Current == '+' || lex.Current == '-' {
			lex.Advance()
		}
		if isDigit(lex.Current) {
			for isDigit(lex.Current) {
				lex.Advance()
			}
		} else {
			// not actually an exponent; back out
			lex.Position = mark
			lex.Column = markCol
			lex.Line = markLine
			if lex.Position < lex.SrcLength {
				lex.Current = lex.Src[lex.Position]
			}
		}
	}
	span := diag.NewSpan(start, lex.Position)
	text := span.Text(lex.Src)
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || isInf(value) {
		lex.errorf(span, "number out of range: %s", text)
		return token.New(token.EOF, diag.NewSpan(lex.Position, lex.Position))
	}
	return token.NewWithValue(token.NUMBER, span, token.NumberValue(value))
}

func isInf(f float64) bool {
	return f > maxFinite || f < -maxFinite
}

const maxFinite = 1.7976931348623157e+308

func (lex *Lexer) readIdentifier(start int) token.Token {
	for isAlphaNumeric(lex.Current) || lex.Current == '_' {
		lex.Advance()
	}
	span := diag.NewSpan(start, lex.Position)
	text := span.Text(lex.Src)
	typ := token.Lookup(text)
	if typ == token.TRUE {
		return token.NewWithValue(typ, span, token.BoolValue(true))
	}
	if typ == token.FALSE {
		return token.NewWithValue(typ, span, token.BoolValue(false))
	}
	return token.New(typ, span)
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return unicode.IsLetter(rune(c))
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
