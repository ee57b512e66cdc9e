/*
File    : go-mix/lexer/lexer_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package lexer

import (
	"testing"

	"github.com/gomix-lang/gomix/token"
	"github.com/stretchr/testify/assert"
)

// typesOf extracts just the token types, since most cases here don't care
// about spans or literal values.
func typesOf(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestConsumeTokens_Punctuation(t *testing.T) {
	lex := NewLexer(`( ) { } , . - + ; * / %`)
	toks := lex.ConsumeTokens()
	assert.False(t, lex.HasErrors())
	assert.Equal(t, []token.Type{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON,
		token.STAR, token.SLASH, token.PERCENT, token.EOF,
	}, typesOf(toks))
}

func TestConsumeTokens_TwoCharOperators(t *testing.T) {
	lex := NewLexer(`! != = == > >= < <=`)
	toks := lex.ConsumeTokens()
	assert.False(t, lex.HasErrors())
	assert.Equal(t, []token.Type{
		token.NOT, token.NOT_EQUAL, token.ASSIGN, token.EQUAL,
		token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL, token.EOF,
	}, typesOf(toks))
}

func TestConsumeTokens_NumberAndIdentifier(t *testing.T) {
	lex := NewLexer(`x1 3.14 2e10 while`)
	toks := lex.ConsumeTokens()
	assert.False(t, lex.HasErrors())
	assert.Equal(t, []token.Type{token.IDENTIFIER, token.NUMBER, token.NUMBER, token.WHILE, token.EOF}, typesOf(toks))
	assert.Equal(t, 3.14, toks[1].Value.Number)
	assert.Equal(t, 2e10, toks[2].Value.Number)
}

func TestConsumeTokens_String(t *testing.T) {
	lex := NewLexer(`"hello\tworld"`)
	toks := lex.ConsumeTokens()
	assert.False(t, lex.HasErrors())
	assert.Equal(t, "hello\tworld", toks[0].Value.Str)
}

func TestConsumeTokens_StringLineContinuation(t *testing.T) {
	lex := NewLexer("\"a\\\nb\"")
	toks := lex.ConsumeTokens()
	assert.False(t, lex.HasErrors())
	assert.Equal(t, "ab", toks[0].Value.Str)
}

func TestConsumeTokens_UnterminatedString(t *testing.T) {
	lex := NewLexer(`"no closing quote`)
	toks := lex.ConsumeTokens()
	assert.True(t, lex.HasErrors())
	assert.Nil(t, toks)
}

func TestConsumeTokens_UnknownEscape(t *testing.T) {
	lex := NewLexer(`"bad \q escape"`)
	lex.ConsumeTokens()
	assert.True(t, lex.HasErrors())
}

func TestConsumeTokens_LineComment(t *testing.T) {
	lex := NewLexer("1 // a comment\n2")
	toks := lex.ConsumeTokens()
	assert.False(t, lex.HasErrors())
	assert.Equal(t, []token.Type{token.NUMBER, token.NUMBER, token.EOF}, typesOf(toks))
}

func TestConsumeTokens_BoolKeywords(t *testing.T) {
	lex := NewLexer(`true false`)
	toks := lex.ConsumeTokens()
	assert.False(t, lex.HasErrors())
	assert.Equal(t, true, toks[0].Value.Bool)
	assert.Equal(t, false, toks[1].Value.Bool)
}

func TestConsumeTokens_UnknownToken(t *testing.T) {
	lex := NewLexer(`@`)
	toks := lex.ConsumeTokens()
	assert.True(t, lex.HasErrors())
	assert.Nil(t, toks)
}
