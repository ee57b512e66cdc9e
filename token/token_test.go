/*
File    : go-mix/token/token_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package token

import (
	"testing"

	"github.com/gomix-lang/gomix/diag"
	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		ident string
		want  Type
	}{
		{"var", VAR},
		{"while", WHILE},
		{"fn", FN},
		{"notakeyword", IDENTIFIER},
		{"forever", IDENTIFIER},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Lookup(tt.ident))
	}
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "<none>", NoValue.String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "false", BoolValue(false).String())
	assert.Equal(t, "3.5", NumberValue(3.5).String())
	assert.Equal(t, "hello", StringValue("hello").String())
}

func TestEscapeString(t *testing.T) {
	assert.Equal(t, `"hello"`, EscapeString("hello"))
	assert.Equal(t, `"a\tb\nc"`, EscapeString("a\tb\nc"))
	assert.Equal(t, `"say \"hi\""`, EscapeString(`say "hi"`))
	assert.Equal(t, `"back\\slash"`, EscapeString(`back\slash`))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "Identifier", IDENTIFIER.TypeName())
	assert.Equal(t, "Minus", MINUS.TypeName())
	assert.Equal(t, "Eof", EOF.TypeName())
}

func TestDumpLine(t *testing.T) {
	src := `"hi"`
	tok := NewWithValue(STRING, diag.NewSpan(0, len(src)), StringValue("hi"))
	assert.Equal(t, `String hi "hi"`, DumpLine(tok, src))

	src2 := "while"
	tok2 := New(WHILE, diag.NewSpan(0, len(src2)))
	assert.Equal(t, "While <none> while", DumpLine(tok2, src2))
}
