/*
File    : go-mix/interpreter/interpreter_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gomix-lang/gomix/checker"
	"github.com/gomix-lang/gomix/lexer"
	"github.com/gomix-lang/gomix/parser"
	"github.com/stretchr/testify/assert"
)

// run lexes, parses, resolves, and interprets src against in, mirroring
// repl.Repl.execute's pipeline so these tests exercise the same path a
// real fragment would.
func run(t *testing.T, in *Interpreter, src string) []string {
	t.Helper()
	lex := lexer.NewLexer(src)
	toks := lex.ConsumeTokens()
	if !assert.False(t, lex.HasErrors(), "unexpected lex errors") {
		t.FailNow()
	}
	prog, perrs := parser.Parse(toks, src)
	if !assert.Empty(t, perrs, "unexpected parse errors") {
		t.FailNow()
	}
	checker.Resolve(prog)
	errs := in.Interpret(prog, src)
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return msgs
}

func newInterp(stdout *bytes.Buffer) *Interpreter {
	return New(stdout, stdout, strings.NewReader(""))
}

func TestInterpret_Arithmetic(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	in.ReplMode = true
	errs := run(t, in, `1 + 2 * 3;`)
	assert.Empty(t, errs)
	assert.Equal(t, "7", strings.TrimSpace(out.String()))
}

func TestInterpret_StringConcat(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `print("a" + "b");`)
	assert.Empty(t, errs)
	assert.Equal(t, "ab", strings.TrimSpace(out.String()))
}

func TestInterpret_AddTypeMismatch(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `"a" + 1;`)
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "cannot add 'String' to 'Number'", errs[0])
	}
}

func TestInterpret_UnaryTypeErrors(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `-"x";`)
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "cannot apply unary operator '-' to type 'String'", errs[0])
	}

	out.Reset()
	errs = run(t, in, `!1;`)
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "cannot apply unary operator '!' to type 'Number'", errs[0])
	}
}

func TestInterpret_CompareTypeMismatch(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `1 == "1";`)
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "cannot compare 'Number' to 'String'", errs[0])
	}
}

func TestInterpret_UndefinedIdentifier(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `nope;`)
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "identifier 'nope' is not defined", errs[0])
	}
}

func TestInterpret_NotCallable(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `var x = 1; x();`)
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "value of type 'Number' is not callable", errs[0])
	}
}

func TestInterpret_WrongArity(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `fn add(a, b) { return a + b; } add(1);`)
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "expected 2 arguments, got 1", errs[0])
	}
}

func TestInterpret_NotIterable(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `for c in 1 { print(c); }`)
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "value of type 'Number' is not iterable", errs[0])
	}
}

func TestInterpret_AssertFailure(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `assert 1 == 2;`)
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "assertion failed", errs[0])
	}
}

func TestInterpret_AssertSuccess(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `assert 1 == 1;`)
	assert.Empty(t, errs)
}

func TestInterpret_WhileBreakContinue(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `
		var i = 0;
		var sum = 0;
		while i < 10 {
			i = i + 1;
			if i == 5 {
				continue;
			}
			if i == 8 {
				break;
			}
			sum = sum + i;
		}
		print(sum);
	`)
	assert.Empty(t, errs)
	// 1+2+3+4 (skip 5) +6+7 = 23, stop before adding 8
	assert.Equal(t, "23", strings.TrimSpace(out.String()))
}

func TestInterpret_ForOverString(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `
		var collected = "";
		for c in "abc" {
			collected = collected + c;
		}
		print(collected);
	`)
	assert.Empty(t, errs)
	assert.Equal(t, "abc", strings.TrimSpace(out.String()))
}

func TestInterpret_FunctionReturnAndRecursion(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `
		fn fact(n) {
			if n <= 1 {
				return 1;
			}
			return n * fact(n - 1);
		}
		print(fact(5));
	`)
	assert.Empty(t, errs)
	assert.Equal(t, "120", strings.TrimSpace(out.String()))
}

func TestInterpret_ClosureCapturesDefiningScope(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `
		fn makeCounter() {
			var count = 0;
			fn increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		print(counter());
		print(counter());
		print(counter());
	`)
	assert.Empty(t, errs)
	assert.Equal(t, []string{"1", "2", "3"}, strings.Fields(out.String()))
}

func TestInterpret_ReplFragmentsShareGlobals(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	in.ReplMode = true

	errs := run(t, in, `fn useLater() { return later; }`)
	assert.Empty(t, errs)

	out.Reset()
	errs = run(t, in, `var later = 42;`)
	assert.Empty(t, errs)

	out.Reset()
	errs = run(t, in, `useLater();`)
	assert.Empty(t, errs)
	assert.Equal(t, "42", strings.TrimSpace(out.String()))
}

func TestInterpret_ReplEchoQuotesStrings(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	in.ReplMode = true

	errs := run(t, in, `"hi\nthere";`)
	assert.Empty(t, errs)
	assert.Equal(t, `"hi\nthere"`, strings.TrimSpace(out.String()))

	out.Reset()
	errs = run(t, in, `42;`)
	assert.Empty(t, errs)
	assert.Equal(t, "42", strings.TrimSpace(out.String()))

	out.Reset()
	errs = run(t, in, `true;`)
	assert.Empty(t, errs)
	assert.Equal(t, "true", strings.TrimSpace(out.String()))
}

func TestInterpret_BreakContinueEscapeFunctionSilently(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `
		fn odd() {
			break;
		}
		print(odd());
	`)
	assert.Empty(t, errs)
	assert.Equal(t, "nil", strings.TrimSpace(out.String()))
}

func TestInterpret_LogicalShortCircuit(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `
		fn boom() {
			assert false;
			return true;
		}
		print(false and boom());
		print(true or boom());
	`)
	assert.Empty(t, errs)
	assert.Equal(t, []string{"false", "true"}, strings.Fields(out.String()))
}

func TestInterpret_InterruptStopsExecution(t *testing.T) {
	var out, errOut bytes.Buffer
	in := New(&out, &errOut, strings.NewReader(""))
	RequestInterrupt()
	errs := run(t, in, `
		print("first");
		print("second");
	`)
	assert.Empty(t, errs)
	assert.Empty(t, out.String(), "the interrupted fragment must not execute any statement")
	assert.Contains(t, errOut.String(), "interrupt")
}

func TestInterpret_ScopeRestoredToGlobalsAfterError(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `fn f() { var x = nope; } f();`)
	assert.NotEmpty(t, errs)
	assert.Same(t, in.Globals, in.current, "current scope must be restored to Globals even after an error")
}

func TestInterpret_ModuloFollowsDividendSign(t *testing.T) {
	var out bytes.Buffer
	in := newInterp(&out)
	errs := run(t, in, `print(5 % 3); print(-7 % 3); print(7 % -3);`)
	assert.Empty(t, errs)
	assert.Equal(t, []string{"2", "-1", "1"}, strings.Fields(out.String()))
}
