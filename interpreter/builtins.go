/*
File    : go-mix/interpreter/builtins.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

package interpreter

import (
	"errors"
	"fmt"
	"io"

	"github.com/gomix-lang/gomix/object"
)

// registerBuiltins defines the two global built-ins print(x) and
// input(prompt) (spec.md §6.3). Both are arity 1 and resolve dynamically
// like any other global, so a program may shadow them with its own
// `var print = fn(x) {...};`.
func registerBuiltins(in *Interpreter) {
	in.Globals.Define("print", &object.BuiltinFunction{
		Name:   "print",
		NArity: 1,
		Fn:     in.builtinPrint,
	})
	in.Globals.Define("input", &object.BuiltinFunction{
		Name:   "input",
		NArity: 1,
		Fn:     in.builtinInput,
	})
}

// builtinPrint writes x's natural String() form followed by a newline and
// returns Nil. Strings are written unquoted and unescaped, unlike REPL
// echo of a bare expression statement (spec.md §6.3).
func (in *Interpreter) builtinPrint(args []object.Object) (object.Object, error) {
	fmt.Fprintln(in.Stdout, args[0].String())
	return &object.Nil{}, nil
}

// builtinInput writes prompt's natural String() form, same as print, without
// a trailing newline, then reads one line from stdin and returns it as a
// String with its trailing newline stripped. Reaching EOF before any input
// is read is reported as an error (spec.md §6.3).
func (in *Interpreter) builtinInput(args []object.Object) (object.Object, error) {
	fmt.Fprint(in.Stdout, args[0].String())

	line, err := in.Stdin.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return &object.String{Value: line}, nil
		}
		return nil, errors.New("input: end of input")
	}
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return &object.String{Value: line}, nil
}
