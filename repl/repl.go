/*
File    : go-mix/repl/repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package repl implements the Read-Eval-Print Loop for the Go-Mix
interpreter. Each line the user enters is its own source fragment: it is
lexed, parsed, and checked independently, but all fragments run against
one persistent Interpreter and its global scope, so a function defined
on one line can reference a global defined on a later line (spec.md §4.3,
§8 scenario (e)).
*/
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/gomix-lang/gomix/checker"
	"github.com/gomix-lang/gomix/diag"
	"github.com/gomix-lang/gomix/interpreter"
	"github.com/gomix-lang/gomix/lexer"
	"github.com/gomix-lang/gomix/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the banner text and prompt shown around an interactive
// session.
type Repl struct {
	Banner    string
	Version   string
	Author    string
	Line      string
	Prompt    string
	UITesting bool // suppress color and banner decoration (spec.md §6.4)
}

// NewRepl builds a Repl with the given display fields.
func NewRepl(banner, version, author, line, prompt string, uiTesting bool) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, Prompt: prompt, UITesting: uiTesting}
}

// PrintBannerInfo writes the startup banner, or nothing in --ui-testing
// mode where stable golden output matters more than decoration.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	if r.UITesting {
		return
	}
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to Go-Mix!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the main loop, reading fragments from reader through readline
// and writing output and errors to writer. It
// returns once the user exits or the input stream ends.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.NewEx(&readline.Config{
		Prompt: r.Prompt,
		Stdin:  io.NopCloser(reader),
		Stdout: writer,
	})
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	in := interpreter.New(writer, writer, reader)
	in.ReplMode = true

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprint(writer, "Good Bye!\n")
			return
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Fprint(writer, "Good Bye!\n")
			return
		}
		rl.SaveHistory(line)

		r.execute(writer, line, in)
	}
}

func (r *Repl) execute(writer io.Writer, src string, in *interpreter.Interpreter) {
	lex := lexer.NewLexer(src)
	toks := lex.ConsumeTokens()
	if lex.HasErrors() {
		r.reportErrors(writer, lex.Errors)
		return
	}

	prog, perrs := parser.Parse(toks, src)
	if len(perrs) > 0 {
		r.reportErrors(writer, perrs)
		return
	}

	checker.Resolve(prog)

	if errs := in.Interpret(prog, src); len(errs) > 0 {
		r.reportErrors(writer, errs)
	}
}

func (r *Repl) reportErrors(writer io.Writer, errs []*diag.Error) {
	for _, e := range errs {
		if r.UITesting {
			fmt.Fprintf(writer, "%s\n", e.Error())
		} else {
			redColor.Fprintf(writer, "%s\n", e.Error())
		}
	}
}
