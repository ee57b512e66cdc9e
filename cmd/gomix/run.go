/*
File    : go-mix/cmd/gomix/run.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gomix-lang/gomix/checker"
	"github.com/gomix-lang/gomix/interpreter"
	"github.com/gomix-lang/gomix/lexer"
	"github.com/gomix-lang/gomix/parser"
	"github.com/gomix-lang/gomix/repl"
	"github.com/urfave/cli/v3"
)

// watchInterrupts relays Ctrl-C to the interpreter's process-wide
// interrupt flag (spec.md §5) so a running script or REPL fragment
// unwinds cleanly on its next statement/loop check, instead of letting
// the default handler kill the process mid-evaluation. Only `run`
// drives a local interpreter directly, so only it installs this; a
// second Ctrl-C still terminates the process, for when nothing is
// currently executing to observe the flag (e.g. the REPL is blocked
// waiting on a line of input).
func watchInterrupts() {
	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		interpreter.RequestInterrupt()
		<-sig
		os.Exit(130)
	}()
}

const (
	prompt = "gomix >>> "
	line   = "----------------------------------------------------------------"
	banner = `
    ▄▄▄▄                       ▄▄▄  ▄▄▄     ██
  ██▀▀▀▀█                      ███  ███     ▀▀
 ██         ▄████▄             ████████   ████     ▀██  ██▀
 ██  ▄▄▄▄  ██▀  ▀██             ██ ██ ██     ██       ████
 ██  ▀▀██  ██    ██   █████    ██ ▀▀ ██     ██       ▄██▄
  ██▄▄▄██  ▀██▄▄██▀            ██    ██  ▄▄▄██▄▄▄   ▄█▀▀█▄
    ▀▀▀▀     ▀▀▀▀              ▀▀    ▀▀  ▀▀▀▀▀▀▀▀  ▀▀▀  ▀▀▀
`
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Aliases:   []string{"interpret"},
		Usage:     "interpret a source file, or start the REPL with no file given",
		ArgsUsage: "[file]",
		Action:    runRun,
	}
}

func runRun(_ context.Context, cmd *cli.Command) error {
	watchInterrupts()

	path := cmd.Args().First()
	if path == "" {
		r := repl.NewRepl(banner, VERSION, AUTHOR, line, prompt, uiTesting(cmd))
		r.Start(os.Stdin, os.Stdout)
		return nil
	}
	return runFile(cmd, path)
}

func runFile(cmd *cli.Command, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("run: %v", err), 1)
	}
	source := string(src)

	lex := lexer.NewLexer(source)
	toks := lex.ConsumeTokens()
	if lex.HasErrors() {
		reportErrors(cmd, lex.Errors)
		return cli.Exit("", 1)
	}

	prog, perrs := parser.Parse(toks, source)
	if len(perrs) > 0 {
		reportErrors(cmd, perrs)
		return cli.Exit("", 1)
	}

	checker.Resolve(prog)

	in := interpreter.New(os.Stdout, os.Stderr, os.Stdin)
	if errs := in.Interpret(prog, source); len(errs) > 0 {
		reportErrors(cmd, errs)
		return cli.Exit("", 1)
	}
	return nil
}
