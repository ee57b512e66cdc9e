/*
File    : go-mix/cmd/gomix/lex.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gomix-lang/gomix/diag"
	"github.com/gomix-lang/gomix/lexer"
	"github.com/gomix-lang/gomix/token"
	"github.com/urfave/cli/v3"
)

func lexCommand() *cli.Command {
	return &cli.Command{
		Name:      "lex",
		Usage:     "tokenize a source file and dump its tokens",
		ArgsUsage: "<file>",
		Action:    runLex,
	}
}

func runLex(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return cli.Exit("lex: missing source file", 1)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("lex: %v", err), 1)
	}

	source := string(src)
	lex := lexer.NewLexer(source)
	toks := lex.ConsumeTokens()

	if lex.HasErrors() {
		reportErrors(cmd, lex.Errors)
		return cli.Exit("", 1)
	}

	for _, tok := range toks {
		if tok.Type == token.EOF {
			continue
		}
		fmt.Println(token.DumpLine(tok, source))
	}
	return nil
}

// reportErrors prints each diagnostic to stderr, colorized unless
// --ui-testing was passed (spec.md §6.4). Shared by all three pipeline
// subcommands.
func reportErrors(cmd *cli.Command, errs []*diag.Error) {
	red := color.New(color.FgRed)
	for _, e := range errs {
		if uiTesting(cmd) {
			fmt.Fprintln(os.Stderr, e.Error())
		} else {
			red.Fprintln(os.Stderr, e.Error())
		}
	}
}
