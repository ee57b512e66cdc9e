/*
File    : go-mix/cmd/gomix/parse.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gomix-lang/gomix/lexer"
	"github.com/gomix-lang/gomix/parser"
	"github.com/urfave/cli/v3"
)

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "parse a source file and dump its AST",
		ArgsUsage: "<file>",
		Action:    runParse,
	}
}

func runParse(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return cli.Exit("parse: missing source file", 1)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("parse: %v", err), 1)
	}
	source := string(src)

	lex := lexer.NewLexer(source)
	toks := lex.ConsumeTokens()
	if lex.HasErrors() {
		reportErrors(cmd, lex.Errors)
		return cli.Exit("", 1)
	}

	prog, errs := parser.Parse(toks, source)
	if len(errs) > 0 {
		reportErrors(cmd, errs)
		return cli.Exit("", 1)
	}

	fmt.Println(prog.Dump(0))
	return nil
}
