/*
File    : go-mix/cmd/gomix/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package main is the entry point for the Go-Mix interpreter driver. It
wires the lex/parse/run/server subcommands (spec.md §6.4) onto an
urfave/cli/v3 app, leaving each subcommand's behavior to its own file.
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// VERSION is the interpreter's version string, shown by --version.
var VERSION = "v1.0.0"

// AUTHOR contains the contact information of the interpreter's author.
var AUTHOR = "akashmaji(@iisc.ac.in)"

func main() {
	app := &cli.Command{
		Name:    "gomix",
		Version: VERSION,
		Usage:   "Go-Mix: a small dynamically-typed scripting language",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "ui-testing",
				Usage: "suppress colorized/interactive output for stable golden-test output",
			},
		},
		Commands: []*cli.Command{
			lexCommand(),
			parseCommand(),
			runCommand(),
			serverCommand(),
		},
		DefaultCommand: "run",
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// uiTesting reports whether --ui-testing was passed at the root command,
// regardless of which subcommand is executing.
func uiTesting(cmd *cli.Command) bool {
	return cmd.Root().Bool("ui-testing")
}
