/*
File    : go-mix/cmd/gomix/server.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/fatih/color"
	"github.com/gomix-lang/gomix/repl"
	"github.com/urfave/cli/v3"
)

func serverCommand() *cli.Command {
	return &cli.Command{
		Name:      "server",
		Usage:     "listen on a TCP port, serving one REPL session per connection",
		ArgsUsage: "<port>",
		Action:    runServer,
	}
}

func runServer(_ context.Context, cmd *cli.Command) error {
	port := cmd.Args().First()
	if port == "" {
		return cli.Exit("server: missing port", 1)
	}

	cyan := color.New(color.FgCyan)
	red := color.New(color.FgRed)

	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return cli.Exit(fmt.Sprintf("server: %v", err), 1)
	}
	defer listener.Close()
	cyan.Fprintf(os.Stdout, "gomix REPL server listening on :%s\n", port)

	testing := uiTesting(cmd)
	for {
		conn, err := listener.Accept()
		if err != nil {
			red.Fprintf(os.Stderr, "server: accept: %v\n", err)
			continue
		}
		go handleClient(conn, testing)
	}
}

// handleClient gives each connection its own Repl instance and
// Interpreter, so concurrent clients never share global scope.
func handleClient(conn net.Conn, testing bool) {
	defer conn.Close()
	r := repl.NewRepl(banner, VERSION, AUTHOR, line, prompt, testing)
	r.Start(conn, conn)
}
