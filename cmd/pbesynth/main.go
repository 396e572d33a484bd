/*
Pbesynth runs programming-by-example synthesis jobs from the command line.

Usage:

	pbesynth synthesize -g grammar.cfg -e examples.json [flags]
	pbesynth repl [-g grammar.cfg]
	pbesynth serve [-a :8080] [--db ./data]

The synthesize subcommand parses a grammar file and an examples file, runs
one synthesis job, and prints the resulting program (or reports that no
solution was found) to stdout.

The repl subcommand starts an interactive shell for iteratively loading a
grammar, adding example pairs, and re-running synthesis with command
history, built on GNU-readline-style line editing.

The serve subcommand starts the HTTP job service of package server.

Run "pbesynth <subcommand> -h" for the flags each subcommand accepts.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/pbe/internal/version"
)

const (
	ExitSuccess = iota
	ExitUsageError
	ExitInitError
	ExitRunError
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(ExitUsageError)
	}

	sub := os.Args[1]
	args := os.Args[2:]

	if sub == "-v" || sub == "--version" {
		fmt.Printf("pbesynth %s\n", version.Current)
		os.Exit(ExitSuccess)
	}

	var code int
	switch sub {
	case "synthesize":
		code = runSynthesize(args)
	case "repl":
		code = runREPL(args)
	case "serve":
		code = runServe(args)
	case "-h", "--help", "help":
		usage()
		code = ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", sub)
		usage()
		code = ExitUsageError
	}

	os.Exit(code)
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: pbesynth <synthesize|repl|serve> [flags]")
	fmt.Fprintln(os.Stderr, "Run 'pbesynth <subcommand> -h' for subcommand-specific flags.")
}
