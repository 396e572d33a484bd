package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/pbe"
	"github.com/dekarrin/pbe/internal/lang"
	"github.com/spf13/pflag"
)

// replSession holds the state a running repl subcommand builds up across
// commands: the loaded grammar, the synthesizer built from it, and the
// example pairs accumulated so far.
type replSession struct {
	synth    *pbe.Synthesizer
	cfg      pbe.Config
	examples []pbe.Example
}

func runREPL(args []string) int {
	fs := pflag.NewFlagSet("repl", pflag.ContinueOnError)
	grammarFile := fs.StringP("grammar", "g", "", "Grammar file to load at startup")
	debug := fs.BoolP("debug", "d", false, "Emit trace lines to stderr")
	prove := fs.BoolP("prove", "p", false, "Enable the symbolic-equivalence upgrade")

	if err := fs.Parse(args); err != nil {
		return ExitUsageError
	}

	rl, err := readline.NewEx(&readline.Config{Prompt: "pbe> "})
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not start readline: %s\n", err)
		return ExitInitError
	}
	defer rl.Close()

	sess := &replSession{cfg: pbe.Config{Debug: *debug, Prove: *prove}}

	if *grammarFile != "" {
		if err := sess.loadGrammar(*grammarFile); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return ExitInitError
		}
		fmt.Printf("loaded grammar from %s\n", *grammarFile)
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return ExitSuccess
			}
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return ExitRunError
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !sess.dispatch(line) {
			return ExitSuccess
		}
	}
}

// dispatch runs one command line and reports whether the repl should keep
// going (false means the user asked to quit).
func (sess *replSession) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

	switch cmd {
	case "quit", "exit":
		return false
	case "help":
		printREPLHelp()
	case "load":
		if err := sess.loadGrammar(rest); err != nil {
			fmt.Println(err)
			break
		}
		fmt.Printf("loaded grammar from %s\n", rest)
	case "example":
		if err := sess.addExample(rest); err != nil {
			fmt.Println(err)
		}
	case "clear":
		sess.examples = nil
		fmt.Println("cleared all examples")
	case "list":
		sess.listExamples()
	case "run":
		sess.run(rest)
	default:
		fmt.Printf("unrecognized command %q; type help for a list\n", cmd)
	}

	return true
}

func printREPLHelp() {
	fmt.Println("commands:")
	fmt.Println("  load PATH            load a grammar file")
	fmt.Println("  example INPUT -> OUT add an example pair (both sides read as grammar literals)")
	fmt.Println("  list                 show the examples added so far")
	fmt.Println("  clear                discard all examples")
	fmt.Println("  run [TIMEOUT]        synthesize against the current examples")
	fmt.Println("  quit                 leave the repl")
}

func (sess *replSession) loadGrammar(path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading grammar: %w", err)
	}
	synth, err := pbe.New(string(text), sess.cfg)
	if err != nil {
		return fmt.Errorf("parsing grammar: %w", err)
	}
	sess.synth = synth
	sess.examples = nil
	return nil
}

// addExample parses a line of the form "INPUT -> OUTPUT", reading each
// side as an integer literal when possible, true/false as a boolean, and
// otherwise as a string with surrounding double quotes removed, since the
// repl has no JSON front end of its own.
func (sess *replSession) addExample(line string) error {
	parts := strings.SplitN(line, "->", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected \"INPUT -> OUTPUT\", got %q", line)
	}

	in, err := parseREPLValue(strings.TrimSpace(parts[0]))
	if err != nil {
		return err
	}
	out, err := parseREPLValue(strings.TrimSpace(parts[1]))
	if err != nil {
		return err
	}

	sess.examples = append(sess.examples, pbe.Example{Input: in, Output: out})
	return nil
}

func parseREPLValue(s string) (lang.Value, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return lang.IntValue(n), nil
	}
	if s == "true" {
		return lang.BoolValue(true), nil
	}
	if s == "false" {
		return lang.BoolValue(false), nil
	}
	return lang.StrValue(strings.Trim(s, `"`)), nil
}

func (sess *replSession) listExamples() {
	if len(sess.examples) == 0 {
		fmt.Println("no examples yet")
		return
	}
	for i, ex := range sess.examples {
		fmt.Printf("%d: %v -> %v\n", i, ex.Input, ex.Output)
	}
}

func (sess *replSession) run(timeoutArg string) {
	if sess.synth == nil {
		fmt.Println("no grammar loaded; use load PATH first")
		return
	}
	if len(sess.examples) == 0 {
		fmt.Println("no examples added; use example INPUT -> OUTPUT first")
		return
	}

	timeoutS := 10.0
	if timeoutArg != "" {
		if v, err := strconv.ParseFloat(timeoutArg, 64); err == nil {
			timeoutS = v
		}
	}

	program, ok := sess.synth.Synthesize(sess.examples, timeoutS, nil, nil)
	if !ok {
		fmt.Println("no solution found")
		return
	}
	fmt.Println(program)
}
