package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/pbe"
	"github.com/dekarrin/pbe/internal/examplefile"
	"github.com/dekarrin/pbe/internal/rewrite"
	"github.com/spf13/pflag"
)

func runSynthesize(args []string) int {
	fs := pflag.NewFlagSet("synthesize", pflag.ContinueOnError)

	grammarFile := fs.StringP("grammar", "g", "", "Grammar file (required)")
	examplesFile := fs.StringP("examples", "e", "", "Examples file (required)")
	timeoutS := fs.Float64P("timeout", "t", 60, "Wall-clock timeout in seconds; <= 0 means no deadline")
	debug := fs.BoolP("debug", "d", false, "Emit trace lines to stderr")
	prove := fs.BoolP("prove", "p", false, "Enable the symbolic-equivalence upgrade")
	depthForOE := fs.IntP("depth-for-oe", "D", 0, "Stratum at which observational equivalence begins; -1 disables it")
	trsFile := fs.StringP("rewrite", "r", "", "Term-rewriting rules file")
	depthLimitFlag := fs.IntP("depth-limit", "L", -1, "Halt after this many strata; negative means unlimited")
	checkpointFile := fs.StringP("checkpoint", "c", "", "Checkpoint file to resume from and update as the run progresses")
	configFile := fs.String("config", "", "TOML file supplying default debug/prove/depth-for-oe settings")
	profilePath := fs.String("profile", "", "Write a CPU profile to this path")

	if err := fs.Parse(args); err != nil {
		return ExitUsageError
	}

	if *grammarFile == "" || *examplesFile == "" {
		fmt.Fprintln(os.Stderr, "both -g/--grammar and -e/--examples are required")
		return ExitUsageError
	}

	cfg := pbe.Config{Debug: *debug, Prove: *prove, DepthForObservationalEquivalence: *depthForOE}
	if *configFile != "" {
		var tc pbe.TOMLConfig
		if _, err := toml.DecodeFile(*configFile, &tc); err != nil {
			fmt.Fprintf(os.Stderr, "reading config: %s\n", err)
			return ExitInitError
		}
		cfg = tc.ToConfig()
		cfg.Debug = cfg.Debug || *debug
		cfg.Prove = cfg.Prove || *prove
		if fs.Changed("depth-for-oe") {
			cfg.DepthForObservationalEquivalence = *depthForOE
		}
	}

	if *profilePath != "" {
		f, err := os.Create(*profilePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating profile file: %s\n", err)
			return ExitInitError
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "starting CPU profile: %s\n", err)
			return ExitInitError
		}
		defer pprof.StopCPUProfile()
	}

	grammarText, err := os.ReadFile(*grammarFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading grammar: %s\n", err)
		return ExitInitError
	}

	examplesData, err := os.ReadFile(*examplesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading examples: %s\n", err)
		return ExitInitError
	}
	examples, err := examplefile.Parse(examplesData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parsing examples: %s\n", err)
		return ExitInitError
	}

	var trs *rewrite.RuleSet
	if *trsFile != "" {
		trsText, err := os.ReadFile(*trsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading rewrite rules: %s\n", err)
			return ExitInitError
		}
		trs, err = rewrite.Parse(string(trsText))
		if err != nil {
			fmt.Fprintf(os.Stderr, "parsing rewrite rules: %s\n", err)
			return ExitInitError
		}
	}

	var depthLimit *int
	if *depthLimitFlag >= 0 {
		depthLimit = depthLimitFlag
	}

	synth, err := pbe.New(string(grammarText), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parsing grammar: %s\n", err)
		return ExitInitError
	}

	var program string
	var ok bool
	if *checkpointFile != "" {
		if _, statErr := os.Stat(*checkpointFile); statErr == nil {
			program, ok, err = synth.ResumeFromCheckpoint(*checkpointFile, examples, *timeoutS, trs, depthLimit)
		} else {
			program, ok, err = synth.SynthesizeWithCheckpoint(examples, *timeoutS, trs, depthLimit, *checkpointFile)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "checkpointing: %s\n", err)
			return ExitRunError
		}
	} else {
		program, ok = synth.Synthesize(examples, *timeoutS, trs, depthLimit)
	}

	if !ok {
		fmt.Println("no solution found")
		return ExitSuccess
	}

	fmt.Println(program)
	return ExitSuccess
}
