// Package pbe is the top-level facade over the enumeration engine: it
// wires internal/grammar, internal/evaluator, internal/oracle,
// internal/enum, and internal/rewrite into the single `synthesize` entry
// point of spec.md §6, the way tunaq's engine.go wires internal/game,
// internal/command, and internal/input into a single Engine for its own
// callers.
package pbe

import (
	"log"
	"os"
	"time"

	"github.com/dekarrin/pbe/internal/checkpoint"
	"github.com/dekarrin/pbe/internal/enum"
	"github.com/dekarrin/pbe/internal/evaluator"
	"github.com/dekarrin/pbe/internal/grammar"
	"github.com/dekarrin/pbe/internal/lang"
	"github.com/dekarrin/pbe/internal/oracle"
	"github.com/dekarrin/pbe/internal/rewrite"
	"github.com/dekarrin/pbe/internal/trace"
)

// Example is re-exported so callers never need to import internal/evaluator
// directly just to build an example set.
type Example = evaluator.Example

// Config holds the three process-wide toggles spec.md §6 describes as
// "plain setter calls": whether trace lines are emitted, whether the
// symbolic-equivalence upgrade is attempted, and the stratum at which
// observational equivalence begins. The zero Config has tracing and
// proving both off and observational equivalence active from stratum 0,
// matching synthesizer.py's own defaults.
type Config struct {
	Debug                           bool
	Prove                           bool
	DepthForObservationalEquivalence int
}

// TOMLConfig mirrors Config's fields for loading from a config file via
// github.com/BurntSushi/toml; its keys are the lowercase, underscore-separated
// field names (debug, prove, depth_for_observational_equivalence).
type TOMLConfig struct {
	Debug                           bool `toml:"debug"`
	Prove                           bool `toml:"prove"`
	DepthForObservationalEquivalence int  `toml:"depth_for_observational_equivalence"`
}

// ToConfig converts a TOMLConfig (as loaded by toml.DecodeFile) into a
// Config.
func (t TOMLConfig) ToConfig() Config {
	return Config{
		Debug:                            t.Debug,
		Prove:                            t.Prove,
		DepthForObservationalEquivalence: t.DepthForObservationalEquivalence,
	}
}

// Synthesizer holds one grammar's compiled form plus the configuration it
// should be run with. A Synthesizer may be reused across multiple
// Synthesize calls against different example sets; each call resets the
// evaluator and oracle caches per spec.md §3's lifecycle.
type Synthesizer struct {
	g      *grammar.Grammar
	cfg    Config
	tracer trace.Tracer
}

// New parses grammarText and returns a Synthesizer ready to run against
// any example set. cfg's DepthForObservationalEquivalence of 0 is a valid,
// common choice (observational equivalence active from stratum 0); to
// disable it entirely, set the field to -1.
func New(grammarText string, cfg Config) (*Synthesizer, error) {
	g, err := grammar.Parse(grammarText)
	if err != nil {
		return nil, err
	}

	s := &Synthesizer{g: g, cfg: cfg, tracer: trace.Noop}
	if cfg.Debug {
		s.tracer = defaultLogger(cfg.DepthForObservationalEquivalence)
	}
	return s, nil
}

// defaultLogger builds the stderr-backed Tracer used when a caller enables
// debug without supplying its own Tracer via SetTracer.
func defaultLogger(seed int) *trace.Logger {
	return trace.NewLogger(log.New(os.Stderr, "", log.LstdFlags), int64(seed))
}

// SetDebug toggles trace-line emission for subsequent Synthesize calls,
// using the default stderr logger. Use SetTracer for a custom destination.
func (s *Synthesizer) SetDebug(debug bool) {
	s.cfg.Debug = debug
	if debug {
		s.tracer = defaultLogger(s.cfg.DepthForObservationalEquivalence)
	} else {
		s.tracer = trace.Noop
	}
}

// SetTracer installs a caller-supplied Tracer (for example one built over
// cmd/pbesynth's own -d flag destination, or a per-job logger in server),
// overriding whatever SetDebug last configured.
func (s *Synthesizer) SetTracer(t trace.Tracer) {
	if t == nil {
		t = trace.Noop
	}
	s.tracer = t
}

// SetProve toggles the opt-in symbolic-equivalence upgrade for subsequent
// Synthesize calls.
func (s *Synthesizer) SetProve(prove bool) {
	s.cfg.Prove = prove
}

// SetDepthForObservationalEquivalence sets the stratum D at which
// observational equivalence pruning begins; -1 disables it entirely.
func (s *Synthesizer) SetDepthForObservationalEquivalence(d int) {
	s.cfg.DepthForObservationalEquivalence = d
}

// Grammar exposes the parsed grammar, for callers (the REPL, the service)
// that want to validate an examples file's inputs/outputs make sense
// before running a synthesis job.
func (s *Synthesizer) Grammar() *grammar.Grammar {
	return s.g
}

// Synthesize runs one synthesis job to completion: enumerate candidates
// bottom-up, evaluate each against examples, and return the first whose
// evaluation vector matches every expected output exactly. It implements
// spec.md §6's `synthesize(grammar, examples, timeout_s=60, trs=None,
// depth_limit=None)` contract.
//
// timeoutS <= 0 means run with no deadline. trs may be nil. depthLimit may
// be nil for unlimited strata. The second return value is false when no
// matching candidate was found before the grammar saturated, depthLimit
// was exhausted, or the deadline expired.
func (s *Synthesizer) Synthesize(examples []Example, timeoutS float64, trs *rewrite.RuleSet, depthLimit *int) (string, bool) {
	ev := evaluator.New(examples)
	orc := oracle.New(ev, s.cfg.Prove, s.tracer)
	en := enum.New(s.g, ev, orc, s.cfg.DepthForObservationalEquivalence, depthLimit, trs, s.tracer)

	return runWithDeadline(en, ev, examples, timeoutS)
}

// SynthesizeWithCheckpoint behaves like Synthesize, but persists a
// resumable snapshot (via internal/checkpoint) to checkpointPath at the
// end of every completed stratum, overwriting the previous one. If no
// matching candidate is found before the run ends, checkpointPath holds
// the last stratum's pool, ready for ResumeFromCheckpoint.
func (s *Synthesizer) SynthesizeWithCheckpoint(examples []Example, timeoutS float64, trs *rewrite.RuleSet, depthLimit *int, checkpointPath string) (string, bool, error) {
	ev := evaluator.New(examples)
	orc := oracle.New(ev, s.cfg.Prove, s.tracer)
	en := enum.New(s.g, ev, orc, s.cfg.DepthForObservationalEquivalence, depthLimit, trs, s.tracer)

	var saveErr error
	en.OnRound(func(pool *enum.Pool, height int) {
		if saveErr != nil {
			return
		}
		snap := checkpoint.Take(pool, height)
		saveErr = os.WriteFile(checkpointPath, snap.Save(), 0o644)
	})

	found, ok := runWithDeadline(en, ev, examples, timeoutS)
	return found, ok, saveErr
}

// ResumeFromCheckpoint restores a snapshot previously written by
// SynthesizeWithCheckpoint and continues enumeration from the stratum it
// left off, rather than restarting from stratum 0.
func (s *Synthesizer) ResumeFromCheckpoint(checkpointPath string, examples []Example, timeoutS float64, trs *rewrite.RuleSet, depthLimit *int) (string, bool, error) {
	data, err := os.ReadFile(checkpointPath)
	if err != nil {
		return "", false, err
	}
	snap, err := checkpoint.Restore(data)
	if err != nil {
		return "", false, err
	}

	ev := evaluator.New(examples)
	orc := oracle.New(ev, s.cfg.Prove, s.tracer)
	en := enum.New(s.g, ev, orc, s.cfg.DepthForObservationalEquivalence, depthLimit, trs, s.tracer)

	pool := enum.NewPool(s.g)
	snap.Populate(pool)

	var saveErr error
	en.OnRound(func(p *enum.Pool, height int) {
		if saveErr != nil {
			return
		}
		next := checkpoint.Take(p, height)
		saveErr = os.WriteFile(checkpointPath, next.Save(), 0o644)
	})

	deadline, hasDeadline := computeDeadline(timeoutS)
	var found string
	var ok bool
	en.Resume(pool, snap.Height+1, func(candidate string) bool {
		if matchesAll(ev, candidate, examples) {
			found, ok = candidate, true
			return false
		}
		return !(hasDeadline && time.Now().After(deadline))
	})

	return found, ok, saveErr
}

// SynthesizeWithSnapshot behaves like Synthesize, but also returns a
// checkpoint.Snapshot of the pool as it stood after the last completed
// stratum, for callers (server, in particular) that want to persist
// progress themselves instead of through a file path.
func (s *Synthesizer) SynthesizeWithSnapshot(examples []Example, timeoutS float64, trs *rewrite.RuleSet, depthLimit *int) (string, bool, checkpoint.Snapshot) {
	ev := evaluator.New(examples)
	orc := oracle.New(ev, s.cfg.Prove, s.tracer)
	en := enum.New(s.g, ev, orc, s.cfg.DepthForObservationalEquivalence, depthLimit, trs, s.tracer)

	var snap checkpoint.Snapshot
	en.OnRound(func(pool *enum.Pool, height int) {
		snap = checkpoint.Take(pool, height)
	})

	found, ok := runWithDeadline(en, ev, examples, timeoutS)
	return found, ok, snap
}

// ResumeFromSnapshot continues enumeration from a previously returned
// Snapshot, returning an updated Snapshot alongside the result exactly
// like SynthesizeWithSnapshot.
func (s *Synthesizer) ResumeFromSnapshot(snap checkpoint.Snapshot, examples []Example, timeoutS float64, trs *rewrite.RuleSet, depthLimit *int) (string, bool, checkpoint.Snapshot) {
	ev := evaluator.New(examples)
	orc := oracle.New(ev, s.cfg.Prove, s.tracer)
	en := enum.New(s.g, ev, orc, s.cfg.DepthForObservationalEquivalence, depthLimit, trs, s.tracer)

	pool := enum.NewPool(s.g)
	snap.Populate(pool)

	next := snap
	en.OnRound(func(p *enum.Pool, height int) {
		next = checkpoint.Take(p, height)
	})

	deadline, hasDeadline := computeDeadline(timeoutS)
	var found string
	var ok bool
	en.Resume(pool, snap.Height+1, func(candidate string) bool {
		if matchesAll(ev, candidate, examples) {
			found, ok = candidate, true
			return false
		}
		return !(hasDeadline && time.Now().After(deadline))
	})

	return found, ok, next
}

func computeDeadline(timeoutS float64) (time.Time, bool) {
	if timeoutS <= 0 {
		return time.Time{}, false
	}
	return time.Now().Add(time.Duration(timeoutS * float64(time.Second))), true
}

func runWithDeadline(en *enum.Enumerator, ev *evaluator.Evaluator, examples []Example, timeoutS float64) (string, bool) {
	deadline, hasDeadline := computeDeadline(timeoutS)
	var found string
	var ok bool
	en.Run(func(candidate string) bool {
		if matchesAll(ev, candidate, examples) {
			found, ok = candidate, true
			return false
		}
		return !(hasDeadline && time.Now().After(deadline))
	})
	return found, ok
}

// matchesAll reports whether candidate's evaluation vector equals the
// expected output for every example exactly, per spec.md §6's
// full-vector-match acceptance criterion. An empty example set is
// vacuously matched by every candidate, so the first one yielded wins -
// the same behavior original_source/synthesizer.py gets from Python's
// all([]) == True.
func matchesAll(ev *evaluator.Evaluator, candidate string, examples []Example) bool {
	for _, ex := range examples {
		r := ev.EvalCached(candidate, ex.Input)
		if r.Fail || !r.Equal(lang.Ok(ex.Output)) {
			return false
		}
	}
	return true
}
