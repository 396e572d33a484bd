// Package trace implements the debug toggle of spec.md §6: a leveled trace
// sink for the enumerator and oracle, in the "DEBUG: ..." line style of
// original_source/synthesizer.py, but routed through the standard log
// package the way dekarrin/tunaq logs throughout server/*, rather than
// bare fmt.Println calls.
package trace

import (
	"log"
	"math/rand"
	"strconv"

	"github.com/dekarrin/rosed"
)

// Tracer receives diagnostic lines from the enumerator and oracle. The
// zero value of most implementations should be inert; callers that don't
// want tracing use Noop.
type Tracer interface {
	// Enabled reports whether the tracer actually records anything, so
	// callers can skip building an expensive message when it would be
	// discarded.
	Enabled() bool

	// Debugf records one free-form trace line.
	Debugf(format string, args ...any)

	// RoundSummary records the end-of-round pool sizes, mirroring the
	// multi-line round reports original_source/synthesizer.py prints with
	// individual print() calls, laid out here as a single rosed table.
	RoundSummary(height int, order []string, poolSizes map[string]int)
}

// Noop discards every trace line; it is the default when a Synthesizer has
// no tracer configured.
var Noop Tracer = noopTracer{}

type noopTracer struct{}

func (noopTracer) Enabled() bool                               { return false }
func (noopTracer) Debugf(string, ...any)                        {}
func (noopTracer) RoundSummary(int, []string, map[string]int)   {}

// Logger is a Tracer backed by the standard library's log package. rng is
// seeded per-Logger (never from wall-clock or the package-global rand
// source) so that enabling tracing never perturbs the deterministic
// sequence of candidates spec.md §8 requires - the random pick it drives
// is for a human-readable log line only.
type Logger struct {
	l   *log.Logger
	rng *rand.Rand
}

// NewLogger creates a Logger that writes through dst, seeded with seed (use
// a fixed constant, or the configured depth threshold, for reproducible
// trace output across runs).
func NewLogger(dst *log.Logger, seed int64) *Logger {
	return &Logger{l: dst, rng: rand.New(rand.NewSource(seed))}
}

func (t *Logger) Enabled() bool { return true }

func (t *Logger) Debugf(format string, args ...any) {
	t.l.Printf("DEBUG: "+format, args...)
}

// SamplePick chooses one element of options to mention in a trace line,
// analogous to original_source/synthesizer.py's `random.choice` over a
// round's new values. It returns "" for an empty slice.
func (t *Logger) SamplePick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[t.rng.Intn(len(options))]
}

// RoundSummary renders a small table of per-non-terminal pool sizes after a
// round completes, using rosed the way internal/game/debug.go lays out
// tabular debug output in the model repository.
func (t *Logger) RoundSummary(height int, order []string, poolSizes map[string]int) {
	data := [][]string{{"non-terminal", "pool size"}}
	for _, nt := range order {
		data = append(data, []string{nt, strconv.Itoa(poolSizes[nt])})
	}

	opts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}
	table := rosed.Edit("").InsertTableOpts(0, data, 80, opts).String()
	t.l.Printf("DEBUG: round %d complete\n%s", height, table)
}
