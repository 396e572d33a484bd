// Package evaluator implements C2 of the enumeration engine: a cached
// wrapper around internal/lang's embedded interpreter. It owns the two
// caches spec.md §4.2 requires - the function cache and the program-result
// cache - and resets both at the start of every Synthesize call, matching
// original_source/synthesizer.py's do_synthesis resetting its two
// module-level dict caches on entry.
package evaluator

import "github.com/dekarrin/pbe/internal/lang"

// Example is one (input, expected output) pair of spec.md §3/§6.
type Example struct {
	Input  lang.Value
	Output lang.Value
}

// Evaluator compiles and evaluates candidate strings against a fixed set of
// example inputs, memoizing both the compiled AST and the resulting
// evaluation vector per program string.
type Evaluator struct {
	examples []Example

	funcs   map[string]compiled
	vectors map[string][]lang.Result
}

type compiled struct {
	expr lang.Expr
	ok   bool // false if Compile failed; expr is then unused
}

// New creates an Evaluator over the given examples. Reset replaces the
// example set in place and clears both caches.
func New(examples []Example) *Evaluator {
	return &Evaluator{
		examples: examples,
		funcs:    make(map[string]compiled),
		vectors:  make(map[string][]lang.Result),
	}
}

// Reset clears both caches and swaps in a new example set, corresponding to
// the start of a fresh Synthesize call (spec.md §3 "Lifecycle").
func (e *Evaluator) Reset(examples []Example) {
	e.examples = examples
	e.funcs = make(map[string]compiled)
	e.vectors = make(map[string][]lang.Result)
}

// Examples returns the evaluator's current example set.
func (e *Evaluator) Examples() []Example {
	return e.examples
}

// EvalCached implements the eval_cached(program_string, input) contract of
// spec.md §4.2: the first call for a given program string compiles it and
// stores the closure; later calls reuse it. Any compile or evaluation
// failure becomes the NoResult sentinel, never a Go error.
func (e *Evaluator) EvalCached(program string, input lang.Value) lang.Result {
	c, ok := e.funcs[program]
	if !ok {
		c = e.compile(program)
		e.funcs[program] = c
	}
	if !c.ok {
		return lang.FailResult()
	}
	return safeEval(c.expr, input)
}

func (e *Evaluator) compile(program string) compiled {
	expr, err := lang.Compile(program)
	if err != nil {
		return compiled{ok: false}
	}
	return compiled{expr: expr, ok: true}
}

// safeEval guards against the evaluator panicking on a malformed AST node;
// lang's own eval methods are written to fail gracefully, but this is the
// last line of defense spec.md §7 asks for ("any exception ... converted to
// NoResult").
func safeEval(expr lang.Expr, input lang.Value) (result lang.Result) {
	defer func() {
		if recover() != nil {
			result = lang.FailResult()
		}
	}()
	return lang.Eval(expr, input)
}

// Vector computes the evaluation vector of program (spec.md §3 "Evaluation
// vector") over the evaluator's examples, reusing a cached entry if one is
// already present.
func (e *Evaluator) Vector(program string) []lang.Result {
	if v, ok := e.vectors[program]; ok {
		return v
	}
	v := e.computeVector(program)
	e.vectors[program] = v
	return v
}

func (e *Evaluator) computeVector(program string) []lang.Result {
	v := make([]lang.Result, len(e.examples))
	for i, ex := range e.examples {
		v[i] = e.EvalCached(program, ex.Input)
	}
	return v
}

// AliasVector makes program's cached vector identical to (and share the
// backing slice of) source's, implementing the cache-aliasing behavior of
// spec.md §4.3 step 4: "when a fragment is found equivalent to a kept
// fragment, its cache entry is aliased to the kept vector."
func (e *Evaluator) AliasVector(program, source string) {
	e.vectors[program] = e.Vector(source)
}

// HasVector reports whether program already has a cached evaluation
// vector, without computing one - used by property tests checking cache
// consistency (spec.md §8 invariant 6).
func (e *Evaluator) HasVector(program string) bool {
	_, ok := e.vectors[program]
	return ok
}
