// Package oracle implements C3, the equivalence oracle of spec.md §4.3:
// the five-step decision procedure that tells the enumerator whether a
// newly formed fragment is redundant with respect to the fragments already
// kept for its non-terminal.
package oracle

import (
	"strings"

	"github.com/dekarrin/pbe/internal/evaluator"
	"github.com/dekarrin/pbe/internal/lang"
	"github.com/dekarrin/pbe/internal/trace"
)

// KeptSet is the read-only view of a non-terminal's already-kept candidate
// strings that the oracle needs: literal-duplication membership plus
// ordered iteration for the observational/symbolic equivalence passes.
// internal/util.Set[string, string] satisfies this directly.
type KeptSet interface {
	Contains(key string) bool
	Values() []string
}

// Oracle decides fragment redundancy per spec.md §4.3. One Oracle is owned
// by a single enumeration run, same lifetime as its Evaluator.
type Oracle struct {
	ev     *evaluator.Evaluator
	tracer trace.Tracer

	prove bool

	// constants is the "seen constants" cache of spec.md §4.3 step 3,
	// registered on first sight per spec.md §9's resolved open question.
	constantProgs []string
	constantVals  []lang.Value
}

// New creates an Oracle over ev. prove enables the opt-in symbolic
// equivalence upgrade of step 5; it can be downgraded to false internally
// if the prover ever fails (spec.md §7 "Solver errors").
func New(ev *evaluator.Evaluator, prove bool, tracer trace.Tracer) *Oracle {
	if tracer == nil {
		tracer = trace.Noop
	}
	return &Oracle{ev: ev, prove: prove, tracer: tracer}
}

// Reset clears the constant cache and restores the prove flag, matching
// the per-Synthesize-call cache reset of spec.md §3 "Lifecycle".
func (o *Oracle) Reset(prove bool) {
	o.prove = prove
	o.constantProgs = nil
	o.constantVals = nil
}

// Proving reports whether the symbolic-equivalence upgrade is still active
// (it may have been downgraded after a solver failure).
func (o *Oracle) Proving() bool { return o.prove }

// Redundant implements the decision procedure of spec.md §4.3: given
// candidate string c and the set of already-kept candidates for the same
// non-terminal, it returns true exactly when c should be discarded.
func (o *Oracle) Redundant(c string, kept KeptSet) bool {
	// Step 1: callable check. Function equivalence is undecidable in
	// general, so any fragment that evaluates to a callable is always
	// kept.
	bottom := o.ev.EvalCached(c, nil)
	if !bottom.Fail && lang.IsCallable(bottom.Value) {
		o.tracer.Debugf("%s is a function; equivalence undecidable, keeping", c)
		return false
	}

	// Step 2: literal duplication.
	if kept.Contains(c) {
		o.tracer.Debugf("%s is a literal duplicate", c)
		return true
	}

	// Step 3: constant analysis, only applicable when c does not mention
	// "input" at all.
	if !strings.Contains(c, "input") {
		o.tracer.Debugf("%s has no input reference; checking constant-ness", c)
		if !bottom.Fail {
			if o.seenEqualConstant(bottom.Value) {
				o.tracer.Debugf("%s is an already-seen constant", c)
				return true
			}
			o.registerConstant(c, bottom.Value)
			o.tracer.Debugf("%s is a new constant", c)
			return false
		}
		// bottom.Fail here stands in for the source's NameError path (a
		// free variable under a not-yet-closed lambda binder): the
		// constant path is inapplicable, fall through to step 4/5. This
		// merges with the "any other evaluation error" case, since
		// eval_cached in the original already converts every exception -
		// name errors included - to the same NoResult sentinel before it
		// ever reaches check_if_seen_constant, so the two cases are
		// operationally identical here too.
	}

	// Step 5 (opt-in, tried first): symbolic equivalence.
	if o.prove {
		redundant, err := o.proveRedundantAny(c, kept.Values())
		if err == nil {
			return redundant
		}
		o.prove = false
		o.tracer.Debugf("solver failed on %s, disabling prove for the rest of the run", c)
	}

	// Step 4: observational equivalence.
	return o.oeRedundant(c, kept.Values())
}

func (o *Oracle) seenEqualConstant(v lang.Value) bool {
	for _, cv := range o.constantVals {
		if lang.Ok(v).Equal(lang.Ok(cv)) {
			return true
		}
	}
	return false
}

func (o *Oracle) registerConstant(c string, v lang.Value) {
	o.constantProgs = append(o.constantProgs, c)
	o.constantVals = append(o.constantVals, v)
}

// oeRedundant implements step 4: pointwise comparison of evaluation
// vectors, with cache aliasing on a match.
func (o *Oracle) oeRedundant(c string, kept []string) bool {
	v := o.ev.Vector(c)
	for _, k := range kept {
		kv := o.ev.Vector(k)
		if vectorsEqual(v, kv) {
			o.ev.AliasVector(c, k)
			o.tracer.Debugf("%s is observationally equivalent to %s", c, k)
			return true
		}
	}
	return false
}

func vectorsEqual(a, b []lang.Result) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
