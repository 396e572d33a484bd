// file shortcircuit.go implements the unit-production short-circuit pass
// of spec.md §4.4 step 6, grounded on original_source/synthesizer.py's
// `short_circuit`. A unit production "L -> R" where R is the grammar's
// only non-terminal on L's only rule lets every fragment just discovered
// for R count as a fragment of L too, without waiting for a future round
// to re-derive them through an explicit L-rule application.
package enum

import "github.com/dekarrin/pbe/internal/grammar"

// shortCircuit copies newly-discovered fragments across qualifying unit
// productions. newValues holds this round's per-non-terminal discoveries
// (not yet merged into the main pool); the returned map holds the
// short-circuited fragments, keyed the same way, ready for the caller to
// merge into both the pool and the PROGRAM emission stream.
//
// The source wraps this in a "while changed" fixed-point loop, kept here
// to mirror that structure rather than silently simplify it away. Each
// pass only ever reads from newValues, never from its own extra map, so
// the loop is in fact a single effective pass per rule: a chain longer
// than one hop (L1 -> L2 -> L3, all unit productions) does not fully
// propagate in one call, since L1's rule reads newValues[L2], not
// extra[L2]. This matches original_source/synthesizer.py's own
// short_circuit exactly, not a bug introduced here.
func shortCircuit(g *grammar.Grammar, newValues map[string]*ntPool, tracer interface {
	Debugf(format string, args ...any)
}) map[string]*ntPool {
	extra := make(map[string]*ntPool, len(newValues))
	for nt := range newValues {
		extra[nt] = newNTPool()
	}

	unitRules := make([]grammar.Rule, 0)
	for _, rule := range g.Rules {
		if len(g.RulesFor(rule.LHS)) != 1 {
			continue
		}
		if len(rule.RHS) != 1 || !g.IsNonTerminal(rule.RHS[0]) {
			continue
		}
		unitRules = append(unitRules, rule)
	}

	changed := true
	for changed {
		changed = false
		for _, rule := range unitRules {
			src := newValues[rule.RHS[0]]
			if src == nil || src.tuples.Len() == 0 {
				continue
			}
			dst := extra[rule.LHS]
			before := dst.tuples.Len()
			for _, f := range src.tuples.Values() {
				dst.add(f)
			}
			if dst.tuples.Len() != before {
				changed = true
				tracer.Debugf("short-circuited %d fragment(s) from %s into %s", dst.tuples.Len()-before, rule.RHS[0], rule.LHS)
			}
		}
	}

	return extra
}
