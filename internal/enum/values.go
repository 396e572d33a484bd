// file values.go computes the Cartesian product of token expansions for
// one rule application (spec.md §4.4 step 3), the `get_values` of
// original_source/synthesizer.py.
package enum

import "github.com/dekarrin/pbe/internal/grammar"

// ruleValues expands rule against the current pool, returning every
// resulting fragment not already present (by exact tuple) for rule.LHS.
//
// The expansion order matters (spec.md §4.4 "enumeration order
// guarantees"): for each RHS token in turn, a terminal simply extends
// every accumulated prefix; a non-terminal iterates ITS OWN option list
// in the outer loop and the accumulated prefixes in the inner loop -
// grouping the result by which option of that non-terminal was chosen,
// not by which prefix it extends - exactly mirroring get_values so that
// candidates are yielded in the same order a source-faithful
// reimplementation requires.
func ruleValues(rule grammar.Rule, pool *Pool, g *grammar.Grammar) []Fragment {
	acc := []Fragment{{}}

	for _, tok := range rule.RHS {
		if !g.IsNonTerminal(tok) {
			for i := range acc {
				extended := make(Fragment, 0, len(acc[i])+1)
				extended = append(extended, acc[i]...)
				extended = append(extended, tok)
				acc[i] = extended
			}
			continue
		}

		options := pool.Fragments(tok)
		next := make([]Fragment, 0, len(acc)*len(options))
		for _, opt := range options {
			for _, prefix := range acc {
				combined := make(Fragment, 0, len(prefix)+len(opt))
				combined = append(combined, prefix...)
				combined = append(combined, opt...)
				next = append(next, combined)
			}
		}
		acc = next
	}

	seen := make(map[string]bool, len(acc))
	out := make([]Fragment, 0, len(acc))
	for _, f := range acc {
		if pool.HasTuple(rule.LHS, f) {
			continue
		}
		key := f.tupleKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}
