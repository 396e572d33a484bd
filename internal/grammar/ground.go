package grammar

import (
	"strings"

	"github.com/dekarrin/pbe/internal/util"
)

// fragmentKey returns a key for a fragment (ordered token sequence) that is
// safe to use for exact tuple-equality membership checks, distinct from the
// fragment's candidate-string concatenation (two different fragments may
// concatenate to the same string once tokens contain no separators, but they
// are still distinct tuples and must be tracked as such here).
func fragmentKey(tokens []string) string {
	return strings.Join(tokens, "\x1f")
}

// GroundExpressions computes the fixed-point expansion of ground fragments
// reachable from start (spec.md §3 "Height", §4.1): fragments derivable via
// rules whose RHS contains no non-terminal, plus the transitive closure
// through unit productions `L -> L'` between non-terminals. A rule with a
// mixed (terminals + one non-terminal) RHS of length > 1 is not ground.
//
// The returned set's iteration order is insertion order, matching the order
// rules were declared and, within a rule, the order its RHS was produced;
// this is the stratum-0 seed for Enumerator and must be deterministic.
func GroundExpressions(start string, g *Grammar) []([]string) {
	ret := util.NewSet[string, []string](0)
	reachable := map[string]bool{start: true}

	changed := true
	for changed {
		changed = false
		for _, rule := range g.Rules {
			nonterms := 0
			for _, tok := range rule.RHS {
				if g.IsNonTerminal(tok) {
					nonterms++
				}
			}
			if nonterms != 0 && nonterms != 1 {
				continue
			}
			if len(rule.RHS) != 1 && nonterms >= 1 {
				continue
			}
			if !reachable[rule.LHS] {
				continue
			}

			joined := strings.Join(rule.RHS, "")
			if !g.IsNonTerminal(joined) {
				if ret.Add(fragmentKey(rule.RHS), append([]string(nil), rule.RHS...)) {
					changed = true
				}
			} else if !reachable[joined] {
				reachable[joined] = true
				changed = true
			}
		}
	}

	return ret.Values()
}
