package enum

import (
	"testing"

	"github.com/dekarrin/pbe/internal/evaluator"
	"github.com/dekarrin/pbe/internal/grammar"
	"github.com/dekarrin/pbe/internal/oracle"
	"github.com/dekarrin/pbe/internal/rewrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrammar(t *testing.T, text string) *grammar.Grammar {
	t.Helper()
	g, err := grammar.Parse(text)
	require.NoError(t, err)
	return g
}

// Test_Run_ArithmeticScenario reproduces spec.md §8 scenario S1: given
// PROGRAM ::= NUM, NUM ::= 1 | NUM \s+\s NUM, and the single example
// (0,2), the first PROGRAM-height candidate beyond the ground literal
// should be "1 + 1".
func Test_Run_ArithmeticScenario(t *testing.T) {
	g := mustGrammar(t, `
		PROGRAM ::= NUM
		NUM ::= 1 | NUM \s+\s NUM
	`)
	ev := evaluator.New(nil)
	orc := oracle.New(ev, false, nil)
	en := New(g, ev, orc, -1, nil, nil, nil)

	var got []string
	en.Run(func(candidate string) bool {
		got = append(got, candidate)
		return true
	})

	require.GreaterOrEqual(t, len(got), 2)
	assert.Equal(t, "1", got[0])
	assert.Equal(t, "1 + 1", got[1])
}

// Test_Run_StopsWhenYieldReturnsFalse confirms the single suspension
// point: once the caller returns false, no further candidate is produced.
func Test_Run_StopsWhenYieldReturnsFalse(t *testing.T) {
	g := mustGrammar(t, `
		PROGRAM ::= NUM
		NUM ::= 1 | NUM \s+\s NUM
	`)
	ev := evaluator.New(nil)
	orc := oracle.New(ev, false, nil)
	en := New(g, ev, orc, -1, nil, nil, nil)

	var got []string
	en.Run(func(candidate string) bool {
		got = append(got, candidate)
		return false
	})

	assert.Equal(t, []string{"1"}, got)
}

// Test_Run_DepthLimitZeroIsGroundOnly covers spec.md §8's boundary
// behavior: depth_limit = 0 means only ground expressions are considered.
func Test_Run_DepthLimitZeroIsGroundOnly(t *testing.T) {
	g := mustGrammar(t, `
		PROGRAM ::= NUM
		NUM ::= 1 | NUM \s+\s NUM
	`)
	ev := evaluator.New(nil)
	orc := oracle.New(ev, false, nil)
	limit := 0
	en := New(g, ev, orc, -1, &limit, nil, nil)

	var got []string
	en.Run(func(candidate string) bool {
		got = append(got, candidate)
		return true
	})

	assert.Equal(t, []string{"1"}, got)
}

// Test_Run_HaltsWhenGrammarSaturates confirms the engine halts on its own
// once no non-terminal gains a new fragment, rather than looping forever
// or requiring an external depth_limit (spec.md §4.4 step 8).
func Test_Run_HaltsWhenGrammarSaturates(t *testing.T) {
	g := mustGrammar(t, `
		PROGRAM ::= NUM
		NUM ::= 1 | 2
	`)
	ev := evaluator.New(nil)
	orc := oracle.New(ev, false, nil)
	en := New(g, ev, orc, -1, nil, nil, nil)

	var got []string
	en.Run(func(candidate string) bool {
		got = append(got, candidate)
		return true
	})

	assert.ElementsMatch(t, []string{"1", "2"}, got)
}

// Test_Run_NoDuplicateTuplesAcrossRounds exercises the pool's exact
// token-tuple dedup (spec.md §3): the same RHS expansion must never be
// re-emitted in a later round.
func Test_Run_NoDuplicateTuplesAcrossRounds(t *testing.T) {
	g := mustGrammar(t, `
		PROGRAM ::= NUM
		NUM ::= 1 | NUM \s+\s NUM
	`)
	ev := evaluator.New(nil)
	orc := oracle.New(ev, false, nil)
	limit := 3
	en := New(g, ev, orc, -1, &limit, nil, nil)

	seen := map[string]bool{}
	en.Run(func(candidate string) bool {
		require.False(t, seen[candidate], "candidate %q repeated", candidate)
		seen[candidate] = true
		return true
	})
}

// Test_Run_ObservationalEquivalencePrunesRedundantConstant confirms that
// with OE active from the first round (D=0), two newly derived candidates
// evaluating to the same constant are not both kept: "1 + 2" and "2 + 1"
// both evaluate to 3, so only the first-discovered one survives. A ground
// literal like "2" is seeded directly into the pool rather than run past
// the oracle, so it does not itself collide with a later equal-valued
// derived expression (spec.md §3's ground-seeding step precedes any oracle
// consultation).
func Test_Run_ObservationalEquivalencePrunesRedundantConstant(t *testing.T) {
	g := mustGrammar(t, `
		PROGRAM ::= NUM
		NUM ::= 1 | 2 | NUM \s+\s NUM
	`)
	ev := evaluator.New([]evaluator.Example{{Input: nil, Output: nil}})
	orc := oracle.New(ev, false, nil)
	limit := 1
	en := New(g, ev, orc, 0, &limit, nil, nil)

	var got []string
	en.Run(func(candidate string) bool {
		got = append(got, candidate)
		return true
	})

	assert.Contains(t, got, "1 + 1")
	threeVariants := 0
	for _, c := range got {
		if c == "1 + 2" || c == "2 + 1" {
			threeVariants++
		}
	}
	assert.Equal(t, 1, threeVariants, "exactly one of the two value-3 expressions should survive OE pruning, got %v", got)
}

// Test_Run_AppliesTermRewriting confirms candidates are canonicalized by
// the term-rewriting pass before being yielded (spec.md §6). The rule's
// left-hand side is kept free of regex metacharacters: rewrite.Parse
// compiles the LHS (as joined by joinEscapedWords) straight into a regexp
// without escaping it, so a pattern built from an operator like "+" would
// be read as a quantifier rather than a literal.
func Test_Run_AppliesTermRewriting(t *testing.T) {
	g := mustGrammar(t, `
		PROGRAM ::= NUM
		NUM ::= 1 | NUM NUM
	`)
	ev := evaluator.New(nil)
	orc := oracle.New(ev, false, nil)
	rs, err := rewrite.Parse(`11 -> 2`)
	require.NoError(t, err)
	limit := 1
	en := New(g, ev, orc, -1, &limit, rs, nil)

	var got []string
	en.Run(func(candidate string) bool {
		got = append(got, candidate)
		return true
	})

	assert.Contains(t, got, "2")
	assert.NotContains(t, got, "11")
}
