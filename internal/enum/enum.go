// file enum.go is the Enumerator itself: the bottom-up round driver of
// spec.md §4.4, grounded on original_source/synthesizer.py's `expand`
// generator. Where the distilled spec.md explicitly corrects a defect in
// the source (the halt condition below), this follows spec.md, since
// spec.md is the authoritative statement of intended behavior.
package enum

import (
	"sort"

	"github.com/dekarrin/pbe/internal/evaluator"
	"github.com/dekarrin/pbe/internal/grammar"
	"github.com/dekarrin/pbe/internal/oracle"
	"github.com/dekarrin/pbe/internal/rewrite"
	"github.com/dekarrin/pbe/internal/trace"
)

// YieldFunc receives one candidate string as it is produced. Returning
// false asks the enumerator to stop (the driver found a solution, or its
// deadline expired); this is the single suspension point of spec.md §5
// ("after each candidate is yielded").
type YieldFunc func(candidate string) bool

// Enumerator drives bottom-up expansion for one grammar over one
// Evaluator/Oracle pair. It is single-use: construct a fresh one (or call
// Run only once) per Synthesize call, matching spec.md §3's cache
// lifecycle.
type Enumerator struct {
	g      *grammar.Grammar
	ev     *evaluator.Evaluator
	orc    *oracle.Oracle
	trs    *rewrite.RuleSet
	tracer trace.Tracer

	// depthThreshold is D of spec.md §4.3: -1 disables OE, 0 or more
	// enables it starting at that stratum.
	depthThreshold int
	// depthLimit is spec.md §6's optional depth_limit; nil means
	// unlimited.
	depthLimit *int

	ntOrder []string

	// roundHook, if set, is called with the pool's contents at the end of
	// every completed round, before the halt check. internal/checkpoint's
	// callers use this to persist a resumable snapshot without the
	// enumerator needing to know anything about rezi or files.
	roundHook func(pool *Pool, height int)
}

// OnRound installs a hook invoked at the end of every completed round with
// the pool's current contents and the height just finished. Passing nil
// disables it. Must be set before Run or Resume is called.
func (en *Enumerator) OnRound(hook func(pool *Pool, height int)) {
	en.roundHook = hook
}

// New creates an Enumerator. trs may be nil (no rewriting). depthLimit may
// be nil (unlimited strata).
func New(g *grammar.Grammar, ev *evaluator.Evaluator, orc *oracle.Oracle, depthThreshold int, depthLimit *int, trs *rewrite.RuleSet, tracer trace.Tracer) *Enumerator {
	if tracer == nil {
		tracer = trace.Noop
	}
	return &Enumerator{
		g:              g,
		ev:             ev,
		orc:            orc,
		trs:            trs,
		tracer:         tracer,
		depthThreshold: depthThreshold,
		depthLimit:     depthLimit,
		ntOrder:        g.NonTerminalOrder(),
	}
}

// canonicalize applies the term-rewriting pass, if any, to a freshly
// formed candidate string before it is yielded or handed to the oracle
// (spec.md §4.4 step 7). The pool keeps the fragment's unrewritten token
// tuple, so later rounds build on the original form.
func (en *Enumerator) canonicalize(s string) string {
	if en.trs == nil {
		return s
	}
	return en.trs.Apply(s)
}

// Run enumerates candidates for grammar.ProgramStart, calling yield for
// each, until the grammar saturates, depthLimit is exhausted, or yield
// returns false.
func (en *Enumerator) Run(yield YieldFunc) {
	pool := NewPool(en.g)
	for _, nt := range en.ntOrder {
		for _, tokens := range grammar.GroundExpressions(nt, en.g) {
			pool.Add(nt, Fragment(tokens))
		}
	}

	for _, f := range pool.Fragments(grammar.ProgramStart) {
		if !yield(en.canonicalize(f.Join())) {
			return
		}
	}

	en.runRounds(pool, 1, yield)
}

// Resume continues enumeration from a previously checkpointed pool,
// picking up at startHeight rather than re-seeding ground expressions or
// re-emitting anything already yielded before the checkpoint was taken
// (internal/checkpoint is the only caller expected to reconstruct pool
// and startHeight from a snapshot).
func (en *Enumerator) Resume(pool *Pool, startHeight int, yield YieldFunc) {
	en.runRounds(pool, startHeight, yield)
}

func (en *Enumerator) runRounds(pool *Pool, startHeight int, yield YieldFunc) {
	for height := startHeight; en.depthLimit == nil || height <= *en.depthLimit; height++ {
		if height == en.depthThreshold {
			en.rewash(pool)
		}

		newValues := en.newCollectors()
		anyNew := false

		skipOE := en.depthThreshold < 0 || en.depthThreshold > height
		for _, rule := range en.orderedRules(pool) {
			values := ruleValues(rule, pool, en.g)
			en.traceRuleApplication(rule, values)

			for _, f := range values {
				s := en.canonicalize(f.Join())

				if !skipOE {
					kept := unionKept{a: pool.Joined(rule.LHS), b: newValues[rule.LHS].joined}
					if en.orc.Redundant(s, kept) {
						continue
					}
				}

				newValues[rule.LHS].add(f)
				anyNew = true
				if rule.LHS == grammar.ProgramStart {
					if !yield(s) {
						return
					}
				}
			}
		}

		extra := shortCircuit(en.g, newValues, en.tracer)
		for _, f := range extra[grammar.ProgramStart].tuples.Values() {
			if !yield(en.canonicalize(f.Join())) {
				return
			}
			anyNew = true
		}

		for _, nt := range en.ntOrder {
			for _, f := range extra[nt].tuples.Values() {
				if pool.Add(nt, f) {
					anyNew = true
				}
			}
			for _, f := range newValues[nt].tuples.Values() {
				pool.Add(nt, f)
			}
		}

		if en.tracer.Enabled() {
			sizes := make(map[string]int, len(en.ntOrder))
			for _, nt := range en.ntOrder {
				sizes[nt] = pool.Len(nt)
			}
			en.tracer.RoundSummary(height, en.ntOrder, sizes)
		}

		if en.roundHook != nil {
			en.roundHook(pool, height)
		}

		if !anyNew {
			return
		}
	}
}

func (en *Enumerator) newCollectors() map[string]*ntPool {
	m := make(map[string]*ntPool, len(en.ntOrder))
	for _, nt := range en.ntOrder {
		m[nt] = newNTPool()
	}
	return m
}

// orderedRules applies the rule-ordering heuristic (descending current
// pool size of the LHS, ties broken by declaration order): purely to
// front-load expensive rules within a round so their oracle results land
// in cache before cheaper rules consult them. sort.SliceStable with a
// strict (never-equal-on-ties) comparator preserves relative order among
// rules whose LHS pool sizes match, so this never perturbs the
// insertion-order guarantee of spec.md §4.4 for any single rule's own
// candidates.
func (en *Enumerator) orderedRules(pool *Pool) []grammar.Rule {
	rules := make([]grammar.Rule, len(en.g.Rules))
	copy(rules, en.g.Rules)
	sort.SliceStable(rules, func(i, j int) bool {
		return pool.Len(rules[i].LHS) > pool.Len(rules[j].LHS)
	})
	return rules
}

func (en *Enumerator) traceRuleApplication(rule grammar.Rule, values []Fragment) {
	if !en.tracer.Enabled() {
		return
	}
	if len(values) == 0 {
		en.tracer.Debugf("application of rule %s gave nothing new", rule)
		return
	}

	sample := values[0].Join()
	if lg, ok := en.tracer.(*trace.Logger); ok {
		strs := make([]string, len(values))
		for i, v := range values {
			strs[i] = v.Join()
		}
		if picked := lg.SamplePick(strs); picked != "" {
			sample = picked
		}
	}
	en.tracer.Debugf("application of rule %s gave %d values, for example %s", rule, len(values), sample)
}

// rewash implements spec.md §4.3's threshold behavior: re-insert every
// non-terminal's fragments in their original order into a fresh pool,
// dropping any observationally equivalent to an earlier-inserted sibling
// (spec.md §9's resolved reading: rewash prunes duplicates, not the
// inverse).
func (en *Enumerator) rewash(pool *Pool) {
	en.tracer.Debugf("reached threshold for observational equivalence, cleaning instances set")

	fresh := NewPool(en.g)
	for _, nt := range en.ntOrder {
		for _, f := range pool.Fragments(nt) {
			s := f.Join()
			if !en.orc.Redundant(s, fresh.Joined(nt)) {
				fresh.Add(nt, f)
			}
		}
	}
	*pool = *fresh
}
