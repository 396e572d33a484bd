// Package enum implements C4, the enumerator of spec.md §4.4: the
// per-non-terminal instance pool, bottom-up rounds, the short-circuit pass
// over unit productions, and the deterministic enumeration-order
// guarantees that everything else in the engine depends on.
package enum

import (
	"strings"

	"github.com/dekarrin/pbe/internal/grammar"
	"github.com/dekarrin/pbe/internal/util"
)

// Fragment is an ordered sequence of terminals: a candidate program's RHS
// token tuple, before being flattened into its candidate string.
type Fragment []string

// Join flattens f into the candidate string submitted to the evaluator.
func (f Fragment) Join() string {
	return strings.Join(f, "")
}

// tupleKey derives a comparable map key from f that preserves the full
// token tuple, distinct from Join(): spec.md §3 "Instance pool" rejects
// duplicates "by token-tuple equality", a stricter test than candidate
// string equality (two distinct tuples could in principle join to the
// same string). The separator can never appear inside a token, since
// tokens are produced by grammar.Parse from printable source text.
func (f Fragment) tupleKey() string {
	return strings.Join(f, "\x1f")
}

// ntPool holds one non-terminal's kept fragments at two granularities:
// tuples (for exact-duplicate rejection during Cartesian-product
// expansion) and candidate strings (for the oracle, which only ever
// reasons about flattened text).
type ntPool struct {
	tuples *util.Set[string, Fragment]
	joined *util.Set[string, string]
}

func newNTPool() *ntPool {
	return &ntPool{
		tuples: util.NewSet[string, Fragment](0),
		joined: util.NewSet[string, string](0),
	}
}

// add inserts f if its tuple key is new, also registering its candidate
// string. Returns whether anything was added.
func (n *ntPool) add(f Fragment) bool {
	added := n.tuples.Add(f.tupleKey(), f)
	if added {
		n.joined.Add(f.Join(), f.Join())
	}
	return added
}

// hasTuple reports whether f's exact token tuple is already present.
func (n *ntPool) hasTuple(f Fragment) bool {
	return n.tuples.Contains(f.tupleKey())
}

// Pool is the full instance pool: one ntPool per non-terminal.
type Pool struct {
	g    *grammar.Grammar
	sets map[string]*ntPool
}

// NewPool creates an empty pool over every non-terminal of g.
func NewPool(g *grammar.Grammar) *Pool {
	p := &Pool{g: g, sets: make(map[string]*ntPool, len(g.NonTerminals))}
	for _, nt := range g.NonTerminalOrder() {
		p.sets[nt] = newNTPool()
	}
	return p
}

// NonTerminals returns the grammar's non-terminals in the same
// declaration order pool.sets was seeded with, for callers (such as
// internal/checkpoint) that need to walk every non-terminal's fragments.
func (p *Pool) NonTerminals() []string {
	return p.g.NonTerminalOrder()
}

// Len reports how many fragments nt currently holds.
func (p *Pool) Len(nt string) int {
	s := p.sets[nt]
	if s == nil {
		return 0
	}
	return s.tuples.Len()
}

// Fragments returns nt's fragments in insertion order.
func (p *Pool) Fragments(nt string) []Fragment {
	return p.sets[nt].tuples.Values()
}

// CandidateStrings returns nt's candidate strings in insertion order.
func (p *Pool) CandidateStrings(nt string) []string {
	return p.sets[nt].joined.Values()
}

// Joined exposes nt's candidate-string set directly, for passing to the
// oracle as (one half of) a KeptSet.
func (p *Pool) Joined(nt string) *util.Set[string, string] {
	return p.sets[nt].joined
}

// Add inserts f into nt's pool, returning whether it was new.
func (p *Pool) Add(nt string, f Fragment) bool {
	return p.sets[nt].add(f)
}

// HasTuple reports whether f's exact token tuple is already present in
// nt's pool.
func (p *Pool) HasTuple(nt string, f Fragment) bool {
	return p.sets[nt].hasTuple(f)
}

// unionKept presents two candidate-string sets to the oracle as one
// KeptSet, matching spec.md §4.4 step 4's
// "instances_joined[L] ∪ new_values_joined[L]" without copying either.
type unionKept struct {
	a, b *util.Set[string, string]
}

func (u unionKept) Contains(key string) bool {
	return u.a.Contains(key) || u.b.Contains(key)
}

func (u unionKept) Values() []string {
	av := u.a.Values()
	return append(av, u.b.Values()...)
}
