// Package grammar implements the grammar model of spec.md §3/§4.1 (C1): the
// token and rule types, the surface-syntax parser, and the ground-expression
// fixed-point expansion that seeds stratum 0 of the enumerator.
//
// Grammars and their rules are immutable once parsed (spec.md §3 Lifecycle):
// nothing in this package mutates a Grammar after Parse returns it.
package grammar

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dekarrin/pbe/internal/synerr"
)

// TokenRegex matches a well-formed token, terminal or non-terminal.
var TokenRegex = regexp.MustCompile(`^[_A-Z0-9]+$|^[^A-Z]+$`)

// NonTerminalRegex matches a well-formed non-terminal identifier: an
// all-uppercase (plus digits/underscore) identifier containing at least one
// letter.
var NonTerminalRegex = regexp.MustCompile(`^[_A-Z0-9]*[A-Z]+[_A-Z0-9]*$`)

// separationTokens is the fixed punctuation set that is auto-tokenized: each
// occurrence is surrounded with whitespace before a rule's RHS/LHS text is
// split into tokens. Order matters: later entries run after earlier ones, so
// a token that is a substring of another (e.g. "-" inside "->") is affected
// by whichever replacement runs last, exactly as in the surface grammar this
// parser was modeled on.
var separationTokens = []string{"(", ")", ",", "[", "]", "=", "->", ".", "*", "+", "-", "/", "%", ":"}

// escapePairs gives the fixed escape sequences applied to every token after
// it has been split out of its clause, in order.
var escapePairs = []struct{ from, to string }{
	{`\s`, " "},
	{`\a`, "->"},
	{`\p`, "|"},
	{`\t`, "\t"},
	{`\n`, "\n"},
	{"True", "(1==1)"},
	{"False", "(1==0)"},
}

// ProgramStart is the single non-terminal every grammar must derive from.
const ProgramStart = "PROGRAM"

// replaceEscapes applies every escape pair to s, in order, and returns the
// result.
func replaceEscapes(s string) string {
	for _, p := range escapePairs {
		s = strings.ReplaceAll(s, p.from, p.to)
	}
	return s
}

// Rule is a single production L -> R1 R2 ... Rn.
type Rule struct {
	LHS string
	RHS []string
}

func (r Rule) String() string {
	return fmt.Sprintf("%s ::= %s", r.LHS, strings.Join(r.RHS, " "))
}

// Grammar is a finite ordered list of rules plus the derived set of
// non-terminals.
type Grammar struct {
	Rules        []Rule
	NonTerminals map[string]bool
}

// IsNonTerminal reports whether tok was declared as a non-terminal somewhere
// in the grammar (as opposed to merely matching NonTerminalRegex in
// isolation - an undeclared all-caps terminal is impossible by construction
// of Parse, but ground expression expansion wants the authoritative set).
func (g *Grammar) IsNonTerminal(tok string) bool {
	return g.NonTerminals[tok]
}

// RulesFor returns the rules whose LHS is nt, in declaration order.
func (g *Grammar) RulesFor(nt string) []Rule {
	var out []Rule
	for _, r := range g.Rules {
		if r.LHS == nt {
			out = append(out, r)
		}
	}
	return out
}

// NonTerminalOrder returns every non-terminal in g, in first-occurrence
// order across the rule list (a rule's LHS is visited before its RHS
// tokens). The enumerator uses this instead of ranging over
// g.NonTerminals directly so that its own per-non-terminal bookkeeping
// never depends on Go map iteration order (spec.md §4.4 determinism).
func (g *Grammar) NonTerminalOrder() []string {
	seen := map[string]bool{}
	var order []string
	visit := func(tok string) {
		if g.NonTerminals[tok] && !seen[tok] {
			seen[tok] = true
			order = append(order, tok)
		}
	}
	for _, r := range g.Rules {
		visit(r.LHS)
		for _, tok := range r.RHS {
			visit(tok)
		}
	}
	return order
}

// ParseClauses exposes the shared tokenizer to internal/rewrite, whose
// term-rewriting rule surface (spec.md §6) reuses this same line/clause
// splitting with "->" instead of "::=" as the separator, without the
// grammar-specific invariant checks Parse applies afterward.
func ParseClauses(text, sep string) ([]Rule, map[string]bool, error) {
	return parseInternal(text, sep)
}

// ReplaceEscapes applies the grammar's escape substitutions to s; exposed
// for internal/rewrite, which applies them to its own LHS pattern text
// word-by-word rather than per already-tokenized RHS field.
func ReplaceEscapes(s string) string {
	return replaceEscapes(s)
}

// parseInternal is the shared tokenizer behind Parse and
// ParseClauses: it splits text into lines, skips blank lines and
// comments, and splits each non-blank line on sep into an LHS/RHS pair,
// emitting one Rule per '|'-separated alternative. It does not validate
// the grammar invariants; see Parse for that.
func parseInternal(text, sep string) ([]Rule, map[string]bool, error) {
	var rules []Rule

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}

		// strip a trailing comment before splitting on sep, same as
		// trimming everything from the first '#' onward.
		line = strings.SplitN(line, "#", 2)[0]

		parts := strings.SplitN(line, sep, 2)
		if len(parts) != 2 {
			return nil, nil, synerr.New(fmt.Sprintf("malformed rule (missing %q): %q", sep, line), synerr.ErrGrammar)
		}
		lhsText, rhsText := parts[0], parts[1]

		for _, s := range separationTokens {
			rhsText = strings.ReplaceAll(rhsText, s, " "+s+" ")
			lhsText = strings.ReplaceAll(lhsText, s, " "+s+" ")
		}
		lhs := strings.TrimSpace(lhsText)

		for _, clause := range strings.Split(rhsText, "|") {
			fields := strings.Fields(clause)
			tokens := make([]string, len(fields))
			for i, f := range fields {
				tokens[i] = replaceEscapes(f)
			}
			rules = append(rules, Rule{LHS: lhs, RHS: tokens})
		}
	}

	nonterminals := map[string]bool{}
	for _, r := range rules {
		for _, tok := range r.RHS {
			if NonTerminalRegex.MatchString(tok) {
				nonterminals[tok] = true
			}
		}
		if NonTerminalRegex.MatchString(r.LHS) {
			nonterminals[r.LHS] = true
		}
	}

	return rules, nonterminals, nil
}

// Parse parses grammar surface syntax (spec.md §6): one rule per line,
// `LHS ::= ALT | ALT`, '#' introduces a comment, blank lines are ignored.
// It enforces the grammar invariants of spec.md §3: exactly one PROGRAM
// rule, PROGRAM never on any RHS, every referenced non-terminal defined,
// every token well-named.
func Parse(text string) (*Grammar, error) {
	rules, nonterminals, err := parseInternal(text, "::=")
	if err != nil {
		return nil, err
	}

	for _, r := range rules {
		for _, tok := range r.RHS {
			if !TokenRegex.MatchString(tok) {
				return nil, synerr.New(fmt.Sprintf("%q is incorrectly named in rule %s", tok, r), synerr.ErrGrammar)
			}
		}
		if !NonTerminalRegex.MatchString(r.LHS) {
			return nil, synerr.New(fmt.Sprintf("%q is incorrectly named as a non-terminal in rule %s", r.LHS, r), synerr.ErrGrammar)
		}
	}

	programRules := 0
	for _, r := range rules {
		if r.LHS == ProgramStart {
			programRules++
		}
		for _, tok := range r.RHS {
			if tok == ProgramStart {
				return nil, synerr.New("PROGRAM is defined on the right-hand side of a rule", synerr.ErrGrammar)
			}
		}
	}
	if programRules == 0 {
		return nil, synerr.New("PROGRAM is not defined", synerr.ErrGrammar)
	}
	if programRules > 1 {
		return nil, synerr.New("PROGRAM has more than one rule", synerr.ErrGrammar)
	}

	defined := map[string]bool{}
	for _, r := range rules {
		defined[r.LHS] = true
	}
	for nt := range nonterminals {
		if !defined[nt] {
			return nil, synerr.New(fmt.Sprintf("there is no rule for %s", nt), synerr.ErrGrammar)
		}
	}

	return &Grammar{Rules: rules, NonTerminals: nonterminals}, nil
}
