// Package rewrite implements the term-rewriting post-processor of
// spec.md §6: a list of (regex pattern, replacement template) pairs,
// parsed with the grammar's own clause syntax but "->" as the separator,
// applied to a candidate string to a fixed point, left-to-right through
// the rule list.
package rewrite

import (
	"regexp"
	"strings"

	"github.com/dekarrin/pbe/internal/grammar"
	"github.com/dekarrin/pbe/internal/synerr"
)

// Rule is one compiled rewrite rule: replace every match of Pattern with
// Template, the rule's RHS tokens joined verbatim. Template is expanded by
// regexp.ReplaceAllString, so $1 or ${name} in it refer to Pattern's
// submatches.
type Rule struct {
	Pattern  *regexp.Regexp
	Template string
}

// RuleSet is an ordered list of Rules, applied left-to-right.
type RuleSet struct {
	Rules []Rule
}

// Parse reads the term-rewriting rule surface of spec.md §6: the same
// `LHS -> RHS` clause syntax as the grammar parser, but with LHS read as a
// regex pattern (its separation-token spacing undone by re-joining its
// whitespace-split words after escape substitution) and RHS read as a
// plain replacement template (its already-tokenized, already-escaped
// fields joined with no separator).
func Parse(text string) (*RuleSet, error) {
	clauses, _, err := grammar.ParseClauses(text, "->")
	if err != nil {
		return nil, err
	}

	rs := &RuleSet{}
	for _, c := range clauses {
		patternText := joinEscapedWords(c.LHS)
		pattern, err := regexp.Compile(patternText)
		if err != nil {
			return nil, synerr.New("invalid term-rewriting pattern: "+patternText, synerr.ErrGrammar, err)
		}
		rs.Rules = append(rs.Rules, Rule{
			Pattern:  pattern,
			Template: strings.Join(c.RHS, ""),
		})
	}
	return rs, nil
}

// joinEscapedWords re-splits a rewrite rule's LHS text on whitespace (the
// grammar tokenizer pads punctuation with spaces before this text is seen),
// escapes each resulting word, and rejoins with no separator - undoing the
// spacing so the result is a valid regex pattern rather than a
// space-riddled one.
func joinEscapedWords(lhs string) string {
	words := strings.Fields(lhs)
	for i, w := range words {
		words[i] = grammar.ReplaceEscapes(w)
	}
	return strings.Join(words, "")
}

// Apply rewrites s by every rule in rs, in order, iterating the whole rule
// list to a fixed point (a full pass over the list leaves the string unchanged)
// per spec.md §6.
func (rs *RuleSet) Apply(s string) string {
	if rs == nil {
		return s
	}
	for {
		changed := false
		for _, r := range rs.Rules {
			next := r.Pattern.ReplaceAllString(s, r.Template)
			if next != s {
				changed = true
				s = next
			}
		}
		if !changed {
			return s
		}
	}
}
