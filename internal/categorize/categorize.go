// Package categorize assigns category labels to transaction descriptions
// using ordered keyword rules.
package categorize

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Categorizer matches every rule keyword against a description in a single
// pass using an Aho-Corasick automaton. The automaton is built once; the
// Categorizer is immutable afterwards and safe for concurrent use.
type Categorizer struct {
	rules   []Rule
	matcher *ahocorasick.Matcher
	ruleIdx []int // automaton pattern index -> rule index
}

// New builds a Categorizer from the given rule table. Rule order is
// significant: when keywords from several rules occur in one description,
// the earliest-declared rule wins.
func New(rules []Rule) *Categorizer {
	c := &Categorizer{rules: rules}

	var patterns [][]byte
	for i, rule := range rules {
		for _, kw := range rule.Keywords {
			kw = strings.ToUpper(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			patterns = append(patterns, []byte(kw))
			c.ruleIdx = append(c.ruleIdx, i)
		}
	}
	if len(patterns) > 0 {
		c.matcher = ahocorasick.NewMatcher(patterns)
	}
	return c
}

// Default returns a Categorizer over the built-in rule table.
func Default() *Categorizer {
	return New(DefaultRules())
}

// Categorize returns the label of the first rule with a keyword occurring
// anywhere in the description, case-insensitively, or CatchAll when none
// match. It is a pure function of the description and the rule table.
func (c *Categorizer) Categorize(description string) string {
	if c.matcher == nil {
		return CatchAll
	}

	// MatchThreadSafe, not Match: Match caches state on shared trie nodes,
	// which races when one Categorizer serves concurrent parses.
	hits := c.matcher.MatchThreadSafe([]byte(strings.ToUpper(description)))
	best := -1
	for _, h := range hits {
		if h < 0 || h >= len(c.ruleIdx) {
			continue
		}
		if ri := c.ruleIdx[h]; best == -1 || ri < best {
			best = ri
		}
	}
	if best == -1 {
		return CatchAll
	}
	return c.rules[best].Label
}

// RuleCount returns the number of rules in the table.
func (c *Categorizer) RuleCount() int {
	return len(c.rules)
}
