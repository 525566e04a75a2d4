package solver

import (
	"slices"
	"strings"
)

// Candidates is the ordered set of words still consistent with all feedback.
type Candidates struct {
	words []string
}

// NewCandidates copies dict so the caller's slice is never mutated. Repeated
// entries keep their first position only.
func NewCandidates(dict []string) *Candidates {
	seen := make(map[string]struct{}, len(dict))
	words := make([]string, 0, len(dict))
	for _, w := range dict {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return &Candidates{words: words}
}

// Len returns the number of remaining words.
func (c *Candidates) Len() int {
	return len(c.words)
}

// Words returns a snapshot of the remaining words in dictionary order.
func (c *Candidates) Words() []string {
	return slices.Clone(c.words)
}

// First returns the first remaining word.
func (c *Candidates) First() (string, bool) {
	if len(c.words) == 0 {
		return "", false
	}
	return c.words[0], true
}

// Remove drops every occurrence of word and reports whether any was found.
func (c *Candidates) Remove(word string) bool {
	before := len(c.words)
	c.Filter(func(w string) bool { return w != word })
	return len(c.words) != before
}

// Filter keeps only the words for which keep returns true.
func (c *Candidates) Filter(keep func(string) bool) {
	out := c.words[:0]
	for _, w := range c.words {
		if keep(w) {
			out = append(out, w)
		}
	}
	clear(c.words[len(out):])
	c.words = out
}

// Apply narrows the set with one feedback event. Rules run position by
// position, each on the result of the previous one.
func (c *Candidates) Apply(guess string, fb Feedback) {
	for i := 0; i < WordLength && i < len(guess); i++ {
		letter := guess[i]
		pos := i
		switch fb[i] {
		case Hit:
			c.Filter(func(w string) bool {
				return len(w) > pos && w[pos] == letter
			})
		case Present:
			c.Filter(func(w string) bool {
				return strings.IndexByte(w, letter) >= 0 && (len(w) <= pos || w[pos] != letter)
			})
		default:
			c.Filter(func(w string) bool {
				return strings.IndexByte(w, letter) < 0
			})
		}
	}
}
