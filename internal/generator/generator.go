// Package generator picks random dictionary subsets for benchmark runs.
package generator

import (
	"math/rand"
	"sort"
	"time"
)

// Generator produces reproducible word samples.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with seed, or with the current time when
// seed is zero.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Sample returns n distinct entries of words in their original order. The
// whole list is returned when n is not positive or exceeds its length.
func (g *Generator) Sample(words []string, n int) []string {
	if n <= 0 || n >= len(words) {
		return append([]string(nil), words...)
	}
	idx := g.rnd.Perm(len(words))[:n]
	sort.Ints(idx)
	out := make([]string, 0, n)
	for _, i := range idx {
		out = append(out, words[i])
	}
	return out
}
