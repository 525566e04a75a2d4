package bench

import (
	"maps"
	"slices"

	"github.com/verte-zerg/wordlesolve/internal/model"
)

// Histogram maps a number of rounds to how many words took that many.
type Histogram struct {
	counts map[int]int
}

// NewHistogram returns an empty histogram.
func NewHistogram() *Histogram {
	return &Histogram{counts: map[int]int{}}
}

// HistogramFrom builds a histogram from stored counts.
func HistogramFrom(counts map[int]int) *Histogram {
	h := NewHistogram()
	for rounds, n := range counts {
		h.counts[rounds] += n
	}
	return h
}

// Add records one word solved in rounds.
func (h *Histogram) Add(rounds int) {
	h.counts[rounds]++
}

// Get returns the count for rounds, zero when none were recorded.
func (h *Histogram) Get(rounds int) int {
	if n, ok := h.counts[rounds]; ok {
		return n
	}
	return 0
}

// Merge adds every count from other.
func (h *Histogram) Merge(other *Histogram) {
	for rounds, n := range other.counts {
		h.counts[rounds] += n
	}
}

// Keys returns the recorded round counts in ascending order.
func (h *Histogram) Keys() []int {
	return slices.Sorted(maps.Keys(h.counts))
}

// Counts returns a copy of the underlying mapping.
func (h *Histogram) Counts() map[int]int {
	return maps.Clone(h.counts)
}

// Total returns the number of words recorded.
func (h *Histogram) Total() int {
	total := 0
	for _, n := range h.counts {
		total += n
	}
	return total
}

// Score awards 10 points per word solved in at most 3 rounds and 5 per word
// solved in 4 to 6.
func (h *Histogram) Score() int {
	score := 0
	for rounds, n := range h.counts {
		switch {
		case rounds >= 1 && rounds <= 3:
			score += 10 * n
		case rounds >= 4 && rounds <= 6:
			score += 5 * n
		}
	}
	return score
}

// HistogramFromBuckets rebuilds a histogram from stored rows.
func HistogramFromBuckets(buckets []model.Bucket) *Histogram {
	h := NewHistogram()
	for _, b := range buckets {
		h.counts[b.Guesses] += b.Count
	}
	return h
}

// Buckets returns the rows in ascending round order.
func (h *Histogram) Buckets() []model.Bucket {
	keys := h.Keys()
	out := make([]model.Bucket, 0, len(keys))
	for _, rounds := range keys {
		out = append(out, model.Bucket{Guesses: rounds, Count: h.counts[rounds]})
	}
	return out
}

// Mean returns the average number of rounds per word.
func (h *Histogram) Mean() float64 {
	total, sum := 0, 0
	for rounds, n := range h.counts {
		total += n
		sum += rounds * n
	}
	if total == 0 {
		return 0
	}
	return float64(sum) / float64(total)
}
