package solver

import "fmt"

// TieBreak decides between guesses with equal weight.
type TieBreak int

const (
	// TieFirst keeps the first maximal word in candidate order.
	TieFirst TieBreak = iota
	// TieLexical keeps the alphabetically smallest maximal word.
	TieLexical
)

// ParseTieBreak maps a config or flag value to a TieBreak.
func ParseTieBreak(s string) (TieBreak, error) {
	switch s {
	case "", "first":
		return TieFirst, nil
	case "lexical":
		return TieLexical, nil
	default:
		return TieFirst, fmt.Errorf("unknown tie-break %q (want first or lexical)", s)
	}
}

func (t TieBreak) String() string {
	if t == TieLexical {
		return "lexical"
	}
	return "first"
}

// Weights maps a letter to the number of candidates containing it.
type Weights map[byte]int

// Get returns the weight of letter, zero when it has none.
func (w Weights) Get(letter byte) int {
	if n, ok := w[letter]; ok {
		return n
	}
	return 0
}

// LetterWeights counts, for each active letter, the words that contain it at
// least once. Inactive letters are left out.
func LetterWeights(words []string, active *Alphabet) Weights {
	weights := Weights{}
	for _, word := range words {
		var seen [alphabetSize]bool
		for i := 0; i < len(word); i++ {
			ch := word[i]
			if ch < 'a' || ch > 'z' || seen[ch-'a'] {
				continue
			}
			seen[ch-'a'] = true
			if active.Contains(ch) {
				weights[ch]++
			}
		}
	}
	return weights
}

// WordScore sums the weights of the distinct letters in word.
func WordScore(word string, weights Weights) int {
	var seen [alphabetSize]bool
	score := 0
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' || seen[ch-'a'] {
			continue
		}
		seen[ch-'a'] = true
		score += weights.Get(ch)
	}
	return score
}

// SelectGuess returns the word with the highest WordScore.
func SelectGuess(words []string, weights Weights, tie TieBreak) (string, error) {
	if len(words) == 0 {
		return "", ErrEmptyCandidates
	}
	best := words[0]
	bestScore := WordScore(best, weights)
	for _, word := range words[1:] {
		score := WordScore(word, weights)
		switch {
		case score > bestScore:
			best, bestScore = word, score
		case score == bestScore && tie == TieLexical && word < best:
			best = word
		}
	}
	return best, nil
}
