// Package wordlist provides word list filtering helpers.
package wordlist

import "strings"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLength keeps lowercase ASCII words of exactly length letters.
func FilterForLength(length int) FilterFunc {
	return func(word string) bool {
		return len(word) == length && isLowerASCII(word)
	}
}

func isLowerASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

var stripper = strings.NewReplacer(" ", "", "'", "", "-", "", "’", "")

// Normalize lowercases word and drops spaces, apostrophes and hyphens.
func Normalize(word string) string {
	return stripper.Replace(strings.ToLower(strings.TrimSpace(word)))
}

// Prepare normalizes raw, keeps the entries accepted by keep and drops
// repeats while preserving first-seen order.
func Prepare(raw []string, keep FilterFunc) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, word := range raw {
		word = Normalize(word)
		if !keep(word) {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	return out
}
