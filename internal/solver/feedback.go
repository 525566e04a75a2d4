// Package solver narrows a candidate word set from per-letter feedback and
// picks the next guess by letter weight.
package solver

import (
	"errors"
	"fmt"
	"strings"
)

// WordLength is the number of letters in every guess and dictionary word.
const WordLength = 5

// Verdict is the oracle's judgement for a single guessed letter.
type Verdict uint8

const (
	// Absent means the letter does not occur in the secret.
	Absent Verdict = iota
	// Hit means the letter is at this position in the secret.
	Hit
	// Present means the letter occurs in the secret at another position.
	Present
)

var (
	// ErrInvalidFeedback reports a reply that is not a 5-symbol verdict line.
	ErrInvalidFeedback = errors.New("invalid feedback")
	// ErrEmptyCandidates reports that no dictionary word is left to guess.
	ErrEmptyCandidates = errors.New("no candidates left")
)

// Symbol returns the wire symbol for the verdict.
func (v Verdict) Symbol() byte {
	switch v {
	case Hit:
		return 'g'
	case Present:
		return 'y'
	default:
		return '_'
	}
}

func (v Verdict) String() string {
	switch v {
	case Hit:
		return "hit"
	case Present:
		return "present"
	default:
		return "absent"
	}
}

// Feedback holds one verdict per guessed letter, aligned by position.
type Feedback [WordLength]Verdict

// ParseFeedback decodes a wire line such as "g__yy".
func ParseFeedback(s string) (Feedback, error) {
	var fb Feedback
	s = strings.ToLower(strings.TrimRight(s, "\r\n"))
	if len(s) != WordLength {
		return fb, fmt.Errorf("%w: %q has %d symbols, want %d", ErrInvalidFeedback, s, len(s), WordLength)
	}
	for i := 0; i < WordLength; i++ {
		switch s[i] {
		case '_':
			fb[i] = Absent
		case 'g':
			fb[i] = Hit
		case 'y':
			fb[i] = Present
		default:
			return Feedback{}, fmt.Errorf("%w: unexpected symbol %q at %d", ErrInvalidFeedback, s[i], i)
		}
	}
	return fb, nil
}

// String encodes the feedback in wire form.
func (f Feedback) String() string {
	var b [WordLength]byte
	for i, v := range f {
		b[i] = v.Symbol()
	}
	return string(b[:])
}

// Solved reports whether every position is a hit.
func (f Feedback) Solved() bool {
	for _, v := range f {
		if v != Hit {
			return false
		}
	}
	return true
}

// Compare computes the verdicts an oracle knowing secret gives for guess.
// Letter multiplicity is not tracked: a repeated guess letter is Present at
// every non-matching position as long as the secret contains it once.
func Compare(guess, secret string) Feedback {
	var fb Feedback
	for i := 0; i < WordLength && i < len(guess); i++ {
		ch := guess[i]
		switch {
		case i < len(secret) && secret[i] == ch:
			fb[i] = Hit
		case strings.IndexByte(secret, ch) >= 0:
			fb[i] = Present
		default:
			fb[i] = Absent
		}
	}
	return fb
}
