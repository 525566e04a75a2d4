package solver

import (
	"github.com/bits-and-blooms/bitset"
)

const alphabetSize = 26

// Alphabet is the set of letters that no feedback has classified yet.
type Alphabet struct {
	set *bitset.BitSet
}

// NewAlphabet returns an alphabet holding 'a' through 'z'.
func NewAlphabet() *Alphabet {
	set := bitset.New(alphabetSize)
	for i := uint(0); i < alphabetSize; i++ {
		set.Set(i)
	}
	return &Alphabet{set: set}
}

// Contains reports whether letter is still active.
func (a *Alphabet) Contains(letter byte) bool {
	if letter < 'a' || letter > 'z' {
		return false
	}
	return a.set.Test(uint(letter - 'a'))
}

// Remove marks letter as classified. Removing twice is a no-op.
func (a *Alphabet) Remove(letter byte) {
	if letter < 'a' || letter > 'z' {
		return
	}
	a.set.Clear(uint(letter - 'a'))
}

// Len returns the number of active letters.
func (a *Alphabet) Len() int {
	return int(a.set.Count())
}

// String lists the active letters in alphabetical order.
func (a *Alphabet) String() string {
	out := make([]byte, 0, a.Len())
	for i, ok := a.set.NextSet(0); ok; i, ok = a.set.NextSet(i + 1) {
		out = append(out, byte('a'+i))
	}
	return string(out)
}
