// Package wordlist loads solver dictionaries from files.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return ReadWords(file)
}

// ReadWords reads one word per line, skipping blank lines.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// LoadDictionary loads path and checks that every entry is a lowercase word
// of exactly length letters.
func LoadDictionary(path string, length int) ([]string, error) {
	words, err := LoadWords(path)
	if err != nil {
		return nil, err
	}
	if err := ValidateDictionary(words, length); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// ValidateDictionary reports the first entry that is not a lowercase ASCII
// word of the given length.
func ValidateDictionary(words []string, length int) error {
	keep := FilterForLength(length)
	for i, word := range words {
		if !keep(word) {
			return fmt.Errorf("entry %d (%q) is not a %d-letter lowercase word", i+1, word, length)
		}
	}
	return nil
}
