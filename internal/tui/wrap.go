package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapWords lays words out space-separated in lines no wider than width.
// A word wider than width gets a line of its own.
func wrapWords(words []string, width int) string {
	if width <= 0 {
		return strings.Join(words, " ")
	}
	var out strings.Builder
	lineWidth := 0
	for _, word := range words {
		w := runewidth.StringWidth(word)
		if lineWidth > 0 && lineWidth+1+w > width {
			out.WriteByte('\n')
			lineWidth = 0
		}
		if lineWidth > 0 {
			out.WriteByte(' ')
			lineWidth++
		}
		out.WriteString(word)
		lineWidth += w
	}
	return out.String()
}
