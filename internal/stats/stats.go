// Package stats renders benchmark histograms and stored history.
package stats

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wordlesolve/internal/bench"
)

const (
	sparkChars  = " .:-=+*#%@"
	barChar     = "#"
	minBarWidth = 10
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorRed    = "\x1b[31m"
	timeLayout  = "2006-01-02 15:04"
)

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// HistogramSparkline draws one character per round count from 1 to the
// largest recorded one, so gaps show as blanks.
func HistogramSparkline(h *bench.Histogram) string {
	keys := h.Keys()
	if len(keys) == 0 {
		return ""
	}
	last := keys[len(keys)-1]
	if last < 1 {
		return ""
	}
	values := make([]float64, last)
	for rounds := 1; rounds <= last; rounds++ {
		values[rounds-1] = float64(h.Get(rounds))
	}
	return Sparkline(values)
}

// RenderHistogram prints the rounds distribution as a table with bars scaled
// to width, then the mean and the score. A non-positive width uses the
// terminal width.
func RenderHistogram(w io.Writer, h *bench.Histogram, width int, useColor bool) error {
	total := h.Total()
	if total == 0 {
		_, err := fmt.Fprintln(w, "No words solved.")
		return err
	}
	if width <= 0 {
		width = TerminalWidth()
	}

	keys := h.Keys()
	maxCount := 0
	rows := make([][]string, 0, len(keys))
	for _, rounds := range keys {
		n := h.Get(rounds)
		maxCount = max(maxCount, n)
		rows = append(rows, []string{
			strconv.Itoa(rounds),
			strconv.Itoa(n),
			fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100),
		})
	}
	lines := formatTable([]string{"Rounds", "Words", "Share"}, rows, map[int]bool{0: true, 1: true, 2: true})
	tableWidth := runewidth.StringWidth(lines[0])
	barWidth := max(width-tableWidth-1, minBarWidth)

	if _, err := fmt.Fprintln(w, lines[0]); err != nil {
		return err
	}
	for i, rounds := range keys {
		bar := strings.Repeat(barChar, barLength(h.Get(rounds), maxCount, barWidth))
		if useColor {
			bar = roundsColor(rounds) + bar + colorReset
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", padCell(lines[i+1], tableWidth, false), bar); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Mean rounds: %.2f\n", h.Mean()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Score: %d\n", h.Score())
	return err
}

func barLength(n, maxCount, width int) int {
	if n <= 0 || maxCount <= 0 {
		return 0
	}
	return max(1, int(math.Round(float64(n)/float64(maxCount)*float64(width))))
}

// roundsColor follows the scoring tiers.
func roundsColor(rounds int) string {
	switch {
	case rounds <= 3:
		return colorGreen
	case rounds <= 6:
		return colorYellow
	default:
		return colorRed
	}
}
