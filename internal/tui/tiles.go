package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordlesolve/internal/solver"
)

var solvedFeedback = solver.Feedback{solver.Hit, solver.Hit, solver.Hit, solver.Hit, solver.Hit}

var (
	tileBase    = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#F0F0F0"))
	hitTile     = tileBase.Background(lipgloss.Color("#538D4E"))
	presentTile = tileBase.Background(lipgloss.Color("#B59F3B"))
	absentTile  = tileBase.Background(lipgloss.Color("#3A3A3C"))
	pendingTile = tileBase.Foreground(lipgloss.Color("#8C8C8C")).Background(lipgloss.Color("#1E1E1E"))
)

func tileStyle(v solver.Verdict) lipgloss.Style {
	switch v {
	case solver.Hit:
		return hitTile
	case solver.Present:
		return presentTile
	default:
		return absentTile
	}
}

// renderTiles draws word as letter tiles. The first colored positions take
// their style from fb; the rest are pending.
func renderTiles(word string, fb solver.Feedback, colored int) string {
	tiles := make([]string, 0, len(word))
	for i := 0; i < len(word); i++ {
		style := pendingTile
		if i < colored && i < len(fb) {
			style = tileStyle(fb[i])
		}
		tiles = append(tiles, style.Render(strings.ToUpper(word[i:i+1])))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

// previewFeedback decodes the valid prefix of partially typed feedback so
// tiles can be colored while the user types.
func previewFeedback(typed string) (solver.Feedback, int) {
	var fb solver.Feedback
	typed = strings.ToLower(typed)
	n := 0
	for ; n < len(typed) && n < len(fb); n++ {
		switch typed[n] {
		case 'g':
			fb[n] = solver.Hit
		case 'y':
			fb[n] = solver.Present
		case '_':
			fb[n] = solver.Absent
		default:
			return fb, n
		}
	}
	return fb, n
}
