// Package tui provides the Bubble Tea solving interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordlesolve/internal/model"
	"github.com/verte-zerg/wordlesolve/internal/protocol"
	"github.com/verte-zerg/wordlesolve/internal/solver"
)

const helpText = "_ absent · g hit · y present · ? not a word · l letters · w words · q quit"

// GameSaver persists finished sessions.
type GameSaver interface {
	InsertGame(ctx context.Context, game model.GameRecord) (int64, error)
}

type row struct {
	guess    string
	feedback solver.Feedback
}

// Model implements the Bubble Tea solving UI. The user plays the oracle:
// each guess is shown as tiles and the reply is typed below it.
type Model struct {
	session *solver.Session
	saver   GameSaver
	input   textinput.Model

	width  int
	height int

	rows      []row
	guess     string
	notice    string
	err       error
	done      bool
	startedAt time.Time
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a solving TUI around session. saver may be nil.
func NewModel(session *solver.Session, saver GameSaver) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "_gy__"
	input.CharLimit = 16
	input.Focus()

	m := &Model{
		session:   session,
		saver:     saver,
		input:     input,
		startedAt: time.Now(),
	}
	m.next()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.done {
		return tea.Quit
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.done {
			return m, tea.Quit
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.session.Quit()
			m.finish()
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			if m.submit(line) {
				return m, tea.Quit
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Outcome reports how the session ended.
func (m *Model) Outcome() solver.Outcome {
	answer, _ := m.session.Answer()
	return solver.Outcome{
		Answer:  answer,
		Rounds:  m.session.Rounds(),
		Aborted: m.session.State() == solver.Aborted,
	}
}

// Err returns the error that ended the session, if any.
func (m *Model) Err() error {
	return m.err
}

// submit applies one typed reply and reports whether the session is over.
func (m *Model) submit(line string) bool {
	reply := protocol.Decode(strings.TrimSpace(line))
	m.notice = ""
	switch reply.Kind {
	case solver.ReplyFeedback:
		m.rows = append(m.rows, row{guess: m.guess, feedback: reply.Feedback})
		if err := m.session.Feedback(reply.Feedback); err != nil {
			m.fail(err)
			return true
		}
	case solver.ReplyReject:
		if err := m.session.Reject(); err != nil {
			m.fail(err)
			return true
		}
	case solver.ReplyLetters:
		letters := m.session.Letters()
		m.notice = fmt.Sprintf("letters (%d): %s", len(letters), strings.Join(strings.Split(letters, ""), " "))
		return false
	case solver.ReplyWords:
		words := m.session.Words()
		m.notice = fmt.Sprintf("words (%d):\n%s", len(words), wrapWords(words, m.contentWidth()))
		return false
	case solver.ReplyQuit:
		m.session.Quit()
		m.finish()
		return true
	default:
		m.notice = fmt.Sprintf("%q is not a reply; %s", strings.TrimSpace(line), helpText)
		return false
	}
	return m.next()
}

// next asks the session for its following guess, finishing when solved.
func (m *Model) next() bool {
	if m.session.State() == solver.Solved {
		m.guess = ""
		m.finish()
		return true
	}
	guess, err := m.session.Guess()
	if err != nil {
		m.fail(err)
		return true
	}
	m.guess = guess
	return false
}

func (m *Model) fail(err error) {
	if errors.Is(err, solver.ErrEmptyCandidates) {
		err = fmt.Errorf("no dictionary word matches the feedback: %w", err)
	}
	m.err = err
	m.session.Quit()
	m.finish()
}

func (m *Model) finish() {
	if m.done {
		return
	}
	m.done = true
	m.input.Blur()
	if m.saver == nil {
		return
	}
	out := m.Outcome()
	game := model.GameRecord{
		StartedAt: m.startedAt,
		EndedAt:   time.Now(),
		Answer:    out.Answer,
		Rounds:    out.Rounds,
		Aborted:   out.Aborted,
	}
	if _, err := m.saver.InsertGame(context.Background(), game); err != nil {
		logErrf("failed to save game: %v\n", err)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("wordlesolve"))
	b.WriteString("\n\n")
	for _, r := range m.rows {
		b.WriteString(renderTiles(r.guess, r.feedback, len(r.guess)))
		b.WriteByte('\n')
	}
	b.WriteString(m.renderStatus())
	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(noticeStyle.Render(m.notice))
	}
	content := b.String()
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := footerStyle.Render(helpText)
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
}

func (m *Model) renderStatus() string {
	switch {
	case m.err != nil:
		return errorStyle.Render(m.err.Error())
	case m.session.State() == solver.Solved:
		answer, _ := m.session.Answer()
		return renderTiles(answer, solvedFeedback, len(answer)) + "\n\n" +
			titleStyle.Render(strings.TrimSuffix(protocol.FormatAnswer(answer), "\n"))
	case m.done:
		return footerStyle.Render(fmt.Sprintf("quit after %d rounds", m.session.Rounds()))
	}
	preview, n := previewFeedback(m.input.Value())
	status := fmt.Sprintf("%d candidates · round %d", m.session.Remaining(), m.session.Rounds()+1)
	return renderTiles(m.guess, preview, n) + "\n" + footerStyle.Render(status) + "\n\n" + m.input.View()
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 60
	}
	return max(1, int(float64(m.width)*0.70))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
