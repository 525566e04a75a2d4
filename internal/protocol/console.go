package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/wordlesolve/internal/solver"
)

// Console is the solver's end of the protocol. It prompts on out and reads
// one reply line per prompt from in.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole wraps a reader and writer, typically stdin and stdout.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Submit implements solver.Oracle.
func (c *Console) Submit(ctx context.Context, guess string, remaining int) (solver.Reply, error) {
	if err := ctx.Err(); err != nil {
		return solver.Reply{}, err
	}
	if _, err := io.WriteString(c.out, FormatPrompt(guess, remaining)); err != nil {
		return solver.Reply{}, fmt.Errorf("failed to write prompt: %w", err)
	}
	if err := flush(c.out); err != nil {
		return solver.Reply{}, err
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return solver.Reply{}, fmt.Errorf("failed to read reply: %w", err)
		}
	}
	return Decode(line), nil
}

// ShowLetters implements solver.Viewer.
func (c *Console) ShowLetters(letters string) error {
	spaced := strings.Join(strings.Split(letters, ""), " ")
	return c.writeLine(fmt.Sprintf("letters (%d): %s", len(letters), spaced))
}

// ShowWords implements solver.Viewer.
func (c *Console) ShowWords(words []string) error {
	return c.writeLine(fmt.Sprintf("words (%d): %s", len(words), strings.Join(words, " ")))
}

// Announce implements solver.Viewer.
func (c *Console) Announce(word string) error {
	if _, err := io.WriteString(c.out, FormatAnswer(word)); err != nil {
		return fmt.Errorf("failed to write answer: %w", err)
	}
	return flush(c.out)
}

func (c *Console) writeLine(line string) error {
	if _, err := fmt.Fprintln(c.out, line); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return flush(c.out)
}

type flusher interface {
	Flush() error
}

func flush(w io.Writer) error {
	f, ok := w.(flusher)
	if !ok {
		return nil
	}
	if err := f.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
