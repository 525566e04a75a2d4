package protocol

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/verte-zerg/wordlesolve/internal/solver"
)

// ErrMismatch reports a solver that announced a word other than the secret.
var ErrMismatch = errors.New("announced word does not match secret")

// FrameKind classifies output read from the solver.
type FrameKind int

const (
	// FrameLine is an informational line such as a words dump.
	FrameLine FrameKind = iota
	// FramePrompt is a guess waiting for a reply.
	FramePrompt
	// FrameAnswer is the terminal "The word is:" line.
	FrameAnswer
)

// Frame is one unit of solver output.
type Frame struct {
	Kind      FrameKind
	Guess     string
	Remaining int
	Text      string
}

var promptPattern = regexp.MustCompile(`^([a-z]+) \((\d+)\)> $`)

const promptSuffix = ")> "

// ReadFrame reads the next prompt or line. Prompts are not newline
// terminated, so a frame also ends when the prompt marker is seen.
func ReadFrame(r *bufio.Reader) (Frame, error) {
	var buf []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return Frame{}, fmt.Errorf("truncated frame %q: %w", buf, io.ErrUnexpectedEOF)
			}
			return Frame{}, err
		}
		if b == '\n' {
			return lineFrame(strings.TrimRight(string(buf), "\r")), nil
		}
		buf = append(buf, b)
		if !bytes.HasSuffix(buf, []byte(promptSuffix)) {
			continue
		}
		m := promptPattern.FindSubmatch(buf)
		if m == nil {
			continue
		}
		remaining, err := strconv.Atoi(string(m[2]))
		if err != nil {
			return Frame{}, fmt.Errorf("invalid candidate count in %q: %w", buf, err)
		}
		return Frame{Kind: FramePrompt, Guess: string(m[1]), Remaining: remaining, Text: string(buf)}, nil
	}
}

func lineFrame(line string) Frame {
	if word, ok := strings.CutPrefix(line, answerPrefix); ok {
		return Frame{Kind: FrameAnswer, Guess: word, Text: line}
	}
	return Frame{Kind: FrameLine, Text: line}
}

// Transcript records what the oracle end observed.
type Transcript struct {
	Answer  string
	Prompts int
}

// Serve plays the oracle for secret: every prompt read from r is answered on
// w with the verdicts from solver.Compare until the solver announces its
// answer.
func Serve(ctx context.Context, r io.Reader, w io.Writer, secret string) (Transcript, error) {
	br := bufio.NewReader(r)
	var t Transcript
	for {
		if err := ctx.Err(); err != nil {
			return t, err
		}
		frame, err := ReadFrame(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return t, fmt.Errorf("solver closed before announcing after %d prompts: %w", t.Prompts, io.ErrUnexpectedEOF)
			}
			return t, err
		}
		switch frame.Kind {
		case FramePrompt:
			t.Prompts++
			if _, err := fmt.Fprintln(w, solver.Compare(frame.Guess, secret).String()); err != nil {
				return t, fmt.Errorf("failed to write feedback: %w", err)
			}
		case FrameAnswer:
			t.Answer = frame.Guess
			if t.Answer != secret {
				return t, fmt.Errorf("%w: got %q, want %q", ErrMismatch, t.Answer, secret)
			}
			return t, nil
		}
	}
}
