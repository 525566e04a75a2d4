package solver

import (
	"context"
	"errors"
	"fmt"
)

// State is a position in the solve loop.
type State int

const (
	// Guessing means the next call must be Guess.
	Guessing State = iota
	// AwaitingFeedback means a guess is out and a reply is expected.
	AwaitingFeedback
	// Solved means exactly one candidate remains.
	Solved
	// Aborted means the oracle quit.
	Aborted
)

func (s State) String() string {
	switch s {
	case Guessing:
		return "guessing"
	case AwaitingFeedback:
		return "awaiting-feedback"
	case Solved:
		return "solved"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrNotAwaiting reports a reply delivered while no guess is outstanding.
	ErrNotAwaiting = errors.New("no guess awaiting feedback")
	// ErrFinished reports a guess requested after the session ended.
	ErrFinished = errors.New("session finished")
)

// ReplyKind classifies a decoded oracle message.
type ReplyKind int

const (
	ReplyInvalid ReplyKind = iota
	ReplyFeedback
	ReplyReject
	ReplyLetters
	ReplyWords
	ReplyQuit
)

// Reply is one decoded message from an oracle.
type Reply struct {
	Kind     ReplyKind
	Feedback Feedback
	Raw      string
}

// Oracle supplies replies for guesses.
type Oracle interface {
	Submit(ctx context.Context, guess string, remaining int) (Reply, error)
}

// Viewer is implemented by oracles that can display session snapshots.
type Viewer interface {
	ShowLetters(letters string) error
	ShowWords(words []string) error
	Announce(word string) error
}

// Outcome summarizes a finished session.
type Outcome struct {
	Answer  string
	Rounds  int
	Aborted bool
}

// Option configures a Session.
type Option func(*Session)

// WithTieBreak sets how equal-weight guesses are chosen.
func WithTieBreak(t TieBreak) Option {
	return func(s *Session) { s.tie = t }
}

// WithStrict makes Run fail on invalid replies instead of asking again.
func WithStrict() Option {
	return func(s *Session) { s.strict = true }
}

// Session is one solve loop over a private copy of the dictionary.
type Session struct {
	cands   *Candidates
	letters *Alphabet
	tie     TieBreak
	strict  bool

	state  State
	guess  string
	rounds int
}

// NewSession starts a session over dict. A one-word dictionary is solved
// immediately.
func NewSession(dict []string, opts ...Option) (*Session, error) {
	if len(dict) == 0 {
		return nil, ErrEmptyCandidates
	}
	s := &Session{
		cands:   NewCandidates(dict),
		letters: NewAlphabet(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.settle()
	return s, nil
}

// State returns the current loop state.
func (s *Session) State() State {
	return s.state
}

// Rounds returns the number of feedback events applied.
func (s *Session) Rounds() int {
	return s.rounds
}

// Remaining returns the candidate count.
func (s *Session) Remaining() int {
	return s.cands.Len()
}

// Letters returns the active alphabet.
func (s *Session) Letters() string {
	return s.letters.String()
}

// Words returns the remaining candidates.
func (s *Session) Words() []string {
	return s.cands.Words()
}

// Answer returns the solved word.
func (s *Session) Answer() (string, bool) {
	if s.state != Solved {
		return "", false
	}
	return s.cands.First()
}

// Guess picks the next probe and waits for its feedback.
func (s *Session) Guess() (string, error) {
	switch s.state {
	case AwaitingFeedback:
		return s.guess, nil
	case Solved, Aborted:
		return "", ErrFinished
	}
	words := s.cands.words
	guess, err := SelectGuess(words, LetterWeights(words, s.letters), s.tie)
	if err != nil {
		return "", err
	}
	s.guess = guess
	s.state = AwaitingFeedback
	return guess, nil
}

// Feedback applies the verdicts for the outstanding guess.
func (s *Session) Feedback(fb Feedback) error {
	if s.state != AwaitingFeedback {
		return ErrNotAwaiting
	}
	s.cands.Apply(s.guess, fb)
	for i := 0; i < len(s.guess); i++ {
		s.letters.Remove(s.guess[i])
	}
	s.rounds++
	return s.settle()
}

// Reject drops the outstanding guess as not a valid word. It does not count
// as a round.
func (s *Session) Reject() error {
	if s.state != AwaitingFeedback {
		return ErrNotAwaiting
	}
	s.cands.Remove(s.guess)
	return s.settle()
}

// Quit aborts the session.
func (s *Session) Quit() {
	s.state = Aborted
}

func (s *Session) settle() error {
	switch n := s.cands.Len(); {
	case n == 0:
		s.state = Guessing
		return fmt.Errorf("%w after %d rounds", ErrEmptyCandidates, s.rounds)
	case n == 1:
		s.state = Solved
	default:
		s.state = Guessing
	}
	return nil
}

// Run drives the loop against o until the session is solved or aborted.
func (s *Session) Run(ctx context.Context, o Oracle) (Outcome, error) {
	viewer, _ := o.(Viewer)
	for s.state == Guessing || s.state == AwaitingFeedback {
		if err := ctx.Err(); err != nil {
			return s.outcome(), err
		}
		guess, err := s.Guess()
		if err != nil {
			return s.outcome(), err
		}
		reply, err := o.Submit(ctx, guess, s.cands.Len())
		if err != nil {
			return s.outcome(), fmt.Errorf("oracle failed on %q: %w", guess, err)
		}
		if err := s.handle(reply, viewer); err != nil {
			return s.outcome(), err
		}
	}
	if answer, ok := s.Answer(); ok && viewer != nil {
		if err := viewer.Announce(answer); err != nil {
			return s.outcome(), fmt.Errorf("failed to announce answer: %w", err)
		}
	}
	return s.outcome(), nil
}

func (s *Session) handle(reply Reply, viewer Viewer) error {
	switch reply.Kind {
	case ReplyFeedback:
		return s.Feedback(reply.Feedback)
	case ReplyReject:
		return s.Reject()
	case ReplyLetters:
		if viewer != nil {
			return viewer.ShowLetters(s.Letters())
		}
	case ReplyWords:
		if viewer != nil {
			return viewer.ShowWords(s.Words())
		}
	case ReplyQuit:
		s.Quit()
	default:
		if s.strict {
			return fmt.Errorf("%w: %q", ErrInvalidFeedback, reply.Raw)
		}
	}
	return nil
}

func (s *Session) outcome() Outcome {
	answer, _ := s.Answer()
	return Outcome{
		Answer:  answer,
		Rounds:  s.rounds,
		Aborted: s.state == Aborted,
	}
}

// SecretOracle answers guesses by comparing them with a known secret.
type SecretOracle struct {
	Secret string
}

// Submit implements Oracle.
func (o SecretOracle) Submit(_ context.Context, guess string, _ int) (Reply, error) {
	fb := Compare(guess, o.Secret)
	return Reply{Kind: ReplyFeedback, Feedback: fb, Raw: fb.String()}, nil
}
