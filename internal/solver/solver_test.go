package solver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var smallDict = []string{"apple", "angel", "knoll"}

func TestCompareAngelApple(t *testing.T) {
	got := Compare("angel", "apple")
	want := Feedback{Hit, Absent, Absent, Present, Present}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got.String() != "g__yy" {
		t.Fatalf("unexpected wire form %q", got.String())
	}
}

func TestCompareRepeatedLetterIgnoresMultiplicity(t *testing.T) {
	// "l" occurs once in "angel"; both "l"s in "llama" are still Present.
	got := Compare("llama", "angel")
	want := Feedback{Present, Present, Present, Absent, Present}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseFeedbackRoundTrip(t *testing.T) {
	for _, line := range []string{"_____", "ggggg", "yyyyy", "g__yy", "_gy_g"} {
		fb, err := ParseFeedback(line)
		if err != nil {
			t.Fatalf("parse %q: %v", line, err)
		}
		if fb.String() != line {
			t.Fatalf("round trip %q produced %q", line, fb.String())
		}
		again, err := ParseFeedback(fb.String())
		if err != nil || again != fb {
			t.Fatalf("decode of encoded %q differs: %v %v", line, again, err)
		}
	}
}

func TestParseFeedbackNormalizes(t *testing.T) {
	fb, err := ParseFeedback("G__YY\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if fb != (Feedback{Hit, Absent, Absent, Present, Present}) {
		t.Fatalf("unexpected feedback %v", fb)
	}
}

func TestParseFeedbackRejectsInvalid(t *testing.T) {
	for _, line := range []string{"", "gggg", "gggggg", "gx_yy", "hello"} {
		if _, err := ParseFeedback(line); !errors.Is(err, ErrInvalidFeedback) {
			t.Fatalf("expected ErrInvalidFeedback for %q, got %v", line, err)
		}
	}
}

func TestApplyAngelFeedbackLeavesApple(t *testing.T) {
	c := NewCandidates(smallDict)
	c.Apply("angel", Compare("angel", "apple"))
	if diff := cmp.Diff([]string{"apple"}, c.Words()); diff != "" {
		t.Fatalf("unexpected candidates (-want +got):\n%s", diff)
	}
}

func TestApplyIsCumulativeForRepeatedLetters(t *testing.T) {
	// Guess "eerie": first e Hit, second e Absent. Applied in order the Absent
	// rule sees only words that already start with e and drops them all.
	c := NewCandidates([]string{"eagle", "ebony", "other"})
	c.Apply("eerie", Feedback{Hit, Absent, Absent, Absent, Absent})
	if c.Len() != 0 {
		t.Fatalf("expected empty set, got %v", c.Words())
	}
}

func TestNewCandidatesCopiesAndDedupes(t *testing.T) {
	dict := []string{"apple", "knoll", "apple"}
	c := NewCandidates(dict)
	c.Remove("knoll")
	if dict[1] != "knoll" {
		t.Fatalf("dictionary was mutated: %v", dict)
	}
	if diff := cmp.Diff([]string{"apple"}, c.Words()); diff != "" {
		t.Fatalf("unexpected candidates (-want +got):\n%s", diff)
	}
}

func TestLetterWeights(t *testing.T) {
	weights := LetterWeights([]string{"apple", "knoll"}, NewAlphabet())
	want := Weights{'a': 1, 'e': 1, 'k': 1, 'l': 2, 'n': 1, 'o': 1, 'p': 1}
	if diff := cmp.Diff(want, weights); diff != "" {
		t.Fatalf("unexpected weights (-want +got):\n%s", diff)
	}
	if weights.Get('z') != 0 {
		t.Fatalf("expected zero weight for absent letter")
	}
}

func TestLetterWeightsSkipsInactiveLetters(t *testing.T) {
	active := NewAlphabet()
	active.Remove('l')
	weights := LetterWeights([]string{"apple", "knoll"}, active)
	if _, ok := weights['l']; ok {
		t.Fatalf("inactive letter should be omitted: %v", weights)
	}
	if weights.Get('l') != 0 {
		t.Fatalf("inactive letter weight should be zero")
	}
}

func TestSelectGuessDeterministic(t *testing.T) {
	weights := LetterWeights(smallDict, NewAlphabet())
	first, err := SelectGuess(smallDict, weights, TieFirst)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	// a:2 p:1 l:3 e:2 n:2 g:1 k:1 o:1; apple=8, angel=10, knoll=7.
	if first != "angel" {
		t.Fatalf("expected angel, got %s", first)
	}
	for i := 0; i < 10; i++ {
		again, _ := SelectGuess(smallDict, weights, TieFirst)
		if again != first {
			t.Fatalf("selection changed between runs: %s vs %s", first, again)
		}
	}
}

func TestSelectGuessTieBreak(t *testing.T) {
	words := []string{"cabde", "abcde"}
	weights := LetterWeights(words, NewAlphabet())
	got, _ := SelectGuess(words, weights, TieFirst)
	if got != "cabde" {
		t.Fatalf("first tie-break picked %s", got)
	}
	got, _ = SelectGuess(words, weights, TieLexical)
	if got != "abcde" {
		t.Fatalf("lexical tie-break picked %s", got)
	}
}

func TestSelectGuessEmpty(t *testing.T) {
	if _, err := SelectGuess(nil, Weights{}, TieFirst); !errors.Is(err, ErrEmptyCandidates) {
		t.Fatalf("expected ErrEmptyCandidates, got %v", err)
	}
}

func TestAlphabet(t *testing.T) {
	a := NewAlphabet()
	if a.Len() != 26 || a.String() != "abcdefghijklmnopqrstuvwxyz" {
		t.Fatalf("unexpected initial alphabet %q", a.String())
	}
	a.Remove('c')
	a.Remove('c')
	a.Remove('z')
	if a.Contains('c') || !a.Contains('d') {
		t.Fatalf("unexpected membership after remove")
	}
	if a.Len() != 24 {
		t.Fatalf("expected 24 letters, got %d", a.Len())
	}
}

func TestSessionStates(t *testing.T) {
	s, err := NewSession(smallDict)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if s.State() != Guessing {
		t.Fatalf("expected guessing, got %s", s.State())
	}
	if err := s.Feedback(Feedback{}); !errors.Is(err, ErrNotAwaiting) {
		t.Fatalf("expected ErrNotAwaiting, got %v", err)
	}
	guess, err := s.Guess()
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if s.State() != AwaitingFeedback {
		t.Fatalf("expected awaiting feedback, got %s", s.State())
	}
	if err := s.Feedback(Compare(guess, "apple")); err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if s.State() != Solved {
		t.Fatalf("expected solved, got %s", s.State())
	}
	answer, ok := s.Answer()
	if !ok || answer != "apple" {
		t.Fatalf("expected apple, got %q", answer)
	}
	if _, err := s.Guess(); !errors.Is(err, ErrFinished) {
		t.Fatalf("expected ErrFinished, got %v", err)
	}
	for _, ch := range "angel" {
		if s.letters.Contains(byte(ch)) {
			t.Fatalf("letter %c should be classified", ch)
		}
	}
}

func TestSessionRejectKeepsRounds(t *testing.T) {
	s, _ := NewSession(smallDict)
	guess, _ := s.Guess()
	if err := s.Reject(); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if s.Rounds() != 0 {
		t.Fatalf("reject consumed a round")
	}
	for _, w := range s.Words() {
		if w == guess {
			t.Fatalf("rejected word %s still a candidate", guess)
		}
	}
	if s.State() != Guessing {
		t.Fatalf("expected guessing, got %s", s.State())
	}
}

func TestSessionEmptyCandidates(t *testing.T) {
	if _, err := NewSession(nil); !errors.Is(err, ErrEmptyCandidates) {
		t.Fatalf("expected ErrEmptyCandidates, got %v", err)
	}
	s, _ := NewSession(smallDict)
	if _, err := s.Guess(); err != nil {
		t.Fatalf("guess: %v", err)
	}
	// Every word shares a letter with the first guess.
	err := s.Feedback(Feedback{Absent, Absent, Absent, Absent, Absent})
	if !errors.Is(err, ErrEmptyCandidates) {
		t.Fatalf("expected ErrEmptyCandidates, got %v", err)
	}
}

func TestSessionSingleWordStartsSolved(t *testing.T) {
	s, err := NewSession([]string{"apple"})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	out, err := s.Run(context.Background(), SecretOracle{Secret: "apple"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.Answer != "apple" || out.Rounds != 0 {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

var testDict = []string{
	"apple", "angel", "knoll", "crane", "slate", "trace", "brink", "plumb",
	"ghost", "fjord", "vivid", "eerie", "llama", "mamma", "queen", "sassy",
	"shine", "spine", "swine", "whine", "badge", "cadge", "madge", "wedge",
}

func TestRunConvergesForEverySecret(t *testing.T) {
	for _, secret := range testDict {
		s, err := NewSession(testDict, WithStrict())
		if err != nil {
			t.Fatalf("new session: %v", err)
		}
		prev := s.Remaining()
		oracle := &countingOracle{secret: secret, t: t, prev: &prev, session: s}
		out, err := s.Run(context.Background(), oracle)
		if err != nil {
			t.Fatalf("secret %s: run: %v", secret, err)
		}
		if out.Answer != secret {
			t.Fatalf("secret %s: solved as %s", secret, out.Answer)
		}
		if out.Rounds > len(testDict) {
			t.Fatalf("secret %s: %d rounds exceeds dictionary size", secret, out.Rounds)
		}
	}
}

// countingOracle checks that each feedback event shrinks the candidate set.
type countingOracle struct {
	secret  string
	t       *testing.T
	prev    *int
	session *Session
}

func (o *countingOracle) Submit(_ context.Context, guess string, remaining int) (Reply, error) {
	if remaining >= *o.prev && o.session.Rounds() > 0 {
		o.t.Fatalf("candidate set did not shrink: %d -> %d", *o.prev, remaining)
	}
	*o.prev = remaining
	fb := Compare(guess, o.secret)
	return Reply{Kind: ReplyFeedback, Feedback: fb}, nil
}

type scriptedOracle struct {
	replies []Reply
	shown   []string
	answer  string
}

func (o *scriptedOracle) Submit(context.Context, string, int) (Reply, error) {
	if len(o.replies) == 0 {
		return Reply{Kind: ReplyQuit}, nil
	}
	r := o.replies[0]
	o.replies = o.replies[1:]
	return r, nil
}

func (o *scriptedOracle) ShowLetters(letters string) error {
	o.shown = append(o.shown, "letters:"+letters)
	return nil
}

func (o *scriptedOracle) ShowWords(words []string) error {
	o.shown = append(o.shown, "words:"+strings.Join(words, ","))
	return nil
}

func (o *scriptedOracle) Announce(word string) error {
	o.answer = word
	return nil
}

func TestRunHandlesSideChannel(t *testing.T) {
	s, _ := NewSession(smallDict)
	oracle := &scriptedOracle{replies: []Reply{
		{Kind: ReplyWords},
		{Kind: ReplyInvalid, Raw: "nope"},
		{Kind: ReplyLetters},
		{Kind: ReplyFeedback, Feedback: Compare("angel", "apple")},
	}}
	out, err := s.Run(context.Background(), oracle)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.Answer != "apple" || out.Rounds != 1 || oracle.answer != "apple" {
		t.Fatalf("unexpected outcome %+v announced %q", out, oracle.answer)
	}
	want := []string{"words:apple,angel,knoll", "letters:abcdefghijklmnopqrstuvwxyz"}
	if diff := cmp.Diff(want, oracle.shown); diff != "" {
		t.Fatalf("unexpected snapshots (-want +got):\n%s", diff)
	}
}

func TestRunStrictRejectsInvalid(t *testing.T) {
	s, _ := NewSession(smallDict, WithStrict())
	oracle := &scriptedOracle{replies: []Reply{{Kind: ReplyInvalid, Raw: "zzz"}}}
	if _, err := s.Run(context.Background(), oracle); !errors.Is(err, ErrInvalidFeedback) {
		t.Fatalf("expected ErrInvalidFeedback, got %v", err)
	}
}

func TestRunQuit(t *testing.T) {
	s, _ := NewSession(smallDict)
	out, err := s.Run(context.Background(), &scriptedOracle{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !out.Aborted || s.State() != Aborted {
		t.Fatalf("expected aborted session, got %+v", out)
	}
}
