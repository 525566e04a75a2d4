// Package protocol frames the line protocol spoken between the solver and an
// oracle.
//
// Solver to oracle: a prompt "apple (00123)> " carrying the guess and the
// zero-padded candidate count, informational lines, and finally
// "The word is: apple". Oracle to solver: one line per prompt, either a
// verdict pattern such as "g__yy" or one of the commands ?, l, letters, w,
// words, q, quit.
package protocol

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/verte-zerg/wordlesolve/internal/solver"
)

const answerPrefix = "The word is: "

var feedbackPattern = regexp.MustCompile(`^[_gy]{5}$`)

// FormatPrompt renders the prompt for a guess.
func FormatPrompt(guess string, remaining int) string {
	return fmt.Sprintf("%s (%05d)> ", guess, remaining)
}

// FormatAnswer renders the terminal line.
func FormatAnswer(word string) string {
	return answerPrefix + word + "\n"
}

// Normalize lowercases a reply and strips its line ending.
func Normalize(line string) string {
	return strings.ToLower(strings.TrimRight(line, "\r\n"))
}

// Decode classifies one reply line. Unrecognized input decodes to
// solver.ReplyInvalid.
func Decode(line string) solver.Reply {
	input := Normalize(line)
	reply := solver.Reply{Raw: input}
	switch input {
	case "?":
		reply.Kind = solver.ReplyReject
	case "l", "letters":
		reply.Kind = solver.ReplyLetters
	case "w", "words":
		reply.Kind = solver.ReplyWords
	case "q", "quit":
		reply.Kind = solver.ReplyQuit
	default:
		if !feedbackPattern.MatchString(input) {
			reply.Kind = solver.ReplyInvalid
			return reply
		}
		fb, err := solver.ParseFeedback(input)
		if err != nil {
			reply.Kind = solver.ReplyInvalid
			return reply
		}
		reply.Kind = solver.ReplyFeedback
		reply.Feedback = fb
	}
	return reply
}

// Encode renders a reply in wire form.
func Encode(reply solver.Reply) string {
	switch reply.Kind {
	case solver.ReplyFeedback:
		return reply.Feedback.String()
	case solver.ReplyReject:
		return "?"
	case solver.ReplyLetters:
		return "letters"
	case solver.ReplyWords:
		return "words"
	case solver.ReplyQuit:
		return "quit"
	default:
		return reply.Raw
	}
}
