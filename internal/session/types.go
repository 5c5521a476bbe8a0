package session

import "slices"

// Levels lists the selectable detune levels in cents, in display order.
var Levels = []int{40, 35, 30, 25, 20, 15, 10}

// DefaultLevel is the detune level used when nothing else is configured.
const DefaultLevel = 30

// ValidLevel reports whether level is one of Levels.
func ValidLevel(level int) bool {
	return slices.Contains(Levels, level)
}

// State is the position of the session in the guess/correction cycle.
type State int

const (
	Ready State = iota
	CorrectionPending
)

func (s State) String() string {
	if s == CorrectionPending {
		return "correction-pending"
	}
	return "ready"
}

// CorrectionMode tells the UI whether a sharper/flatter judgment is expected.
type CorrectionMode int

const (
	CorrectionNone CorrectionMode = iota
	CorrectionAwaiting
)

// Feedback is the result message of the last guess or judgment.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackTryAgain
)

func (f Feedback) String() string {
	switch f {
	case FeedbackCorrect:
		return "correct"
	case FeedbackTryAgain:
		return "try-again"
	default:
		return ""
	}
}

// Message returns the text shown to the user.
func (f Feedback) Message() string {
	switch f {
	case FeedbackCorrect:
		return "Correct!"
	case FeedbackTryAgain:
		return "Try Again"
	default:
		return ""
	}
}

// Direction is the user's judgment of how to correct the mistuned note.
type Direction int

const (
	Sharper Direction = iota
	Flatter
)

func (d Direction) String() string {
	if d == Flatter {
		return "flatter"
	}
	return "sharper"
}
