// Package session implements the detune exercise state machine.
package session

import (
	"fmt"

	"github.com/verte-zerg/detune/internal/generator"
	"github.com/verte-zerg/detune/internal/pitch"
	"github.com/verte-zerg/detune/internal/scale"
)

// Session owns one player's exercise state. It is not safe for concurrent use.
type Session struct {
	gen *generator.Generator

	scale   scale.Scale
	level   int
	working generator.WorkingSet

	highlighted    pitch.NoteName
	hasHighlight   bool
	correctionMode CorrectionMode
	feedback       Feedback
	score          int
}

// Judgment is the outcome of JudgeDirection.
type Judgment struct {
	Correct bool
	Note    pitch.NoteName
	// Reinforcement holds the mistuned then the true frequency after a correct
	// judgment, and is empty otherwise.
	Reinforcement []float64
}

// New creates a session on the given scale and level with a fresh working set.
func New(gen *generator.Generator, scaleName string, level int) (*Session, error) {
	s, err := scale.Lookup(scaleName)
	if err != nil {
		return nil, err
	}
	if !ValidLevel(level) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	sess := &Session{gen: gen, scale: s, level: level}
	sess.Regenerate()
	return sess, nil
}

// SelectScale switches scale and starts a new round.
func (s *Session) SelectScale(name string) error {
	sc, err := scale.Lookup(name)
	if err != nil {
		return err
	}
	s.scale = sc
	s.Regenerate()
	return nil
}

// SelectDeviationLevel switches the detune level and starts a new round.
func (s *Session) SelectDeviationLevel(level int) error {
	if !ValidLevel(level) {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	s.level = level
	s.Regenerate()
	return nil
}

// Regenerate draws a new working set and clears highlight, correction and feedback.
// The score is kept.
func (s *Session) Regenerate() {
	s.working = s.gen.Generate(s.scale, s.level)
	s.highlighted = pitch.NoteName{}
	s.hasHighlight = false
	s.correctionMode = CorrectionNone
	s.feedback = FeedbackNone
}

// GuessNote checks whether note is the mistuned one. A hit moves the session to
// CorrectionPending; a miss sets FeedbackTryAgain.
func (s *Session) GuessNote(note pitch.NoteName) error {
	if s.correctionMode == CorrectionAwaiting {
		return fmt.Errorf("%w: guess while a correction is pending", ErrInvalidTransition)
	}
	_, mistuned, ok := s.working.Mistuned()
	if !ok {
		return fmt.Errorf("%w: no mistuned note in the working set", ErrInvalidTransition)
	}
	if note == mistuned.Note {
		s.correctionMode = CorrectionAwaiting
		s.feedback = FeedbackNone
		return nil
	}
	s.feedback = FeedbackTryAgain
	return nil
}

// JudgeDirection scores the sharper/flatter judgment. It is correct when the
// direction is opposite to the deviation, i.e. it moves the note back in tune.
func (s *Session) JudgeDirection(d Direction) (Judgment, error) {
	if s.correctionMode != CorrectionAwaiting {
		return Judgment{}, fmt.Errorf("%w: judge %s without a pending correction", ErrInvalidTransition, d)
	}
	_, mistuned, ok := s.working.Mistuned()
	if !ok {
		return Judgment{}, fmt.Errorf("%w: no mistuned note in the working set", ErrInvalidTransition)
	}
	s.correctionMode = CorrectionNone
	correct := (mistuned.Cents > 0 && d == Flatter) || (mistuned.Cents < 0 && d == Sharper)
	if !correct {
		s.feedback = FeedbackTryAgain
		return Judgment{Note: mistuned.Note}, nil
	}
	s.score++
	s.feedback = FeedbackCorrect
	s.highlighted = mistuned.Note
	s.hasHighlight = true
	return Judgment{
		Correct:       true,
		Note:          mistuned.Note,
		Reinforcement: []float64{mistuned.Frequency(), pitch.BaseFrequency(mistuned.Note)},
	}, nil
}

// State returns the current state.
func (s *Session) State() State {
	if s.correctionMode == CorrectionAwaiting {
		return CorrectionPending
	}
	return Ready
}

// ScaleName returns the selected scale name.
func (s *Session) ScaleName() string { return s.scale.Name }

// Level returns the current detune level in cents.
func (s *Session) Level() int { return s.level }

// WorkingSet returns a copy of the current working set.
func (s *Session) WorkingSet() generator.WorkingSet {
	return append(generator.WorkingSet(nil), s.working...)
}

// Highlighted returns the note resolved by the last correct judgment.
func (s *Session) Highlighted() (pitch.NoteName, bool) {
	return s.highlighted, s.hasHighlight
}

// CorrectionMode returns whether a direction judgment is expected.
func (s *Session) CorrectionMode() CorrectionMode { return s.correctionMode }

// Feedback returns the feedback of the last guess or judgment.
func (s *Session) Feedback() Feedback { return s.feedback }

// Score returns the number of resolved correct corrections.
func (s *Session) Score() int { return s.score }

// ScaleFrequencies returns the working set as played, deviation included.
func (s *Session) ScaleFrequencies() []float64 {
	return s.working.Frequencies()
}

// CorrectFrequencies returns the in-tune scale.
func (s *Session) CorrectFrequencies() []float64 {
	return s.working.InTuneFrequencies()
}
