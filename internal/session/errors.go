package session

import "errors"

var (
	// ErrInvalidLevel is returned for a detune level outside Levels.
	ErrInvalidLevel = errors.New("invalid detune level")
	// ErrInvalidTransition is returned when an operation is not allowed in the current state.
	ErrInvalidTransition = errors.New("invalid state transition")
)
