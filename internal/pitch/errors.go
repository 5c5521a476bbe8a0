package pitch

import "errors"

// ErrMalformedNoteName is returned when a string does not match letter[accidental]octave.
var ErrMalformedNoteName = errors.New("malformed note name")
