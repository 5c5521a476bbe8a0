package scale

import "errors"

// ErrUnknownScale is returned when a scale name is not in the library.
var ErrUnknownScale = errors.New("unknown scale")
