// Package pitch models note names and equal-tempered frequencies.
package pitch

import (
	"fmt"
	"strconv"
)

// Accidental raises or lowers a letter by one semitone.
type Accidental int

const (
	Natural Accidental = iota
	Sharp
	Flat
)

// String returns the compact symbol used in note names.
func (a Accidental) String() string {
	switch a {
	case Sharp:
		return "#"
	case Flat:
		return "b"
	default:
		return ""
	}
}

// Offset returns the semitone shift of the accidental.
func (a Accidental) Offset() int {
	switch a {
	case Sharp:
		return 1
	case Flat:
		return -1
	default:
		return 0
	}
}

// MaxOctave bounds the octave accepted by Parse.
const MaxOctave = 9

// NoteName identifies a pitch by letter, accidental and octave, e.g. F#4.
type NoteName struct {
	Letter     byte
	Accidental Accidental
	Octave     int
}

var letterSemitones = map[byte]int{
	'C': 0,
	'D': 2,
	'E': 4,
	'F': 5,
	'G': 7,
	'A': 9,
	'B': 11,
}

// Parse reads the compact letter[accidental]octave form, e.g. "C4", "F#4", "Bb3".
func Parse(s string) (NoteName, error) {
	if len(s) < 2 {
		return NoteName{}, fmt.Errorf("%w: %q", ErrMalformedNoteName, s)
	}
	n := NoteName{Letter: s[0]}
	if _, ok := letterSemitones[n.Letter]; !ok {
		return NoteName{}, fmt.Errorf("%w: %q: letter must be A-G", ErrMalformedNoteName, s)
	}
	rest := s[1:]
	switch rest[0] {
	case '#':
		n.Accidental = Sharp
		rest = rest[1:]
	case 'b':
		n.Accidental = Flat
		rest = rest[1:]
	}
	if rest == "" {
		return NoteName{}, fmt.Errorf("%w: %q: missing octave", ErrMalformedNoteName, s)
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return NoteName{}, fmt.Errorf("%w: %q: octave must be digits", ErrMalformedNoteName, s)
		}
	}
	octave, err := strconv.Atoi(rest)
	if err != nil || octave > MaxOctave {
		return NoteName{}, fmt.Errorf("%w: %q: octave out of range", ErrMalformedNoteName, s)
	}
	n.Octave = octave
	return n, nil
}

// MustParse is like Parse but panics on malformed input. Use for static tables.
func MustParse(s string) NoteName {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the compact form accepted by Parse.
func (n NoteName) String() string {
	return string(n.Letter) + n.Accidental.String() + strconv.Itoa(n.Octave)
}

// Semitone returns the semitone index with C0 = 0, so A4 = 57.
func (n NoteName) Semitone() int {
	return letterSemitones[n.Letter] + n.Accidental.Offset() + 12*n.Octave
}
