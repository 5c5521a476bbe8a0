// Package notation projects working sets into staff glyphs and draws them.
package notation

import (
	"strconv"
	"strings"

	"github.com/verte-zerg/detune/internal/generator"
	"github.com/verte-zerg/detune/internal/pitch"
)

// Glyph is one note as a renderer consumes it.
type Glyph struct {
	Letter     byte
	Accidental pitch.Accidental
	Octave     int
	Emphasized bool
}

// Project maps a working set to glyphs in order. A glyph is emphasized when
// its note equals highlighted; pass nil when nothing is highlighted.
func Project(ws generator.WorkingSet, highlighted *pitch.NoteName) []Glyph {
	glyphs := make([]Glyph, 0, len(ws))
	for _, w := range ws {
		glyphs = append(glyphs, Glyph{
			Letter:     w.Note.Letter,
			Accidental: w.Note.Accidental,
			Octave:     w.Note.Octave,
			Emphasized: highlighted != nil && *highlighted == w.Note,
		})
	}
	return glyphs
}

// Key returns the lower-case letter[accidental]/octave form, e.g. "f#/4".
func (g Glyph) Key() string {
	return strings.ToLower(string(g.Letter)) + g.Accidental.String() + "/" + strconv.Itoa(g.Octave)
}

// Label returns the note name with typographic accidentals, e.g. "F♯4".
func (g Glyph) Label() string {
	return string(g.Letter) + accidentalSymbol(g.Accidental) + strconv.Itoa(g.Octave)
}

// step is the diatonic staff position with C0 = 0; each step is a line or a space.
func (g Glyph) step() int {
	return strings.IndexByte("CDEFGAB", g.Letter) + 7*g.Octave
}

func accidentalSymbol(a pitch.Accidental) string {
	switch a {
	case pitch.Sharp:
		return "♯"
	case pitch.Flat:
		return "♭"
	default:
		return ""
	}
}
