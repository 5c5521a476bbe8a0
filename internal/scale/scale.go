// Package scale holds the read-only table of practice scales.
package scale

import (
	"fmt"

	"github.com/verte-zerg/detune/internal/pitch"
)

// Scale is a named diatonic scale with the tonic repeated an octave up.
type Scale struct {
	Name  string
	Notes []pitch.NoteName
}

// Tonic returns the first note of the scale.
func (s Scale) Tonic() pitch.NoteName {
	return s.Notes[0]
}

// DefaultName is the scale selected when nothing else is configured.
const DefaultName = "C Major"

var table = []struct {
	name  string
	notes []string
}{
	{"C Major", []string{"C4", "D4", "E4", "F4", "G4", "A4", "B4", "C5"}},
	{"D Major", []string{"D4", "E4", "F#4", "G4", "A4", "B4", "C#5", "D5"}},
	{"E Major", []string{"E4", "F#4", "G#4", "A4", "B4", "C#5", "D#5", "E5"}},
	{"F Major", []string{"F3", "G3", "A3", "Bb3", "C4", "D4", "E4", "F4"}},
	{"G Major", []string{"G3", "A3", "B3", "C4", "D4", "E4", "F#4", "G4"}},
	{"A Major", []string{"A3", "B3", "C#4", "D4", "E4", "F#4", "G#4", "A4"}},
	{"B Major", []string{"B3", "C#4", "D#4", "E4", "F#4", "G#4", "A#4", "B4"}},
	{"A Minor nat", []string{"A3", "B3", "C4", "D4", "E4", "F4", "G4", "A4"}},
	{"A Minor mel", []string{"A3", "B3", "C4", "D4", "E4", "F#4", "G#4", "A4"}},
	{"G Minor nat", []string{"G3", "A3", "Bb3", "C4", "D4", "Eb4", "F4", "G4"}},
	{"G Minor mel", []string{"G3", "A3", "Bb3", "C4", "D4", "E4", "F#4", "G4"}},
	{"C Minor nat", []string{"C4", "D4", "Eb4", "F4", "G4", "Ab4", "Bb4", "C5"}},
}

var (
	names  []string
	byName map[string]Scale
)

func init() {
	names = make([]string, 0, len(table))
	byName = make(map[string]Scale, len(table))
	for _, entry := range table {
		notes := make([]pitch.NoteName, len(entry.notes))
		for i, s := range entry.notes {
			notes[i] = pitch.MustParse(s)
		}
		names = append(names, entry.name)
		byName[entry.name] = Scale{Name: entry.name, Notes: notes}
	}
}

// Names returns the scale names in display order.
func Names() []string {
	return append([]string(nil), names...)
}

// Lookup returns the named scale. The returned note slice is a copy.
func Lookup(name string) (Scale, error) {
	s, ok := byName[name]
	if !ok {
		return Scale{}, fmt.Errorf("%w: %q", ErrUnknownScale, name)
	}
	return Scale{Name: s.Name, Notes: append([]pitch.NoteName(nil), s.Notes...)}, nil
}

// Next returns the scale name after name in display order, wrapping around.
// A negative step moves backwards.
func Next(name string, step int) string {
	idx := 0
	for i, n := range names {
		if n == name {
			idx = i
			break
		}
	}
	idx = ((idx+step)%len(names) + len(names)) % len(names)
	return names[idx]
}
