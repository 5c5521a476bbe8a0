// Package generator builds detuned working sets from scales.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/detune/internal/pitch"
	"github.com/verte-zerg/detune/internal/scale"
)

// Source supplies uniform integer draws in [0, n).
type Source interface {
	Intn(n int) int
}

// Direction draw values, in the order the second draw is interpreted.
const (
	DrawSharp = 0
	DrawFlat  = 1
)

// WorkingNote pairs a scale note with its deviation in cents. Zero means in tune.
type WorkingNote struct {
	Note  pitch.NoteName
	Cents int
}

// Frequency returns the note's playback frequency including its deviation.
func (w WorkingNote) Frequency() float64 {
	return pitch.Frequency(w.Note, w.Cents)
}

// WorkingSet is one round's instance of a scale.
type WorkingSet []WorkingNote

// Mistuned returns the first note with a nonzero deviation.
func (ws WorkingSet) Mistuned() (int, WorkingNote, bool) {
	for i, w := range ws {
		if w.Cents != 0 {
			return i, w, true
		}
	}
	return -1, WorkingNote{}, false
}

// Notes returns the note names of the set in order.
func (ws WorkingSet) Notes() []pitch.NoteName {
	out := make([]pitch.NoteName, len(ws))
	for i, w := range ws {
		out[i] = w.Note
	}
	return out
}

// Frequencies returns the playback frequency of every note, deviations applied.
func (ws WorkingSet) Frequencies() []float64 {
	out := make([]float64, len(ws))
	for i, w := range ws {
		out[i] = w.Frequency()
	}
	return out
}

// InTuneFrequencies returns the frequency of every note with deviations ignored.
func (ws WorkingSet) InTuneFrequencies() []float64 {
	out := make([]float64, len(ws))
	for i, w := range ws {
		out[i] = pitch.BaseFrequency(w.Note)
	}
	return out
}

// Generator produces randomized working sets.
type Generator struct {
	rnd Source
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src Source) *Generator {
	return &Generator{rnd: src}
}

// Generate copies the scale with deviation 0 everywhere, then detunes one
// non-tonic note by level cents, sharp or flat with equal probability.
// The index is drawn first, the direction second.
func (g *Generator) Generate(s scale.Scale, level int) WorkingSet {
	ws := make(WorkingSet, len(s.Notes))
	for i, n := range s.Notes {
		ws[i] = WorkingNote{Note: n}
	}
	if len(ws) < 2 || level == 0 {
		return ws
	}
	idx := 1 + g.rnd.Intn(len(ws)-1)
	if g.rnd.Intn(2) == DrawSharp {
		ws[idx].Cents = level
	} else {
		ws[idx].Cents = -level
	}
	return ws
}

// Scripted is a Source that replays fixed draws in order, each reduced modulo n.
// It repeats from the start when exhausted.
type Scripted struct {
	draws []int
	pos   int
}

// NewScripted returns a Source replaying draws.
func NewScripted(draws ...int) *Scripted {
	return &Scripted{draws: draws}
}

// Force returns a Source that makes the next Generate detune the note at
// index with the given direction draw.
func Force(index, direction int) *Scripted {
	return NewScripted(index-1, direction)
}

// Intn implements Source.
func (s *Scripted) Intn(n int) int {
	if len(s.draws) == 0 || n <= 0 {
		return 0
	}
	v := s.draws[s.pos%len(s.draws)]
	s.pos++
	return ((v % n) + n) % n
}
