package generator

import (
	"math"
	"math/rand"
	"testing"

	"pgregory.net/rapid"

	"github.com/verte-zerg/detune/internal/scale"
)

type rapidSource struct {
	t *rapid.T
}

func (s rapidSource) Intn(n int) int {
	return rapid.IntRange(0, n-1).Draw(s.t, "draw")
}

func TestGenerateExactlyOneNonTonicDeviation(t *testing.T) {
	levels := []int{40, 35, 30, 25, 20, 15, 10}
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.SampledFrom(scale.Names()).Draw(t, "scale")
		level := rapid.SampledFrom(levels).Draw(t, "level")
		s, err := scale.Lookup(name)
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		ws := NewWithSource(rapidSource{t: t}).Generate(s, level)
		if len(ws) != len(s.Notes) {
			t.Fatalf("expected %d notes, got %d", len(s.Notes), len(ws))
		}
		if ws[0].Cents != 0 {
			t.Fatalf("expected tonic in tune, got %d cents", ws[0].Cents)
		}
		nonzero := 0
		for i, w := range ws {
			if w.Note != s.Notes[i] {
				t.Fatalf("note %d changed: %s -> %s", i, s.Notes[i], w.Note)
			}
			if w.Cents == 0 {
				continue
			}
			nonzero++
			if w.Cents != level && w.Cents != -level {
				t.Fatalf("expected magnitude %d, got %d", level, w.Cents)
			}
		}
		if nonzero != 1 {
			t.Fatalf("expected exactly one detuned note, got %d", nonzero)
		}
	})
}

func TestGenerateForcedScenario(t *testing.T) {
	s, err := scale.Lookup("C Major")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	ws := NewWithSource(Force(3, DrawFlat)).Generate(s, 30)
	want := []string{"C4", "D4", "E4", "F4", "G4", "A4", "B4", "C5"}
	for i, w := range ws {
		if w.Note.String() != want[i] {
			t.Fatalf("index %d: expected %s, got %s", i, want[i], w.Note)
		}
		wantCents := 0
		if i == 3 {
			wantCents = -30
		}
		if w.Cents != wantCents {
			t.Fatalf("index %d: expected %d cents, got %d", i, wantCents, w.Cents)
		}
	}
	idx, mistuned, ok := ws.Mistuned()
	if !ok || idx != 3 || mistuned.Note.String() != "F4" {
		t.Fatalf("unexpected mistuned note: %d %+v %v", idx, mistuned, ok)
	}
}

func TestGenerateSharpDirection(t *testing.T) {
	s, _ := scale.Lookup("D Major")
	ws := NewWithSource(Force(7, DrawSharp)).Generate(s, 15)
	if ws[7].Cents != 15 {
		t.Fatalf("expected last note sharp by 15, got %d", ws[7].Cents)
	}
}

func TestGenerateIndexIsUniform(t *testing.T) {
	s, _ := scale.Lookup("C Major")
	gen := NewWithSource(rand.New(rand.NewSource(7)))
	counts := make([]int, len(s.Notes))
	sharp := 0
	const rounds = 14000
	for i := 0; i < rounds; i++ {
		idx, w, ok := gen.Generate(s, 20).Mistuned()
		if !ok {
			t.Fatalf("expected a mistuned note")
		}
		counts[idx]++
		if w.Cents > 0 {
			sharp++
		}
	}
	if counts[0] != 0 {
		t.Fatalf("tonic must never be detuned, got %d", counts[0])
	}
	expected := float64(rounds) / 7
	for i := 1; i < len(counts); i++ {
		if math.Abs(float64(counts[i])-expected) > expected*0.1 {
			t.Fatalf("index %d drawn %d times, expected about %.0f", i, counts[i], expected)
		}
	}
	if math.Abs(float64(sharp)-rounds/2) > rounds*0.05 {
		t.Fatalf("expected about half sharp, got %d of %d", sharp, rounds)
	}
}

func TestWorkingSetFrequencies(t *testing.T) {
	s, _ := scale.Lookup("C Major")
	ws := NewWithSource(Force(3, DrawFlat)).Generate(s, 30)
	detuned := ws.Frequencies()
	inTune := ws.InTuneFrequencies()
	for i := range ws {
		if i == 3 {
			if detuned[i] >= inTune[i] {
				t.Fatalf("expected flat F4 below in-tune frequency")
			}
			continue
		}
		if detuned[i] != inTune[i] {
			t.Fatalf("index %d: expected in-tune frequency", i)
		}
	}
}

func TestScriptedRepeatsAndReduces(t *testing.T) {
	src := NewScripted(9, -1)
	if got := src.Intn(7); got != 2 {
		t.Fatalf("expected 9 mod 7 = 2, got %d", got)
	}
	if got := src.Intn(2); got != 1 {
		t.Fatalf("expected -1 to reduce to 1, got %d", got)
	}
	if got := src.Intn(7); got != 2 {
		t.Fatalf("expected replay from start, got %d", got)
	}
}
