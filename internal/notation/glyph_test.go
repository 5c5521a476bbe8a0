package notation

import (
	"testing"

	"github.com/verte-zerg/detune/internal/generator"
	"github.com/verte-zerg/detune/internal/pitch"
	"github.com/verte-zerg/detune/internal/scale"
)

func workingSet(t *testing.T, name string) generator.WorkingSet {
	t.Helper()
	s, err := scale.Lookup(name)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	return generator.NewWithSource(generator.Force(3, generator.DrawFlat)).Generate(s, 30)
}

func TestProjectKeepsOrderAndEmphasis(t *testing.T) {
	ws := workingSet(t, "D Major")
	hl := pitch.MustParse("F#4")
	glyphs := Project(ws, &hl)
	if len(glyphs) != 8 {
		t.Fatalf("expected 8 glyphs, got %d", len(glyphs))
	}
	for i, g := range glyphs {
		if g.Letter != ws[i].Note.Letter || g.Accidental != ws[i].Note.Accidental || g.Octave != ws[i].Note.Octave {
			t.Fatalf("glyph %d does not match %s: %+v", i, ws[i].Note, g)
		}
		if g.Emphasized != (i == 2) {
			t.Fatalf("glyph %d: unexpected emphasis %v", i, g.Emphasized)
		}
	}
	if glyphs[2].Key() != "f#/4" {
		t.Fatalf("unexpected key %q", glyphs[2].Key())
	}
	if glyphs[2].Label() != "F♯4" {
		t.Fatalf("unexpected label %q", glyphs[2].Label())
	}
}

func TestProjectWithoutHighlight(t *testing.T) {
	for _, g := range Project(workingSet(t, "C Major"), nil) {
		if g.Emphasized {
			t.Fatalf("expected no emphasis without highlight")
		}
	}
}

func TestProjectEmpty(t *testing.T) {
	if got := Project(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty projection, got %d glyphs", len(got))
	}
}

func TestKeyForFlat(t *testing.T) {
	g := Glyph{Letter: 'B', Accidental: pitch.Flat, Octave: 3}
	if g.Key() != "bb/3" {
		t.Fatalf("unexpected key %q", g.Key())
	}
}
