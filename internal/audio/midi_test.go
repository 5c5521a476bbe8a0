package audio

import (
	"math"
	"testing"

	"github.com/verte-zerg/detune/internal/pitch"
)

func TestKeyAndBend(t *testing.T) {
	f4 := pitch.BaseFrequency(pitch.MustParse("F4"))
	cases := []struct {
		name string
		hz   float64
		key  uint8
		bend int16
	}{
		{"A4 in tune", 440, 69, 0},
		{"C4 in tune", pitch.BaseFrequency(pitch.MustParse("C4")), 60, 0},
		{"F4 30 cents flat", pitch.WithCents(f4, -30), 65, -1229},
		{"F4 40 cents sharp", pitch.WithCents(f4, 40), 65, 1638},
	}
	for _, tc := range cases {
		key, bend := KeyAndBend(tc.hz)
		if key != tc.key || bend != tc.bend {
			t.Fatalf("%s: expected key %d bend %d, got %d %d", tc.name, tc.key, tc.bend, key, bend)
		}
	}
}

func TestKeyAndBendClamps(t *testing.T) {
	key, _ := KeyAndBend(1)
	if key != 0 {
		t.Fatalf("expected lowest key, got %d", key)
	}
	key, bend := KeyAndBend(math.Pow(2, 20))
	if key != 127 || bend != 8191 {
		t.Fatalf("expected clamp to 127/8191, got %d/%d", key, bend)
	}
}

func TestMIDIStopWhenClosed(t *testing.T) {
	m := NewMIDI("", quietLogger())
	if err := m.Stop(); err != nil {
		t.Fatalf("stop unopened midi engine: %v", err)
	}
}
