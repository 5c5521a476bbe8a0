package session

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/verte-zerg/detune/internal/generator"
	"github.com/verte-zerg/detune/internal/pitch"
	"github.com/verte-zerg/detune/internal/scale"
)

type rapidSource struct {
	t *rapid.T
}

func (s rapidSource) Intn(n int) int {
	return rapid.IntRange(0, n-1).Draw(s.t, "draw")
}

func newRapidSession(t *rapid.T) *Session {
	name := rapid.SampledFrom(scale.Names()).Draw(t, "scale")
	level := rapid.SampledFrom(Levels).Draw(t, "level")
	s, err := New(generator.NewWithSource(rapidSource{t: t}), name, level)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestWrongGuessNeverScores(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newRapidSession(t)
		idx, _, _ := s.WorkingSet().Mistuned()
		notes := s.WorkingSet().Notes()
		pick := rapid.IntRange(0, len(notes)-1).Filter(func(i int) bool { return i != idx }).Draw(t, "pick")
		score := s.Score()
		if err := s.GuessNote(notes[pick]); err != nil {
			t.Fatalf("guess: %v", err)
		}
		if s.Score() != score || s.Feedback() != FeedbackTryAgain || s.State() != Ready {
			t.Fatalf("wrong guess changed state: score=%d feedback=%s state=%s", s.Score(), s.Feedback(), s.State())
		}
	})
}

func TestJudgmentIsSignInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newRapidSession(t)
		_, mistuned, _ := s.WorkingSet().Mistuned()
		d := Direction(rapid.IntRange(0, 1).Draw(t, "direction"))
		if err := s.GuessNote(mistuned.Note); err != nil {
			t.Fatalf("guess: %v", err)
		}
		j, err := s.JudgeDirection(d)
		if err != nil {
			t.Fatalf("judge: %v", err)
		}
		want := (mistuned.Cents > 0) == (d == Flatter)
		if j.Correct != want {
			t.Fatalf("cents=%d direction=%s: correct=%v", mistuned.Cents, d, j.Correct)
		}
	})
}

func TestSelectAlwaysClearsRound(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newRapidSession(t)
		notes := s.WorkingSet().Notes()
		for _, i := range rapid.SliceOfN(rapid.IntRange(0, len(notes)-1), 0, 4).Draw(t, "guesses") {
			_ = s.GuessNote(notes[i])
		}
		if rapid.Bool().Draw(t, "judge") {
			_, _ = s.JudgeDirection(Direction(rapid.IntRange(0, 1).Draw(t, "direction")))
		}
		if rapid.Bool().Draw(t, "by-scale") {
			if err := s.SelectScale(rapid.SampledFrom(scale.Names()).Draw(t, "next-scale")); err != nil {
				t.Fatalf("select scale: %v", err)
			}
		} else {
			if err := s.SelectDeviationLevel(rapid.SampledFrom(Levels).Draw(t, "next-level")); err != nil {
				t.Fatalf("select level: %v", err)
			}
		}
		if _, ok := s.Highlighted(); ok {
			t.Fatalf("expected highlight cleared")
		}
		if s.Feedback() != FeedbackNone || s.CorrectionMode() != CorrectionNone {
			t.Fatalf("expected cleared feedback and correction, got %s/%d", s.Feedback(), s.CorrectionMode())
		}
		var zero pitch.NoteName
		if hl, _ := s.Highlighted(); hl != zero {
			t.Fatalf("expected zero highlight, got %s", hl)
		}
	})
}
