package audio

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestNewSelectsBackend(t *testing.T) {
	engine, err := New(Options{Backend: "synth", SampleRate: 48000}, quietLogger())
	if err != nil {
		t.Fatalf("synth: %v", err)
	}
	if synth, ok := engine.(*Synth); !ok || synth.sampleRate != 48000 {
		t.Fatalf("expected *Synth at 48000 Hz, got %T", engine)
	}

	engine, err = New(Options{Backend: "MIDI", MIDIPort: "Launchkey"}, quietLogger())
	if err != nil {
		t.Fatalf("midi: %v", err)
	}
	if m, ok := engine.(*MIDI); !ok || m.port != "Launchkey" {
		t.Fatalf("expected *MIDI on Launchkey, got %T", engine)
	}

	engine, err = New(Options{Backend: "none"}, quietLogger())
	if err != nil {
		t.Fatalf("none: %v", err)
	}
	if _, ok := engine.(Silent); !ok {
		t.Fatalf("expected Silent, got %T", engine)
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	if _, err := New(Options{Backend: "theremin"}, quietLogger()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestSilentEngine(t *testing.T) {
	s := Silent{log: quietLogger()}
	if err := s.PlayTone(440, time.Second); err != nil {
		t.Fatalf("play: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
