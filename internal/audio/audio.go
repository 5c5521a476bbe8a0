// Package audio provides playback engines for the tone player.
package audio

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/detune/internal/playback"
)

// Backend names accepted by New.
const (
	BackendSynth = "synth"
	BackendMIDI  = "midi"
	BackendNone  = "none"
)

// Backends lists the known backend names.
var Backends = []string{BackendSynth, BackendMIDI, BackendNone}

// Options configures engine construction.
type Options struct {
	Backend    string
	SampleRate uint32
	MIDIPort   string
}

// New returns the engine for opts.Backend. Devices are opened lazily on the
// first tone.
func New(opts Options, log logrus.FieldLogger) (playback.Engine, error) {
	switch strings.ToLower(opts.Backend) {
	case BackendSynth:
		return NewSynth(opts.SampleRate, log), nil
	case BackendMIDI:
		return NewMIDI(opts.MIDIPort, log), nil
	case BackendNone:
		return Silent{log: log}, nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q (available: %s)", opts.Backend, strings.Join(Backends, ", "))
	}
}

// Silent is an engine that only logs tones.
type Silent struct {
	log logrus.FieldLogger
}

// PlayTone implements playback.Engine.
func (s Silent) PlayTone(freqHz float64, d time.Duration) error {
	s.log.WithFields(logrus.Fields{"hz": freqHz, "duration": d}).Debug("tone")
	return nil
}

// Stop implements playback.Engine.
func (s Silent) Stop() error {
	return nil
}
