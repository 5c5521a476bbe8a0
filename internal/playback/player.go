// Package playback sequences tones on an audio engine.
package playback

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Engine is the audio output the player drives. Frequencies are already
// adjusted for cents.
type Engine interface {
	PlayTone(freqHz float64, d time.Duration) error
	// Stop silences the engine and releases its resources. It must be safe
	// to call when nothing is playing.
	Stop() error
}

// Tone is one note of a playback run.
type Tone struct {
	Hz       float64
	Duration time.Duration
}

// Sequence builds tones of equal duration from frequencies.
func Sequence(freqs []float64, d time.Duration) []Tone {
	tones := make([]Tone, len(freqs))
	for i, f := range freqs {
		tones[i] = Tone{Hz: f, Duration: d}
	}
	return tones
}

// Run triggers each tone in order, waiting interval between tones. It returns
// ctx.Err() when cancelled between notes.
func Run(ctx context.Context, engine Engine, tones []Tone, interval time.Duration) error {
	for i, tone := range tones {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := engine.PlayTone(tone.Hz, tone.Duration); err != nil {
			return err
		}
		if i == len(tones)-1 {
			break
		}
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// Player runs at most one playback run at a time. Starting a run stops the
// previous one first.
type Player struct {
	engine   Engine
	interval time.Duration
	log      logrus.FieldLogger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPlayer returns a Player pacing tones by interval.
func NewPlayer(engine Engine, interval time.Duration, log logrus.FieldLogger) *Player {
	return &Player{engine: engine, interval: interval, log: log}
}

// Play stops any run in flight and starts tones in the background.
func (p *Player) Play(tones []Tone) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	if len(tones) == 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done
	go func() {
		defer close(done)
		p.log.WithField("tones", len(tones)).Debug("playback started")
		err := Run(ctx, p.engine, tones, p.interval)
		switch {
		case err == nil:
			p.log.Debug("playback finished")
		case ctx.Err() != nil:
			p.log.Debug("playback cancelled")
		default:
			p.log.WithError(err).Warn("playback failed")
		}
	}()
}

// Stop cancels the run in flight, if any, and silences the engine.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Wait blocks until the current run has finished or been cancelled.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (p *Player) stopLocked() {
	if p.cancel != nil {
		p.cancel()
		<-p.done
		p.cancel = nil
		p.done = nil
	}
	if err := p.engine.Stop(); err != nil {
		p.log.WithError(err).Warn("failed to stop audio engine")
	}
}
