package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultSampleRate is used when no sample rate is configured.
	DefaultSampleRate = 44100

	amplitude   = 0.25
	attackTime  = 10 * time.Millisecond
	releaseTime = 60 * time.Millisecond
)

// voice is a single sine oscillator with a linear attack/release envelope.
type voice struct {
	mu         sync.Mutex
	sampleRate float64
	freq       float64
	phase      float64
	pos        int
	total      int
}

func (v *voice) start(freqHz float64, d time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.freq = freqHz
	v.phase = 0
	v.pos = 0
	v.total = int(d.Seconds() * v.sampleRate)
}

func (v *voice) silence() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pos = 0
	v.total = 0
}

func (v *voice) envelope() float64 {
	attack := attackTime.Seconds() * v.sampleRate
	release := releaseTime.Seconds() * v.sampleRate
	pos := float64(v.pos)
	remaining := float64(v.total - v.pos)
	gain := 1.0
	if pos < attack {
		gain = pos / attack
	}
	if remaining < release {
		gain = math.Min(gain, remaining/release)
	}
	return gain
}

// render writes frames mono float32 little-endian samples into out.
func (v *voice) render(out []byte, frames uint32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	step := 2 * math.Pi * v.freq / v.sampleRate
	for i := 0; i < int(frames) && (i+1)*4 <= len(out); i++ {
		var sample float32
		if v.pos < v.total {
			sample = float32(amplitude * v.envelope() * math.Sin(v.phase))
			v.phase = math.Mod(v.phase+step, 2*math.Pi)
			v.pos++
		}
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(sample))
	}
}

// Synth plays sine tones on the default playback device through malgo.
type Synth struct {
	log   logrus.FieldLogger
	voice *voice

	mu         sync.Mutex
	sampleRate uint32
	ctx        *malgo.AllocatedContext
	device     *malgo.Device
}

// NewSynth returns a synth engine. A zero sampleRate selects DefaultSampleRate.
func NewSynth(sampleRate uint32, log logrus.FieldLogger) *Synth {
	if sampleRate == 0 {
		sampleRate = DefaultSampleRate
	}
	return &Synth{
		log:        log,
		sampleRate: sampleRate,
		voice:      &voice{sampleRate: float64(sampleRate)},
	}
}

// PlayTone implements playback.Engine.
func (s *Synth) PlayTone(freqHz float64, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.open(); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"hz": freqHz, "duration": d}).Debug("synth tone")
	s.voice.start(freqHz, d)
	return nil
}

// Stop implements playback.Engine. It silences the voice and releases the device.
func (s *Synth) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voice.silence()
	if s.device == nil {
		return nil
	}
	s.device.Uninit()
	s.device = nil
	err := s.ctx.Uninit()
	s.ctx.Free()
	s.ctx = nil
	if err != nil {
		return fmt.Errorf("failed to release audio context: %w", err)
	}
	return nil
}

func (s *Synth) open() error {
	if s.device != nil {
		return nil
	}
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		s.log.WithField("source", "malgo").Debug(message)
	})
	if err != nil {
		return fmt.Errorf("failed to init audio context: %w", err)
	}
	config := malgo.DefaultDeviceConfig(malgo.Playback)
	config.Playback.Format = malgo.FormatF32
	config.Playback.Channels = 1
	config.SampleRate = s.sampleRate
	callbacks := malgo.DeviceCallbacks{
		Data: func(output, _ []byte, frameCount uint32) {
			s.voice.render(output, frameCount)
		},
	}
	device, err := malgo.InitDevice(ctx.Context, config, callbacks)
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("failed to init playback device: %w", err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("failed to start playback device: %w", err)
	}
	s.ctx = ctx
	s.device = device
	return nil
}

// PlaybackDevices lists the names of the available playback devices.
func PlaybackDevices() ([]string, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to init audio context: %w", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()
	infos, err := ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("failed to list playback devices: %w", err)
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names, nil
}
