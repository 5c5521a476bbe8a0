package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // MIDI driver.
)

const (
	midiChannel  = 0
	midiVelocity = 100
	// BendRange is the pitch bend range in semitones assumed for the receiver.
	BendRange = 2
)

// KeyAndBend returns the nearest MIDI key to freqHz and the 14-bit pitch bend
// that covers the remaining offset.
func KeyAndBend(freqHz float64) (uint8, int16) {
	semis := 69 + 12*math.Log2(freqHz/440)
	key := math.Round(semis)
	key = math.Max(0, math.Min(127, key))
	bend := math.Round((semis - key) / BendRange * 8192)
	bend = math.Max(-8192, math.Min(8191, bend))
	return uint8(key), int16(bend)
}

// MIDI plays tones as notes with pitch bend on a MIDI output port.
type MIDI struct {
	port string
	log  logrus.FieldLogger

	mu       sync.Mutex
	out      drivers.Out
	send     func(midi.Message) error
	sounding bool
	key      uint8
	release  *time.Timer
}

// NewMIDI returns a MIDI engine for the named output port. An empty name
// selects the first port.
func NewMIDI(port string, log logrus.FieldLogger) *MIDI {
	return &MIDI{port: port, log: log}
}

// PlayTone implements playback.Engine.
func (m *MIDI) PlayTone(freqHz float64, d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.open(); err != nil {
		return err
	}
	if err := m.noteOffLocked(); err != nil {
		return err
	}
	key, bend := KeyAndBend(freqHz)
	m.log.WithFields(logrus.Fields{"hz": freqHz, "key": key, "bend": bend}).Debug("midi tone")
	if err := m.send(midi.Pitchbend(midiChannel, bend)); err != nil {
		return fmt.Errorf("failed to send pitch bend: %w", err)
	}
	if err := m.send(midi.NoteOn(midiChannel, key, midiVelocity)); err != nil {
		return fmt.Errorf("failed to send note on: %w", err)
	}
	m.sounding = true
	m.key = key
	var release *time.Timer
	release = time.AfterFunc(d, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.release == release {
			if err := m.noteOffLocked(); err != nil {
				m.log.WithError(err).Warn("failed to release midi note")
			}
		}
	})
	m.release = release
	return nil
}

// Stop implements playback.Engine. It releases sounding notes, resets the
// bend and closes the port.
func (m *MIDI) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.out == nil {
		return nil
	}
	err := m.noteOffLocked()
	if serr := m.send(midi.Pitchbend(midiChannel, 0)); serr != nil && err == nil {
		err = fmt.Errorf("failed to reset pitch bend: %w", serr)
	}
	if cerr := m.out.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("failed to close midi port: %w", cerr)
	}
	m.out = nil
	m.send = nil
	return err
}

func (m *MIDI) noteOffLocked() error {
	if m.release != nil {
		m.release.Stop()
		m.release = nil
	}
	if !m.sounding {
		return nil
	}
	m.sounding = false
	if err := m.send(midi.NoteOff(midiChannel, m.key)); err != nil {
		return fmt.Errorf("failed to send note off: %w", err)
	}
	return nil
}

func (m *MIDI) open() error {
	if m.out != nil {
		return nil
	}
	var (
		out drivers.Out
		err error
	)
	if m.port == "" {
		out, err = midi.OutPort(0)
	} else {
		out, err = midi.FindOutPort(m.port)
	}
	if err != nil {
		return fmt.Errorf("failed to find midi output %q: %w", m.port, err)
	}
	send, err := midi.SendTo(out)
	if err != nil {
		return fmt.Errorf("failed to open midi output %s: %w", out, err)
	}
	m.out = out
	m.send = send
	return nil
}

// MIDIOutPorts lists the names of the available MIDI output ports.
func MIDIOutPorts() []string {
	ports := midi.GetOutPorts()
	names := make([]string, 0, len(ports))
	for _, p := range ports {
		names = append(names, p.String())
	}
	return names
}

// CloseMIDI releases the MIDI driver.
func CloseMIDI() {
	midi.CloseDriver()
}
