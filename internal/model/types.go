// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Scale        string
	Level        int
	Backend      string
	ToneDuration time.Duration
	Interval     time.Duration
	MIDIPort     string
	SampleRate   int
	LogLevel     string
}
