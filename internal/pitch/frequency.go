package pitch

import "math"

const (
	// ReferenceHz is the tuning reference for A4.
	ReferenceHz = 440.0
	// CentsPerOctave is the number of cents in one octave.
	CentsPerOctave = 1200.0
)

var referenceSemitone = NoteName{Letter: 'A', Octave: 4}.Semitone()

// BaseFrequency returns the 12-TET frequency of n referenced to A4 = 440 Hz.
func BaseFrequency(n NoteName) float64 {
	return ReferenceHz * math.Pow(2, float64(n.Semitone()-referenceSemitone)/12)
}

// WithCents shifts a frequency by the given number of cents.
func WithCents(baseHz, cents float64) float64 {
	if cents == 0 {
		return baseHz
	}
	return baseHz * math.Pow(2, cents/CentsPerOctave)
}

// Frequency returns the frequency of n detuned by cents.
func Frequency(n NoteName, cents int) float64 {
	return WithCents(BaseFrequency(n), float64(cents))
}

// CentsBetween returns the interval from ref to f in cents.
func CentsBetween(ref, f float64) float64 {
	return CentsPerOctave * math.Log2(f/ref)
}
