// Package gain provides conversions between the linear-amplitude and decibel
// gain domains and between the playback-speed and semitone pitch domains.
package gain

import (
	"math"
)

// Default working range for playback gain staging.
const (
	DefaultMinDB = -60.0
	DefaultMaxDB = 0.0
)

// Range bounds the decibel domain for a set of conversions. Min acts as the
// silence floor: amplitudes at or below it convert to exactly zero rather
// than an asymptotic near-zero value, so nothing audible leaks under the
// floor.
type Range struct {
	Min float64
	Max float64
}

// DefaultRange returns the -60..0 dB range used when no range is configured.
func DefaultRange() Range {
	return Range{Min: DefaultMinDB, Max: DefaultMaxDB}
}

// FloorAmplitude returns the linear amplitude sitting exactly on the range
// floor.
func (r Range) FloorAmplitude() float64 {
	return math.Pow(10.0, r.Min/20.0)
}

// ToDecibels converts a linear amplitude to decibels. The amplitude is
// clamped to [FloorAmplitude, 1] before conversion and the result is clamped
// to [Min, Max].
func (r Range) ToDecibels(amplitude float64) float64 {
	floor := r.FloorAmplitude()
	if amplitude < floor {
		amplitude = floor
	}
	if amplitude > 1.0 {
		amplitude = 1.0
	}
	db := 20.0 * math.Log10(amplitude)
	if db < r.Min {
		return r.Min
	}
	if db > r.Max {
		return r.Max
	}
	return db
}

// ToAmplitude converts decibels to a linear amplitude. Values at or below
// the range floor return exactly 0.
func (r Range) ToAmplitude(db float64) float64 {
	if db <= r.Min {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// Clamp limits a decibel value to the range.
func (r Range) Clamp(db float64) float64 {
	if db < r.Min {
		return r.Min
	}
	if db > r.Max {
		return r.Max
	}
	return db
}

// ToDecibels converts a linear amplitude to decibels using DefaultRange.
func ToDecibels(amplitude float64) float64 {
	return DefaultRange().ToDecibels(amplitude)
}

// ToAmplitude converts decibels to a linear amplitude using DefaultRange.
func ToAmplitude(db float64) float64 {
	return DefaultRange().ToAmplitude(db)
}

// ToSemitones converts a playback speed ratio to semitones relative to
// normal speed. The speed must be positive; zero or negative speeds are a
// caller contract violation and produce meaningless output.
func ToSemitones(speed float64) float64 {
	return 12.0 * math.Log2(speed)
}

// ToPitch converts semitones relative to normal speed back to a playback
// speed ratio. Exact inverse of ToSemitones for positive speeds.
func ToPitch(semitones float64) float64 {
	return math.Pow(2.0, semitones/12.0)
}
