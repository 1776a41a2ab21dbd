// Package param provides bounded, optionally randomised scalar parameters
// for live-tunable playback settings such as volume, pitch and delay.
package param

import (
	"math/rand"

	"github.com/tonefall/voice/pkg/gain"
)

// P is a clamped scalar with an optional uniform modulation range. When
// Max < Min the parameter is floor-only: values are clamped to at least Min
// with no ceiling.
type P struct {
	value  float64
	jitter float64
	Min    float64
	Max    float64
}

// New creates a parameter over [min, max] holding value (clamped).
func New(value, min, max float64) P {
	p := P{Min: min, Max: max}
	p.Set(value)
	return p
}

// VolumeDB creates a volume parameter in decibels over the given gain range,
// defaulting to full level.
func VolumeDB(r gain.Range) P {
	return New(r.Max, r.Min, r.Max)
}

// PitchSemitones creates a pitch parameter in semitones over +-24, centred
// on normal speed.
func PitchSemitones() P {
	return New(0, -24, 24)
}

// DelaySeconds creates a floor-only delay parameter in seconds: never
// negative, no upper bound.
func DelaySeconds() P {
	return New(0, 0, -1)
}

// Value returns the current base value.
func (p P) Value() float64 {
	return p.value
}

// Set stores a new base value, clamped to the parameter bounds.
func (p *P) Set(v float64) {
	p.value = p.Clamp(v)
}

// Jitter returns the half-width of the uniform modulation range.
func (p P) Jitter() float64 {
	return p.jitter
}

// SetJitter stores a new modulation half-width. Negative values clamp to 0.
func (p *P) SetJitter(j float64) {
	if j < 0 {
		j = 0
	}
	p.jitter = j
}

// Clamp limits v to the parameter bounds. Floor-only parameters apply only
// the lower bound.
func (p P) Clamp(v float64) float64 {
	if v < p.Min {
		return p.Min
	}
	if p.Max >= p.Min && v > p.Max {
		return p.Max
	}
	return v
}

// Modulated returns the base value offset by a uniform random sample in
// [-Jitter, Jitter], re-clamped to the parameter bounds. The base value is
// untouched, so repeated modulation never drifts. A nil source returns the
// clamped base value.
func (p P) Modulated(rng *rand.Rand) float64 {
	if rng == nil || p.jitter == 0 {
		return p.Clamp(p.value)
	}
	offset := (rng.Float64()*2.0 - 1.0) * p.jitter
	return p.Clamp(p.value + offset)
}
