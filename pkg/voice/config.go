// Package voice provides a single-voice audio playback controller: a
// decibel-domain gain pipeline, a curve-shaped fade engine and a clip
// looping policy coordinated over one output sink.
package voice

import (
	"github.com/tonefall/voice/pkg/gain"
)

// Config carries the host-tunable constants of a controller.
type Config struct {
	// Gain bounds the decibel domain. The zero value means the default
	// -60..0 dB range.
	Gain gain.Range
	// PauseFadeSeconds is the length of the short protective fade run on
	// Pause and UnPause.
	PauseFadeSeconds float64
	// RepeatEpsilon is the native-loop wraparound detection window in
	// seconds.
	RepeatEpsilon float64
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Gain:             gain.DefaultRange(),
		PauseFadeSeconds: 0.2,
		RepeatEpsilon:    0.05,
	}
}

func (c Config) withDefaults() Config {
	if c.Gain == (gain.Range{}) {
		c.Gain = gain.DefaultRange()
	}
	if c.PauseFadeSeconds <= 0 {
		c.PauseFadeSeconds = 0.2
	}
	if c.RepeatEpsilon <= 0 {
		c.RepeatEpsilon = 0.05
	}
	return c
}

// timer is a one-shot countdown driven by the controller tick.
type timer struct {
	remaining float64
	active    bool
}

func (t *timer) start(d float64) {
	t.remaining = d
	t.active = true
}

func (t *timer) cancel() {
	t.active = false
}

// tick advances the countdown and reports whether it fired this step.
func (t *timer) tick(dt float64) bool {
	if !t.active {
		return false
	}
	t.remaining -= dt
	if t.remaining <= 0 {
		t.active = false
		return true
	}
	return false
}
