package fade

import (
	"github.com/tanema/gween"
)

// Phase represents the fader state.
type Phase int

const (
	// PhaseStopped means no fade is running.
	PhaseStopped Phase = iota
	// PhaseFading means an interpolation is in flight.
	PhaseFading
	// PhasePaused means a fade (or steady level) is suspended.
	PhasePaused
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStopped:
		return "Stopped"
	case PhaseFading:
		return "Fading"
	case PhasePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// cachedFade snapshots an interrupted fade so UnPause can reproduce the
// remainder exactly: same curve, same target, clipped duration.
type cachedFade struct {
	destination float64
	remaining   float64
	settings    Settings
}

// Fader runs at most one time-driven volume interpolation at a time. Levels
// are decibel offsets added onto a base volume by the owner. Starting a new
// fade replaces any in-flight one without firing its completion callback.
type Fader struct {
	level float64
	phase Phase

	floorDB float64

	// PauseSettings shapes the short protective fade run on Pause and
	// UnPause so suspending never clicks.
	PauseSettings Settings

	tween       *gween.Tween
	settings    Settings
	destination float64
	duration    float64
	elapsed     float64
	transition  bool

	cached    *cachedFade
	heldLevel float64
	pausing   bool
	afterFade func()

	// OnEnd fires when a fade reaches its destination, and when the pause
	// fade completes. Replaced or cancelled fades never fire it.
	OnEnd func()
	// OnLevel fires on every level change.
	OnLevel func(db float64)
}

// NewFader creates a fader that fades down to floorDB when pausing. The
// initial level is 0 dB (no fade offset).
func NewFader(floorDB float64) *Fader {
	return &Fader{
		floorDB:       floorDB,
		PauseSettings: NewSettings(0.2, 0.5, Out),
	}
}

// Level returns the current fade output in decibels.
func (f *Fader) Level() float64 {
	return f.level
}

// Phase returns the current fader phase.
func (f *Fader) Phase() Phase {
	return f.phase
}

// FadeTo replaces any active fade with a new interpolation from origin to
// destination. A non-positive duration snaps to the destination and signals
// completion synchronously.
func (f *Fader) FadeTo(origin, destination float64, s Settings) {
	f.Cancel()
	f.start(origin, destination, s, false)
}

// Pause suspends the fader. An in-flight fade is snapshotted for resume,
// then a short protective fade takes the level down to the floor. OnEnd
// fires once the level is down and the phase is Paused. Pausing while the
// UnPause up-fade is still running drops that up-fade and dips from the
// current level, keeping the resume snapshot intact.
func (f *Fader) Pause() {
	if f.phase == PhasePaused || f.pausing {
		return
	}
	if f.phase == PhaseFading {
		if f.transition {
			f.tween = nil
			f.afterFade = nil
		} else {
			remaining := f.duration - f.elapsed
			if remaining > 0 {
				f.cached = &cachedFade{
					destination: f.destination,
					remaining:   remaining,
					settings:    f.settings,
				}
			}
			f.tween = nil
			f.heldLevel = f.level
		}
	} else {
		f.heldLevel = f.level
	}
	f.pausing = true
	f.afterFade = func() {
		f.pausing = false
		f.phase = PhasePaused
		if f.OnEnd != nil {
			f.OnEnd()
		}
	}
	down := NewSettings(f.PauseSettings.Duration, f.PauseSettings.Shape(), Out)
	f.start(f.level, f.floorDB, down, true)
}

// UnPause fades back up to the level held at pause time, then resumes the
// snapshotted fade if one was in flight. The two fades run sequentially,
// never concurrently. Unpausing while the pause dip is still running
// drops the dip and fades back up from the current level; the snapshot is
// consumed only when the up-fade completes, so an interrupting Pause can
// still resume it later.
func (f *Fader) UnPause() {
	switch {
	case f.phase == PhasePaused:
	case f.pausing:
		f.tween = nil
		f.afterFade = nil
		f.pausing = false
	default:
		return
	}
	f.phase = PhaseStopped
	f.afterFade = func() {
		cached := f.cached
		f.cached = nil
		if cached == nil {
			return
		}
		s := cached.settings
		s.Duration = cached.remaining
		f.start(f.level, cached.destination, s, false)
	}
	up := NewSettings(f.PauseSettings.Duration, f.PauseSettings.Shape(), In)
	f.start(f.level, f.heldLevel, up, true)
}

// Cancel stops any in-flight fade and clears the pause snapshot without
// invoking completion callbacks.
func (f *Fader) Cancel() {
	f.tween = nil
	f.afterFade = nil
	f.cached = nil
	f.transition = false
	f.pausing = false
	f.phase = PhaseStopped
}

// Update advances the active fade by one tick.
func (f *Fader) Update(dt float64) {
	if f.phase != PhaseFading || f.tween == nil {
		return
	}
	f.elapsed += dt
	v, done := f.tween.Update(float32(dt))
	f.setLevel(float64(v))
	if done {
		f.tween = nil
		f.phase = PhaseStopped
		f.finish()
	}
}

func (f *Fader) start(origin, destination float64, s Settings, transition bool) {
	f.settings = s
	f.destination = destination
	f.transition = transition
	if s.Duration <= 0 {
		f.tween = nil
		f.phase = PhaseStopped
		f.setLevel(destination)
		f.finish()
		return
	}
	f.duration = s.Duration
	f.elapsed = 0
	f.tween = gween.New(float32(origin), float32(destination), float32(s.Duration), s.Curve().Ease())
	f.phase = PhaseFading
	f.setLevel(origin)
}

func (f *Fader) finish() {
	after := f.afterFade
	f.afterFade = nil
	f.transition = false
	if after != nil {
		after()
		return
	}
	if f.OnEnd != nil {
		f.OnEnd()
	}
}

func (f *Fader) setLevel(db float64) {
	f.level = db
	if f.OnLevel != nil {
		f.OnLevel(db)
	}
}
