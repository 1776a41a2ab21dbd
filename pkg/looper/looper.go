package looper

import (
	"github.com/tonefall/voice/pkg/debug"
	"github.com/tonefall/voice/pkg/sink"
)

// Phase represents the looper state.
type Phase int

const (
	// PhaseStopped means no loop is running.
	PhaseStopped Phase = iota
	// PhaseLooping means the looper is scheduling replays.
	PhaseLooping
	// PhasePaused means the loop is suspended with its timing cached.
	PhasePaused
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStopped:
		return "Stopped"
	case PhaseLooping:
		return "Looping"
	case PhasePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// CycleFunc plays the next clip and returns the wait in seconds until the
// following cycle. ok is false when nothing was playable.
type CycleFunc func() (wait float64, ok bool)

// Looper replays clips either natively (the sink's own seamless loop flag)
// or scripted (an interval timer that re-triggers a cycle). In native mode
// it still watches the playback position to report each wraparound exactly
// once.
type Looper struct {
	out   sink.Sink
	cycle CycleFunc
	phase Phase
	log   *debug.Logger

	native  bool
	wait    float64
	cached  float64
	lastPos float64
	epsilon float64

	// OnRepeat fires once per native-mode wraparound.
	OnRepeat func()
}

// New creates a looper driving the sink through the given cycle function.
func New(out sink.Sink, cycle CycleFunc) *Looper {
	return &Looper{
		out:     out,
		cycle:   cycle,
		epsilon: 0.05,
		log:     debug.Default(),
	}
}

// SetLogger replaces the diagnostics logger.
func (l *Looper) SetLogger(log *debug.Logger) {
	if log != nil {
		l.log = log
	}
}

// SetRepeatEpsilon sets the wraparound detection window in seconds.
func (l *Looper) SetRepeatEpsilon(e float64) {
	if e > 0 {
		l.epsilon = e
	}
}

// Phase returns the current looper phase.
func (l *Looper) Phase() Phase {
	return l.phase
}

// Native reports whether the active loop delegates repetition to the sink.
func (l *Looper) Native() bool {
	return l.phase != PhaseStopped && l.native
}

// Start begins looping. Native mode raises the sink's loop flag and plays a
// single cycle; scripted mode plays a cycle and arms the interval timer
// with the returned wait. If the first cycle has nothing to play the looper
// stays stopped.
func (l *Looper) Start(native bool) {
	l.Stop()
	if native {
		l.out.SetLooping(true)
		if _, ok := l.cycle(); !ok {
			l.out.SetLooping(false)
			return
		}
		l.native = true
		l.lastPos = l.out.Position()
		l.phase = PhaseLooping
		return
	}
	wait, ok := l.cycle()
	if !ok {
		return
	}
	if wait <= 0 {
		l.log.Warn("loop cycle scheduled no wait, not looping")
		return
	}
	l.native = false
	l.wait = wait
	l.phase = PhaseLooping
}

// Update advances the loop by one tick.
func (l *Looper) Update(dt float64) {
	if l.phase != PhaseLooping {
		return
	}
	if l.native {
		pos := l.out.Position()
		if pos < l.lastPos-l.epsilon {
			if l.OnRepeat != nil {
				l.OnRepeat()
			}
		}
		l.lastPos = pos
		return
	}
	l.wait -= dt
	for l.wait <= 0 {
		wait, ok := l.cycle()
		if !ok {
			l.Stop()
			return
		}
		// A cycle that schedules no wait can never make progress, so the
		// loop must end here instead of spinning the tick.
		if wait <= 0 {
			l.log.Warn("loop cycle scheduled no wait, stopping loop")
			l.Stop()
			return
		}
		l.wait += wait
	}
}

// Pause suspends the loop, caching the remaining interval time so resume
// replays at the correct offset. Native mode drops the sink's loop flag so
// the current clip does not silently repeat while paused.
func (l *Looper) Pause() {
	if l.phase != PhaseLooping {
		return
	}
	if l.native {
		l.out.SetLooping(false)
	} else {
		l.cached = l.wait
	}
	l.phase = PhasePaused
}

// UnPause resumes a paused loop. Scripted loops restore the cached
// remaining time and the next cycle restarts its clip from the top; native
// loops re-arm the sink's loop flag.
func (l *Looper) UnPause() {
	if l.phase != PhasePaused {
		return
	}
	if l.native {
		l.out.SetLooping(true)
		l.lastPos = l.out.Position()
	} else {
		l.wait = l.cached
	}
	l.phase = PhaseLooping
}

// Stop ends the loop without firing callbacks. Native mode clears the
// sink's loop flag; scripted mode drops the pending wait.
func (l *Looper) Stop() {
	if l.phase == PhaseStopped {
		return
	}
	if l.native {
		l.out.SetLooping(false)
	}
	l.native = false
	l.wait = 0
	l.cached = 0
	l.phase = PhaseStopped
}
