package voice

import (
	"math/rand"
	"time"

	"github.com/tonefall/voice/pkg/debug"
	"github.com/tonefall/voice/pkg/fade"
	"github.com/tonefall/voice/pkg/gain"
	"github.com/tonefall/voice/pkg/looper"
	"github.com/tonefall/voice/pkg/param"
	"github.com/tonefall/voice/pkg/sink"
)

// State represents the top-level playback state.
type State int

const (
	// StateUninitialized means no output sink is bound; every public call
	// is a safe no-op.
	StateUninitialized State = iota
	// StateStopped means the voice is idle.
	StateStopped
	// StatePlaying means a clip or loop is active.
	StatePlaying
	// StatePaused means playback is suspended.
	StatePaused
	// StateStopping means a fade-out (or stop schedule) is in flight.
	StateStopping
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateStopping:
		return "Stopping"
	default:
		return "Unknown"
	}
}

// Controller is a single playback voice. It owns exactly one fader and one
// looper, drives one output sink, and is ticked by Update from a single
// logical thread of control.
type Controller struct {
	cfg Config
	out sink.Sink
	rng *rand.Rand
	log *debug.Logger

	state State

	volume param.P // decibels
	pitch  param.P // semitones
	delay  param.P // seconds

	volumeOffset float64
	pitchOffset  float64

	fadeIn  fade.Settings
	fadeOut fade.Settings
	fader   *fade.Fader

	selector *looper.Selector
	loop     *looper.Looper
	looping  bool

	letClipFinish bool

	delayTimer timer
	stopTimer  timer
	watchdog   bool
	rangeCull  bool

	// Lifecycle notifications. Nil callbacks are skipped.
	OnPlay            func()
	OnStop            func()
	OnFinishedPlaying func()
	// OnRepeat fires once per native-loop wraparound.
	OnRepeat func()
}

// New creates a controller in the Uninitialized state. Bind attaches the
// output sink and makes the voice operational.
func New(cfg Config) *Controller {
	cfg = cfg.withDefaults()
	c := &Controller{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		log: debug.Default(),
	}
	c.volume = param.VolumeDB(cfg.Gain)
	c.pitch = param.PitchSemitones()
	c.delay = param.DelaySeconds()

	c.fadeIn = fade.NewSettings(1.0, 0.5, fade.In)
	c.fadeOut = fade.NewSettings(1.0, 0.5, fade.Out)

	c.fader = fade.NewFader(cfg.Gain.Min)
	c.fader.PauseSettings = fade.NewSettings(cfg.PauseFadeSeconds, c.fadeIn.Shape(), fade.Out)
	c.fader.OnLevel = func(float64) { c.applyVolume() }
	c.fader.OnEnd = c.handleFadeEnd

	c.selector = looper.NewSelector(nil, looper.Single, 0, c.rng)
	return c
}

// Bind attaches the output sink. The first bind moves the voice out of the
// Uninitialized state.
func (c *Controller) Bind(out sink.Sink) {
	c.out = out
	c.loop = looper.New(out, c.playCycle)
	c.loop.SetRepeatEpsilon(c.cfg.RepeatEpsilon)
	c.loop.SetLogger(c.log)
	c.loop.OnRepeat = func() { c.fire(c.OnRepeat) }
	if c.state == StateUninitialized {
		c.state = StateStopped
	}
}

// State returns the current playback state.
func (c *Controller) State() State {
	return c.state
}

// SetRand replaces the random source used for modulation and clip
// selection, for deterministic tests.
func (c *Controller) SetRand(rng *rand.Rand) {
	c.rng = rng
	c.selector.SetRand(rng)
}

// SetLogger replaces the diagnostics logger.
func (c *Controller) SetLogger(l *debug.Logger) {
	if l == nil {
		return
	}
	c.log = l
	if c.loop != nil {
		c.loop.SetLogger(l)
	}
}

// Update advances the voice by one tick. dt is the frame delta in seconds.
func (c *Controller) Update(dt float64) {
	if c.state == StateUninitialized {
		return
	}
	if c.state == StatePlaying && c.delayTimer.tick(dt) {
		c.startOnce()
	}
	c.fader.Update(dt)
	if c.state == StateStopping && c.stopTimer.tick(dt) {
		c.beginFadeOut(c.fadeOut.Duration)
	}
	c.updateRangeCull()
	c.loop.Update(dt)
	if c.watchdog && c.state == StatePlaying && !c.out.IsPlaying() {
		c.watchdog = false
		c.fader.Cancel()
		c.state = StateStopped
		c.fire(c.OnFinishedPlaying)
	}
}

// Play starts playback. The fade-in and the clip start proceed
// concurrently. With looping enabled the looper takes over scheduling;
// otherwise a modulated delay may precede the single play.
func (c *Controller) Play() {
	if c.state == StateUninitialized {
		return
	}
	if c.selector.Len() == 0 && c.out.Clip() == nil {
		c.log.Warn("play requested with an empty playlist and no clip on the sink")
		return
	}
	c.delayTimer.cancel()
	c.stopTimer.cancel()
	c.watchdog = false
	c.FadeIn()
	if c.looping {
		native := c.selector.Policy() == looper.Single &&
			c.delay.Value() <= 0 && c.delay.Jitter() == 0
		c.loop.Start(native)
		if c.loop.Phase() == looper.PhaseLooping {
			c.state = StatePlaying
		} else {
			c.fader.Cancel()
			c.state = StateStopped
		}
		return
	}
	d := c.delay.Modulated(c.rng)
	if d > 0 {
		c.delayTimer.start(d)
		c.state = StatePlaying
		return
	}
	c.startOnce()
}

// PlayOneShot plays an untracked, overlapping instance of the next clip.
// One-shot instances bypass looping and the finished watchdog entirely.
func (c *Controller) PlayOneShot() {
	if c.state == StateUninitialized {
		return
	}
	clip, ok := c.selector.Next()
	if !ok {
		clip = c.out.Clip()
		if clip == nil {
			c.log.Warn("one-shot requested with an empty playlist and no clip on the sink")
			return
		}
	}
	c.modulate()
	c.applyPitch()
	c.applyVolume()
	c.out.PlayOneShot(clip)
	c.fire(c.OnPlay)
}

// Pause suspends playback: the looper caches its timing, the fader runs its
// short protective fade, and the sink pauses once the level is down.
func (c *Controller) Pause() {
	if c.state != StatePlaying {
		return
	}
	c.state = StatePaused
	c.loop.Pause()
	c.fader.Pause()
}

// UnPause resumes suspended playback.
func (c *Controller) UnPause() {
	if c.state != StatePaused {
		return
	}
	c.state = StatePlaying
	c.out.Resume()
	c.fader.UnPause()
	c.loop.UnPause()
}

// TogglePaused pauses when playing and unpauses when paused.
func (c *Controller) TogglePaused() {
	switch c.state {
	case StatePlaying:
		c.Pause()
	case StatePaused:
		c.UnPause()
	}
}

// Stop winds playback down. OnStop fires synchronously before any wait.
// With "let clip finish" enabled the fade-out is scheduled so it ends
// exactly when the current clip does; otherwise it begins immediately.
func (c *Controller) Stop() {
	if c.state != StatePlaying && c.state != StatePaused {
		return
	}
	c.fire(c.OnStop)
	wasPaused := c.state == StatePaused
	c.state = StateStopping
	c.delayTimer.cancel()
	c.watchdog = false
	c.loop.Stop()

	if wasPaused {
		c.finishStop()
		return
	}
	if c.letClipFinish && c.out.IsPlaying() {
		remaining := c.remainingClipTime()
		if remaining > c.fadeOut.Duration {
			c.stopTimer.start(remaining - c.fadeOut.Duration)
			return
		}
		c.beginFadeOut(remaining)
		return
	}
	c.beginFadeOut(c.fadeOut.Duration)
}

// StopLooping leaves loop mode while the current clip plays out. The
// finished watchdog takes over so OnFinishedPlaying still fires.
func (c *Controller) StopLooping() {
	c.looping = false
	if c.loop == nil || c.loop.Phase() == looper.PhaseStopped {
		return
	}
	c.loop.Stop()
	if c.state == StatePlaying && c.out.IsPlaying() {
		c.watchdog = true
	}
}

// FadeIn fades the volume offset from the floor up to 0 dB using the
// fade-in settings.
func (c *Controller) FadeIn() {
	c.fader.FadeTo(c.cfg.Gain.Min, 0, c.fadeIn)
}

// FadeOut fades the volume offset from its current level down to the floor
// using the fade-out settings.
func (c *Controller) FadeOut() {
	c.fader.FadeTo(c.fader.Level(), c.cfg.Gain.Min, c.fadeOut)
}

// FadeTo fades the volume offset from its current level to target dB over
// the given duration, shaping with the fade-in curve when rising and the
// fade-out curve when falling.
func (c *Controller) FadeTo(target, duration float64) {
	s := c.fadeIn
	if target < c.fader.Level() {
		s = c.fadeOut
	}
	s.Duration = duration
	c.fader.FadeTo(c.fader.Level(), c.cfg.Gain.Clamp(target), s)
}

// Reset cancels every outstanding task without firing callbacks and
// returns the voice to Stopped (or Uninitialized if never bound).
func (c *Controller) Reset() {
	c.fader.Cancel()
	if c.loop != nil {
		c.loop.Stop()
	}
	c.delayTimer.cancel()
	c.stopTimer.cancel()
	c.watchdog = false
	c.rangeCull = false
	c.volumeOffset = 0
	c.pitchOffset = 0
	if c.state != StateUninitialized {
		c.state = StateStopped
	}
}

// playCycle selects and starts the next clip, applying fresh modulation.
// It returns the wait until the next cycle. Used directly for single plays
// and as the looper's cycle function.
func (c *Controller) playCycle() (float64, bool) {
	clip, ok := c.selector.Next()
	if !ok {
		clip = c.out.Clip()
		if clip == nil {
			c.log.Warn("play requested with an empty playlist and no clip on the sink")
			return 0, false
		}
	}
	c.modulate()
	c.out.SetClip(clip)
	c.applyPitch()
	c.applyVolume()
	c.out.Play()
	c.fire(c.OnPlay)

	speed := c.out.Speed()
	if speed <= 0 {
		speed = 1
	}
	return clip.Duration()/speed + c.delay.Modulated(c.rng), true
}

func (c *Controller) startOnce() {
	if _, ok := c.playCycle(); ok {
		c.watchdog = true
		c.state = StatePlaying
		return
	}
	c.fader.Cancel()
	c.state = StateStopped
}

func (c *Controller) beginFadeOut(duration float64) {
	s := c.fadeOut
	s.Duration = duration
	c.fader.FadeTo(c.fader.Level(), c.cfg.Gain.Min, s)
}

func (c *Controller) handleFadeEnd() {
	switch c.state {
	case StateStopping:
		c.finishStop()
	case StatePaused:
		c.out.Pause()
	}
}

func (c *Controller) finishStop() {
	c.out.Stop()
	c.loop.Stop()
	c.watchdog = false
	c.stopTimer.cancel()
	c.rangeCull = false
	c.volumeOffset = 0
	c.pitchOffset = 0
	c.state = StateStopped
	c.fire(c.OnFinishedPlaying)
}

// updateRangeCull pauses the looper while a positional sink is out of
// earshot. This is a scheduling optimization only: the playback state is
// untouched and the loop resumes when the listener is back in range.
func (c *Controller) updateRangeCull() {
	if c.state != StatePlaying {
		return
	}
	sp, ok := c.out.(sink.Spatial)
	if !ok || sp.SpatialBlend() <= 0 {
		return
	}
	outOfRange := sp.DistanceToListener() > sp.MaxAudibleDistance()
	if outOfRange == c.rangeCull {
		return
	}
	if outOfRange {
		c.loop.Pause()
	} else {
		c.loop.UnPause()
	}
	c.rangeCull = outOfRange
}

// modulate draws this cycle's random offsets. The offsets are recomputed
// per cycle and cleared on stop, so the base parameter values never drift.
func (c *Controller) modulate() {
	c.volumeOffset = c.volume.Modulated(c.rng) - c.volume.Value()
	c.pitchOffset = c.pitch.Modulated(c.rng) - c.pitch.Value()
}

func (c *Controller) applyVolume() {
	if c.out == nil {
		return
	}
	db := c.volume.Value() + c.volumeOffset + c.fader.Level()
	c.out.SetVolume(c.cfg.Gain.ToAmplitude(c.cfg.Gain.Clamp(db)))
}

func (c *Controller) applyPitch() {
	if c.out == nil {
		return
	}
	c.out.SetSpeed(gain.ToPitch(c.pitch.Value() + c.pitchOffset))
}

func (c *Controller) remainingClipTime() float64 {
	clip := c.out.Clip()
	if clip == nil {
		return 0
	}
	speed := c.out.Speed()
	if speed <= 0 {
		speed = 1
	}
	remaining := (clip.Duration() - c.out.Position()) / speed
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (c *Controller) fire(fn func()) {
	if fn != nil {
		fn()
	}
}
