package voice

import (
	"github.com/tonefall/voice/pkg/fade"
	"github.com/tonefall/voice/pkg/looper"
	"github.com/tonefall/voice/pkg/sink"
)

// Volume returns the base volume in decibels.
func (c *Controller) Volume() float64 {
	return c.volume.Value()
}

// SetVolume sets the base volume in decibels, clamped to the gain range.
// A bound sink hears the change immediately.
func (c *Controller) SetVolume(db float64) {
	c.volume.Set(db)
	c.applyVolume()
}

// VolumeRandom returns the per-cycle volume modulation half-width in
// decibels.
func (c *Controller) VolumeRandom() float64 {
	return c.volume.Jitter()
}

// SetVolumeRandom sets the per-cycle volume modulation half-width in
// decibels. The new width takes effect on the next cycle.
func (c *Controller) SetVolumeRandom(db float64) {
	c.volume.SetJitter(db)
}

// Pitch returns the base pitch in semitones.
func (c *Controller) Pitch() float64 {
	return c.pitch.Value()
}

// SetPitch sets the base pitch in semitones, clamped to +-24. A bound
// sink hears the change immediately.
func (c *Controller) SetPitch(semitones float64) {
	c.pitch.Set(semitones)
	c.applyPitch()
}

// PitchRandom returns the per-cycle pitch modulation half-width in
// semitones.
func (c *Controller) PitchRandom() float64 {
	return c.pitch.Jitter()
}

// SetPitchRandom sets the per-cycle pitch modulation half-width in
// semitones.
func (c *Controller) SetPitchRandom(semitones float64) {
	c.pitch.SetJitter(semitones)
}

// Delay returns the base pre-play and between-cycle delay in seconds.
func (c *Controller) Delay() float64 {
	return c.delay.Value()
}

// SetDelay sets the base delay in seconds. Negative values clamp to 0.
func (c *Controller) SetDelay(seconds float64) {
	c.delay.Set(seconds)
}

// DelayRandom returns the per-cycle delay modulation half-width in
// seconds.
func (c *Controller) DelayRandom() float64 {
	return c.delay.Jitter()
}

// SetDelayRandom sets the per-cycle delay modulation half-width in
// seconds.
func (c *Controller) SetDelayRandom(seconds float64) {
	c.delay.SetJitter(seconds)
}

// Clip returns the clip currently on the sink, or nil when unbound.
func (c *Controller) Clip() sink.Clip {
	if c.out == nil {
		return nil
	}
	return c.out.Clip()
}

// SetClip assigns a clip directly to the sink, bypassing the playlist.
func (c *Controller) SetClip(clip sink.Clip) {
	if c.out == nil {
		return
	}
	c.out.SetClip(clip)
}

// SetPlaylist replaces the clip playlist and resets selection state.
func (c *Controller) SetPlaylist(clips []sink.Clip) {
	c.selector.SetPlaylist(clips)
}

// SetPolicy sets the clip selection policy.
func (c *Controller) SetPolicy(p looper.Policy) {
	c.selector.SetPolicy(p)
}

// SetAvoidRepeat sets the Random-policy no-repeat window.
func (c *Controller) SetAvoidRepeat(n int) {
	c.selector.SetAvoidRepeat(n)
}

// Loop reports whether the next Play starts a loop.
func (c *Controller) Loop() bool {
	return c.looping
}

// SetLoop arms or disarms loop mode for the next Play. Disarming while a
// loop is running lets the current clip play out; use StopLooping for
// that explicitly.
func (c *Controller) SetLoop(loop bool) {
	if c.looping && !loop {
		c.StopLooping()
		return
	}
	c.looping = loop
}

// LetClipFinish reports whether Stop schedules its fade to end with the
// current clip instead of starting immediately.
func (c *Controller) LetClipFinish() bool {
	return c.letClipFinish
}

// SetLetClipFinish toggles the Stop scheduling mode.
func (c *Controller) SetLetClipFinish(v bool) {
	c.letClipFinish = v
}

// FadeInDuration returns the fade-in length in seconds.
func (c *Controller) FadeInDuration() float64 {
	return c.fadeIn.Duration
}

// SetFadeInDuration sets the fade-in length in seconds.
func (c *Controller) SetFadeInDuration(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	c.fadeIn.Duration = seconds
}

// FadeInShape returns the fade-in curve shape in [0, 1].
func (c *Controller) FadeInShape() float64 {
	return c.fadeIn.Shape()
}

// SetFadeInShape sets the fade-in curve shape. The protective pause fade
// follows the same shape.
func (c *Controller) SetFadeInShape(shape float64) {
	c.fadeIn.SetShape(shape)
	c.fader.PauseSettings = fade.NewSettings(c.cfg.PauseFadeSeconds, c.fadeIn.Shape(), fade.Out)
}

// FadeOutDuration returns the fade-out length in seconds.
func (c *Controller) FadeOutDuration() float64 {
	return c.fadeOut.Duration
}

// SetFadeOutDuration sets the fade-out length in seconds.
func (c *Controller) SetFadeOutDuration(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	c.fadeOut.Duration = seconds
}

// FadeOutShape returns the fade-out curve shape in [0, 1].
func (c *Controller) FadeOutShape() float64 {
	return c.fadeOut.Shape()
}

// SetFadeOutShape sets the fade-out curve shape.
func (c *Controller) SetFadeOutShape(shape float64) {
	c.fadeOut.SetShape(shape)
}

// FadeLevel returns the current fade offset in decibels.
func (c *Controller) FadeLevel() float64 {
	return c.fader.Level()
}
