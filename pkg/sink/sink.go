// Package sink defines the audio output surface the playback core drives,
// plus a headless in-memory implementation for tests and simulations.
package sink

// Clip is a handle to a playable piece of audio. The core never touches
// sample data; it only needs the length for loop and stop scheduling.
type Clip interface {
	// Duration returns the clip length in seconds at normal speed.
	Duration() float64
}

// Sink is the externally-owned audio output a playback controller drives.
// Implementations are mutated only by their owning controller, on a single
// logical thread of control.
type Sink interface {
	// Play starts (or restarts) the assigned clip from the top.
	Play()
	// PlayOneShot plays an untracked, overlapping instance of the clip.
	// One-shot instances ignore the loop flag and are never queried.
	PlayOneShot(c Clip)
	// Pause suspends playback, keeping the position.
	Pause()
	// Resume continues paused playback.
	Resume()
	// Stop halts playback and rewinds.
	Stop()
	// IsPlaying reports whether the assigned clip is audible or paused
	// mid-clip counts as not playing once stopped.
	IsPlaying() bool

	// Clip returns the assigned clip, or nil.
	Clip() Clip
	// SetClip assigns the clip to play next.
	SetClip(c Clip)

	// Volume is the linear amplitude in [0, 1].
	Volume() float64
	SetVolume(v float64)

	// Speed is the playback rate multiplier (1 = normal).
	Speed() float64
	SetSpeed(v float64)

	// Position returns seconds into the current clip.
	Position() float64

	// Looping reports the sink's native seamless loop flag.
	Looping() bool
	SetLooping(loop bool)
}

// Spatial is implemented by positioned sinks that can be culled by
// distance. A blend of 0 means the sink is non-positional.
type Spatial interface {
	DistanceToListener() float64
	MaxAudibleDistance() float64
	SpatialBlend() float64
}
