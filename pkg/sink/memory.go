package sink

// StubClip is a length-only clip for tests and dry runs.
type StubClip struct {
	Name    string
	Seconds float64
}

// Duration returns the configured length in seconds.
func (c StubClip) Duration() float64 {
	return c.Seconds
}

// Memory is a headless sink. It plays nothing but models playback position,
// speed, looping and pause faithfully when driven by Update, and counts
// every call for assertions.
type Memory struct {
	clip    Clip
	playing bool
	paused  bool
	looping bool
	volume  float64
	speed   float64
	pos     float64

	PlayCalls    int
	OneShotCalls int
	PauseCalls   int
	ResumeCalls  int
	StopCalls    int
	OneShots     []Clip
}

// NewMemory creates a headless sink at full volume and normal speed.
func NewMemory() *Memory {
	return &Memory{volume: 1, speed: 1}
}

// Update advances the playback position by one tick, honoring speed, pause
// and the loop flag. Non-looping clips stop at the end.
func (m *Memory) Update(dt float64) {
	if !m.playing || m.paused || m.clip == nil {
		return
	}
	dur := m.clip.Duration()
	if dur <= 0 {
		m.playing = false
		m.pos = 0
		return
	}
	m.pos += dt * m.speed
	if m.pos < dur {
		return
	}
	if m.looping {
		for m.pos >= dur {
			m.pos -= dur
		}
		return
	}
	m.playing = false
	m.pos = 0
}

// Play starts the assigned clip from the top.
func (m *Memory) Play() {
	m.PlayCalls++
	if m.clip == nil {
		return
	}
	m.playing = true
	m.paused = false
	m.pos = 0
}

// PlayOneShot records an untracked overlapping play.
func (m *Memory) PlayOneShot(c Clip) {
	m.OneShotCalls++
	m.OneShots = append(m.OneShots, c)
}

// Pause suspends playback, keeping the position.
func (m *Memory) Pause() {
	m.PauseCalls++
	if m.playing {
		m.paused = true
	}
}

// Resume continues paused playback.
func (m *Memory) Resume() {
	m.ResumeCalls++
	m.paused = false
}

// Stop halts playback and rewinds.
func (m *Memory) Stop() {
	m.StopCalls++
	m.playing = false
	m.paused = false
	m.pos = 0
}

// IsPlaying reports whether the assigned clip is active.
func (m *Memory) IsPlaying() bool {
	return m.playing
}

// Clip returns the assigned clip.
func (m *Memory) Clip() Clip { return m.clip }

// SetClip assigns the clip to play next.
func (m *Memory) SetClip(c Clip) { m.clip = c }

// Volume returns the linear amplitude.
func (m *Memory) Volume() float64 { return m.volume }

// SetVolume stores the linear amplitude.
func (m *Memory) SetVolume(v float64) { m.volume = v }

// Speed returns the playback rate multiplier.
func (m *Memory) Speed() float64 { return m.speed }

// SetSpeed stores the playback rate multiplier.
func (m *Memory) SetSpeed(v float64) { m.speed = v }

// Position returns seconds into the current clip.
func (m *Memory) Position() float64 { return m.pos }

// SetPosition moves the playhead, for test setups.
func (m *Memory) SetPosition(pos float64) { m.pos = pos }

// Looping returns the native loop flag.
func (m *Memory) Looping() bool { return m.looping }

// SetLooping sets the native loop flag.
func (m *Memory) SetLooping(loop bool) { m.looping = loop }

// SpatialMemory is a Memory sink with a listener distance, for exercising
// distance-based culling.
type SpatialMemory struct {
	Memory
	Distance    float64
	MaxDistance float64
	Blend       float64
}

// NewSpatialMemory creates a fully positional headless sink.
func NewSpatialMemory(maxDistance float64) *SpatialMemory {
	return &SpatialMemory{
		Memory:      Memory{volume: 1, speed: 1},
		MaxDistance: maxDistance,
		Blend:       1,
	}
}

// DistanceToListener returns the current distance to the listener.
func (m *SpatialMemory) DistanceToListener() float64 { return m.Distance }

// MaxAudibleDistance returns the audible range.
func (m *SpatialMemory) MaxAudibleDistance() float64 { return m.MaxDistance }

// SpatialBlend returns how positional the sink is (0 = not at all).
func (m *SpatialMemory) SpatialBlend() float64 { return m.Blend }
