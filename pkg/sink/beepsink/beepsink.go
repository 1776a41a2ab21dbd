// Package beepsink plays clips through the beep speaker. One persistent
// stream chain per sink stays registered with the mixer; playback state
// changes swap buffers and flags under the speaker lock instead of
// re-registering streamers.
package beepsink

import (
	"math"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"

	"github.com/tonefall/voice/pkg/sink"
)

const resampleQuality = 4

// Init starts the speaker. Call once before creating sinks.
func Init(sr beep.SampleRate, bufferSize int) error {
	if err := speaker.Init(sr, bufferSize); err != nil {
		return errors.Wrap(err, "beepsink: speaker init")
	}
	return nil
}

// Clip is an in-memory decoded sound.
type Clip struct {
	name string
	buf  *beep.Buffer
}

// NewClip wraps a decoded buffer.
func NewClip(name string, buf *beep.Buffer) *Clip {
	return &Clip{name: name, buf: buf}
}

// LoadWAV decodes a WAV file fully into memory.
func LoadWAV(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "beepsink: open %s", path)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "beepsink: decode %s", path)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	return &Clip{name: path, buf: buf}, nil
}

// Name returns the clip's source name.
func (c *Clip) Name() string { return c.name }

// Duration returns the clip length in seconds at normal speed.
func (c *Clip) Duration() float64 {
	return c.buf.Format().SampleRate.D(c.buf.Len()).Seconds()
}

// Buffer exposes the decoded samples.
func (c *Clip) Buffer() *beep.Buffer { return c.buf }

// voiceStream is the head of the chain: it reads the active clip's
// samples, wraps on looping and emits silence when idle or paused. All
// fields are guarded by the speaker lock.
type voiceStream struct {
	seeker  beep.StreamSeeker
	playing bool
	paused  bool
	looping bool
}

func (v *voiceStream) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	if v.playing && !v.paused && v.seeker != nil {
		for filled < len(samples) {
			n, _ := v.seeker.Stream(samples[filled:])
			filled += n
			if v.seeker.Position() < v.seeker.Len() {
				if n == 0 {
					break
				}
				continue
			}
			if v.looping {
				v.seeker.Seek(0)
				continue
			}
			v.playing = false
			break
		}
	}
	for i := range samples[filled:] {
		samples[filled+i] = [2]float64{}
	}
	return len(samples), true
}

func (v *voiceStream) Err() error { return nil }

// Sink plays one tracked clip at a time through the speaker. It satisfies
// the playback sink contract; one-shots mix in as fire-and-forget
// streamers.
type Sink struct {
	sr     beep.SampleRate
	stream *voiceStream
	speed  *beep.Resampler
	vol    *effects.Volume

	clip  *Clip
	ratio float64
}

// New creates a sink and registers its chain with the speaker. The sample
// rate must match the one passed to Init.
func New(sr beep.SampleRate) *Sink {
	vs := &voiceStream{}
	rs := beep.ResampleRatio(resampleQuality, 1.0, vs)
	vl := &effects.Volume{Streamer: rs, Base: 2, Volume: 0, Silent: false}
	speaker.Play(vl)
	return &Sink{sr: sr, stream: vs, speed: rs, vol: vl, ratio: 1.0}
}

// Play starts the assigned clip from the top.
func (s *Sink) Play() {
	speaker.Lock()
	defer speaker.Unlock()
	if s.clip == nil {
		return
	}
	s.stream.seeker = s.clip.buf.Streamer(0, s.clip.buf.Len())
	s.stream.playing = true
	s.stream.paused = false
}

// PlayOneShot mixes in an untracked play of the clip at the sink's
// current volume and speed. Clips from other sinks work too as long as
// they share the speaker's sample rate.
func (s *Sink) PlayOneShot(c sink.Clip) {
	bc, ok := c.(*Clip)
	if !ok {
		return
	}
	speaker.Lock()
	ratio := s.ratio
	vol := s.vol.Volume
	silent := s.vol.Silent
	speaker.Unlock()

	st := beep.ResampleRatio(resampleQuality, ratio, bc.buf.Streamer(0, bc.buf.Len()))
	speaker.Play(&effects.Volume{Streamer: st, Base: 2, Volume: vol, Silent: silent})
}

// Pause suspends playback, keeping the position.
func (s *Sink) Pause() {
	speaker.Lock()
	s.stream.paused = true
	speaker.Unlock()
}

// Resume continues paused playback.
func (s *Sink) Resume() {
	speaker.Lock()
	s.stream.paused = false
	speaker.Unlock()
}

// Stop halts playback and rewinds.
func (s *Sink) Stop() {
	speaker.Lock()
	s.stream.playing = false
	s.stream.paused = false
	s.stream.seeker = nil
	speaker.Unlock()
}

// IsPlaying reports whether the tracked clip is active. A paused clip is
// still playing.
func (s *Sink) IsPlaying() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return s.stream.playing
}

// Clip returns the assigned clip.
func (s *Sink) Clip() sink.Clip {
	speaker.Lock()
	defer speaker.Unlock()
	if s.clip == nil {
		return nil
	}
	return s.clip
}

// SetClip assigns the clip to play next.
func (s *Sink) SetClip(c sink.Clip) {
	bc, _ := c.(*Clip)
	speaker.Lock()
	s.clip = bc
	speaker.Unlock()
}

// Volume returns the linear amplitude.
func (s *Sink) Volume() float64 {
	speaker.Lock()
	defer speaker.Unlock()
	if s.vol.Silent {
		return 0
	}
	return math.Pow(2, s.vol.Volume)
}

// SetVolume sets the linear amplitude. Zero or less mutes outright.
func (s *Sink) SetVolume(amp float64) {
	speaker.Lock()
	defer speaker.Unlock()
	if amp <= 0 {
		s.vol.Silent = true
		return
	}
	s.vol.Silent = false
	s.vol.Volume = math.Log2(amp)
}

// Speed returns the playback rate multiplier.
func (s *Sink) Speed() float64 {
	speaker.Lock()
	defer speaker.Unlock()
	return s.ratio
}

// SetSpeed sets the playback rate multiplier via the resampler.
func (s *Sink) SetSpeed(ratio float64) {
	if ratio <= 0 {
		return
	}
	speaker.Lock()
	s.ratio = ratio
	s.speed.SetRatio(ratio)
	speaker.Unlock()
}

// Position returns seconds into the current clip, in clip time.
func (s *Sink) Position() float64 {
	speaker.Lock()
	defer speaker.Unlock()
	if s.stream.seeker == nil {
		return 0
	}
	return s.sr.D(s.stream.seeker.Position()).Seconds()
}

// Looping returns the native loop flag.
func (s *Sink) Looping() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return s.stream.looping
}

// SetLooping sets the native loop flag. Raising it mid-play makes the
// current clip wrap seamlessly at its end.
func (s *Sink) SetLooping(loop bool) {
	speaker.Lock()
	s.stream.looping = loop
	speaker.Unlock()
}
