// Package ebitensink plays clips through the ebiten audio context. Clips
// hold fully decoded PCM so players can be created per play without
// decode lag; looping wraps the PCM in an infinite loop stream.
package ebitensink

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/pkg/errors"

	"github.com/tonefall/voice/pkg/debug"
	"github.com/tonefall/voice/pkg/sink"
)

// bytesPerFrame is 16-bit little endian stereo, the context's native
// player format.
const bytesPerFrame = 4

// Clip is a fully decoded sound: raw 16-bit LE stereo PCM at the
// context's sample rate.
type Clip struct {
	name       string
	pcm        []byte
	sampleRate int
}

// NewClip wraps raw PCM bytes.
func NewClip(name string, pcm []byte, sampleRate int) *Clip {
	return &Clip{name: name, pcm: pcm, sampleRate: sampleRate}
}

// Load decodes a WAV or OGG file fully into memory at the context's
// sample rate. The format is picked by file extension.
func Load(ctx *audio.Context, path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "ebitensink: open %s", path)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "ebitensink: read %s", path)
	}

	var stream io.Reader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(data))
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(data))
	default:
		return nil, errors.Errorf("ebitensink: unsupported format %s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "ebitensink: decode %s", path)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, errors.Wrapf(err, "ebitensink: decode %s", path)
	}
	return &Clip{name: path, pcm: pcm, sampleRate: ctx.SampleRate()}, nil
}

// Name returns the clip's source name.
func (c *Clip) Name() string { return c.name }

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	return float64(len(c.pcm)) / float64(bytesPerFrame*c.sampleRate)
}

// Sink plays one tracked clip at a time on an ebiten audio context. The
// context cannot vary playback rate, so speed changes are ignored with a
// one-time warning.
type Sink struct {
	ctx *audio.Context
	log *debug.Logger

	clip        *Clip
	player      *audio.Player
	looping     bool
	paused      bool
	volume      float64
	speedWarned bool
}

// New creates a sink on the given context.
func New(ctx *audio.Context) *Sink {
	return &Sink{ctx: ctx, log: debug.Default(), volume: 1}
}

// SetLogger replaces the diagnostics logger.
func (s *Sink) SetLogger(l *debug.Logger) {
	if l != nil {
		s.log = l
	}
}

func (s *Sink) newPlayer(c *Clip, loop bool) (*audio.Player, error) {
	var src io.Reader = bytes.NewReader(c.pcm)
	if loop {
		src = audio.NewInfiniteLoop(bytes.NewReader(c.pcm), int64(len(c.pcm)))
	}
	p, err := s.ctx.NewPlayer(src)
	if err != nil {
		return nil, errors.Wrapf(err, "ebitensink: player for %s", c.name)
	}
	return p, nil
}

// Play starts the assigned clip from the top.
func (s *Sink) Play() {
	if s.clip == nil {
		return
	}
	s.closePlayer()
	p, err := s.newPlayer(s.clip, s.looping)
	if err != nil {
		s.log.Error("%v", err)
		return
	}
	p.SetVolume(s.volume)
	p.Play()
	s.player = p
	s.paused = false
}

// PlayOneShot mixes in an untracked play of the clip at the sink's
// current volume.
func (s *Sink) PlayOneShot(c sink.Clip) {
	ec, ok := c.(*Clip)
	if !ok {
		return
	}
	p, err := s.newPlayer(ec, false)
	if err != nil {
		s.log.Error("%v", err)
		return
	}
	p.SetVolume(s.volume)
	p.Play()
}

// Pause suspends playback, keeping the position.
func (s *Sink) Pause() {
	if s.player == nil {
		return
	}
	s.player.Pause()
	s.paused = true
}

// Resume continues paused playback.
func (s *Sink) Resume() {
	if s.player == nil {
		return
	}
	s.player.Play()
	s.paused = false
}

// Stop halts playback and releases the player.
func (s *Sink) Stop() {
	s.closePlayer()
	s.paused = false
}

// IsPlaying reports whether the tracked clip is active. A paused clip
// counts as playing.
func (s *Sink) IsPlaying() bool {
	if s.player == nil {
		return false
	}
	return s.player.IsPlaying() || s.paused
}

// Clip returns the assigned clip.
func (s *Sink) Clip() sink.Clip {
	if s.clip == nil {
		return nil
	}
	return s.clip
}

// SetClip assigns the clip to play next.
func (s *Sink) SetClip(c sink.Clip) {
	ec, _ := c.(*Clip)
	s.clip = ec
}

// Volume returns the linear amplitude.
func (s *Sink) Volume() float64 { return s.volume }

// SetVolume sets the linear amplitude, applied live to the player.
func (s *Sink) SetVolume(amp float64) {
	if amp < 0 {
		amp = 0
	}
	s.volume = amp
	if s.player != nil {
		s.player.SetVolume(amp)
	}
}

// Speed returns the playback rate multiplier, always 1.
func (s *Sink) Speed() float64 { return 1 }

// SetSpeed is unsupported on this backend. The first non-unit rate logs
// a warning; playback continues at normal speed.
func (s *Sink) SetSpeed(ratio float64) {
	if ratio == 1 || s.speedWarned {
		return
	}
	s.speedWarned = true
	s.log.Warn("ebitensink: playback rate is fixed, ignoring speed %v", ratio)
}

// Position returns seconds into the current clip, wrapping while looping.
func (s *Sink) Position() float64 {
	if s.player == nil {
		return 0
	}
	pos := s.player.Position().Seconds()
	if s.looping && s.clip != nil {
		dur := s.clip.Duration()
		if dur > 0 {
			pos = math.Mod(pos, dur)
		}
	}
	return pos
}

// Looping returns the native loop flag.
func (s *Sink) Looping() bool { return s.looping }

// SetLooping sets the native loop flag. Changing it mid-play rebuilds the
// player at the current position so the transition is inaudible.
func (s *Sink) SetLooping(loop bool) {
	if loop == s.looping {
		return
	}
	s.looping = loop
	if s.player == nil || s.clip == nil {
		return
	}

	offset := int64(s.Position() * float64(bytesPerFrame*s.clip.sampleRate))
	offset -= offset % bytesPerFrame
	if offset < 0 || offset >= int64(len(s.clip.pcm)) {
		offset = 0
	}

	wasPaused := s.paused
	s.closePlayer()

	p, err := s.newPlayer(s.clip, loop)
	if err != nil {
		s.log.Error("%v", err)
		return
	}
	p.SetVolume(s.volume)
	if offset > 0 {
		seek := time.Duration(float64(offset) / float64(bytesPerFrame*s.clip.sampleRate) * float64(time.Second))
		if err := p.SetPosition(seek); err != nil {
			s.log.Error("ebitensink: seek after loop change: %v", err)
		}
	}
	if !wasPaused {
		p.Play()
	}
	s.player = p
	s.paused = wasPaused
}

func (s *Sink) closePlayer() {
	if s.player == nil {
		return
	}
	_ = s.player.Close()
	s.player = nil
}
