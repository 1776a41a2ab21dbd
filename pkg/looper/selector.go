// Package looper selects and replays clips from a playlist under a
// playback policy, coordinating delay and loop timing with the output sink.
package looper

import (
	"math/rand"

	"github.com/tonefall/voice/pkg/sink"
)

// Policy decides which clip plays next.
type Policy int

const (
	// Single replays the last-played clip (the first, before anything
	// has played).
	Single Policy = iota
	// Sequential walks the playlist in insertion order, wrapping.
	Sequential
	// Random samples uniformly, avoiding recently played clips.
	Random
)

// String returns the string representation of the policy.
func (p Policy) String() string {
	switch p {
	case Single:
		return "Single"
	case Sequential:
		return "Sequential"
	case Random:
		return "Random"
	default:
		return "Unknown"
	}
}

// Selector picks the next clip from a playlist. In Random mode it keeps a
// bounded FIFO of recently played indices and never hands out a clip still
// in the window. The window clamps to playlist size - 1 so selection can
// never starve.
type Selector struct {
	playlist []sink.Clip
	policy   Policy
	index    int
	avoid    int
	recent   []int
	rng      *rand.Rand
}

// NewSelector creates a selector over the playlist. The playlist is read
// only; the selector never reorders it.
func NewSelector(playlist []sink.Clip, policy Policy, avoidRepeat int, rng *rand.Rand) *Selector {
	if avoidRepeat < 0 {
		avoidRepeat = 0
	}
	return &Selector{
		playlist: playlist,
		policy:   policy,
		avoid:    avoidRepeat,
		rng:      rng,
	}
}

// SetPlaylist replaces the playlist and resets the selection state.
func (s *Selector) SetPlaylist(playlist []sink.Clip) {
	s.playlist = playlist
	s.index = 0
	s.recent = nil
}

// SetPolicy changes the selection policy.
func (s *Selector) SetPolicy(p Policy) {
	s.policy = p
}

// SetRand replaces the random source used by Random mode.
func (s *Selector) SetRand(rng *rand.Rand) {
	s.rng = rng
}

// Policy returns the active policy.
func (s *Selector) Policy() Policy {
	return s.policy
}

// SetAvoidRepeat sets the Random-mode no-repeat window. Negative values
// clamp to 0.
func (s *Selector) SetAvoidRepeat(n int) {
	if n < 0 {
		n = 0
	}
	s.avoid = n
	if len(s.recent) > n {
		s.recent = s.recent[len(s.recent)-n:]
	}
}

// AvoidRepeat returns the configured no-repeat window.
func (s *Selector) AvoidRepeat() int {
	return s.avoid
}

// Len returns the playlist size.
func (s *Selector) Len() int {
	return len(s.playlist)
}

// Next returns the clip to play now. The second return is false when the
// playlist is empty. Random sampling is inclusive of every playlist index:
// candidates are enumerated and one is drawn, so the last clip is exactly
// as likely as any other.
func (s *Selector) Next() (sink.Clip, bool) {
	n := len(s.playlist)
	if n == 0 {
		return nil, false
	}
	switch s.policy {
	case Sequential:
		s.index = (s.index + 1) % n
	case Random:
		s.index = s.pickRandom(n)
	}
	if s.index >= n {
		s.index = 0
	}
	return s.playlist[s.index], true
}

func (s *Selector) pickRandom(n int) int {
	window := s.avoid
	if window > n-1 {
		window = n - 1
	}
	recent := s.recent
	if len(recent) > window {
		recent = recent[len(recent)-window:]
	}

	candidates := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !contains(recent, i) {
			candidates = append(candidates, i)
		}
	}

	var pick int
	if s.rng != nil {
		pick = candidates[s.rng.Intn(len(candidates))]
	} else {
		pick = candidates[0]
	}

	s.recent = append(recent, pick)
	if len(s.recent) > window {
		s.recent = s.recent[len(s.recent)-window:]
	}
	return pick
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
