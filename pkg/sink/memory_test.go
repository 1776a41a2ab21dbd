package sink

import (
	"math"
	"testing"
)

func TestMemoryAdvancesWhilePlaying(t *testing.T) {
	m := NewMemory()
	m.SetClip(StubClip{Seconds: 1.0})
	m.Play()

	for i := 0; i < 5; i++ {
		m.Update(0.1)
	}
	if math.Abs(m.Position()-0.5) > 1e-9 {
		t.Errorf("position = %f, want 0.5", m.Position())
	}
	if !m.IsPlaying() {
		t.Error("sink stopped before the clip ended")
	}
}

func TestMemoryStopsAtClipEnd(t *testing.T) {
	m := NewMemory()
	m.SetClip(StubClip{Seconds: 0.5})
	m.Play()

	for i := 0; i < 6; i++ {
		m.Update(0.1)
	}
	if m.IsPlaying() {
		t.Error("non-looping sink still playing past the clip end")
	}
	if m.Position() != 0 {
		t.Errorf("position after stop = %f, want 0", m.Position())
	}
}

func TestMemoryLoopWrapsPosition(t *testing.T) {
	m := NewMemory()
	m.SetClip(StubClip{Seconds: 1.0})
	m.SetLooping(true)
	m.Play()

	for i := 0; i < 15; i++ {
		m.Update(0.1)
	}
	if !m.IsPlaying() {
		t.Fatal("looping sink stopped")
	}
	if math.Abs(m.Position()-0.5) > 1e-6 {
		t.Errorf("wrapped position = %f, want 0.5", m.Position())
	}
}

func TestMemoryHonorsSpeed(t *testing.T) {
	m := NewMemory()
	m.SetClip(StubClip{Seconds: 2.0})
	m.SetSpeed(2.0)
	m.Play()

	for i := 0; i < 5; i++ {
		m.Update(0.1)
	}
	if math.Abs(m.Position()-1.0) > 1e-9 {
		t.Errorf("position at double speed = %f, want 1.0", m.Position())
	}
}

func TestMemoryPauseHoldsPosition(t *testing.T) {
	m := NewMemory()
	m.SetClip(StubClip{Seconds: 1.0})
	m.Play()
	m.Update(0.3)

	m.Pause()
	m.Update(0.3)
	if math.Abs(m.Position()-0.3) > 1e-9 {
		t.Errorf("position advanced while paused: %f", m.Position())
	}

	m.Resume()
	m.Update(0.3)
	if math.Abs(m.Position()-0.6) > 1e-9 {
		t.Errorf("position after resume = %f, want 0.6", m.Position())
	}
}

func TestMemoryPlayWithoutClip(t *testing.T) {
	m := NewMemory()
	m.Play()
	if m.IsPlaying() {
		t.Error("sink playing with no clip assigned")
	}
}

func TestSpatialMemory(t *testing.T) {
	m := NewSpatialMemory(25)
	m.Distance = 30
	if m.DistanceToListener() != 30 || m.MaxAudibleDistance() != 25 {
		t.Error("spatial accessors broken")
	}
	if m.SpatialBlend() != 1 {
		t.Errorf("blend = %f, want 1", m.SpatialBlend())
	}
}
