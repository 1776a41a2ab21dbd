// Package clock drives tick-based components, either from a real-time
// ticker or by hand in tests.
package clock

import (
	"context"
	"time"
)

// Updatable is anything advanced by a frame delta in seconds.
type Updatable interface {
	Update(dt float64)
}

// Manual is a hand-stepped clock for tests and offline rendering.
type Manual struct {
	targets []Updatable
	now     float64
}

// NewManual creates an empty manual clock.
func NewManual() *Manual {
	return &Manual{}
}

// Add registers a target to advance on every step.
func (m *Manual) Add(u Updatable) {
	m.targets = append(m.targets, u)
}

// Step advances every registered target by dt seconds.
func (m *Manual) Step(dt float64) {
	m.now += dt
	for _, u := range m.targets {
		u.Update(dt)
	}
}

// StepN advances n times by dt seconds each.
func (m *Manual) StepN(dt float64, n int) {
	for i := 0; i < n; i++ {
		m.Step(dt)
	}
}

// Now returns the accumulated manual time in seconds.
func (m *Manual) Now() float64 {
	return m.now
}

// Ticker advances targets on a wall-clock interval, passing the measured
// elapsed time rather than the nominal interval so slow frames do not
// shorten fades or loop cycles.
type Ticker struct {
	targets  []Updatable
	interval time.Duration
}

// NewTicker creates a real-time driver with the given frame interval.
func NewTicker(interval time.Duration, targets ...Updatable) *Ticker {
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	return &Ticker{targets: targets, interval: interval}
}

// Add registers a target. Not safe to call while Run is active.
func (t *Ticker) Add(u Updatable) {
	t.targets = append(t.targets, u)
}

// Run ticks until the context is cancelled. It blocks the calling
// goroutine, so the targets are only ever updated from here.
func (t *Ticker) Run(ctx context.Context) error {
	tick := time.NewTicker(t.interval)
	defer tick.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-tick.C:
			dt := now.Sub(last).Seconds()
			last = now
			for _, u := range t.targets {
				u.Update(dt)
			}
		}
	}
}
