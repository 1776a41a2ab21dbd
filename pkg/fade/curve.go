// Package fade provides curve-shaped, cancellable and resumable volume
// fades driven by a per-tick clock.
package fade

import (
	"github.com/tanema/gween/ease"
)

// Direction selects whether a curve shapes a fade-in or a fade-out.
type Direction int

const (
	// In shapes a rising fade.
	In Direction = iota
	// Out mirrors the same shape for a falling fade.
	Out
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case In:
		return "In"
	case Out:
		return "Out"
	default:
		return "Unknown"
	}
}

// bend scales the tangent at the slow end of the curve.
const bend = 3.0

// Curve is a monotonic easing over [0,1] with fixed endpoints, derived
// entirely from a shape scalar and a direction. Shape 0 starts slow
// (concave), shape 1 starts fast (convex), shape 0.5 is an S-curve. The Out
// direction mirrors the In shape so both directions keep Evaluate(0) == 0
// and Evaluate(1) == 1.
type Curve struct {
	shape float64
	dir   Direction
}

// NewCurve builds a curve from a shape in [0,1] (clamped) and a direction.
func NewCurve(shape float64, dir Direction) Curve {
	if shape < 0 {
		shape = 0
	}
	if shape > 1 {
		shape = 1
	}
	return Curve{shape: shape, dir: dir}
}

// Shape returns the shape scalar.
func (c Curve) Shape() float64 {
	return c.shape
}

// Direction returns the curve direction.
func (c Curve) Direction() Direction {
	return c.dir
}

// Evaluate samples the easing at t, clamped to [0,1].
func (c Curve) Evaluate(t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if c.dir == Out {
		return 1.0 - c.hermite(1.0-t)
	}
	return c.hermite(t)
}

// hermite evaluates the two-point Hermite basis with endpoints 0 and 1 and
// tangents assigned from the shape: the slow end gets the small tangent,
// the fast end gets the bent one.
func (c Curve) hermite(t float64) float64 {
	m0 := bend * c.shape
	m1 := bend * (1.0 - c.shape)
	t2 := t * t
	t3 := t2 * t
	return (t3-2.0*t2+t)*m0 + (-2.0*t3+3.0*t2) + (t3-t2)*m1
}

// Ease adapts the curve to a gween easing function.
func (c Curve) Ease() ease.TweenFunc {
	return func(t, b, delta, d float32) float32 {
		if d <= 0 {
			return b + delta
		}
		return b + delta*float32(c.Evaluate(float64(t/d)))
	}
}

// Settings bundles the duration and curve of one fade direction. The curve
// is regenerated whenever the shape changes.
type Settings struct {
	Duration float64
	curve    Curve
}

// NewSettings builds fade settings. Negative durations clamp to 0 and the
// shape clamps to [0,1].
func NewSettings(duration, shape float64, dir Direction) Settings {
	if duration < 0 {
		duration = 0
	}
	return Settings{
		Duration: duration,
		curve:    NewCurve(shape, dir),
	}
}

// Shape returns the curve shape.
func (s Settings) Shape() float64 {
	return s.curve.Shape()
}

// SetShape regenerates the curve with a new shape, keeping the direction.
func (s *Settings) SetShape(shape float64) {
	s.curve = NewCurve(shape, s.curve.Direction())
}

// Curve returns the derived easing curve.
func (s Settings) Curve() Curve {
	return s.curve
}
