package fade

import (
	"math"
	"testing"
)

func TestCurveEndpoints(t *testing.T) {
	shapes := []float64{0, 0.25, 0.5, 0.75, 1}
	dirs := []Direction{In, Out}

	for _, dir := range dirs {
		for _, shape := range shapes {
			c := NewCurve(shape, dir)
			if got := c.Evaluate(0); got != 0 {
				t.Errorf("Curve(%.2f, %v).Evaluate(0) = %f, want 0", shape, dir, got)
			}
			if got := c.Evaluate(1); math.Abs(got-1) > 1e-12 {
				t.Errorf("Curve(%.2f, %v).Evaluate(1) = %f, want 1", shape, dir, got)
			}
		}
	}
}

func TestCurveMonotonic(t *testing.T) {
	shapes := []float64{0, 0.1, 0.5, 0.9, 1}
	for _, dir := range []Direction{In, Out} {
		for _, shape := range shapes {
			c := NewCurve(shape, dir)
			prev := c.Evaluate(0)
			for i := 1; i <= 100; i++ {
				v := c.Evaluate(float64(i) / 100.0)
				if v < prev-1e-12 {
					t.Fatalf("Curve(%.2f, %v) not monotonic at t=%f: %f < %f",
						shape, dir, float64(i)/100.0, v, prev)
				}
				prev = v
			}
		}
	}
}

func TestCurveShapeCharacter(t *testing.T) {
	// Shape 0 starts slow (under the diagonal), shape 1 starts fast
	// (over the diagonal), shape 0.5 crosses at the midpoint.
	slow := NewCurve(0, In)
	fast := NewCurve(1, In)
	s := NewCurve(0.5, In)

	if v := slow.Evaluate(0.25); v >= 0.25 {
		t.Errorf("slow-start curve at 0.25 = %f, want < 0.25", v)
	}
	if v := fast.Evaluate(0.25); v <= 0.25 {
		t.Errorf("fast-start curve at 0.25 = %f, want > 0.25", v)
	}
	if v := s.Evaluate(0.5); math.Abs(v-0.5) > 1e-12 {
		t.Errorf("S-curve at 0.5 = %f, want 0.5", v)
	}
}

func TestCurveMirror(t *testing.T) {
	for _, shape := range []float64{0, 0.3, 0.5, 0.8, 1} {
		in := NewCurve(shape, In)
		out := NewCurve(shape, Out)
		for i := 0; i <= 20; i++ {
			x := float64(i) / 20.0
			want := 1.0 - in.Evaluate(1.0-x)
			if got := out.Evaluate(x); math.Abs(got-want) > 1e-12 {
				t.Fatalf("Out curve(%f) at %f = %f, want mirror %f", shape, x, got, want)
			}
		}
	}
}

func TestCurveShapeClamped(t *testing.T) {
	if got := NewCurve(-1, In).Shape(); got != 0 {
		t.Errorf("shape -1 clamped to %f, want 0", got)
	}
	if got := NewCurve(2, In).Shape(); got != 1 {
		t.Errorf("shape 2 clamped to %f, want 1", got)
	}
}

func TestCurveEvaluateClampsTime(t *testing.T) {
	c := NewCurve(0.5, In)
	if got := c.Evaluate(-0.5); got != 0 {
		t.Errorf("Evaluate(-0.5) = %f, want 0", got)
	}
	if got := c.Evaluate(1.5); math.Abs(got-1) > 1e-12 {
		t.Errorf("Evaluate(1.5) = %f, want 1", got)
	}
}

func TestEaseAdapter(t *testing.T) {
	c := NewCurve(0.5, In)
	fn := c.Ease()

	if got := fn(0, -60, 60, 1); got != -60 {
		t.Errorf("ease at t=0 = %f, want -60", got)
	}
	if got := fn(1, -60, 60, 1); math.Abs(float64(got)) > 1e-5 {
		t.Errorf("ease at t=d = %f, want 0", got)
	}
	if got := fn(0.5, -60, 60, 1); math.Abs(float64(got)+30) > 1e-4 {
		t.Errorf("ease at midpoint = %f, want -30", got)
	}
	// Zero duration snaps to the end value.
	if got := fn(0, 1, 2, 0); got != 3 {
		t.Errorf("ease with zero duration = %f, want 3", got)
	}
}

func TestSettingsRegeneratesCurve(t *testing.T) {
	s := NewSettings(1.5, 0.2, Out)
	if s.Curve().Direction() != Out {
		t.Fatalf("settings curve direction = %v, want Out", s.Curve().Direction())
	}
	s.SetShape(0.9)
	if got := s.Shape(); got != 0.9 {
		t.Errorf("shape after SetShape = %f, want 0.9", got)
	}
	if s.Curve().Direction() != Out {
		t.Errorf("direction lost on SetShape: %v", s.Curve().Direction())
	}
}

func TestSettingsClampsDuration(t *testing.T) {
	if s := NewSettings(-2, 0.5, In); s.Duration != 0 {
		t.Errorf("negative duration = %f, want 0", s.Duration)
	}
}
