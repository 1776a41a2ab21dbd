package gain

import (
	"math"
	"testing"
)

func TestToDecibels(t *testing.T) {
	tests := []struct {
		name      string
		amplitude float64
		db        float64
		epsilon   float64
	}{
		{"unity gain", 1.0, 0.0, 0.001},
		{"Half amplitude", 0.5, -6.02, 0.01},
		{"Quarter amplitude", 0.25, -12.04, 0.01},
		{"above unity clamps to max", 2.0, 0.0, 0.001},
		{"Floor amplitude", 0.001, -60.0, 0.001},
		{"Below floor clamps to min", 0.0001, -60.0, 0.001},
		{"Zero amplitude", 0.0, -60.0, 0.001},
		{"Negative amplitude", -1.0, -60.0, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDecibels(tt.amplitude)
			if math.Abs(got-tt.db) > tt.epsilon {
				t.Errorf("ToDecibels(%f) = %f, want %f", tt.amplitude, got, tt.db)
			}
		})
	}
}

func TestToAmplitude(t *testing.T) {
	tests := []struct {
		name      string
		db        float64
		amplitude float64
		epsilon   float64
	}{
		{"Zero dB", 0.0, 1.0, 0.001},
		{"Minus six dB", -6.02, 0.5, 0.001},
		{"Floor is true silence", -60.0, 0.0, 0},
		{"Below floor is true silence", -120.0, 0.0, 0},
		{"Above max still converts", 6.02, 2.0, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToAmplitude(tt.db)
			if math.Abs(got-tt.amplitude) > tt.epsilon {
				t.Errorf("ToAmplitude(%f) = %f, want %f", tt.db, got, tt.amplitude)
			}
		})
	}
}

func TestRoundTripAmplitude(t *testing.T) {
	r := DefaultRange()
	floor := r.FloorAmplitude()

	for a := 0.0; a <= 1.0; a += 0.01 {
		got := r.ToAmplitude(r.ToDecibels(a))
		if a <= floor {
			// Anything under the floor rounds down to silence.
			if got != 0 {
				t.Fatalf("round trip of %f below floor = %f, want 0", a, got)
			}
			continue
		}
		if math.Abs(got-a) > 1e-9 {
			t.Fatalf("round trip of %f = %f", a, got)
		}
	}
}

func TestRoundTripDecibels(t *testing.T) {
	r := DefaultRange()
	for db := -80.0; db <= 20.0; db += 0.5 {
		got := r.ToDecibels(r.ToAmplitude(db))
		want := r.Clamp(db)
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("round trip of %f dB = %f, want %f", db, got, want)
		}
	}
}

func TestCustomRange(t *testing.T) {
	r := Range{Min: -80, Max: 12}

	if got := r.ToDecibels(0.00001); got != -80 {
		t.Errorf("ToDecibels below floor = %f, want -80", got)
	}
	if got := r.ToAmplitude(-80); got != 0 {
		t.Errorf("ToAmplitude at floor = %f, want 0", got)
	}
	if got := r.Clamp(20); got != 12 {
		t.Errorf("Clamp(20) = %f, want 12", got)
	}
}

func TestSemitoneConversion(t *testing.T) {
	tests := []struct {
		name      string
		speed     float64
		semitones float64
	}{
		{"Normal speed", 1.0, 0.0},
		{"Double speed", 2.0, 12.0},
		{"Half speed", 0.5, -12.0},
		{"One semitone up", math.Pow(2, 1.0/12.0), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSemitones(tt.speed); math.Abs(got-tt.semitones) > 1e-9 {
				t.Errorf("ToSemitones(%f) = %f, want %f", tt.speed, got, tt.semitones)
			}
			if got := ToPitch(tt.semitones); math.Abs(got-tt.speed) > 1e-9 {
				t.Errorf("ToPitch(%f) = %f, want %f", tt.semitones, got, tt.speed)
			}
		})
	}
}

func TestSemitoneRoundTrip(t *testing.T) {
	for speed := 0.25; speed <= 4.0; speed += 0.05 {
		if got := ToPitch(ToSemitones(speed)); math.Abs(got-speed) > 1e-9 {
			t.Fatalf("round trip of speed %f = %f", speed, got)
		}
	}
}
