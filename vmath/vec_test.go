package vmath

import (
	"math"
	"testing"
)

func TestDist(t *testing.T) {
	if d := Dist(Vec(0, 0), Vec(3, 4)); d != 5 {
		t.Errorf("Dist = %v, want 5", d)
	}
	if d := Dist(Vec(1, 1), Vec(1, 1)); d != 0 {
		t.Errorf("Dist of equal points = %v, want 0", d)
	}
}

func TestClampLength(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		max  float64
		want float64
	}{
		{"under limit", 0.3, 0.4, 1, 0.5},
		{"over limit", 3, 4, 1.5, 1.5},
		{"zero", 0, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ClampLength(Vec(tt.x, tt.y), tt.max)
			if got := Length(v); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("length = %v, want %v", got, tt.want)
			}
		})
	}

	// Direction is preserved
	v := ClampLength(Vec(-6, 8), 1)
	if math.Abs(v.X+0.6) > 1e-12 || math.Abs(v.Y-0.8) > 1e-12 {
		t.Errorf("direction changed: %v", v)
	}
}

func TestFinite(t *testing.T) {
	if !Finite(Vec(1, -1)) {
		t.Error("regular vector reported non-finite")
	}
	if Finite(Vec(math.NaN(), 0)) || Finite(Vec(0, math.Inf(1))) {
		t.Error("NaN/Inf vector reported finite")
	}
}
