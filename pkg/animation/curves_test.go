package animation

import (
	"math"
	"testing"
)

func TestLinearCurve(t *testing.T) {
	for _, v := range []float64{0, 0.25, 0.5, 1} {
		if got := LinearCurve(v); got != v {
			t.Errorf("LinearCurve(%v) = %v", v, got)
		}
	}
}

func TestQuadraticCurve(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.0625},
		{0.5, 0.25},
		{1, 1},
	}
	for _, tt := range tests {
		if got := QuadraticCurve(tt.in); got != tt.want {
			t.Errorf("QuadraticCurve(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCubicBezierEndpoints(t *testing.T) {
	curves := map[string]Curve{
		"Ease":      Ease,
		"EaseIn":    EaseIn,
		"EaseOut":   EaseOut,
		"EaseInOut": EaseInOut,
	}
	for name, curve := range curves {
		if got := curve(0); got != 0 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := curve(1); got != 1 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
		// Out-of-range inputs clamp to the endpoints.
		if got := curve(-0.5); got != 0 {
			t.Errorf("%s(-0.5) = %v, want 0", name, got)
		}
		if got := curve(1.5); got != 1 {
			t.Errorf("%s(1.5) = %v, want 1", name, got)
		}
	}
}

func TestCubicBezierDiagonalIsLinear(t *testing.T) {
	// Control points on the diagonal produce the identity curve; this pins
	// down the bezier solver.
	curve := CubicBezier(1.0/3, 1.0/3, 2.0/3, 2.0/3)
	for _, v := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		if got := curve(v); math.Abs(got-v) > 1e-4 {
			t.Errorf("diagonal bezier(%v) = %v, want %v", v, got, v)
		}
	}
}

func TestCubicBezierMonotonic(t *testing.T) {
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := EaseInOut(float64(i) / 100)
		if v < prev-1e-9 {
			t.Fatalf("EaseInOut not monotonic at %v: %v < %v", float64(i)/100, v, prev)
		}
		prev = v
	}
}

func TestEaseInOutMidpoint(t *testing.T) {
	// cubic-bezier(0.4, 0, 0.2, 1) passes through ~0.78 at the midpoint.
	got := EaseInOut(0.5)
	if math.Abs(got-0.78) > 0.01 {
		t.Errorf("EaseInOut(0.5) = %v, want ~0.78", got)
	}
}
