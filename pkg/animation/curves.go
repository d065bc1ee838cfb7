package animation

import "math"

// Curve reshapes normalized transition progress. The input and output are
// both in [0, 1]: 0 is the start of the transition, 1 the end. A timed
// transition samples its curve once per frame; see [TransitionSpec].
type Curve func(t float64) float64

// LinearCurve leaves progress unchanged.
func LinearCurve(t float64) float64 {
	return t
}

// QuadraticCurve accelerates from rest along a parabola. This is the
// default easing for sheet open and dismiss transitions.
func QuadraticCurve(t float64) float64 {
	return t * t
}

// Bezier presets. Control points match their CSS namesakes; see
// [CubicBezier] for custom curves.
var (
	// Ease is a general-purpose curve, equivalent to CSS ease.
	Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)
	// EaseIn starts slowly and accelerates, equivalent to CSS ease-in.
	EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)
	// EaseOut starts quickly and decelerates, equivalent to CSS ease-out.
	EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)
	// EaseInOut is slow at both ends, equivalent to CSS ease-in-out.
	EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)
	// IOSNavigationCurve approximates iOS navigation transition easing.
	IOSNavigationCurve = CubicBezier(0.22, 1.0, 0.36, 1.0)
)

// CubicBezier builds a Curve from the two control points of a CSS-style
// cubic bezier anchored at (0,0) and (1,1). Evaluation inverts the curve's
// x polynomial for the parameter at time t, then samples the y polynomial
// there.
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return bezierAxis(y1, y2, solveBezierParam(x1, x2, t))
	}
}

const bezierEpsilon = 1e-7

// solveBezierParam finds u such that the x polynomial at u equals t.
// Newton-Raphson first; it converges in a few steps almost everywhere.
// Where the derivative degenerates, bisection finishes the job.
func solveBezierParam(x1, x2, t float64) float64 {
	u := t
	for range 8 {
		err := bezierAxis(x1, x2, u) - t
		if math.Abs(err) < bezierEpsilon {
			return clampUnit(u)
		}
		slope := bezierAxisSlope(x1, x2, u)
		if math.Abs(slope) < bezierEpsilon {
			break
		}
		u -= err / slope
	}

	lo, hi := 0.0, 1.0
	u = clampUnit(u)
	for range 12 {
		err := bezierAxis(x1, x2, u) - t
		if math.Abs(err) < bezierEpsilon {
			break
		}
		if err > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) * 0.5
	}
	return u
}

// bezierAxis evaluates one axis of the bezier at parameter u, with the
// axis's two control coordinates a and b.
func bezierAxis(a, b, u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*u*a + 3*inv*u*u*b + u*u*u
}

func bezierAxisSlope(a, b, u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*a + 6*inv*u*(b-a) + 3*u*u*(1-b)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
