// Package anim provides the tick-driven animation controllers that move
// route transitions between 0.0 (dismissed) and 1.0 (fully shown). The
// package owns no clock; an external frame pump advances controllers through
// Tick, either directly or through a Ticker registry.
package anim

import (
	"fmt"
	"math"
)

// Curve maps linear progress t in [0,1] to eased progress in [0,1]. A curve
// must satisfy f(0) == 0 and f(1) == 1.
type Curve func(t float64) float64

// Linear applies no easing.
func Linear(t float64) float64 { return t }

// EaseInOut accelerates through the first half and decelerates through the
// second.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return 0.5*u*u*u + 1
}

// Decelerate starts fast and eases to a stop.
func Decelerate(t float64) float64 {
	u := 1 - t
	return 1 - u*u
}

// NavDecelerate is the iOS-style navigation transition curve, a steep
// deceleration used for slide-in page transitions.
var NavDecelerate = CubicBezier(0.405, 0.0, 0.175, 1.0)

// CubicBezier builds a curve from the two control points of a CSS-style
// cubic bezier timing function.
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	sample := func(a, b, t float64) float64 {
		// Cubic bezier with endpoints at 0 and 1.
		return 3*a*t*(1-t)*(1-t) + 3*b*t*t*(1-t) + t*t*t
	}
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		// Solve sample(x1, x2, u) == t for u by bisection.
		lo, hi := 0.0, 1.0
		u := t
		for i := 0; i < 32; i++ {
			x := sample(x1, x2, u)
			if math.Abs(x-t) < 1e-6 {
				break
			}
			if x < t {
				lo = u
			} else {
				hi = u
			}
			u = (lo + hi) / 2
		}
		return sample(y1, y2, u)
	}
}

// CurveByName resolves a configuration curve name. Recognized names are
// "linear", "ease-in-out", "decelerate" and "nav".
func CurveByName(name string) (Curve, error) {
	switch name {
	case "linear":
		return Linear, nil
	case "ease-in-out":
		return EaseInOut, nil
	case "decelerate":
		return Decelerate, nil
	case "nav":
		return NavDecelerate, nil
	default:
		return nil, fmt.Errorf("anim: unknown curve %q", name)
	}
}
