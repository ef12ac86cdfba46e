// Package easing provides the numeric easing curves used by the effects
// pipeline and the clip transitions.
//
// All functions are pure and map a progress value in [0,1] to an eased
// progress in [0,1]. None of them clamp their input: callers that can
// produce out-of-range progress (e.g. at clip boundaries) must clamp
// before calling.
package easing

import "math"

// Smoothstep applies the classic Hermite interpolation p²(3−2p).
// It is monotonic on [0,1] with Smoothstep(0)=0, Smoothstep(0.5)=0.5
// and Smoothstep(1)=1, and is symmetric about 0.5.
func Smoothstep(p float64) float64 {
	return p * p * (3 - 2*p)
}

// In is the quadratic ease-in curve p².
func In(p float64) float64 {
	return p * p
}

// Out is the quadratic ease-out curve 1−(1−p)².
func Out(p float64) float64 {
	q := 1 - p
	return 1 - q*q
}

// Breath shapes a breathing phase (radians) into a slow inhale/exhale
// weight. The result stays roughly within [0.2, 0.8] over a full cycle,
// which the breath stage relies on for its blur and brightness scaling.
func Breath(phase float64) float64 {
	return math.Sin((phase+math.Pi/2)/2)*0.6 + 0.5
}

// Clamp01 clamps p to [0,1]. Stages use it before feeding boundary
// progress into In or Out.
func Clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
