package common

import "math"

const (
	// DefaultColliderSize is the nominal extent given to colliders built
	// without explicit geometry, until auto-sizing resolves a real one.
	DefaultColliderSize = 1.0

	// Epsilon is the threshold below which areas and scales count as zero.
	Epsilon = 1e-9
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// NearlyZero reports whether v is within Epsilon of zero.
func NearlyZero(v float64) bool {
	return math.Abs(v) < Epsilon
}

// ScaleOrOne returns s, or 1 when s is (nearly) zero. Unset scales are
// treated as identity.
func ScaleOrOne(s float64) float64 {
	if NearlyZero(s) {
		return 1
	}
	return s
}
