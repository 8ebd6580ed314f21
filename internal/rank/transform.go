package rank

import "math"

// Transform maps a raw score differential (home minus visiting) onto the scale
// the model actually observes: signed square root of the margin. Blowout
// margins carry more noise than close games, so the square root compresses
// them toward a common scale while preserving sign and order. A tie takes the
// non-negative branch and maps to exactly 0.
func Transform(d float64) float64 {
	if d >= 0 {
		return math.Sqrt(d)
	}
	return -math.Sqrt(-d)
}

// InverseTransform recovers a point spread from a transformed differential by
// squaring and restoring the sign, using the same >= 0 convention as Transform.
func InverseTransform(t float64) float64 {
	if t >= 0 {
		return t * t
	}
	return -(t * t)
}
