package util

import (
	"golang.org/x/exp/constraints"
	"math"
)

// Coerce returns a value that is at least min and at most max
func Coerce[T constraints.Integer | constraints.Float](value, min, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// CoerceSymmetric clamps value to [-limit, limit]. A non-positive limit disables the clamp.
func CoerceSymmetric(value, limit float64) float64 {
	if limit <= 0 {
		return value
	}
	return Coerce(value, -limit, limit)
}

// Sign returns -1, 0 or 1
func Sign[T constraints.Signed | constraints.Float](value T) T {
	switch {
	case value > 0:
		return 1
	case value < 0:
		return -1
	default:
		return 0
	}
}

// NormalizeAngle wraps the given angle (radians) into (-pi, pi]
func NormalizeAngle(angle float64) float64 {
	result := math.Mod(angle, 2*math.Pi)
	if result <= -math.Pi {
		result += 2 * math.Pi
	} else if result > math.Pi {
		result -= 2 * math.Pi
	}
	return result
}

// NearlyZero reports whether |value| is below epsilon
func NearlyZero(value, epsilon float64) bool {
	return math.Abs(value) < epsilon
}
