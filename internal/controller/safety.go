package controller

import (
	"math"

	"github.com/markusressel/base2go/internal/base"
)

// ClampTorques limits every motor torque to [-limit, limit] and
// returns the number of torques that had to be clamped.
func ClampTorques(torques *base.Torques, limit float64) int {
	clamped := 0
	for i, torque := range torques {
		if math.Abs(torque) > limit {
			torques[i] = math.Copysign(limit, torque)
			clamped++
		}
	}
	return clamped
}
