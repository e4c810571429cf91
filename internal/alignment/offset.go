package alignment

import (
	"github.com/golang/geo/r2"
	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/geometry"
	"github.com/markusressel/base2go/internal/util"
)

// OffsetComputer measures how far each caster is turned away from the
// direction the commanded wrench wants it to roll.
type OffsetComputer struct {
	geometry *geometry.BaseGeometry
	// epsilon below which force and torque magnitudes count as zero
	epsilon float64
}

func NewOffsetComputer(g *geometry.BaseGeometry, epsilon float64) *OffsetComputer {
	return &OffsetComputer{
		geometry: g,
		epsilon:  epsilon,
	}
}

// Compute returns the signed offsets of all wheels. A positive offset is reduced
// by turning the caster counter-clockwise.
func (c *OffsetComputer) Compute(wrench base.Wrench, pivotAngles [base.NumWheels]float64) [base.NumWheels]base.AlignmentOffset {
	var result [base.NumWheels]base.AlignmentOffset

	force := r2.Point{X: wrench.ForceX, Y: wrench.ForceY}
	hasForce := !util.NearlyZero(force.Norm(), c.epsilon)
	hasTorque := !util.NearlyZero(wrench.TorqueZ, c.epsilon)

	var forceDirection r2.Point
	if hasForce {
		forceDirection = force.Normalize()
	}

	for i, wheel := range c.geometry.Wheels {
		lateral := geometry.LateralAxis(pivotAngles[i])

		if hasForce {
			result[i].Linear = c.geometry.CastorOffset * lateral.Dot(forceDirection)
		}
		if hasTorque {
			tangent := wheel.Position.Ortho().Normalize().Mul(util.Sign(wrench.TorqueZ))
			result[i].Angular = c.geometry.CastorOffset * lateral.Dot(tangent)
		}
	}

	return result
}
