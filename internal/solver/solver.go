package solver

import (
	"fmt"

	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/geometry"
)

// Distributor splits a platform wrench onto the motors, taking the
// alignment correction signals of every wheel into account.
type Distributor interface {
	// Name of the distribution strategy
	Name() string
	// Distribute computes the motor torques. Zero wrench and zero signals yield exactly zero torques.
	Distribute(wrench base.Wrench, pivotAngles [base.NumWheels]float64, signals [base.NumWheels]base.AlignmentSignal) base.Torques
}

func NewDistributor(config configuration.ControllerConfig, g *geometry.BaseGeometry) (Distributor, error) {
	switch config.Solver {
	case configuration.SolverWeighted:
		return NewWeightedDistributor(g), nil
	case configuration.SolverCgls:
		return NewCglsDistributor(g, config.Cgls.MaxIterations, config.Cgls.Tolerance), nil
	default:
		return nil, fmt.Errorf("unsupported solver: %s", config.Solver)
	}
}

// applyDifferential adds the alignment torque a to the right motor and removes it from the left one,
// which turns the caster counter-clockwise for a > 0.
func applyDifferential(torques *base.Torques, wheel int, a float64) {
	torques[base.RightIndex(wheel)] += a
	torques[base.LeftIndex(wheel)] -= a
}
