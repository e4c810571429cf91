package controller

import (
	"math"

	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/control_loop"
	"github.com/markusressel/base2go/internal/util"
	"gonum.org/v1/gonum/mat"
)

// PoseHold pulls the platform towards a target pose with a spring-damper wrench
type PoseHold struct {
	target    base.Pose2D
	stiffness *mat.DiagDense
	damping   *mat.DiagDense
}

func NewPoseHold(config configuration.PoseHoldConfig) *PoseHold {
	return &PoseHold{
		target:    base.Pose2D{X: config.Target.X, Y: config.Target.Y, Yaw: config.Target.Yaw},
		stiffness: mat.NewDiagDense(base.NumAxes, []float64{config.Stiffness.X, config.Stiffness.Y, config.Stiffness.Yaw}),
		damping:   mat.NewDiagDense(base.NumAxes, []float64{config.Damping.X, config.Damping.Y, config.Damping.Yaw}),
	}
}

// Wrench returns the impedance wrench in the platform frame
func (p *PoseHold) Wrench(pose base.Pose2D, velocity base.Pose2D) base.Wrench {
	dx := p.target.X - pose.X
	dy := p.target.Y - pose.Y
	cos, sin := math.Cos(pose.Yaw), math.Sin(pose.Yaw)

	err := mat.NewVecDense(base.NumAxes, []float64{
		cos*dx + sin*dy,
		-sin*dx + cos*dy,
		util.NormalizeAngle(p.target.Yaw - pose.Yaw),
	})
	errDot := mat.NewVecDense(base.NumAxes, []float64{-velocity.X, -velocity.Y, -velocity.Yaw})

	result := control_loop.Impedance(err, errDot, p.stiffness, p.damping)
	return base.Wrench{
		ForceX:  result.AtVec(0),
		ForceY:  result.AtVec(1),
		TorqueZ: result.AtVec(2),
	}
}
