package shaper

import (
	"math"

	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/control_loop"
	"github.com/markusressel/base2go/internal/util"
)

// AxisStatus describes what the shaper did on a single axis during the last call
type AxisStatus struct {
	Engaged  bool    `json:"engaged"`
	Error    float64 `json:"error"`
	Damping  float64 `json:"damping"`
	Decayed  bool    `json:"decayed"`
	Overshot bool    `json:"overshot"`
}

// ForceShaper limits the platform velocity by damping the commanded wrench,
// independently per axis.
type ForceShaper struct {
	config configuration.ShaperConfig
	pids   [base.NumAxes]*control_loop.PidAccumulator

	Status [base.NumAxes]AxisStatus
}

func NewForceShaper(config configuration.ShaperConfig) *ForceShaper {
	linear := control_loop.PidGainsFromConfig(config.Linear)
	angular := control_loop.PidGainsFromConfig(config.Angular)
	return &ForceShaper{
		config: config,
		pids: [base.NumAxes]*control_loop.PidAccumulator{
			control_loop.NewPidAccumulator(linear),
			control_loop.NewPidAccumulator(linear),
			control_loop.NewPidAccumulator(angular),
		},
	}
}

// Shape returns the damped and saturated wrench. velocity is expected in the platform frame.
func (s *ForceShaper) Shape(wrench base.Wrench, velocity base.Pose2D, dt float64) base.Wrench {
	if !s.config.Enabled {
		return wrench
	}

	result := wrench
	for axis := 0; axis < base.NumAxes; axis++ {
		value := s.shapeAxis(axis, wrench.Axis(axis), velocity.Axis(axis), dt)
		result = result.WithAxis(axis, value)
	}
	return result
}

func (s *ForceShaper) shapeAxis(axis int, force float64, velocity float64, dt float64) float64 {
	clip := s.config.ClipForce.Get(axis)
	setpoint := s.config.VelocitySetpoint.Get(axis)
	tube := s.config.DampingTube.Get(axis)

	status := AxisStatus{}
	result := force

	// the axis is engaged while it moves faster than allowed in the commanded direction
	status.Engaged = force*velocity > 0 && math.Abs(velocity) > setpoint
	if status.Engaged {
		status.Error = velocity - util.Sign(velocity)*setpoint

		if math.Abs(force) > clip {
			status.Damping = -s.pids[axis].Update(status.Error, dt)
		}

		if math.Abs(status.Error) > tube {
			result = force + status.Damping
			if result*force < 0 {
				status.Overshot = true
				result *= math.Min(1, s.config.OvershootGain*math.Abs(status.Error))
			}
		} else if math.Abs(force) <= clip {
			status.Decayed = true
			result = force * s.config.DecayFactor
		}
	}

	s.Status[axis] = status
	return util.CoerceSymmetric(result, s.config.Saturation.Get(axis))
}
