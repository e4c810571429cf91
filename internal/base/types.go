package base

import "math"

const (
	// NumAxes of the platform: x, y and yaw
	NumAxes = 3
	// NumWheels is the number of pivoting caster units of the base
	NumWheels = 4
	// NumMotors is the number of driven wheels, two per caster unit
	NumMotors = 2 * NumWheels
)

// Wrench is a planar force and yaw torque expressed in the platform frame
type Wrench struct {
	ForceX  float64 `json:"forceX"`
	ForceY  float64 `json:"forceY"`
	TorqueZ float64 `json:"torqueZ"`
}

// Force returns the magnitude of the planar force component
func (w Wrench) Force() float64 {
	return math.Hypot(w.ForceX, w.ForceY)
}

func (w Wrench) Add(o Wrench) Wrench {
	return Wrench{
		ForceX:  w.ForceX + o.ForceX,
		ForceY:  w.ForceY + o.ForceY,
		TorqueZ: w.TorqueZ + o.TorqueZ,
	}
}

// Axis returns the component with the given index (0 = x, 1 = y, 2 = yaw)
func (w Wrench) Axis(axis int) float64 {
	switch axis {
	case 0:
		return w.ForceX
	case 1:
		return w.ForceY
	default:
		return w.TorqueZ
	}
}

// WithAxis returns a copy with the given component replaced
func (w Wrench) WithAxis(axis int, value float64) Wrench {
	switch axis {
	case 0:
		w.ForceX = value
	case 1:
		w.ForceY = value
	default:
		w.TorqueZ = value
	}
	return w
}

func (w Wrench) IsZero() bool {
	return w.ForceX == 0 && w.ForceY == 0 && w.TorqueZ == 0
}

// Pose2D is a planar pose or velocity (x, y, yaw)
type Pose2D struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Yaw float64 `json:"yaw"`
}

// Axis returns the component with the given index (0 = x, 1 = y, 2 = yaw)
func (p Pose2D) Axis(axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Yaw
	}
}

// State is a snapshot of the base, as read once per control iteration.
// Pivot angles are calibrated (deviation removed) and normalized to (-pi, pi].
type State struct {
	// Pose in the odometry frame
	Pose Pose2D `json:"pose"`
	// Velocity in the platform frame
	Velocity Pose2D `json:"velocity"`

	PivotAngles     [NumWheels]float64 `json:"pivotAngles"`
	PivotVelocities [NumWheels]float64 `json:"pivotVelocities"`
}

// Torques holds one torque per motor. Index 2*i is the right motor
// of wheel unit i, index 2*i+1 the left one.
type Torques [NumMotors]float64

// RightIndex returns the torque index of the right motor of the given wheel unit
func RightIndex(wheel int) int {
	return 2 * wheel
}

// LeftIndex returns the torque index of the left motor of the given wheel unit
func LeftIndex(wheel int) int {
	return 2*wheel + 1
}

// AlignmentOffset is the signed misalignment of a caster with respect to
// the linear force direction and the yaw torque direction.
type AlignmentOffset struct {
	Linear  float64 `json:"linear"`
	Angular float64 `json:"angular"`
}

// Magnitude is the combined misalignment used for gating the alignment controllers
func (o AlignmentOffset) Magnitude() float64 {
	return math.Hypot(o.Linear, o.Angular)
}

// AlignmentSignal is the output of the per-wheel alignment controllers
type AlignmentSignal struct {
	Linear  float64 `json:"linear"`
	Angular float64 `json:"angular"`
	Active  bool    `json:"active"`
}
