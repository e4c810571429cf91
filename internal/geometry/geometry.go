package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/util"
	"gonum.org/v1/gonum/mat"
)

// Wheel is a single caster unit mounted on the platform
type Wheel struct {
	// Position of the pivot axis in the platform frame
	Position r2.Point
	// PivotDeviation between the raw encoder angle and the calibrated pivot angle
	PivotDeviation float64
	// BusIndex of the unit on the hardware bus
	BusIndex int
}

// BaseGeometry is the immutable description of the base
type BaseGeometry struct {
	WheelRadius       float64
	CastorOffset      float64
	HalfWheelDistance float64

	Wheels [base.NumWheels]Wheel
}

func NewBaseGeometry(config configuration.GeometryConfig) (*BaseGeometry, error) {
	if len(config.Wheels) != base.NumWheels {
		return nil, fmt.Errorf("expected %d wheels, got %d", base.NumWheels, len(config.Wheels))
	}
	if config.CastorOffset <= 0 || config.WheelRadius <= 0 {
		return nil, fmt.Errorf("wheel radius and castor offset must be > 0")
	}

	g := &BaseGeometry{
		WheelRadius:       config.WheelRadius,
		CastorOffset:      config.CastorOffset,
		HalfWheelDistance: config.HalfWheelDistance,
	}
	for i, wheelConfig := range config.Wheels {
		g.Wheels[i] = Wheel{
			Position:       r2.Point{X: wheelConfig.X, Y: wheelConfig.Y},
			PivotDeviation: wheelConfig.PivotDeviation,
			BusIndex:       wheelConfig.BusIndex,
		}
	}
	return g, nil
}

// ForwardAxis is the rolling direction of a caster unit with the given pivot angle
func ForwardAxis(pivotAngle float64) r2.Point {
	return r2.Point{X: math.Cos(pivotAngle), Y: math.Sin(pivotAngle)}
}

// LateralAxis points to the left of the rolling direction
func LateralAxis(pivotAngle float64) r2.Point {
	return ForwardAxis(pivotAngle).Ortho()
}

// CalibratePivot removes the calibration deviation from a raw encoder angle
func (g *BaseGeometry) CalibratePivot(wheel int, raw float64) float64 {
	return util.NormalizeAngle(raw - g.Wheels[wheel].PivotDeviation)
}

// RawPivot is the inverse of CalibratePivot
func (g *BaseGeometry) RawPivot(wheel int, calibrated float64) float64 {
	return util.NormalizeAngle(calibrated + g.Wheels[wheel].PivotDeviation)
}

// CharacteristicRadius is the mean distance of the pivots from the platform center.
// It converts a yaw torque into a force of comparable magnitude.
func (g *BaseGeometry) CharacteristicRadius() float64 {
	sum := 0.0
	for _, wheel := range g.Wheels {
		sum += wheel.Position.Norm()
	}
	return sum / base.NumWheels
}

// stiffnessRatio is the lateral force lever of a differential torque
func (g *BaseGeometry) stiffnessRatio() float64 {
	return g.HalfWheelDistance / g.CastorOffset
}

// MotorDirections returns the force one unit of torque on the right and left
// motor of the given wheel exerts on the platform at the pivot.
func (g *BaseGeometry) MotorDirections(pivotAngle float64) (right r2.Point, left r2.Point) {
	forward := ForwardAxis(pivotAngle).Mul(1 / g.WheelRadius)
	lateral := LateralAxis(pivotAngle).Mul(g.stiffnessRatio() / g.WheelRadius)
	return forward.Add(lateral), forward.Sub(lateral)
}

// PivotMoment is the moment a pair of motor torques exerts on a caster unit around its pivot axis
func (g *BaseGeometry) PivotMoment(right, left float64) float64 {
	return g.HalfWheelDistance * (right - left) / g.WheelRadius
}

// Jacobian maps the 8 motor torques onto the platform wrench (fx, fy, tz)
func (g *BaseGeometry) Jacobian(pivotAngles [base.NumWheels]float64) *mat.Dense {
	j := mat.NewDense(3, base.NumMotors, nil)
	for i, wheel := range g.Wheels {
		right, left := g.MotorDirections(pivotAngles[i])
		setColumn(j, base.RightIndex(i), wheel.Position, right)
		setColumn(j, base.LeftIndex(i), wheel.Position, left)
	}
	return j
}

func setColumn(j *mat.Dense, col int, position r2.Point, direction r2.Point) {
	j.Set(0, col, direction.X)
	j.Set(1, col, direction.Y)
	j.Set(2, col, position.Cross(direction))
}

// Wrench computes the platform wrench resulting from the given motor torques
func (g *BaseGeometry) Wrench(pivotAngles [base.NumWheels]float64, torques base.Torques) base.Wrench {
	result := base.Wrench{}
	for i, wheel := range g.Wheels {
		right, left := g.MotorDirections(pivotAngles[i])
		force := right.Mul(torques[base.RightIndex(i)]).Add(left.Mul(torques[base.LeftIndex(i)]))
		result.ForceX += force.X
		result.ForceY += force.Y
		result.TorqueZ += wheel.Position.Cross(force)
	}
	return result
}

// BusIndexMap returns the bus index for every logical wheel index
func (g *BaseGeometry) BusIndexMap() [base.NumWheels]int {
	var result [base.NumWheels]int
	for i, wheel := range g.Wheels {
		result[i] = wheel.BusIndex
	}
	return result
}
