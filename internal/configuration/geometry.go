package configuration

import "github.com/spf13/viper"

type GeometryConfig struct {
	// WheelRadius of the driven wheels in meters
	WheelRadius float64 `json:"wheelRadius"`
	// CastorOffset is the distance between the pivot axis and the wheel axle
	CastorOffset float64 `json:"castorOffset"`
	// HalfWheelDistance is half the distance between the two wheels of a unit
	HalfWheelDistance float64 `json:"halfWheelDistance"`

	Wheels []WheelConfig `json:"wheels"`
}

type WheelConfig struct {
	// X and Y of the pivot axis in the platform frame
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// PivotDeviation is subtracted from the raw pivot encoder angle
	PivotDeviation float64 `json:"pivotDeviation"`
	// BusIndex is the slave index of the wheel unit on the hardware bus
	BusIndex int `json:"busIndex"`
}

// DefaultWheels is the wheel layout of the reference base
var DefaultWheels = []WheelConfig{
	{X: 0.188, Y: 0.2075, PivotDeviation: 5.310, BusIndex: 6},
	{X: -0.188, Y: 0.2075, PivotDeviation: 5.533, BusIndex: 7},
	{X: -0.188, Y: -0.2075, PivotDeviation: 1.563, BusIndex: 3},
	{X: 0.188, Y: -0.2075, PivotDeviation: 1.625, BusIndex: 4},
}

func setGeometryDefaults() {
	viper.SetDefault("geometry.wheelRadius", 0.115/2)
	viper.SetDefault("geometry.castorOffset", 0.01)
	viper.SetDefault("geometry.halfWheelDistance", 0.0775/2)
	viper.SetDefault("geometry.wheels", DefaultWheels)
}
