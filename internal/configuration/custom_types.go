package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Axes holds one value per platform axis.
// In the config file it can either be given as a map (x, y, yaw) or as a single
// number, which is then used for all three axes.
type Axes struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Yaw float64 `json:"yaw"`
}

// Get returns the value of the axis with the given index (0 = x, 1 = y, 2 = yaw)
func (a Axes) Get(axis int) float64 {
	switch axis {
	case 0:
		return a.X
	case 1:
		return a.Y
	default:
		return a.Yaw
	}
}

// AxesHookFunc returns a mapstructure decode hook that expands scalar values into Axes
func AxesHookFunc() mapstructure.DecodeHookFuncType {
	axesType := reflect.TypeOf(Axes{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != axesType {
			return data, nil
		}

		value, ok, err := anyToFloat(data)
		if err != nil {
			return nil, err
		}
		if !ok {
			// map or struct, decoded as usual
			return data, nil
		}
		return Axes{X: value, Y: value, Yaw: value}, nil
	}
}

// SolverTypeHookFunc returns a mapstructure decode hook that normalizes the solver name
func SolverTypeHookFunc() mapstructure.DecodeHookFuncType {
	solverType := reflect.TypeOf(SolverType(""))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != solverType {
			return data, nil
		}
		if v, ok := data.(string); ok {
			return SolverType(strings.ToLower(strings.TrimSpace(v))), nil
		}
		return data, nil
	}
}

// anyToFloat converts numeric and string values to float64.
// ok is false if data is not a scalar at all.
func anyToFloat(data interface{}) (value float64, ok bool, err error) {
	switch v := data.(type) {
	case int:
		return float64(v), true, nil
	case int64:
		return float64(v), true, nil
	case float32:
		return float64(v), true, nil
	case float64:
		return v, true, nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, true, fmt.Errorf("cannot parse %q as number: %w", v, err)
		}
		return parsed, true, nil
	default:
		return 0, false, nil
	}
}
