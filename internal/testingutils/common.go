package testingutils

import (
	"testing"

	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/geometry"
	"github.com/stretchr/testify/require"
)

// GeometryConfig is the layout of the reference base
var GeometryConfig = configuration.GeometryConfig{
	WheelRadius:       0.0575,
	CastorOffset:      0.01,
	HalfWheelDistance: 0.03875,
	Wheels:            configuration.DefaultWheels,
}

func CreateGeometry(t *testing.T) *geometry.BaseGeometry {
	g, err := geometry.NewBaseGeometry(GeometryConfig)
	require.NoError(t, err)
	return g
}
