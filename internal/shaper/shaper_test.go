package shaper

import (
	"math"
	"testing"

	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func createShaperConfig() configuration.ShaperConfig {
	return configuration.ShaperConfig{
		Enabled:          true,
		ClipForce:        configuration.Axes{X: 5, Y: 5, Yaw: 2},
		VelocitySetpoint: configuration.Axes{X: 0.5, Y: 0.5, Yaw: 0.8},
		DampingTube:      configuration.Axes{X: 0.02, Y: 0.02, Yaw: 0.05},
		Saturation:       configuration.Axes{X: 40, Y: 40, Yaw: 10},
		DecayFactor:      0.95,
		OvershootGain:    10,
		Linear:           configuration.PidConfig{P: 50, I: 5, Clamp: 40},
		Angular:          configuration.PidConfig{P: 10, I: 1, Clamp: 10},
	}
}

func TestShape_BelowSetpointUnchanged(t *testing.T) {
	// GIVEN
	shaper := NewForceShaper(createShaperConfig())
	wrench := base.Wrench{ForceX: 10, ForceY: -3, TorqueZ: 1}
	velocity := base.Pose2D{X: 0.2, Y: -0.1, Yaw: 0.3}

	// WHEN
	result := shaper.Shape(wrench, velocity, 0.001)

	// THEN
	assert.Equal(t, wrench, result)
	for _, status := range shaper.Status {
		assert.False(t, status.Engaged)
	}
}

func TestShape_ReducesForceAboveSetpoint(t *testing.T) {
	// GIVEN
	shaper := NewForceShaper(createShaperConfig())
	wrench := base.Wrench{ForceX: 10}
	velocity := base.Pose2D{X: 1.0}

	// WHEN
	result := shaper.Shape(wrench, velocity, 0.001)

	// THEN
	assert.Less(t, result.ForceX, wrench.ForceX)
	assert.True(t, shaper.Status[0].Engaged)
	assert.InDelta(t, 0.5, shaper.Status[0].Error, 1e-12)
}

func TestShape_ReducesNegativeForceAboveSetpoint(t *testing.T) {
	// GIVEN
	shaper := NewForceShaper(createShaperConfig())
	wrench := base.Wrench{ForceY: -8}
	velocity := base.Pose2D{Y: -0.6}

	// WHEN
	result := shaper.Shape(wrench, velocity, 0.001)

	// THEN
	assert.Less(t, math.Abs(result.ForceY), math.Abs(wrench.ForceY))
}

func TestShape_OpposingVelocityNotEngaged(t *testing.T) {
	// GIVEN
	shaper := NewForceShaper(createShaperConfig())
	wrench := base.Wrench{ForceX: 10}
	velocity := base.Pose2D{X: -2}

	// WHEN
	result := shaper.Shape(wrench, velocity, 0.001)

	// THEN
	assert.Equal(t, 10.0, result.ForceX)
	assert.False(t, shaper.Status[0].Engaged)
}

func TestShape_DecayInsideTube(t *testing.T) {
	// GIVEN
	shaper := NewForceShaper(createShaperConfig())
	wrench := base.Wrench{ForceX: 4}
	velocity := base.Pose2D{X: 0.51}

	// WHEN
	result := shaper.Shape(wrench, velocity, 0.001)

	// THEN
	assert.InDelta(t, 4*0.95, result.ForceX, 1e-12)
	assert.True(t, shaper.Status[0].Decayed)
}

func TestShape_InsideTubeAboveClipPassesThrough(t *testing.T) {
	// GIVEN
	shaper := NewForceShaper(createShaperConfig())
	wrench := base.Wrench{ForceX: 10}
	velocity := base.Pose2D{X: 0.51}

	// WHEN
	result := shaper.Shape(wrench, velocity, 0.001)

	// THEN
	// error 0.01 is inside the tube, the force is neither damped nor decayed
	assert.Equal(t, 10.0, result.ForceX)
	assert.True(t, shaper.Status[0].Engaged)
	assert.False(t, shaper.Status[0].Decayed)
	assert.False(t, shaper.Status[0].Overshot)
	assert.InDelta(t, 0.01, shaper.Status[0].Error, 1e-12)
}

func TestShape_Overshoot(t *testing.T) {
	// GIVEN
	config := createShaperConfig()
	config.Linear = configuration.PidConfig{P: 200, Clamp: 100}
	shaper := NewForceShaper(config)
	wrench := base.Wrench{ForceX: 6}
	velocity := base.Pose2D{X: 0.55}

	// WHEN
	result := shaper.Shape(wrench, velocity, 0.001)

	// THEN
	// 6 - 200 * 0.05 = -4, scaled by min(1, 10 * 0.05)
	assert.True(t, shaper.Status[0].Overshot)
	assert.InDelta(t, -2.0, result.ForceX, 1e-9)
}

func TestShape_Saturation(t *testing.T) {
	// GIVEN
	shaper := NewForceShaper(createShaperConfig())
	wrench := base.Wrench{ForceX: 100, ForceY: -100, TorqueZ: 20}

	// WHEN
	result := shaper.Shape(wrench, base.Pose2D{}, 0.001)

	// THEN
	assert.Equal(t, base.Wrench{ForceX: 40, ForceY: -40, TorqueZ: 10}, result)
}

func TestShape_Disabled(t *testing.T) {
	// GIVEN
	config := createShaperConfig()
	config.Enabled = false
	shaper := NewForceShaper(config)
	wrench := base.Wrench{ForceX: 100}

	// WHEN
	result := shaper.Shape(wrench, base.Pose2D{X: 5}, 0.001)

	// THEN
	assert.Equal(t, wrench, result)
}
