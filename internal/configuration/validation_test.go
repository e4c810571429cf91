package configuration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func createValidConfig() Configuration {
	simulated := DefaultSimulatedPlatform
	wheels := make([]WheelConfig, len(DefaultWheels))
	copy(wheels, DefaultWheels)

	return Configuration{
		DbPath:           "/tmp/base2go.db",
		Frequency:        1000,
		WarmupIterations: 2,
		Geometry: GeometryConfig{
			WheelRadius:       0.0575,
			CastorOffset:      0.01,
			HalfWheelDistance: 0.03875,
			Wheels:            wheels,
		},
		Controller: ControllerConfig{
			Solver:      SolverWeighted,
			TorqueLimit: 5,
			Alignment: AlignmentConfig{
				Margin:  0.001,
				Epsilon: 1e-6,
				Linear:  PidConfig{P: 3, I: 0.5, D: 0.05, Clamp: 10},
				Angular: PidConfig{P: 3, I: 0.5, D: 0.05, Clamp: 10},
			},
			Shaper: ShaperConfig{
				Enabled:          true,
				ClipForce:        Axes{X: 5, Y: 5, Yaw: 2},
				VelocitySetpoint: Axes{X: 0.5, Y: 0.5, Yaw: 0.8},
				DampingTube:      Axes{X: 0.02, Y: 0.02, Yaw: 0.05},
				Saturation:       Axes{X: 40, Y: 40, Yaw: 10},
				DecayFactor:      0.95,
				OvershootGain:    10,
			},
			Cgls: CglsConfig{MaxIterations: 50, Tolerance: 1e-10},
		},
		Platform: PlatformConfig{
			Simulated: &simulated,
		},
	}
}

func TestValidateValidConfig(t *testing.T) {
	// GIVEN
	config := createValidConfig()

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.NoError(t, err)
}

func TestValidateWheelCount(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Geometry.Wheels = config.Geometry.Wheels[:3]

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "geometry: expected 4 wheels, got 3")
}

func TestValidateDuplicateBusIndex(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Geometry.Wheels[2].BusIndex = config.Geometry.Wheels[0].BusIndex

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "duplicate busIndex detected: 6")
}

func TestValidateCastorOffset(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Geometry.CastorOffset = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "geometry: castorOffset must be > 0")
}

func TestValidateUnsupportedSolver(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Controller.Solver = "qp"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "controller: unsupported solver 'qp', use one of: weighted | cgls")
}

func TestValidateTorqueLimit(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Controller.TorqueLimit = -1

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "controller: torqueLimit must be > 0")
}

func TestValidateFrequency(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Frequency = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "frequency must be > 0, was: 0")
}

func TestValidatePlatformSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Platform.Simulated = nil

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "platform: sub-configuration for platform is missing, use one of: simulated | file")
}

func TestValidatePlatformMultipleSubConfigs(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Platform.File = &FilePlatformConfig{StatePath: "state.json", TorquePath: "torques.json"}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "platform: only one platform type can be used")
}

func TestValidateFilePlatformMissingTorquePath(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Platform.Simulated = nil
	config.Platform.File = &FilePlatformConfig{StatePath: "state.json"}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "platform: file: missing torquePath")
}

func TestValidateShaperDecayFactor(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Controller.Shaper.DecayFactor = 1.5

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "controller: shaper decayFactor must be within [0, 1]")
}

func TestValidateSamePorts(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Statistics = StatisticsConfig{Enabled: true, Port: 9000}
	config.Api = ApiConfig{Enabled: true, Host: "localhost", Port: 9000}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "statistics and api cannot use the same port: 9000")
}

func TestPlatformDefaultsApplied(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Platform = PlatformConfig{}

	// WHEN
	applyPlatformDefaults(&config)

	// THEN
	assert.NotNil(t, config.Platform.Simulated)
	assert.Equal(t, DefaultSimulatedPlatform.Mass, config.Platform.Simulated.Mass)
}

func TestPeriod(t *testing.T) {
	config := createValidConfig()
	assert.Equal(t, "1ms", config.Period().String())

	config.Frequency = 500
	assert.Equal(t, "2ms", config.Period().String())
}
