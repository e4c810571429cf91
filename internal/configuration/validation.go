package configuration

import (
	"fmt"
	"math"
	"strings"

	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/ui"
	"golang.org/x/exp/slices"
)

var supportedSolvers = []SolverType{SolverWeighted, SolverCgls}

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if config.Frequency <= 0 {
		return fmt.Errorf("frequency must be > 0, was: %d", config.Frequency)
	}
	if config.WarmupIterations < 0 {
		return fmt.Errorf("warmupIterations must be >= 0, was: %d", config.WarmupIterations)
	}
	if config.MaxIterations < 0 {
		return fmt.Errorf("maxIterations must be >= 0, was: %d", config.MaxIterations)
	}

	err := validateGeometry(&config.Geometry)
	if err != nil {
		return err
	}
	err = validateController(&config.Controller)
	if err != nil {
		return err
	}
	err = validatePlatform(&config.Platform)
	if err != nil {
		return err
	}

	if config.Recorder.Enabled {
		if config.Recorder.SampleEvery <= 0 {
			return fmt.Errorf("recorder: sampleEvery must be > 0")
		}
		if config.Recorder.MaxSamples <= 0 {
			return fmt.Errorf("recorder: maxSamples must be > 0")
		}
		if len(strings.TrimSpace(config.DbPath)) <= 0 {
			return fmt.Errorf("recorder: dbPath is required when the recorder is enabled")
		}
	}

	if config.Statistics.Enabled && config.Api.Enabled && config.Statistics.Port == config.Api.Port {
		return fmt.Errorf("statistics and api cannot use the same port: %d", config.Api.Port)
	}

	return nil
}

func validateGeometry(geometry *GeometryConfig) error {
	if geometry.WheelRadius <= 0 {
		return fmt.Errorf("geometry: wheelRadius must be > 0")
	}
	if geometry.CastorOffset <= 0 {
		return fmt.Errorf("geometry: castorOffset must be > 0")
	}
	if geometry.HalfWheelDistance <= 0 {
		return fmt.Errorf("geometry: halfWheelDistance must be > 0")
	}
	if len(geometry.Wheels) != base.NumWheels {
		return fmt.Errorf("geometry: expected %d wheels, got %d", base.NumWheels, len(geometry.Wheels))
	}

	var busIndices []int
	for idx, wheel := range geometry.Wheels {
		if math.Hypot(wheel.X, wheel.Y) <= 0 {
			return fmt.Errorf("wheel %d: pivot cannot be located at the platform center", idx)
		}
		if wheel.BusIndex < 0 {
			return fmt.Errorf("wheel %d: invalid busIndex, must be >= 0", idx)
		}
		if slices.Contains(busIndices, wheel.BusIndex) {
			return fmt.Errorf("duplicate busIndex detected: %d", wheel.BusIndex)
		}
		busIndices = append(busIndices, wheel.BusIndex)
	}

	return nil
}

func validateController(controller *ControllerConfig) error {
	if !slices.Contains(supportedSolvers, controller.Solver) {
		var names []string
		for _, s := range supportedSolvers {
			names = append(names, string(s))
		}
		return fmt.Errorf("controller: unsupported solver '%s', use one of: %s", controller.Solver, strings.Join(names, " | "))
	}
	if controller.TorqueLimit <= 0 {
		return fmt.Errorf("controller: torqueLimit must be > 0")
	}
	if controller.Alignment.Margin < 0 {
		return fmt.Errorf("controller: alignment margin must be >= 0")
	}
	if controller.Alignment.Epsilon <= 0 {
		return fmt.Errorf("controller: alignment epsilon must be > 0")
	}

	pids := map[string]PidConfig{
		"alignment.linear":  controller.Alignment.Linear,
		"alignment.angular": controller.Alignment.Angular,
		"shaper.linear":     controller.Shaper.Linear,
		"shaper.angular":    controller.Shaper.Angular,
	}
	for name, pid := range pids {
		if pid.Clamp < 0 || pid.IntegralLimit < 0 {
			return fmt.Errorf("controller: %s: clamp and integralLimit must be >= 0", name)
		}
	}

	shaper := controller.Shaper
	if shaper.Enabled {
		if shaper.DecayFactor < 0 || shaper.DecayFactor > 1 {
			return fmt.Errorf("controller: shaper decayFactor must be within [0, 1]")
		}
		if shaper.OvershootGain < 0 {
			return fmt.Errorf("controller: shaper overshootGain must be >= 0")
		}
		for axis := 0; axis < 3; axis++ {
			if shaper.Saturation.Get(axis) <= 0 {
				return fmt.Errorf("controller: shaper saturation must be > 0 on all axes")
			}
			if shaper.VelocitySetpoint.Get(axis) < 0 || shaper.ClipForce.Get(axis) < 0 || shaper.DampingTube.Get(axis) < 0 {
				return fmt.Errorf("controller: shaper clipForce, velocitySetpoint and dampingTube must be >= 0")
			}
		}
	}

	stiction := controller.Stiction
	if stiction.Enabled {
		if stiction.RampStep < 0 || stiction.Cap < 0 || stiction.VelocityThreshold < 0 {
			return fmt.Errorf("controller: stiction values must be >= 0")
		}
		if stiction.Cap > controller.TorqueLimit {
			ui.Warning("Stiction cap (%.3f) exceeds the torque limit (%.3f)", stiction.Cap, controller.TorqueLimit)
		}
	}

	if controller.Solver == SolverCgls {
		if controller.Cgls.MaxIterations <= 0 {
			return fmt.Errorf("controller: cgls maxIterations must be > 0")
		}
		if controller.Cgls.Tolerance < 0 {
			return fmt.Errorf("controller: cgls tolerance must be >= 0")
		}
	}

	return nil
}

func validatePlatform(platform *PlatformConfig) error {
	subConfigs := 0
	if platform.Simulated != nil {
		subConfigs++
	}
	if platform.File != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return fmt.Errorf("platform: only one platform type can be used")
	}
	if subConfigs <= 0 {
		return fmt.Errorf("platform: sub-configuration for platform is missing, use one of: simulated | file")
	}

	if platform.File != nil {
		if len(platform.File.StatePath) <= 0 {
			return fmt.Errorf("platform: file: missing statePath")
		}
		if len(platform.File.TorquePath) <= 0 {
			return fmt.Errorf("platform: file: missing torquePath")
		}
	}

	if platform.Simulated != nil {
		simulated := platform.Simulated
		if simulated.Mass <= 0 || simulated.Inertia <= 0 || simulated.PivotInertia <= 0 {
			return fmt.Errorf("platform: simulated: mass, inertia and pivotInertia must be > 0")
		}
		if len(simulated.InitialPivotAngles) > 0 && len(simulated.InitialPivotAngles) != base.NumWheels {
			return fmt.Errorf("platform: simulated: expected %d initialPivotAngles, got %d", base.NumWheels, len(simulated.InitialPivotAngles))
		}
	}

	return nil
}
