package configuration

import "github.com/spf13/viper"

type SolverType string

const (
	SolverWeighted SolverType = "weighted"
	SolverCgls     SolverType = "cgls"
)

type ControllerConfig struct {
	Solver SolverType `json:"solver"`
	// TorqueLimit is the maximum absolute torque of a single motor
	TorqueLimit float64 `json:"torqueLimit"`

	Alignment AlignmentConfig `json:"alignment"`
	Shaper    ShaperConfig    `json:"shaper"`
	Stiction  StictionConfig  `json:"stiction"`
	Cgls      CglsConfig      `json:"cgls"`
	PoseHold  PoseHoldConfig  `json:"poseHold"`
}

type PidConfig struct {
	P     float64 `json:"p"`
	I     float64 `json:"i"`
	D     float64 `json:"d"`
	Clamp float64 `json:"clamp"`
	// IntegralLimit bounds the accumulated error, 0 disables it
	IntegralLimit float64 `json:"integralLimit"`
}

type AlignmentConfig struct {
	// Margin below which a caster counts as aligned
	Margin float64 `json:"margin"`
	// Epsilon below which force and torque are treated as zero
	Epsilon float64 `json:"epsilon"`

	Linear  PidConfig `json:"linear"`
	Angular PidConfig `json:"angular"`
}

type ShaperConfig struct {
	Enabled bool `json:"enabled"`

	ClipForce        Axes `json:"clipForce"`
	VelocitySetpoint Axes `json:"velocitySetpoint"`
	DampingTube      Axes `json:"dampingTube"`
	Saturation       Axes `json:"saturation"`

	DecayFactor   float64 `json:"decayFactor"`
	OvershootGain float64 `json:"overshootGain"`

	Linear  PidConfig `json:"linear"`
	Angular PidConfig `json:"angular"`
}

type StictionConfig struct {
	Enabled           bool    `json:"enabled"`
	VelocityThreshold float64 `json:"velocityThreshold"`
	RampStep          float64 `json:"rampStep"`
	Cap               float64 `json:"cap"`
}

type CglsConfig struct {
	MaxIterations int     `json:"maxIterations"`
	Tolerance     float64 `json:"tolerance"`
}

// PoseHoldConfig adds an impedance wrench pulling the platform towards Target
type PoseHoldConfig struct {
	Enabled   bool `json:"enabled"`
	Target    Axes `json:"target"`
	Stiffness Axes `json:"stiffness"`
	Damping   Axes `json:"damping"`
}

func setControllerDefaults() {
	viper.SetDefault("controller.solver", string(SolverWeighted))
	viper.SetDefault("controller.torqueLimit", 5.0)

	viper.SetDefault("controller.alignment.margin", 0.001)
	viper.SetDefault("controller.alignment.epsilon", 1e-6)
	viper.SetDefault("controller.alignment.linear", pidDefaults(3.0, 0.5, 0.05, 10))
	viper.SetDefault("controller.alignment.angular", pidDefaults(3.0, 0.5, 0.05, 10))

	viper.SetDefault("controller.shaper.enabled", true)
	viper.SetDefault("controller.shaper.clipForce", axesDefaults(5, 5, 2))
	viper.SetDefault("controller.shaper.velocitySetpoint", axesDefaults(0.5, 0.5, 0.8))
	viper.SetDefault("controller.shaper.dampingTube", axesDefaults(0.02, 0.02, 0.05))
	viper.SetDefault("controller.shaper.saturation", axesDefaults(40, 40, 10))
	viper.SetDefault("controller.shaper.decayFactor", 0.95)
	viper.SetDefault("controller.shaper.overshootGain", 10.0)
	viper.SetDefault("controller.shaper.linear", pidDefaults(50, 5, 0, 40))
	viper.SetDefault("controller.shaper.angular", pidDefaults(10, 1, 0, 10))

	viper.SetDefault("controller.stiction.enabled", true)
	viper.SetDefault("controller.stiction.velocityThreshold", 0.05)
	viper.SetDefault("controller.stiction.rampStep", 0.001)
	viper.SetDefault("controller.stiction.cap", 0.3)

	viper.SetDefault("controller.cgls.maxIterations", 50)
	viper.SetDefault("controller.cgls.tolerance", 1e-10)

	viper.SetDefault("controller.poseHold.enabled", false)
	viper.SetDefault("controller.poseHold.target", axesDefaults(0, 0, 0))
	viper.SetDefault("controller.poseHold.stiffness", axesDefaults(50, 50, 10))
	viper.SetDefault("controller.poseHold.damping", axesDefaults(10, 10, 2))
}

// pidDefaults is registered as a map, so a config file can override single gains
func pidDefaults(p, i, d, clamp float64) map[string]interface{} {
	return map[string]interface{}{
		"p":             p,
		"i":             i,
		"d":             d,
		"clamp":         clamp,
		"integralLimit": 0.0,
	}
}

func axesDefaults(x, y, yaw float64) map[string]interface{} {
	return map[string]interface{}{
		"x":   x,
		"y":   y,
		"yaw": yaw,
	}
}
