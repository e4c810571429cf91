package configuration

type PlatformConfig struct {
	Simulated *SimulatedPlatformConfig `json:"simulated,omitempty"`
	File      *FilePlatformConfig      `json:"file,omitempty"`
}

type SimulatedPlatformConfig struct {
	// Mass of the platform in kg
	Mass float64 `json:"mass"`
	// Inertia of the platform around the yaw axis in kg*m^2
	Inertia float64 `json:"inertia"`
	// LinearDamping and AngularDamping model rolling resistance of the platform
	LinearDamping  float64 `json:"linearDamping"`
	AngularDamping float64 `json:"angularDamping"`
	// PivotInertia of a single caster unit around its pivot axis
	PivotInertia float64 `json:"pivotInertia"`
	// PivotDamping of a single caster unit around its pivot axis
	PivotDamping float64 `json:"pivotDamping"`
	// InitialPivotAngles (calibrated) of the caster units
	InitialPivotAngles []float64 `json:"initialPivotAngles"`
}

type FilePlatformConfig struct {
	// StatePath is read every iteration and contains the raw platform state as JSON
	StatePath string `json:"statePath"`
	// TorquePath is written every iteration with the motor torques by bus index
	TorquePath string `json:"torquePath"`
}

// DefaultSimulatedPlatform is used when no platform is configured at all
var DefaultSimulatedPlatform = SimulatedPlatformConfig{
	Mass:           40,
	Inertia:        2.5,
	LinearDamping:  20,
	AngularDamping: 5,
	PivotInertia:   0.002,
	PivotDamping:   0.05,
}

func applyPlatformDefaults(config *Configuration) {
	if config.Platform.Simulated == nil && config.Platform.File == nil {
		simulated := DefaultSimulatedPlatform
		config.Platform.Simulated = &simulated
	}
}
