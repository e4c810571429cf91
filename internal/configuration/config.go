package configuration

import (
	"os"
	"time"

	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	// Frequency of the control loop in Hz
	Frequency int `json:"frequency"`
	// WarmupIterations is the number of iterations that are computed without sending torques
	WarmupIterations int `json:"warmupIterations"`
	// MaxIterations stops the loop after the given number of iterations, 0 means unlimited
	MaxIterations int `json:"maxIterations"`
	// LogEvery prints a debug line every n iterations, 0 disables it
	LogEvery int `json:"logEvery"`
	// TimingWindowSize is the number of timesteps used for loop timing statistics
	TimingWindowSize int `json:"timingWindowSize"`

	Command WrenchConfig `json:"command"`

	Geometry   GeometryConfig   `json:"geometry"`
	Controller ControllerConfig `json:"controller"`
	Platform   PlatformConfig   `json:"platform"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
	Recorder   RecorderConfig   `json:"recorder"`
}

// WrenchConfig is the commanded platform wrench
type WrenchConfig struct {
	ForceX  float64 `json:"forceX"`
	ForceY  float64 `json:"forceY"`
	TorqueZ float64 `json:"torqueZ"`
}

func (w WrenchConfig) Wrench() base.Wrench {
	return base.Wrench{ForceX: w.ForceX, ForceY: w.ForceY, TorqueZ: w.TorqueZ}
}

var CurrentConfig Configuration

// Period returns the duration of a single control loop iteration
func (c Configuration) Period() time.Duration {
	if c.Frequency <= 0 {
		return time.Millisecond
	}
	return time.Second / time.Duration(c.Frequency)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("base2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/base2go/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbPath", "/etc/base2go/base2go.db")
	viper.SetDefault("frequency", 1000)
	viper.SetDefault("warmupIterations", 2)
	viper.SetDefault("maxIterations", 0)
	viper.SetDefault("logEvery", 1000)
	viper.SetDefault("timingWindowSize", 1000)

	viper.SetDefault("command.forceX", 0.0)
	viper.SetDefault("command.forceY", 0.0)
	viper.SetDefault("command.torqueZ", 0.0)

	setGeometryDefaults()
	setControllerDefaults()

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("recorder.enabled", false)
	viper.SetDefault("recorder.sampleEvery", 10)
	viper.SetDefault("recorder.maxSamples", 60000)
}

// DetectAndReadConfigFile reads the config file and returns its path
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			ui.Warning("No config file found, using built-in defaults")
			return ""
		}
		// a broken config file is fatal
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

// LoadConfig decodes the viper state into CurrentConfig
func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			AxesHookFunc(),
			SolverTypeHookFunc(),
		),
	))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
	applyPlatformDefaults(&CurrentConfig)
}
