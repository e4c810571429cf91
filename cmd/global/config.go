package global

import (
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/ui"
)

// LoadValidatedConfig reads the config file (if any) into configuration.CurrentConfig
// and exits if it is invalid.
func LoadValidatedConfig() {
	configPath := configuration.DetectAndReadConfigFile()
	if configPath != "" {
		ui.Info("Using configuration file at: %s", configPath)
	}
	configuration.LoadConfig()

	if err := configuration.Validate(); err != nil {
		ui.Fatal("Config Validation Error: %v", err)
	}
}
