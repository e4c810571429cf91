package record

import (
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/persistence"
	"github.com/markusressel/base2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "record",
	Short:            "Inspect recordings of previous controller runs",
	Long:             ``,
	TraverseChildren: true,
}

func openPersistence() persistence.Persistence {
	configPath := configuration.DetectAndReadConfigFile()
	if configPath != "" {
		ui.Info("Using configuration file at: %s", configPath)
	}
	configuration.LoadConfig()
	return persistence.NewPersistence(configuration.CurrentConfig.DbPath)
}
