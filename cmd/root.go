package cmd

import (
	"fmt"
	"os"

	"github.com/markusressel/base2go/cmd/config"
	"github.com/markusressel/base2go/cmd/global"
	"github.com/markusressel/base2go/cmd/record"
	"github.com/markusressel/base2go/internal"
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "base2go",
	Short: "A torque controller for omnidirectional bases with pivoting casters.",
	Long: `base2go drives a mobile base with four pivoting, differentially driven
caster units. It distributes the commanded platform wrench onto the eight
wheel motors and keeps the casters aligned with the force direction.`,
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		setupUi()
		printHeader()

		global.LoadValidatedConfig()

		internal.RunDaemon()
	},
}

func init() {
	cobra.OnInitialize(setupUi)

	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/base2go.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.PersistentFlags().Float64P("force-x", "x", 0, "Commanded force along the platform x axis in N")
	rootCmd.PersistentFlags().Float64P("force-y", "y", 0, "Commanded force along the platform y axis in N")
	rootCmd.PersistentFlags().Float64P("torque-z", "z", 0, "Commanded torque around the platform z axis in Nm")
	_ = viper.BindPFlag("command.forceX", rootCmd.PersistentFlags().Lookup("force-x"))
	_ = viper.BindPFlag("command.forceY", rootCmd.PersistentFlags().Lookup("force-y"))
	_ = viper.BindPFlag("command.torqueZ", rootCmd.PersistentFlags().Lookup("torque-z"))

	rootCmd.AddCommand(config.Command)
	rootCmd.AddCommand(record.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("base", pterm.NewStyle(pterm.FgLightBlue)),
		pterm.NewLettersFromStringWithStyle("2", pterm.NewStyle(pterm.FgWhite)),
		pterm.NewLettersFromStringWithStyle("go", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()
	if err != nil {
		fmt.Println("base2go")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
