package cmd

import (
	"strconv"

	"github.com/markusressel/base2go/cmd/global"
	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/controller"
	"github.com/markusressel/base2go/internal/geometry"
	"github.com/markusressel/base2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Compute the motor torques for a single control step",
	Long:  `Runs one controller step for the commanded wrench (-x, -y, -z) with the base at rest and the given pivot angles`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global.LoadValidatedConfig()
		config := configuration.CurrentConfig

		pivots, err := parsePivots(pivotDegrees)
		if err != nil {
			return err
		}
		g, err := geometry.NewBaseGeometry(config.Geometry)
		if err != nil {
			return err
		}
		c, err := controller.NewBaseController(config.Controller, g, config.Command.Wrench())
		if err != nil {
			return err
		}

		state := base.State{PivotAngles: pivots}
		result := c.Step(&state, config.Period().Seconds())

		var rows [][]string
		for i := 0; i < base.NumWheels; i++ {
			rows = append(rows, []string{
				strconv.Itoa(i),
				formatFloat(result.Offsets[i].Linear),
				formatFloat(result.Offsets[i].Angular),
				strconv.FormatBool(result.Signals[i].Active),
				formatFloat(result.Torques[base.RightIndex(i)]),
				formatFloat(result.Torques[base.LeftIndex(i)]),
				formatFloat(g.PivotMoment(result.Torques[base.RightIndex(i)], result.Torques[base.LeftIndex(i)])),
			})
		}
		err = global.PrintTable(table.Table{
			Headers: []string{"Wheel", "Linear Offset", "Angular Offset", "Aligning", "Right", "Left", "Pivot Moment"},
			Rows:    rows,
		})
		if err != nil {
			return err
		}

		achieved := g.Wrench(pivots, result.Torques)
		err = global.PrintTable(table.Table{
			Headers: []string{"", "Fx", "Fy", "Tz"},
			Rows: [][]string{
				wrenchRow("Command", result.Command),
				wrenchRow("Shaped", result.Shaped),
				wrenchRow("Achieved", achieved),
			},
		})
		if err != nil {
			return err
		}

		ui.Info("Solver: %s", c.Distributor().Name())
		if result.Clamped > 0 {
			ui.Warning("%d torques were clamped to the torque limit of %s", result.Clamped, formatFloat(config.Controller.TorqueLimit))
		}
		return nil
	},
}

func wrenchRow(name string, wrench base.Wrench) []string {
	return []string{name, formatFloat(wrench.ForceX), formatFloat(wrench.ForceY), formatFloat(wrench.TorqueZ)}
}

func init() {
	addPivotFlag(solveCmd)
	rootCmd.AddCommand(solveCmd)
}
