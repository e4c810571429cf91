package cmd

import (
	"fmt"
	"strconv"

	"github.com/markusressel/base2go/cmd/global"
	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/geometry"
	"github.com/markusressel/base2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var geometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Print the wheel layout and the torque jacobian",
	Long:  `Prints the configured wheel units and the jacobian mapping motor torques onto the platform wrench for the given pivot angles`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global.LoadValidatedConfig()

		pivots, err := parsePivots(pivotDegrees)
		if err != nil {
			return err
		}
		g, err := geometry.NewBaseGeometry(configuration.CurrentConfig.Geometry)
		if err != nil {
			return err
		}

		err = global.PrintTable(table.Table{
			Headers: []string{"Wheel", "Bus", "X", "Y", "Deviation", "Pivot", "Raw"},
			Rows:    wheelRows(g, pivots),
		})
		if err != nil {
			return err
		}

		ui.Printfln("Wheel radius: %s, castor offset: %s, half wheel distance: %s, characteristic radius: %s",
			formatFloat(g.WheelRadius), formatFloat(g.CastorOffset), formatFloat(g.HalfWheelDistance), formatFloat(g.CharacteristicRadius()))
		ui.Printfln("")

		j := g.Jacobian(pivots)
		headers := []string{""}
		for i := 0; i < base.NumWheels; i++ {
			headers = append(headers, fmt.Sprintf("%dR", i), fmt.Sprintf("%dL", i))
		}
		var rows [][]string
		for row, name := range []string{"Fx", "Fy", "Tz"} {
			values := []string{name}
			for col := 0; col < base.NumMotors; col++ {
				values = append(values, formatFloat(j.At(row, col)))
			}
			rows = append(rows, values)
		}
		return global.PrintTable(table.Table{
			Headers: headers,
			Rows:    rows,
		})
	},
}

// wheelRows lists every wheel unit, the raw pivot is the angle the encoder reports for the calibrated one
func wheelRows(g *geometry.BaseGeometry, pivots [base.NumWheels]float64) [][]string {
	var rows [][]string
	for i, wheel := range g.Wheels {
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(wheel.BusIndex),
			formatFloat(wheel.Position.X),
			formatFloat(wheel.Position.Y),
			formatFloat(wheel.PivotDeviation),
			formatFloat(pivots[i]),
			formatFloat(g.RawPivot(i, pivots[i])),
		})
	}
	return rows
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 4, 64)
}

func init() {
	addPivotFlag(geometryCmd)
	rootCmd.AddCommand(geometryCmd)
}
