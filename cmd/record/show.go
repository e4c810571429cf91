package record

import (
	"fmt"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/base2go/cmd/global"
	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a recorded run and plot its motor torques",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := openPersistence().LoadRun(args[0])
		if err != nil {
			return fmt.Errorf("no recording with id found: %s (%v)", args[0], err)
		}

		err = global.PrintTable(table.Table{
			Headers: []string{"", ""},
			Rows: [][]string{
				{"ID", run.Id},
				{"Started", run.StartedAt.Format("2006-01-02 15:04:05")},
				{"Solver", run.Solver},
				{"Command", fmt.Sprintf("(%.3f, %.3f, %.3f)", run.Command.ForceX, run.Command.ForceY, run.Command.TorqueZ)},
				{"Iterations", strconv.FormatUint(run.Iterations, 10)},
				{"Overruns", strconv.FormatUint(run.Overruns, 10)},
				{"Samples", strconv.Itoa(len(run.Samples))},
				{"Reason", run.Reason},
			},
		})
		if err != nil {
			return err
		}
		if len(run.Samples) == 0 {
			return nil
		}

		for wheel := 0; wheel < base.NumWheels; wheel++ {
			right := make([]float64, 0, len(run.Samples))
			left := make([]float64, 0, len(run.Samples))
			for _, sample := range run.Samples {
				right = append(right, sample.Torques[base.RightIndex(wheel)])
				left = append(left, sample.Torques[base.LeftIndex(wheel)])
			}
			ui.Printfln("")
			ui.Printfln(asciigraph.PlotMany([][]float64{right, left},
				asciigraph.Height(10),
				asciigraph.Width(100),
				asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
				asciigraph.Caption(fmt.Sprintf("Wheel %d torque right (red), left (blue)", wheel)),
			))
		}
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}
