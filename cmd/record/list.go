package record

import (
	"strconv"

	"github.com/markusressel/base2go/cmd/global"
	"github.com/markusressel/base2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runs, err := openPersistence().ListRuns()
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			ui.Info("No recordings found")
			return nil
		}

		var rows [][]string
		for _, run := range runs {
			rows = append(rows, []string{
				run.Id,
				run.StartedAt.Format("2006-01-02 15:04:05"),
				strconv.FormatFloat(run.Duration, 'f', 1, 64),
				run.Solver,
				strconv.FormatUint(run.Iterations, 10),
				strconv.FormatUint(run.Overruns, 10),
				strconv.Itoa(run.SampleCount),
				run.Reason,
			})
		}
		return global.PrintTable(table.Table{
			Headers: []string{"ID", "Started", "Duration (s)", "Solver", "Iterations", "Overruns", "Samples", "Reason"},
			Rows:    rows,
		})
	},
}

func init() {
	Command.AddCommand(listCmd)
}
