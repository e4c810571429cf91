package record

import (
	"encoding/json"
	"fmt"

	"github.com/markusressel/base2go/internal/ui"
	"github.com/markusressel/base2go/internal/util"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <id> <file>",
	Short: "Export a recorded run as json",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := openPersistence().LoadRun(args[0])
		if err != nil {
			return fmt.Errorf("no recording with id found: %s (%v)", args[0], err)
		}

		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return err
		}
		if err = util.WriteFileAtomic(args[1], data); err != nil {
			return err
		}
		ui.Success("Exported %d samples of %s to %s", len(run.Samples), run.Id, args[1])
		return nil
	},
}

func init() {
	Command.AddCommand(exportCmd)
}
