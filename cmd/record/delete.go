package record

import (
	"fmt"

	"github.com/markusressel/base2go/internal/persistence"
	"github.com/markusressel/base2go/internal/ui"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := deleteRun(openPersistence(), args[0]); err != nil {
			return err
		}
		ui.Success("Deleted recording %s", args[0])
		return nil
	},
}

func deleteRun(p persistence.Persistence, id string) error {
	if _, err := p.LoadRun(id); err != nil {
		return fmt.Errorf("no recording with id found: %s (%v)", id, err)
	}
	return p.DeleteRun(id)
}

func init() {
	Command.AddCommand(deleteCmd)
}
