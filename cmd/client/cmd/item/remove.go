package item

import (
	"github.com/spf13/cobra"

	"vaultkeeper/cmd/client/cmd/types"
	"vaultkeeper/cmd/client/cmd/ui"
)

var RemoveCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete an item",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		stop := ui.Spin("Deleting...")
		err = app.Remove(cmd.Context(), args[0])
		stop()
		if err != nil {
			return err
		}

		ui.Success("Deleted %s", args[0])
		return nil
	},
}
