package item

import (
	"errors"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/client/cmd/types"
	"vaultkeeper/cmd/client/cmd/ui"
	"vaultkeeper/internal/app/client"
)

var (
	editTitle, editUsername, editURL, editNotes string
	editPassword                                bool
)

var EditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change fields of an item",
	Long: `Change only the fields given as flags. --password prompts for a new
password and encrypts it with your master password.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		var changes client.ItemChanges
		flags := cmd.Flags()
		if flags.Changed("title") {
			changes.Title = &editTitle
		}
		if flags.Changed("username") {
			changes.Username = &editUsername
		}
		if flags.Changed("url") {
			changes.URL = &editURL
		}
		if flags.Changed("notes") {
			changes.Notes = &editNotes
		}

		var master string
		if editPassword {
			password, err := ui.Secret("New password: ")
			if err != nil {
				return err
			}
			if password == "" {
				return errors.New("password must not be empty")
			}
			changes.Password = &password
			if master, err = masterPassword(app); err != nil {
				return err
			}
		}

		if changes == (client.ItemChanges{}) {
			return errors.New("nothing to change, pass at least one flag")
		}

		stop := ui.Spin("Saving...")
		item, err := app.Edit(cmd.Context(), args[0], changes, master)
		stop()
		if err != nil {
			return err
		}

		ui.Success("Updated %q", item.Title)
		return nil
	},
}

func init() {
	EditCmd.Flags().StringVarP(&editTitle, "title", "t", "", "new title")
	EditCmd.Flags().StringVarP(&editUsername, "username", "u", "", "new login name")
	EditCmd.Flags().StringVar(&editURL, "url", "", "new site address")
	EditCmd.Flags().StringVarP(&editNotes, "notes", "n", "", "new notes")
	EditCmd.Flags().BoolVarP(&editPassword, "password", "p", false, "prompt for a new password")
}
