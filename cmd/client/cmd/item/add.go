package item

import (
	"errors"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/client/cmd/types"
	"vaultkeeper/cmd/client/cmd/ui"
	"vaultkeeper/internal/app/client"
)

var newItem client.NewItem

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an item",
	Long: `Add a login to the vault. The password is read without echo and
encrypted with your master password before upload.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		item := newItem
		if item.Title == "" {
			if item.Title, err = ui.Line("Title: "); err != nil {
				return err
			}
		}
		if item.Username == "" {
			if item.Username, err = ui.Line("Username: "); err != nil {
				return err
			}
		}
		if item.Password, err = ui.Secret("Password to store: "); err != nil {
			return err
		}
		if item.Password == "" {
			return errors.New("password must not be empty")
		}

		master, err := masterPassword(app)
		if err != nil {
			return err
		}

		stop := ui.Spin("Encrypting and saving...")
		created, err := app.Add(cmd.Context(), item, master)
		stop()
		if err != nil {
			return err
		}

		ui.Success("Saved %q (id %s)", created.Title, created.ID)
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVarP(&newItem.Title, "title", "t", "", "item title")
	AddCmd.Flags().StringVarP(&newItem.Username, "username", "u", "", "login name")
	AddCmd.Flags().StringVar(&newItem.URL, "url", "", "site address")
	AddCmd.Flags().StringVarP(&newItem.Notes, "notes", "n", "", "free-form notes")
}
