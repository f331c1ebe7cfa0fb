package auth

import (
	"errors"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/client/cmd/types"
	"vaultkeeper/cmd/client/cmd/ui"
)

var registerEmail string

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create an account on the vault server.

The password needs at least 8 characters with an upper-case letter, a
lower-case letter, a digit and a special character.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		email := registerEmail
		if email == "" {
			if email, err = ui.Line("Email: "); err != nil {
				return err
			}
		}

		password, err := ui.Secret("Password: ")
		if err != nil {
			return err
		}
		confirm, err := ui.Secret("Repeat password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return errors.New("passwords do not match")
		}

		stop := ui.Spin("Registering...")
		err = app.Register(cmd.Context(), email, password)
		stop()
		if err != nil {
			return err
		}

		ui.Success("Account %s created", email)
		ui.Hint("Log in with: vaultkeeper auth login")
		return nil
	},
}

func init() {
	RegisterCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "account email")
}
