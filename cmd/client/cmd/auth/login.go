package auth

import (
	"github.com/spf13/cobra"

	"vaultkeeper/cmd/client/cmd/types"
	"vaultkeeper/cmd/client/cmd/ui"
)

var loginEmail string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the vault server",
	Long: `Authenticate against the vault server.

The session token is kept in ~/.vaultkeeper/token and expires after one hour.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		email := loginEmail
		if email == "" {
			if email, err = ui.Line("Email: "); err != nil {
				return err
			}
		}
		password, err := ui.Secret("Password: ")
		if err != nil {
			return err
		}

		stop := ui.Spin("Authenticating...")
		err = app.Login(cmd.Context(), email, password)
		stop()
		if err != nil {
			return err
		}

		ui.Success("Logged in as %s", email)
		return nil
	},
}

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		if err := app.Logout(); err != nil {
			return err
		}
		ui.Success("Logged out")
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
}
