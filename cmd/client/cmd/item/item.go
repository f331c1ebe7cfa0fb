package item

import (
	"github.com/spf13/cobra"

	"vaultkeeper/cmd/client/cmd/ui"
	"vaultkeeper/internal/app/client"
)

// ItemCmd groups the vault item commands.
var ItemCmd = &cobra.Command{
	Use:     "item",
	Aliases: []string{"items", "vault"},
	Short:   "Manage vault items",
	Long:    `List, add, show, edit and remove the logins stored in your vault.`,
}

// masterPassword prefers VAULT_MASTER_PASSWORD and prompts otherwise.
func masterPassword(app *client.App) (string, error) {
	if m := app.MasterPassword(); m != "" {
		return m, nil
	}
	return ui.Secret("Master password: ")
}
