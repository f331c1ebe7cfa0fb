package item

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vaultkeeper/cmd/client/cmd/types"
	"vaultkeeper/cmd/client/cmd/ui"
)

var showJSON bool

var ShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show an item with its password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		master, err := masterPassword(app)
		if err != nil {
			return err
		}

		stop := ui.Spin("Fetching...")
		secret, err := app.Show(cmd.Context(), args[0], master)
		stop()
		if err != nil {
			return err
		}

		if showJSON {
			return printJSON(secret)
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%s %s\n", bold("Title:   "), secret.Title)
		fmt.Printf("%s %s\n", bold("Username:"), secret.Username)
		fmt.Printf("%s %s\n", bold("Password:"), color.YellowString(secret.Password))
		if secret.URL != "" {
			fmt.Printf("%s %s\n", bold("URL:     "), secret.URL)
		}
		if secret.Notes != "" {
			fmt.Printf("%s %s\n", bold("Notes:   "), secret.Notes)
		}
		fmt.Printf("%s %s\n", bold("Updated: "), secret.UpdatedAt.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	ShowCmd.Flags().BoolVar(&showJSON, "json", false, "print the item as JSON")
}
