package item

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/client/cmd/types"
	"vaultkeeper/cmd/client/cmd/ui"
	"vaultkeeper/internal/app/client"
)

var listJSON bool

var ListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your items",
	Long:    `List the items in your vault. Passwords stay encrypted; use "item show" to open one.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		stop := ui.Spin("Loading items...")
		items, err := app.List(cmd.Context())
		stop()
		if err != nil {
			return err
		}

		if listJSON {
			return printJSON(items)
		}
		if len(items) == 0 {
			fmt.Println("No items yet")
			ui.Hint("Add one with: vaultkeeper item add --title NAME --username USER")
			return nil
		}
		return printTable(items)
	},
}

func printTable(items []client.Item) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tUSERNAME\tURL\tUPDATED")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", it.ID, it.Title, it.Username, it.URL, it.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	ListCmd.Flags().BoolVar(&listJSON, "json", false, "print items as JSON")
}
