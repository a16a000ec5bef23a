package cmd

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rsso-project/rsso/internal/feed"
	"github.com/rsso-project/rsso/internal/output"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List subscribed feeds",
	Long: `List all subscriptions with their status.

Examples:
  rsso list                    # Table of feeds with refresh status
  rsso list --json             # Output as JSON`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().Bool("json", false, "output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	st := openStore()
	reg, err := loadRegistry(st)
	if err != nil {
		return err
	}

	if reg.Len() == 0 {
		printer.Print("No feeds subscribed. Use `rsso sub <url>` to add one.")
		return nil
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reg.List())
	}

	table := output.NewTable([]string{"ALIAS", "TITLE", "URL", "LAST REFRESH", "ITEMS", "STATUS"})
	for _, c := range reg.List() {
		table.AddRow([]string{
			c.Alias,
			c.Title,
			c.URL,
			formatLastRefresh(c),
			strconv.Itoa(len(c.Items)),
			feedStatus(c),
		})
	}
	table.Render()
	return nil
}

func formatLastRefresh(c *feed.Cache) string {
	if c.LastRefreshedAt == nil {
		return "never"
	}
	return c.LastRefreshedAt.Local().Format("2006-01-02 15:04")
}

func feedStatus(c *feed.Cache) string {
	if c.LastError != "" {
		return "ERROR: " + c.LastError
	}
	if c.LastRefreshedAt == nil {
		return "never fetched"
	}
	return "ok"
}
