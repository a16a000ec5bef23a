package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rsso-project/rsso/internal/feed"
	"github.com/rsso-project/rsso/internal/output"
)

var unsubCmd = &cobra.Command{
	Use:   "unsub <feed>",
	Short: "Unsubscribe from a feed by alias or URL",
	Long: `Unsubscribe from a feed, dropping its cached items.

Examples:
  rsso unsub example
  rsso unsub https://example.com/feed.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runUnsub,
}

func init() {
	rootCmd.AddCommand(unsubCmd)
}

func runUnsub(cmd *cobra.Command, args []string) error {
	printer := newPrinter()
	key := args[0]

	st := openStore()
	reg, err := loadRegistry(st)
	if err != nil {
		return err
	}

	if err := reg.Unsubscribe(key); err != nil {
		if errors.Is(err, feed.ErrNotFound) {
			return &output.CLIError{
				Summary:    fmt.Sprintf("no matching feed for %q", key),
				Suggestion: "Run 'rsso list' to see existing subscriptions",
				ExitCode:   output.ExitUsageError,
			}
		}
		return err
	}

	if err := saveRegistry(st, reg); err != nil {
		return err
	}

	printer.Success("Unsubscribed %s", key)
	printer.PrintHints("unsub")
	return nil
}
