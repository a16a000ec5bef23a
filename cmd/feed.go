package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rsso-project/rsso/internal/feed"
	"github.com/rsso-project/rsso/internal/output"
)

var feedCmd = &cobra.Command{
	Use:   "feed <feed>",
	Short: "Show items from a single feed",
	Long: `Show the latest items from one feed, matched by alias or URL.

The feed is refreshed first if its cache is stale.

Examples:
  rsso feed example
  rsso feed example -n 5`,
	Args: cobra.ExactArgs(1),
	RunE: runFeed,
}

func init() {
	rootCmd.AddCommand(feedCmd)
}

func runFeed(cmd *cobra.Command, args []string) error {
	printer := newPrinter()
	key := args[0]

	st := openStore()
	reg, err := loadRegistry(st)
	if err != nil {
		return err
	}

	co := newCoordinator()
	out, err := co.RefreshOne(cmd.Context(), reg, key, time.Now(), false)
	if err != nil {
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

	c, _ := reg.Lookup(key)
	printItems(printer, collectRecent([]*feed.Cache{c}, itemLimit()))

	if out.Status == feed.StatusFailed {
		printer.Warning("Refresh failed: %v (showing cached items)", out.Err)
	}
	return nil
}
