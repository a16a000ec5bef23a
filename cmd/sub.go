package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rsso-project/rsso/internal/feed"
	"github.com/rsso-project/rsso/internal/output"
)

var subCmd = &cobra.Command{
	Use:   "sub <url>",
	Short: "Subscribe to a feed",
	Long: `Subscribe to a new RSS/Atom feed by URL.

The feed starts with an empty history; its items are fetched on the next
refresh or default view.

Examples:
  rsso sub https://example.com/feed.xml
  rsso sub https://example.com/feed.xml --alias example`,
	Args: cobra.ExactArgs(1),
	RunE: runSub,
}

func init() {
	rootCmd.AddCommand(subCmd)

	subCmd.Flags().String("alias", "", "short name for this feed")
}

func runSub(cmd *cobra.Command, args []string) error {
	printer := newPrinter()
	url := args[0]
	alias, _ := cmd.Flags().GetString("alias")

	st := openStore()
	reg, err := loadRegistry(st)
	if err != nil {
		return err
	}

	if _, err := reg.Subscribe(url, alias, time.Now()); err != nil {
		switch {
		case errors.Is(err, feed.ErrDuplicateSubscription):
			return &output.CLIError{
				Summary:    fmt.Sprintf("already subscribed to %s", url),
				Suggestion: "Run 'rsso list' to see existing subscriptions",
				ExitCode:   output.ExitUsageError,
			}
		case errors.Is(err, feed.ErrAliasConflict):
			return &output.CLIError{
				Summary:    fmt.Sprintf("alias %q is already in use", alias),
				Detail:     err.Error(),
				Suggestion: "Pick another alias, or run 'rsso rename' on the existing feed",
				ExitCode:   output.ExitUsageError,
			}
		default:
			return err
		}
	}

	if err := saveRegistry(st, reg); err != nil {
		return err
	}

	printer.Success("Subscribed to %s", url)
	printer.PrintHints("sub")
	return nil
}
