package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/rsso-project/rsso/internal/feed"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh [feeds...]",
	Short: "Force refresh feeds (all or selected)",
	Long: `Fetch feeds immediately, ignoring the staleness TTL.

With no arguments every subscription is refreshed; otherwise only the named
feeds (by alias or URL). One feed's failure never aborts the others.

Examples:
  rsso refresh                 # Refresh every feed
  rsso refresh example         # Refresh one feed
  rsso refresh example other   # Refresh a selection`,
	Args: cobra.ArbitraryArgs,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	st := openStore()
	reg, err := loadRegistry(st)
	if err != nil {
		return err
	}
	if reg.Len() == 0 {
		printer.Print("No feeds subscribed.")
		return nil
	}

	co := newCoordinator()
	now := time.Now()

	var outcomes []feed.Outcome
	if len(args) == 0 {
		outcomes = co.RefreshAll(cmd.Context(), reg, now, true)
	} else {
		for _, key := range args {
			out, err := co.RefreshOne(cmd.Context(), reg, key, now, true)
			if err != nil {
				if errors.Is(err, feed.ErrNotFound) {
					printer.Warning("No matching feed for %q", key)
					continue
				}
				return err
			}
			outcomes = append(outcomes, out)
		}
	}

	// Partial progress counts: whatever merged is saved.
	if err := saveRegistry(st, reg); err != nil {
		return err
	}

	updated, failed := 0, 0
	for _, out := range outcomes {
		switch out.Status {
		case feed.StatusUpdated:
			updated++
			printer.Success("%s: %d new item(s)", out.Label, out.Added)
		case feed.StatusFailed:
			failed++
			printer.Error("%s: %v", out.Label, out.Err)
		}
	}
	printer.Info("Refreshed %d feed(s), %d failed.", updated, failed)
	return nil
}
