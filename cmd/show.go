package cmd

import (
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/rsso-project/rsso/internal/feed"
	"github.com/rsso-project/rsso/internal/output"
)

// itemDateFormat is the date column of the pipe-friendly item line.
const itemDateFormat = "02 Jan 06"

// itemRow pairs an item with the label of the feed it came from, for
// cross-feed views.
type itemRow struct {
	item  feed.Item
	label string
}

// collectRecent gathers items across the given caches, newest first by
// effective time, and returns at most limit rows.
func collectRecent(caches []*feed.Cache, limit int) []itemRow {
	var rows []itemRow
	for _, c := range caches {
		for _, it := range c.Items {
			rows = append(rows, itemRow{item: it, label: c.Label()})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].item.EffectiveTime().After(rows[j].item.EffectiveTime())
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// printItems renders item rows as pipe-friendly lines.
func printItems(printer *output.Printer, rows []itemRow) {
	for i, row := range rows {
		date := row.item.EffectiveTime().Format(itemDateFormat)
		printer.ItemLine(date, row.label, row.item.Title, row.item.Link)
		if cfg.General.NewLineBetweenItems && i < len(rows)-1 {
			printer.Blank()
		}
	}
}

// reportFailures prints a warning block for feeds whose fetch failed during
// a bulk refresh. Failures are per-feed and non-fatal.
func reportFailures(printer *output.Printer, outcomes []feed.Outcome) {
	var failed []feed.Outcome
	for _, out := range outcomes {
		if out.Status == feed.StatusFailed {
			failed = append(failed, out)
		}
	}
	if len(failed) == 0 {
		return
	}

	printer.Warning("%d feed(s) had errors:", len(failed))
	for _, out := range failed {
		printer.Warning("- %s (%v)", out.Label, out.Err)
	}
	printer.Warning("Run `rsso list` for more details.")
}

// runShowAll is the default command: refresh stale feeds, persist whatever
// completed, and show the latest items across all subscriptions.
func runShowAll(cmd *cobra.Command, args []string) error {
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

	co := newCoordinator()
	outcomes := co.RefreshAll(cmd.Context(), reg, time.Now(), false)

	// Persist partial progress before rendering: merged feeds keep their
	// updates even if the run was interrupted mid-batch.
	if err := saveRegistry(st, reg); err != nil {
		return err
	}

	printItems(printer, collectRecent(reg.List(), itemLimit()))
	reportFailures(printer, outcomes)
	return nil
}
