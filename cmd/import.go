package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rsso-project/rsso/internal/feed"
	"github.com/rsso-project/rsso/internal/opml"
	"github.com/rsso-project/rsso/internal/output"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import subscriptions from an OPML file",
	Long: `Import feed subscriptions from an OPML file.

Feeds already subscribed are skipped and reported; a bad entry never aborts
the rest of the batch.

Examples:
  rsso import subscriptions.opml`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	printer := newPrinter()
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return &output.CLIError{
			Summary:  fmt.Sprintf("failed reading OPML file %q", path),
			Detail:   err.Error(),
			ExitCode: output.ExitIOError,
		}
	}
	defer f.Close()

	entries, err := opml.Parse(f)
	if err != nil {
		return &output.CLIError{
			Summary:  fmt.Sprintf("failed parsing OPML file %q", path),
			Detail:   err.Error(),
			ExitCode: output.ExitGeneral,
		}
	}

	st := openStore()
	reg, err := loadRegistry(st)
	if err != nil {
		return err
	}

	now := time.Now()
	added, skipped := 0, 0
	for _, e := range entries {
		if _, err := reg.Subscribe(e.URL, e.Title, now); err != nil {
			skipped++
			switch {
			case errors.Is(err, feed.ErrDuplicateSubscription):
				printer.Warning("Skipped %s: already subscribed", e.URL)
			case errors.Is(err, feed.ErrAliasConflict):
				// Retry without the conflicting title-derived alias.
				if _, err := reg.Subscribe(e.URL, "", now); err == nil {
					skipped--
					added++
					continue
				}
				printer.Warning("Skipped %s: %v", e.URL, err)
			default:
				printer.Warning("Skipped %s: %v", e.URL, err)
			}
			continue
		}
		added++
	}

	if err := saveRegistry(st, reg); err != nil {
		return err
	}

	printer.Success("Imported %d feed(s), skipped %d.", added, skipped)
	printer.PrintHints("import")
	return nil
}
