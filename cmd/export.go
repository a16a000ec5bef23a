package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rsso-project/rsso/internal/opml"
	"github.com/rsso-project/rsso/internal/output"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export subscriptions to an OPML file",
	Long: `Export all subscriptions as an OPML file.

Without --output the file is written next to the state file.

Examples:
  rsso export
  rsso export --output feeds.opml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "destination path (default: subscriptions.opml next to the state file)")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		path = filepath.Join(filepath.Dir(cfg.Paths.StateFile), "subscriptions.opml")
	}

	var entries []opml.Entry
	for _, c := range reg.List() {
		entries = append(entries, opml.Entry{Title: c.Label(), URL: c.URL})
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &output.CLIError{
				Summary:  fmt.Sprintf("failed creating directory for %q", path),
				Detail:   err.Error(),
				ExitCode: output.ExitIOError,
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return &output.CLIError{
			Summary:  fmt.Sprintf("failed writing OPML to %q", path),
			Detail:   err.Error(),
			ExitCode: output.ExitIOError,
		}
	}
	defer f.Close()

	if err := opml.Export(f, "rsso subscriptions", entries); err != nil {
		return &output.CLIError{
			Summary:  fmt.Sprintf("failed writing OPML to %q", path),
			Detail:   err.Error(),
			ExitCode: output.ExitIOError,
		}
	}

	printer.Success("Exported %d feed(s) to %s", reg.Len(), path)
	printer.PrintHints("export")
	return nil
}
