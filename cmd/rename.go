package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rsso-project/rsso/internal/feed"
	"github.com/rsso-project/rsso/internal/output"
)

var renameCmd = &cobra.Command{
	Use:   "rename <feed> <new-alias>",
	Short: "Change a feed's alias",
	Long: `Bind a new alias to an existing feed, matched by its current alias or URL.

Examples:
  rsso rename example daily
  rsso rename https://example.com/feed.xml example`,
	Args: cobra.ExactArgs(2),
	RunE: runRename,
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	printer := newPrinter()
	key := args[0]
	newAlias := strings.TrimSpace(args[1])

	if newAlias == "" {
		return &output.CLIError{
			Summary:  "alias cannot be empty",
			ExitCode: output.ExitUsageError,
		}
	}

	st := openStore()
	reg, err := loadRegistry(st)
	if err != nil {
		return err
	}

	if err := reg.Rename(key, newAlias); err != nil {
		switch {
		case errors.Is(err, feed.ErrNotFound):
			return &output.CLIError{
				Summary:    fmt.Sprintf("no matching feed for %q", key),
				Suggestion: "Run 'rsso list' to see existing subscriptions",
				ExitCode:   output.ExitUsageError,
			}
		case errors.Is(err, feed.ErrAliasConflict):
			return &output.CLIError{
				Summary:  fmt.Sprintf("alias %q is already in use", newAlias),
				Detail:   err.Error(),
				ExitCode: output.ExitUsageError,
			}
		default:
			return err
		}
	}

	if err := saveRegistry(st, reg); err != nil {
		return err
	}

	printer.Success("Renamed feed %q to alias %q", key, newAlias)
	printer.PrintHints("rename")
	return nil
}
