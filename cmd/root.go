// Package cmd contains all CLI commands for rsso
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rsso-project/rsso/internal/config"
	"github.com/rsso-project/rsso/internal/feed"
	"github.com/rsso-project/rsso/internal/fetch"
	"github.com/rsso-project/rsso/internal/output"
	"github.com/rsso-project/rsso/internal/store"
)

var (
	cfgFile   string
	verbose   bool
	limitFlag int
	cfg       *config.Config
	logger    *slog.Logger
	version   = "dev"
)

// newFetcher builds the transport client; tests swap in a stub.
var newFetcher = func() feed.Fetcher {
	return fetch.NewClient("rsso/" + version)
}

// rootCmd represents the base command. Called without a subcommand it
// refreshes stale feeds and shows the latest items across all subscriptions.
var rootCmd = &cobra.Command{
	Use:   "rsso",
	Short: "A minimal RSS/Atom feed organiser for the command line",
	Long: `rsso tracks feed subscriptions, fetches and caches their items, and renders
them as readable terminal text. State lives in a single JSON file; stale
feeds are re-fetched on demand, within a configurable TTL window.

Run without a subcommand to show the latest items across all feeds.

Example usage:
  rsso sub https://example.com/feed.xml --alias example
  rsso                         # Show latest items across all feeds
  rsso feed example -n 5       # Show latest items from one feed
  rsso refresh                 # Force-refresh every feed
  rsso import subscriptions.opml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: runShowAll,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.toml in the user config dir)")
	rootCmd.PersistentFlags().IntVarP(&limitFlag, "limit", "n", 0, "maximum number of items to show (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig reads in config file and RSSO_* environment variables if set.
func initConfig() error {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return &output.CLIError{
			Summary:  "failed loading configuration",
			Detail:   err.Error(),
			ExitCode: output.ExitConfigError,
		}
	}

	if cfg.Logging.Level == "debug" || verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	logger.Debug("configuration loaded",
		"state_file", cfg.Paths.StateFile,
		"refresh_age_mins", cfg.General.RefreshAgeMins,
		"max_history_per_feed", cfg.General.MaxHistoryPerFeed,
	)

	return nil
}

// newPrinter builds the terminal printer from the loaded config
func newPrinter() *output.Printer {
	return output.NewPrinter(cfg.Output.Colors)
}

// newCoordinator builds the refresh coordinator from the loaded config
func newCoordinator() *feed.Coordinator {
	return feed.NewCoordinator(newFetcher(), feed.Options{
		RefreshAge:   cfg.RefreshAge(),
		MaxHistory:   cfg.General.MaxHistoryPerFeed,
		Workers:      cfg.Fetch.Workers,
		FetchTimeout: cfg.FetchTimeout(),
		Logger:       logger,
	})
}

// openStore returns the persistence gateway for the configured state file
func openStore() *store.Store {
	return store.New(cfg.Paths.StateFile)
}

// loadRegistry loads the subscription registry, mapping failures to CLI errors
func loadRegistry(st *store.Store) (*feed.Registry, error) {
	reg, err := st.Load()
	if err != nil {
		return nil, &output.CLIError{
			Summary:    "failed loading state",
			Detail:     err.Error(),
			Suggestion: fmt.Sprintf("Inspect or move %s; the file is left untouched", st.Path()),
			ExitCode:   output.ExitStateError,
		}
	}
	return reg, nil
}

// saveRegistry persists the registry, mapping failures to CLI errors. The
// in-memory state is never silently lost: a failed save is fatal for the run.
func saveRegistry(st *store.Store, reg *feed.Registry) error {
	if err := st.Save(reg); err != nil {
		return &output.CLIError{
			Summary:  "failed saving state",
			Detail:   err.Error(),
			ExitCode: output.ExitIOError,
		}
	}
	return nil
}

// itemLimit returns the item display limit: the -n flag when given,
// otherwise the configured default
func itemLimit() int {
	if limitFlag > 0 {
		return limitFlag
	}
	return cfg.General.DefaultLimit
}
