package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rsso-project/rsso/internal/feed"
)

// stubFetcher serves canned fetch results so command tests never touch the
// network.
type stubFetcher struct {
	results map[string]*feed.FetchResult
	errs    map[string]error
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (*feed.FetchResult, error) {
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if res, ok := f.results[url]; ok {
		return res, nil
	}
	return &feed.FetchResult{}, nil
}

// setupCmdTest points the CLI at a temp config and state file and resets
// sticky flag state between runs. Returns the state file path.
func setupCmdTest(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	cfgPath := filepath.Join(dir, "config.toml")

	content := fmt.Sprintf("[paths]\nstate_file = %q\n\n[output]\ncolors = false\n", statePath)
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfgFile = cfgPath
	limitFlag = 0
	rootCmd.Flags().Set("help", "false")
	subCmd.Flags().Set("alias", "")
	listCmd.Flags().Set("json", "false")
	exportCmd.Flags().Set("output", "")

	t.Cleanup(func() {
		cfgFile = ""
		limitFlag = 0
	})

	return statePath
}

// useStubFetcher swaps the transport for a stub for the duration of the test.
func useStubFetcher(t *testing.T, stub *stubFetcher) {
	t.Helper()
	old := newFetcher
	newFetcher = func() feed.Fetcher { return stub }
	t.Cleanup(func() { newFetcher = old })
}

// runCommand executes the root command with the given arguments.
func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
