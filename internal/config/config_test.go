package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.General.DefaultLimit)
	assert.Equal(t, 60, cfg.General.RefreshAgeMins)
	assert.Equal(t, 200, cfg.General.MaxHistoryPerFeed)
	assert.False(t, cfg.General.NewLineBetweenItems)
	assert.Equal(t, 4, cfg.Fetch.Workers)
	assert.Equal(t, 10, cfg.Fetch.TimeoutSecs)
	assert.True(t, cfg.Output.Colors)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Paths.StateFile, "state file default must be resolved")
}

func TestLoad_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
[general]
default_limit = 5
refresh_age_mins = 15
max_history_per_feed = 50
new_line_between_items = true

[paths]
state_file = "/tmp/rsso-test/state.json"

[fetch]
workers = 8
timeout_secs = 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.General.DefaultLimit)
	assert.Equal(t, 15, cfg.General.RefreshAgeMins)
	assert.Equal(t, 50, cfg.General.MaxHistoryPerFeed)
	assert.True(t, cfg.General.NewLineBetweenItems)
	assert.Equal(t, "/tmp/rsso-test/state.json", cfg.Paths.StateFile)
	assert.Equal(t, 8, cfg.Fetch.Workers)

	assert.Equal(t, 15*time.Minute, cfg.RefreshAge())
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout())
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero limit", "[general]\ndefault_limit = 0\n"},
		{"negative ttl", "[general]\nrefresh_age_mins = -1\n"},
		{"zero history", "[general]\nmax_history_per_feed = 0\n"},
		{"zero workers", "[fetch]\nworkers = 0\n"},
		{"bad level", "[logging]\nlevel = \"noisy\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestLoad_BadTOML(t *testing.T) {
	path := writeConfig(t, "not [valid toml")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.General.DefaultLimit)
}
