package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsso-project/rsso/internal/feed"
)

func TestLoad_MissingFileYieldsEmptyRegistry(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "state.json"))

	reg, err := st.Load()
	require.NoError(t, err)
	assert.Zero(t, reg.Len())
}

func TestLoad_BlankFileYieldsEmptyRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0644))

	reg, err := New(path).Load()
	require.NoError(t, err)
	assert.Zero(t, reg.Len())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	st := New(path)

	reg := feed.NewRegistry()
	_, err := reg.Subscribe("https://a/feed.xml", "a", now)
	require.NoError(t, err)
	c, _ := reg.Get("https://a/feed.xml")
	c.Merge([]feed.RawItem{{GUID: "one", Title: "One"}}, 200, now)

	// Save creates missing parent directories.
	require.NoError(t, st.Save(reg))

	loaded, err := st.Load()
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())

	lc, ok := loaded.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "https://a/feed.xml", lc.URL)
	require.Len(t, lc.Items, 1)
	require.NotNil(t, lc.LastRefreshedAt)
	assert.True(t, lc.LastRefreshedAt.Equal(now))
}

func TestLoad_CorruptBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := New(path).Load()
	require.ErrorIs(t, err, feed.ErrCorruptState)

	// The corrupt file is surfaced, not auto-repaired.
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "{not json", string(data))
}

func TestLoad_InvariantViolationIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	blob := `{"version":1,"feeds":[
		{"url":"https://a/feed.xml","alias":"x","added_at":"2024-03-01T00:00:00Z"},
		{"url":"https://b/feed.xml","alias":"x","added_at":"2024-03-01T00:00:00Z"}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(blob), 0644))

	_, err := New(path).Load()
	require.ErrorIs(t, err, feed.ErrCorruptState)
}

func TestSave_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	st := New(filepath.Join(dir, "state.json"))

	require.NoError(t, st.Save(feed.NewRegistry()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}
