// Package store persists the subscription registry as a JSON state file.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rsso-project/rsso/internal/feed"
)

// Store reads and writes the state blob at a fixed path.
type Store struct {
	path string
}

// New creates a store for the given state file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// DefaultPath returns the platform default state file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(dir, "rsso", "state.json"), nil
}

// Load reads the registry from disk. A missing or blank file yields an empty
// registry; an undecodable one fails with feed.ErrCorruptState and the file
// is left untouched.
func (s *Store) Load() (*feed.Registry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return feed.NewRegistry(), nil
		}
		return nil, fmt.Errorf("reading state file %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return feed.NewRegistry(), nil
	}

	reg := feed.NewRegistry()
	if err := json.Unmarshal(data, reg); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", feed.ErrCorruptState, s.path, err)
	}
	return reg, nil
}

// Save writes the registry, creating parent directories as needed. The write
// goes through a temp file and rename so a failed save never truncates the
// previous state.
func (s *Store) Save(reg *feed.Registry) error {
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating state dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}
