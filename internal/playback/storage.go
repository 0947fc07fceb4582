package playback

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/voxfeld/reel/internal/errors"
)

const defaultStateFileName = "state.json"

// StateStorage persists playback snapshots to disk, so one-shot command
// invocations continue the same session and followers can watch the file
// for changes.
type StateStorage struct {
	path string
}

// NewStateStorage creates state storage at the specified path. If path is
// empty, uses the default location (~/.config/reel/state.json).
func NewStateStorage(path string) (*StateStorage, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		path = filepath.Join(configDir, "reel", defaultStateFileName)
	}

	return &StateStorage{path: path}, nil
}

// Path returns the file the snapshots are written to.
func (s *StateStorage) Path() string {
	return s.path
}

// Save writes a snapshot. The write goes through a temp file and a rename
// so watchers never observe a half-written snapshot.
func (s *StateStorage) Save(snap Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}

// Load reads the stored snapshot. Returns ErrNoStoredSession when no state
// has been written yet.
func (s *StateStorage) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrNoStoredSession
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	return &snap, nil
}

// Delete removes the stored snapshot.
func (s *StateStorage) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state file: %w", err)
	}
	return nil
}
