package cart

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// fileStore implements SnapshotStore on the local file system, one JSON file
// per session key under a base directory.
type fileStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFileStore creates a file-based snapshot store rooted at dir. The
// directory is created if it does not exist.
func NewFileStore(dir string, logger zerolog.Logger) (SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
	}
	return &fileStore{
		dir:    dir,
		logger: logger.With().Str("component", "cart-file-store").Logger(),
	}, nil
}

// Load reads the snapshot for key, returning nil data when none exists.
func (s *fileStore) Load(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		s.logger.Error().Err(err).Str("key", key).Msg("failed to read cart snapshot")
		return nil, fmt.Errorf("failed to read cart snapshot %s: %w", key, err)
	}
	return data, nil
}

// Save writes the snapshot for key, replacing any previous one.
func (s *fileStore) Save(_ context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to write cart snapshot")
		return fmt.Errorf("failed to write cart snapshot %s: %w", key, err)
	}
	return nil
}

// Delete removes the snapshot for key. Deleting a missing snapshot is not an
// error.
func (s *fileStore) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to delete cart snapshot")
		return fmt.Errorf("failed to delete cart snapshot %s: %w", key, err)
	}
	return nil
}

// path maps a session key to a snapshot file, rejecting keys that would
// escape the base directory.
func (s *fileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid snapshot key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
