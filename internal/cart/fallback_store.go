package cart

import (
	"context"

	"github.com/rs/zerolog"
)

// fallbackStore tries a primary snapshot store first, then falls back to a
// secondary one. Used to prefer S3 with the local file store as a safety
// net when the bucket is unreachable.
type fallbackStore struct {
	primary   SnapshotStore
	secondary SnapshotStore
	logger    zerolog.Logger
}

// NewFallbackStore creates a store that reads and writes through primary,
// falling back to secondary on failure.
func NewFallbackStore(primary, secondary SnapshotStore, logger zerolog.Logger) SnapshotStore {
	return &fallbackStore{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With().Str("component", "fallback-store").Logger(),
	}
}

func (s *fallbackStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.primary.Load(ctx, key)
	if err == nil {
		return data, nil
	}

	s.logger.Warn().Err(err).Str("key", key).Msg("primary snapshot load failed, falling back")
	return s.secondary.Load(ctx, key)
}

func (s *fallbackStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.primary.Save(ctx, key, data); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("primary snapshot save failed, falling back")
		return s.secondary.Save(ctx, key, data)
	}
	return nil
}

// Delete removes the snapshot from both stores so a stale fallback copy
// cannot rehydrate a cleared cart.
func (s *fallbackStore) Delete(ctx context.Context, key string) error {
	primaryErr := s.primary.Delete(ctx, key)
	secondaryErr := s.secondary.Delete(ctx, key)
	if primaryErr != nil {
		s.logger.Warn().Err(primaryErr).Str("key", key).Msg("primary snapshot delete failed")
		return secondaryErr
	}
	return secondaryErr
}
