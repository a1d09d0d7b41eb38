package cart

import "context"

// SnapshotStore persists serialized cart snapshots keyed by session. One
// snapshot per key; Load returns nil data for a key that has no snapshot.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// nopStore discards all snapshots. Staff sessions use it: administrators do
// not shop, so their carts are neither loaded nor persisted.
type nopStore struct{}

// NewNopStore returns a snapshot store that persists nothing.
func NewNopStore() SnapshotStore {
	return nopStore{}
}

func (nopStore) Load(context.Context, string) ([]byte, error) { return nil, nil }
func (nopStore) Save(context.Context, string, []byte) error   { return nil }
func (nopStore) Delete(context.Context, string) error         { return nil }
