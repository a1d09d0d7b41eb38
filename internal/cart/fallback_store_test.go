package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore errors on every operation.
type failingStore struct{}

var errStoreDown = errors.New("store unavailable")

func (failingStore) Load(context.Context, string) ([]byte, error) { return nil, errStoreDown }
func (failingStore) Save(context.Context, string, []byte) error   { return errStoreDown }
func (failingStore) Delete(context.Context, string) error         { return errStoreDown }

func TestFallbackStore_PrimaryHealthy(t *testing.T) {
	ctx := context.Background()
	primary := newMemStore()
	secondary := newMemStore()
	store := NewFallbackStore(primary, secondary, zerolog.Nop())

	require.NoError(t, store.Save(ctx, "k", []byte(`[]`)))

	data, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)

	// Writes stay on the primary.
	assert.Contains(t, primary.snapshots, "k")
	assert.NotContains(t, secondary.snapshots, "k")
}

func TestFallbackStore_FallsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	secondary := newMemStore()
	store := NewFallbackStore(failingStore{}, secondary, zerolog.Nop())

	require.NoError(t, store.Save(ctx, "k", []byte(`[{"quantity":1}]`)))
	assert.Contains(t, secondary.snapshots, "k")

	data, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"quantity":1}]`), data)
}

func TestFallbackStore_DeleteClearsBoth(t *testing.T) {
	ctx := context.Background()
	primary := newMemStore()
	secondary := newMemStore()
	store := NewFallbackStore(primary, secondary, zerolog.Nop())

	primary.snapshots["k"] = []byte(`[]`)
	secondary.snapshots["k"] = []byte(`[]`)

	require.NoError(t, store.Delete(ctx, "k"))
	assert.NotContains(t, primary.snapshots, "k")
	assert.NotContains(t, secondary.snapshots, "k")
}
