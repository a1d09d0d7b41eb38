package cart

import (
	"context"
	"encoding/json"
	"sync"

	"fasttrack/internal/model"

	"github.com/rs/zerolog"
)

// Store maintains the shopping cart for one session. Every mutation flushes
// the full snapshot through the SnapshotStore so a later Open rehydrates the
// same contents. Quantities are clamped to the product snapshot's stock level
// at every mutation entry point; an entry whose quantity would drop to zero
// or below is removed.
type Store struct {
	mu        sync.Mutex
	items     []model.CartItem
	snapshots SnapshotStore
	key       string
	logger    zerolog.Logger
}

// Open creates a cart store for the given session key, rehydrated from any
// persisted snapshot. A missing or malformed snapshot yields an empty cart.
func Open(ctx context.Context, key string, snapshots SnapshotStore, logger zerolog.Logger) *Store {
	s := &Store{
		snapshots: snapshots,
		key:       key,
		logger:    logger.With().Str("component", "cart").Logger(),
	}

	data, err := snapshots.Load(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to load cart snapshot, starting empty")
		return s
	}
	if len(data) == 0 {
		return s
	}

	items, err := Decode(data)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("discarding malformed cart snapshot")
		return s
	}
	s.items = items
	return s
}

// Add inserts the product with quantity 1, or increments an existing entry
// by 1. The resulting quantity never exceeds the snapshot's stock level, so
// adding an out-of-stock product is a no-op.
func (s *Store) Add(ctx context.Context, product model.ProductSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.setLocked(ctx, i, s.items[i].Quantity+1)
			return
		}
	}

	if clampQuantity(1, product.StockQuantity) < 1 {
		s.logger.Debug().Int64("product_id", product.ID).Msg("not adding out-of-stock product")
		return
	}
	s.items = append(s.items, model.CartItem{Product: product, Quantity: 1})
	s.flush(ctx)
}

// Remove deletes the entry entirely regardless of quantity.
func (s *Store) Remove(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.flush(ctx)
			return
		}
	}
}

// Decrement lowers the entry's quantity by 1, removing it at quantity 1.
func (s *Store) Decrement(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.setLocked(ctx, i, s.items[i].Quantity-1)
			return
		}
	}
}

// SetQuantity sets the entry's quantity to n, clamped to stock. n <= 0
// removes the entry. Unknown product IDs are ignored.
func (s *Store) SetQuantity(ctx context.Context, productID int64, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.setLocked(ctx, i, n)
			return
		}
	}
}

// Clear empties the cart and erases the persisted snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if err := s.snapshots.Delete(ctx, s.key); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("failed to delete cart snapshot")
	}
}

// Total returns the sum of price * quantity across all entries.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount returns the sum of quantities across all entries.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Items returns a copy of the cart contents.
func (s *Store) Items() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// setLocked applies a clamped quantity to the entry at index i and flushes.
// Callers must hold s.mu.
func (s *Store) setLocked(ctx context.Context, i, n int) {
	n = clampQuantity(n, s.items[i].Product.StockQuantity)
	if n < 1 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	} else {
		s.items[i].Quantity = n
	}
	s.flush(ctx)
}

// flush persists the current snapshot. Persistence failures are logged and
// the in-memory cart stays authoritative for the session.
func (s *Store) flush(ctx context.Context) {
	data, err := Encode(s.items)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode cart snapshot")
		return
	}
	if err := s.snapshots.Save(ctx, s.key, data); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("failed to persist cart snapshot")
	}
}

// clampQuantity bounds a requested quantity by the available stock.
func clampQuantity(n, stock int) int {
	if n > stock {
		return stock
	}
	return n
}

// Encode serializes cart items to the snapshot wire format: a JSON array of
// {product, quantity} pairs.
func Encode(items []model.CartItem) ([]byte, error) {
	if items == nil {
		items = []model.CartItem{}
	}
	return json.Marshal(items)
}

// Decode parses a snapshot. The ProductSnapshot decoder coerces null or
// negative prices and stock levels to zero.
func Decode(data []byte) ([]model.CartItem, error) {
	var items []model.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
