package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/delegance/storefront-backend/internal/statestore"
	"github.com/delegance/storefront-backend/pkg/money"
)

// Manager hands out per-session cart stores backed by a shared codec.
type Manager struct {
	codec *statestore.Codec
}

// NewManager wires the manager to its persistence codec.
func NewManager(codec *statestore.Codec) (*Manager, error) {
	if codec == nil {
		return nil, fmt.Errorf("statestore codec is required")
	}
	return &Manager{codec: codec}, nil
}

// ForSession builds the cart store for one session, hydrating it exactly
// once from persisted state. A missing or corrupt record yields an empty
// cart.
func (m *Manager) ForSession(ctx context.Context, sessionID string) *Store {
	store := &Store{codec: m.codec, key: Key(sessionID)}
	if state, ok := statestore.Load(ctx, m.codec, store.key, State.Valid); ok {
		store.state = state
	}
	return store
}

// Store is a single session's cart. Mutations are serialized per instance;
// concurrent writers on separate instances of the same session resolve
// last-write-wins at the persistence layer.
type Store struct {
	mu    sync.Mutex
	codec *statestore.Codec
	key   string
	state State
}

// AddItem merges qty into an existing line with the same ID, keeping the
// stored snapshot of price and presentation fields, or appends a new line.
// Callers are responsible for rejecting qty < 1 before this point.
func (s *Store) AddItem(ctx context.Context, item LineItem, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Items {
		if s.state.Items[i].ID == item.ID {
			s.state.Items[i].Qty += qty
			s.persist(ctx)
			return
		}
	}
	item.Qty = qty
	s.state.Items = append(s.state.Items, item)
	s.persist(ctx)
}

// RemoveItem drops the line with the given ID. Unknown IDs are a no-op and
// do not touch persistence.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Items {
		if s.state.Items[i].ID == id {
			s.state.Items = append(s.state.Items[:i], s.state.Items[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// SetQty replaces the quantity on an existing line. A qty of zero or less
// removes the line. Unknown IDs are a no-op. Upper bounds are enforced by
// the caller before this point.
func (s *Store) SetQty(ctx context.Context, id string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Items {
		if s.state.Items[i].ID != id {
			continue
		}
		if qty <= 0 {
			s.state.Items = append(s.state.Items[:i], s.state.Items[i+1:]...)
		} else {
			s.state.Items[i].Qty = qty
		}
		s.persist(ctx)
		return
	}
}

// Clear empties the cart and deletes the persisted record; an empty cart
// and an absent record are the same state.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{}
	statestore.Delete(ctx, s.codec, s.key)
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]LineItem, len(s.state.Items))
	copy(items, s.state.Items)
	return items
}

// Subtotal recomputes the rounded sum of price×qty across all lines.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.state.Items {
		total += item.Price * float64(item.Qty)
	}
	return money.Round2(total)
}

// ItemCount is the total unit count across all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, item := range s.state.Items {
		count += item.Qty
	}
	return count
}

// persist writes the full record; callers hold the mutex. Failures are
// swallowed by the codec so the in-memory cart stays authoritative.
func (s *Store) persist(ctx context.Context) {
	statestore.Save(ctx, s.codec, s.key, s.state)
}
