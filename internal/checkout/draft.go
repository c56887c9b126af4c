// Package checkout keeps the per-session checkout draft and builds the
// outbound order handoff (WhatsApp confirmation message plus payment link).
// The draft lives independently of the cart; clearing one never touches the
// other.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/delegance/storefront-backend/internal/statestore"
	"github.com/delegance/storefront-backend/pkg/enums"
)

const keyPrefix = "delegance:checkout_draft:v1:"

// Key returns the persisted-record key for a session.
func Key(sessionID string) string {
	return fmt.Sprintf("%s%s", keyPrefix, sessionID)
}

// Draft is the autosaved checkout form state. UpdatedAt is set by Save in
// unix milliseconds; a non-positive value marks the record unusable.
type Draft struct {
	Name      string               `json:"name"`
	Notes     string               `json:"notes"`
	Method    enums.DeliveryMethod `json:"method"`
	UpdatedAt int64                `json:"updatedAt"`
}

// Valid reports whether a loaded draft has a usable shape.
func (d Draft) Valid() bool {
	if d.UpdatedAt <= 0 {
		return false
	}
	return d.Method == "" || d.Method.IsValid()
}

// DraftManager hands out per-session draft stores backed by a shared codec.
type DraftManager struct {
	codec *statestore.Codec
	now   func() time.Time
}

// NewDraftManager wires the manager to its persistence codec.
func NewDraftManager(codec *statestore.Codec) (*DraftManager, error) {
	if codec == nil {
		return nil, fmt.Errorf("statestore codec is required")
	}
	return &DraftManager{codec: codec, now: time.Now}, nil
}

// ForSession builds the draft store for one session.
func (m *DraftManager) ForSession(sessionID string) *DraftStore {
	return &DraftStore{codec: m.codec, key: Key(sessionID), now: m.now}
}

// DraftStore reads and writes a single session's draft. Save stamps are
// strictly increasing per instance so repeated autosaves within the same
// millisecond still order deterministically.
type DraftStore struct {
	mu        sync.Mutex
	codec     *statestore.Codec
	key       string
	now       func() time.Time
	lastStamp int64
}

// Load returns the stored draft, or nil when none was ever saved or the
// stored record is unusable. It never returns an error.
func (s *DraftStore) Load(ctx context.Context) *Draft {
	draft, ok := statestore.Load(ctx, s.codec, s.key, Draft.Valid)
	if !ok {
		return nil
	}
	return &draft
}

// Save overwrites the whole record with the given fields stamped now.
// Autosave calls this on every field edit; persistence failures are
// swallowed by the codec. The stamped draft is returned.
func (s *DraftStore) Save(ctx context.Context, draft Draft) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := s.now().UnixMilli()
	if stamp <= s.lastStamp {
		stamp = s.lastStamp + 1
	}
	s.lastStamp = stamp
	draft.UpdatedAt = stamp

	statestore.Save(ctx, s.codec, s.key, draft)
	return draft
}

// Clear deletes the stored draft, best-effort.
func (s *DraftStore) Clear(ctx context.Context) {
	statestore.Delete(ctx, s.codec, s.key)
}
