package statestore

import (
	"context"
	"sync"
)

// KV is the minimal key/value surface backing persisted storefront state.
// Get reports found=false for an absent key rather than an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// MemoryKV is an in-process KV used by tests and single-node setups.
type MemoryKV struct {
	mu      sync.Mutex
	records map[string]string
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{records: map[string]string{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.records[key]
	return value, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = value
	return nil
}

func (m *MemoryKV) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

// DisabledKV is the storage-less backend: every load sees no stored state
// and every write is a no-op. Used where no durable facility exists.
type DisabledKV struct{}

func (DisabledKV) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (DisabledKV) Set(context.Context, string, string) error         { return nil }
func (DisabledKV) Del(context.Context, string) error                 { return nil }
