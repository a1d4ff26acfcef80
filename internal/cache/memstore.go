package cache

import (
	"context"
	"sync"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
)

// MemStore is an in-memory Store, used in tests and when caching is
// disabled for a run but the gate wiring stays the same.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]api.InferenceResult
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string]api.InferenceResult)}
}

func (m *MemStore) Get(_ context.Context, key string) (api.InferenceResult, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res, ok := m.entries[key]
	return res, ok, nil
}

func (m *MemStore) Put(_ context.Context, key string, res api.InferenceResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = res
	return nil
}

func (m *MemStore) Close() error { return nil }

// Len returns the number of stored entries.
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
