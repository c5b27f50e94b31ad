package cartstore

import (
	"context"
	"slices"
	"sync"

	"github.com/aaravmahajanofficial/safari-storefront/internal/cart"
)

// MemoryStore is a process-local store for ephemeral sessions and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[key]
	if !ok {
		return nil, cart.ErrSnapshotNotFound
	}

	return slices.Clone(data), nil
}

func (m *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = slices.Clone(data)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
