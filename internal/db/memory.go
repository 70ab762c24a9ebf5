package db

import (
	"context"
	"sync"
)

// MemoryStore keeps slots in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

// Get returns a copy of the stored blob.
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.slots[key]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return append([]byte(nil), data...), nil
}

// Put stores copies of all slots under one lock.
func (m *MemoryStore) Put(ctx context.Context, slots ...Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range slots {
		m.slots[s.Key] = append([]byte(nil), s.Data...)
	}
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close(ctx context.Context) error {
	return nil
}
