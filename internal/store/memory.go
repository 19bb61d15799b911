package store

import (
	"context"
	"sync"

	"shopfront/internal/domain"
)

// MemoryStore keeps the snapshot in process memory only. It backs the
// ":memory:" state dir and tests; the cart degrades to ephemeral with it.
type MemoryStore struct {
	mu  sync.RWMutex
	raw []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (domain.Cart, error) {
	m.mu.RLock()
	raw := m.raw
	m.mu.RUnlock()

	if raw == nil {
		return domain.Empty(), nil
	}

	cart, err := decodeSnapshot(raw)
	if err != nil {
		m.mu.Lock()
		m.raw = nil
		m.mu.Unlock()
		return domain.Empty(), nil
	}
	return cart, nil
}

func (m *MemoryStore) Save(ctx context.Context, cart domain.Cart) error {
	raw, err := encodeSnapshot(cart)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.raw = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error { return nil }
