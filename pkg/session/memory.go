package session

import (
	"context"
	"sync"
)

// MemoryStorage is an in-memory Storage implementation. It is the
// default backend and what the tests use to simulate "restart": keep
// the storage, rebuild the store.
type MemoryStorage struct {
	mu     sync.RWMutex
	data   []byte
	closed bool
}

// NewMemoryStorage creates a new in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Save stores a copy of the identity record.
func (m *MemoryStorage) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStorageClosed{}
	}

	// Copy to prevent mutations through the caller's slice.
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	m.data = dataCopy
	return nil
}

// Load returns a copy of the identity record, or (nil, nil) if none
// has been saved.
func (m *MemoryStorage) Load(ctx context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStorageClosed{}
	}
	if m.data == nil {
		return nil, nil
	}

	dataCopy := make([]byte, len(m.data))
	copy(dataCopy, m.data)
	return dataCopy, nil
}

// Delete removes the identity record.
func (m *MemoryStorage) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStorageClosed{}
	}
	m.data = nil
	return nil
}

// Close marks the storage as closed. Further operations fail with
// ErrStorageClosed.
func (m *MemoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.data = nil
	return nil
}
