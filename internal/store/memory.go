package store

import "sync"

// MemBackend is an in-memory backend for tests and throwaway demo runs.
type MemBackend struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemBackend() *MemBackend {
	return &MemBackend{blobs: make(map[string][]byte)}
}

func (m *MemBackend) Read(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (m *MemBackend) WriteBatch(batch map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, data := range batch {
		cp := make([]byte, len(data))
		copy(cp, data)
		m.blobs[key] = cp
	}

	return nil
}

func (m *MemBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, key)
	return nil
}

func (m *MemBackend) Ping() error {
	return nil
}

func (m *MemBackend) Close() error {
	return nil
}
