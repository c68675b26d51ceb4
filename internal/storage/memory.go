package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// MemoryStore is an in-process PhotoStore for tests and local development.
// Blobs live in a map; signed URLs are synthetic and carry the expiry as a
// query parameter so callers can still assert on the TTL.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Put uploads a blob under the given key.
func (m *MemoryStore) Put(_ context.Context, key, _ string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
	return nil
}

// Delete removes a blob.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[key]; !ok {
		return fmt.Errorf("memory store: no object %q", key)
	}
	delete(m.blobs, key)
	return nil
}

// SignedURL returns a synthetic read URL for a stored blob.
func (m *MemoryStore) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.blobs[key]; !ok {
		return "", fmt.Errorf("memory store: no object %q", key)
	}
	return fmt.Sprintf("memory://%s?expires_in=%ds", key, int(ttl.Seconds())), nil
}

// Len reports the number of stored blobs.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}

// Get returns a stored blob's bytes, for assertions in tests.
func (m *MemoryStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.blobs[key]
	return data, ok
}
