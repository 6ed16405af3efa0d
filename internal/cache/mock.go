package cache

import (
	"context"
	"path"
	"sync"
	"time"
)

// MockCache is an in-memory Cache for tests and for running without a
// Redis server. TTLs are honored lazily on read.
type MockCache struct {
	mu   sync.RWMutex
	data map[string]mockEntry
}

type mockEntry struct {
	value     []byte
	expiresAt time.Time
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string]mockEntry)}
}

func (m *MockCache) Close() error {
	return nil
}

func (m *MockCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.data[key]
	if !ok {
		return nil, ErrMiss
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		return nil, ErrMiss
	}
	return entry.value, nil
}

func (m *MockCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := mockEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.data[key] = entry
	return nil
}

func (m *MockCache) Invalidate(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.data, key)
		}
	}
	return nil
}
