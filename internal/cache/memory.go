package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is the in-process Store used when no Redis URL is configured.
// Entries expire lazily on read.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

// Get returns the cached value if present and unexpired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores a value. A zero ttl means no expiry.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
}
