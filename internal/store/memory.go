// internal/store/memory.go
//
// In-memory implementation of history.Port.
// Used for throwaway sessions (MIXLE_STORAGE=memory) and in tests.
//
// Characteristics:
//   - Values are kept in a map keyed by storage key.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Values are copied in and out, so callers cannot alias stored bytes.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
)

// Memory is a map-backed Port.
type Memory struct {
	mu   sync.RWMutex      // guards data
	data map[string][]byte // keyed by storage key
}

// NewMemory constructs an empty in-memory Port.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get returns a copy of the value, or nil when the key was never written.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of value under key.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Close() error { return nil }
