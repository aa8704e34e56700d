// Package kv provides the in-memory adapter for the persistent key-value
// store port. It is the default store and the substitute used in tests;
// durable persistence lives in adapters/sqlite.
package kv

import (
	"sync"
	"sync/atomic"

	"github.com/unimatehq/unimate/core"
)

// Memory implements core.Store with a mutex-guarded map. Values are copied
// on the way in and out so callers can't alias the stored slices.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte

	// counters
	hits    int64
	misses  int64
	writes  int64
	deletes int64
}

// Ensure Memory implements the store port
var _ core.Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Read returns the value stored under key, or core.ErrKeyNotFound.
func (m *Memory) Read(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		atomic.AddInt64(&m.misses, 1)
		return nil, core.ErrKeyNotFound
	}

	atomic.AddInt64(&m.hits, 1)
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Write stores value under key, replacing any previous value.
func (m *Memory) Write(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored

	atomic.AddInt64(&m.writes, 1)
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, existed := m.data[key]; existed {
		delete(m.data, key)
		atomic.AddInt64(&m.deletes, 1)
	}
	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Stats tracks store activity for diagnostics.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Writes  int64 `json:"writes"`
	Deletes int64 `json:"deletes"`
	Size    int   `json:"size"`
}

// Stats returns a snapshot of the store's counters.
func (m *Memory) Stats() Stats {
	return Stats{
		Hits:    atomic.LoadInt64(&m.hits),
		Misses:  atomic.LoadInt64(&m.misses),
		Writes:  atomic.LoadInt64(&m.writes),
		Deletes: atomic.LoadInt64(&m.deletes),
		Size:    m.Len(),
	}
}
