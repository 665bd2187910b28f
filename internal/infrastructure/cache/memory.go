package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"starcast/internal/ports"
)

// Memory is an in-process TTL cache for shaped reading payloads. The key
// space is small and bounded (sign x day x language x endpoint kind), so
// there is no eviction: expiry is checked lazily on read and an expired
// entry stays in the map until the next Set overwrites it.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	payload   json.RawMessage
	expiresAt time.Time
}

var _ ports.ReadingCache = (*Memory)(nil)

func NewMemory() *Memory {
	return NewMemoryWithClock(time.Now)
}

// NewMemoryWithClock injects the clock, which tests use to step past TTLs.
func NewMemoryWithClock(now func() time.Time) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Get returns the stored payload while now < expiresAt, otherwise reports
// absent. Expired entries are not deleted here.
func (m *Memory) Get(_ context.Context, key string) (json.RawMessage, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if !m.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.payload, true
}

// Set unconditionally replaces any entry for key with a fresh payload and
// expiry. Entries are replaced whole, never merged.
func (m *Memory) Set(_ context.Context, key string, payload json.RawMessage, ttl time.Duration) {
	e := entry{
		payload:   payload,
		expiresAt: m.now().Add(ttl),
	}

	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
}

// Len reports the number of stored entries, fresh or expired.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
