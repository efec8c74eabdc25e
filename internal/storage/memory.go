package storage

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value   string
	touched time.Time
}

// MemoryStore is an in-process Store. With a non-zero TTL an entry expires
// once it has not been written or read for that long, which gives it
// session-storage semantics.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]map[string]*memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]map[string]*memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) expired(e *memoryEntry, now time.Time) bool {
	return m.ttl > 0 && now.Sub(e.touched) > m.ttl
}

func (m *MemoryStore) Get(_ context.Context, visitorID, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[visitorID][key]
	if !ok {
		return "", false, nil
	}
	now := m.now()
	if m.expired(e, now) {
		delete(m.entries[visitorID], key)
		return "", false, nil
	}
	e.touched = now
	return e.value, true, nil
}

func (m *MemoryStore) Set(_ context.Context, visitorID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.entries[visitorID]
	if !ok {
		bucket = make(map[string]*memoryEntry)
		m.entries[visitorID] = bucket
	}
	bucket[key] = &memoryEntry{value: value, touched: m.now()}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, visitorID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if bucket, ok := m.entries[visitorID]; ok {
		delete(bucket, key)
		if len(bucket) == 0 {
			delete(m.entries, visitorID)
		}
	}
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for visitorID, bucket := range m.entries {
		for key, e := range bucket {
			if m.expired(e, now) {
				delete(bucket, key)
				removed++
			}
		}
		if len(bucket) == 0 {
			delete(m.entries, visitorID)
		}
	}
	return removed
}
