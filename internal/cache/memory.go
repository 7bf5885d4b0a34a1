package cache

import (
	"context"
	"sync"
	"time"

	"retodfa/internal/dto"
)

type entry struct {
	doc     *dto.Document
	expires time.Time // zero means never
	seq     uint64
}

// sweepInterval is how many writes pass between expiry sweeps.
const sweepInterval = 256

// Memory is an in-process cache with an optional TTL and entry bound. Stored
// documents are shared between callers and must be treated as read-only.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	seq        uint64
	now        func() time.Time
}

// NewMemory returns a cache whose entries live for ttl and which holds at
// most maxEntries documents, evicting the oldest write first. Zero disables
// either bound.
func NewMemory(ttl time.Duration, maxEntries int) *Memory {
	return &Memory{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (*dto.Document, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false, nil
	}
	return e.doc, true, nil
}

func (m *Memory) Set(_ context.Context, key string, doc *dto.Document) error {
	e := entry{doc: doc}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	e.seq = m.seq
	_, exists := m.entries[key]
	full := m.maxEntries > 0 && !exists && len(m.entries) >= m.maxEntries
	if full || m.seq%sweepInterval == 0 {
		m.sweep()
		_, exists = m.entries[key]
	}
	if m.maxEntries > 0 && !exists {
		for len(m.entries) >= m.maxEntries {
			m.evictOldest()
		}
	}
	m.entries[key] = e
	return nil
}

// sweep drops expired entries. Callers hold m.mu.
func (m *Memory) sweep() {
	if m.ttl <= 0 {
		return
	}
	now := m.now()
	for k, e := range m.entries {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(m.entries, k)
		}
	}
}

// evictOldest drops the least recently written entry. Callers hold m.mu.
func (m *Memory) evictOldest() {
	var (
		oldest string
		lowest uint64
		found  bool
	)
	for k, e := range m.entries {
		if !found || e.seq < lowest {
			oldest, lowest, found = k, e.seq, true
		}
	}
	if found {
		delete(m.entries, oldest)
	}
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
