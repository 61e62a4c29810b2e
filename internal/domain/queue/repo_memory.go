package queue

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo keeps entries in process. It is used by the memory store driver
// and by tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	entries []*Entry
	nextID  int64
	last    time.Time
	now     func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, now: time.Now}
}

// WithClock replaces the time source. Tests use it to force equal timestamps.
func (m *MemoryRepo) WithClock(now func() time.Time) *MemoryRepo {
	m.now = now
	return m
}

func (m *MemoryRepo) Append(_ context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ts := m.now().UTC()
	if ts.Before(m.last) {
		ts = m.last
	}
	m.last = ts

	e.ID = m.nextID
	e.CreatedAt = ts
	m.nextID++
	m.entries = append(m.entries, e.clone())
	return nil
}

func (m *MemoryRepo) List(_ context.Context, limit int) ([]*Entry, error) {
	out := m.snapshot()
	Order(out)
	return truncate(out, limit), nil
}

func (m *MemoryRepo) Recent(_ context.Context, limit int) ([]*Entry, error) {
	out := m.snapshot()
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return truncate(out, limit), nil
}

func (m *MemoryRepo) Clear(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.entries))
	m.entries = nil
	return n, nil
}

func (m *MemoryRepo) snapshot() []*Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Entry, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.clone()
	}
	return out
}

func truncate(entries []*Entry, limit int) []*Entry {
	if limit >= 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
