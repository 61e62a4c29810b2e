package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mediqueue/mediqueue/internal/platform/apperr"
)

// MemoryRepo is a thread-safe in-process Repository used by the memory store
// driver and by tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	items  []*Condition // id ascending
	nextID int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1}
}

func (m *MemoryRepo) List(_ context.Context) ([]*Condition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Condition, len(m.items))
	for i, c := range m.items {
		out[i] = c.Clone()
	}
	return out, nil
}

func (m *MemoryRepo) GetByID(_ context.Context, id int64) (*Condition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c := m.find(id); c != nil {
		return c.Clone(), nil
	}
	return nil, fmt.Errorf("condition %d: %w", id, apperr.ErrNotFound)
}

func (m *MemoryRepo) Symptoms(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, c := range m.items {
		for _, s := range c.Symptoms {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemoryRepo) Create(_ context.Context, c *Condition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.byName(c.Disease) != nil {
		return fmt.Errorf("disease %q: %w", c.Disease, apperr.ErrConflict)
	}
	m.insert(c)
	return nil
}

func (m *MemoryRepo) Update(_ context.Context, c *Condition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing := m.find(c.ID)
	if existing == nil {
		return fmt.Errorf("condition %d: %w", c.ID, apperr.ErrNotFound)
	}
	if other := m.byName(c.Disease); other != nil && other.ID != c.ID {
		return fmt.Errorf("disease %q: %w", c.Disease, apperr.ErrConflict)
	}
	*existing = *c.Clone()
	return nil
}

func (m *MemoryRepo) Upsert(_ context.Context, c *Condition) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing := m.byName(c.Disease); existing != nil {
		c.ID = existing.ID
		*existing = *c.Clone()
		return false, nil
	}
	m.insert(c)
	return true, nil
}

func (m *MemoryRepo) insert(c *Condition) {
	c.ID = m.nextID
	m.nextID++
	m.items = append(m.items, c.Clone())
}

func (m *MemoryRepo) find(id int64) *Condition {
	for _, c := range m.items {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (m *MemoryRepo) byName(disease string) *Condition {
	for _, c := range m.items {
		if c.Disease == disease {
			return c
		}
	}
	return nil
}
