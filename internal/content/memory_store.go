package content

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/zaqqye/agency_backend/internal/models"
)

// MemoryStore keeps sections in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sections map[string]models.ContentSection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sections: map[string]models.ContentSection{}}
}

func (m *MemoryStore) Find(_ context.Context, section string) (*models.ContentSection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.sections[section]
	if !ok {
		return nil, ErrNotFound
	}
	return copySection(rec)
}

func (m *MemoryStore) List(_ context.Context) ([]models.ContentSection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.ContentSection, 0, len(m.sections))
	for _, rec := range m.sections {
		cp, err := copySection(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, *cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Section < out[j].Section })
	return out, nil
}

func (m *MemoryStore) Upsert(_ context.Context, section string, fields Fields, now time.Time) (*models.ContentSection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.sections[section]
	if !ok {
		rec = models.ContentSection{Section: section, CreatedAt: now}
	}
	rec.Fields = shallowMerge(rec.Fields, fields)
	rec.UpdatedAt = now
	m.sections[section] = rec
	return copySection(rec)
}

func (m *MemoryStore) Close(context.Context) error { return nil }

func copySection(rec models.ContentSection) (*models.ContentSection, error) {
	f, err := normalize(rec.Fields)
	if err != nil {
		return nil, err
	}
	rec.Fields = toJSONMap(f)
	return &rec, nil
}
