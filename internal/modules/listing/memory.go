package listing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/platform/errs"
)

// InMemoryRepository backs local runs without DATABASE_URL and tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	listings map[uuid.UUID]Listing
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{listings: make(map[uuid.UUID]Listing)}
}

func (m *InMemoryRepository) Create(_ context.Context, l *Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	l.CreatedAt, l.UpdatedAt = now, now
	m.listings[l.ID] = *l
	return nil
}

func (m *InMemoryRepository) GetByID(_ context.Context, id string) (*Listing, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.listings[uid]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &l, nil
}

func (m *InMemoryRepository) List(_ context.Context, category string) ([]*Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*Listing{}
	for _, l := range m.listings {
		if category != "" && l.Category != category {
			continue
		}
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *InMemoryRepository) Update(_ context.Context, l *Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.listings[l.ID]; !ok {
		return errs.ErrNotFound
	}
	l.UpdatedAt = time.Now()
	m.listings[l.ID] = *l
	return nil
}

func (m *InMemoryRepository) Delete(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return errs.ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.listings[uid]; !ok {
		return errs.ErrNotFound
	}
	delete(m.listings, uid)
	return nil
}
