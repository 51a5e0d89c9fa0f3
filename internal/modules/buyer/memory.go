package buyer

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/platform/errs"
)

// InMemoryRepository backs local runs without DATABASE_URL and tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	buyers map[uuid.UUID]Buyer
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{buyers: make(map[uuid.UUID]Buyer)}
}

func (m *InMemoryRepository) CreateBuyer(_ context.Context, b *Buyer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.buyers {
		if strings.EqualFold(existing.Email, b.Email) {
			return errs.ErrConflict
		}
	}
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	m.buyers[b.ID] = *b
	return nil
}

func (m *InMemoryRepository) GetBuyerByEmail(_ context.Context, email string) (*Buyer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.buyers {
		if b.Email == email {
			b := b
			return &b, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *InMemoryRepository) GetBuyerByID(_ context.Context, id uuid.UUID) (*Buyer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.buyers[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &b, nil
}

func (m *InMemoryRepository) SaveCart(_ context.Context, id uuid.UUID, cart []CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buyers[id]
	if !ok {
		return errs.ErrNotFound
	}
	b.Cart = append([]CartItem(nil), cart...)
	b.UpdatedAt = time.Now()
	m.buyers[id] = b
	return nil
}
