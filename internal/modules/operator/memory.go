package operator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/platform/errs"
)

type InMemoryRepository struct {
	mu        sync.RWMutex
	operators map[uuid.UUID]Operator
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{operators: make(map[uuid.UUID]Operator)}
}

func (m *InMemoryRepository) CreateOperator(_ context.Context, o *Operator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.operators {
		if existing.Email == o.Email {
			return errs.ErrConflict
		}
	}
	now := time.Now()
	o.CreatedAt, o.UpdatedAt = now, now
	m.operators[o.ID] = *o
	return nil
}

func (m *InMemoryRepository) GetOperatorByEmail(_ context.Context, email string) (*Operator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.operators {
		if o.Email == email {
			o := o
			return &o, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *InMemoryRepository) GetOperatorByID(_ context.Context, id uuid.UUID) (*Operator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.operators[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &o, nil
}
