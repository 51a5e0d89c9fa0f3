package order

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
	mu     sync.RWMutex
	orders map[uuid.UUID]*Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make(map[uuid.UUID]*Order)}
}

func (m *InMemoryRepository) CreateOrder(_ context.Context, o *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[o.ID]; ok {
		return errs.ErrConflict
	}
	now := time.Now()
	o.CreatedAt, o.UpdatedAt = now, now
	m.orders[o.ID] = clone(o)
	return nil
}

func (m *InMemoryRepository) GetOrderByID(_ context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[uid]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return clone(o), nil
}

func (m *InMemoryRepository) ListOrdersByBuyer(_ context.Context, buyerID uuid.UUID) ([]*Order, error) {
	return m.filter(func(o *Order) bool { return o.BuyerID == buyerID }), nil
}

func (m *InMemoryRepository) ListOrdersByProducer(_ context.Context, producerID uuid.UUID) ([]*Order, error) {
	return m.filter(func(o *Order) bool {
		for _, item := range o.Items {
			if item.ProducerID == producerID {
				return true
			}
		}
		return false
	}), nil
}

func (m *InMemoryRepository) ListOrders(_ context.Context) ([]*Order, error) {
	return m.filter(func(*Order) bool { return true }), nil
}

func (m *InMemoryRepository) UpdateStatus(_ context.Context, id uuid.UUID, status OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return errs.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

func (m *InMemoryRepository) filter(keep func(*Order) bool) []*Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Order
	for _, o := range m.orders {
		if keep(o) {
			out = append(out, clone(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func clone(o *Order) *Order {
	c := *o
	c.Items = make([]*OrderItem, len(o.Items))
	for i, item := range o.Items {
		it := *item
		c.Items[i] = &it
	}
	return &c
}
