package producer

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/platform/errs"
)

// InMemoryRepository backs local runs without DATABASE_URL and tests.
type InMemoryRepository struct {
	mu        sync.RWMutex
	producers map[uuid.UUID]Producer
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{producers: make(map[uuid.UUID]Producer)}
}

func (m *InMemoryRepository) CreateProducer(_ context.Context, p *Producer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.producers {
		if strings.EqualFold(existing.Email, p.Email) || existing.Phone == p.Phone {
			return errs.ErrConflict
		}
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	m.producers[p.ID] = clone(*p)
	return nil
}

func (m *InMemoryRepository) GetProducerByEmail(_ context.Context, email string) (*Producer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.producers {
		if p.Email == email {
			c := clone(p)
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *InMemoryRepository) GetProducerByID(_ context.Context, id uuid.UUID) (*Producer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.producers[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := clone(p)
	return &c, nil
}

func (m *InMemoryRepository) ListProducers(_ context.Context, verified *bool) ([]*Producer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Producer
	for _, p := range m.producers {
		if verified != nil && p.Verified != *verified {
			continue
		}
		c := clone(p)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *InMemoryRepository) MarkVerified(_ context.Context, id uuid.UUID, certificateURL, qrCodeURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.producers[id]
	if !ok {
		return errs.ErrNotFound
	}
	p.Verified = true
	p.CertificateURL = certificateURL
	p.QRCodeURL = qrCodeURL
	p.UpdatedAt = time.Now()
	m.producers[id] = p
	return nil
}

func clone(p Producer) Producer {
	p.Documents = append([]string(nil), p.Documents...)
	return p
}
