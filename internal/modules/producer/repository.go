package producer

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for producer data storage.
type Repository interface {
	CreateProducer(ctx context.Context, p *Producer) error
	GetProducerByEmail(ctx context.Context, email string) (*Producer, error)
	GetProducerByID(ctx context.Context, id uuid.UUID) (*Producer, error)
	// ListProducers filters on the verified flag when verified is non-nil.
	ListProducers(ctx context.Context, verified *bool) ([]*Producer, error)
	// MarkVerified sets verified, certificate and QR locators in one write.
	MarkVerified(ctx context.Context, id uuid.UUID, certificateURL, qrCodeURL string) error
}
