package buyer

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines buyer storage. Lookups return errs.ErrNotFound for a
// missing buyer and Create returns errs.ErrConflict for a taken email.
type Repository interface {
	CreateBuyer(ctx context.Context, b *Buyer) error
	GetBuyerByEmail(ctx context.Context, email string) (*Buyer, error)
	GetBuyerByID(ctx context.Context, id uuid.UUID) (*Buyer, error)
	SaveCart(ctx context.Context, id uuid.UUID, cart []CartItem) error
}
