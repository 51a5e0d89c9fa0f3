package buyer

import (
	"time"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/modules/listing"
)

// Buyer is a self-registered purchasing account.
type Buyer struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"`
	Cart         []CartItem `json:"cart"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CartItem is one entry of the saved cart snapshot.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// CartLine is a cart item with its listing populated; Listing is nil when
// the listing no longer exists.
type CartLine struct {
	ProductID uuid.UUID        `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Listing   *listing.Listing `json:"product,omitempty"`
}

// RegisterRequest is the buyer sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SaveCartRequest struct {
	Cart []CartItem `json:"cart"`
}
