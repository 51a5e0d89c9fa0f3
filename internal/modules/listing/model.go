package listing

import (
	"time"

	"github.com/google/uuid"
)

// Listing is a producer-owned catalog entry.
type Listing struct {
	ID          uuid.UUID `json:"id"`
	ProducerID  uuid.UUID `json:"producer_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	ImageURL    string    `json:"image_url"`
	QRCodeURL   string    `json:"qr_code_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateListingRequest holds the data for a new listing.
type CreateListingRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"image_url"`
}

// UpdateListingRequest is a partial update; nil fields are left unchanged.
type UpdateListingRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}
