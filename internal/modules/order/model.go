package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusProcessed OrderStatus = "processed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// ParseStatus accepts any case and reports whether s names a known status.
func ParseStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusProcessed, StatusShipped, StatusDelivered, StatusCancelled:
		return st, true
	}
	return "", false
}

// Order is a buyer's purchase across one or more producers' listings.
type Order struct {
	ID         uuid.UUID    `json:"id"`
	BuyerID    uuid.UUID    `json:"buyer_id"`
	Items      []*OrderItem `json:"items"`
	TotalPrice float64      `json:"total_price"`
	Status     OrderStatus  `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// OrderItem is a single line. ProducerID, Name and UnitPrice are captured
// from the listing when the order is placed.
type OrderItem struct {
	ID         uuid.UUID `json:"id"`
	OrderID    uuid.UUID `json:"order_id"`
	Position   int       `json:"position"`
	ListingID  uuid.UUID `json:"product_id"`
	ProducerID uuid.UUID `json:"producer_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
}

func (i *OrderItem) LineTotal() float64 { return i.UnitPrice * float64(i.Quantity) }

// LineItem is one requested (product, quantity) pair at checkout.
type LineItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderRequest is the payload for creating a new order.
type PlaceOrderRequest struct {
	Items []LineItem `json:"items"`
}

// UpdateStatusRequest is the payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
