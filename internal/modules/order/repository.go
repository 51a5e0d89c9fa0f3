package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for orders. Missing orders yield
// errs.ErrNotFound.
type Repository interface {
	// CreateOrder persists a new order and its items atomically in a transaction.
	CreateOrder(ctx context.Context, o *Order) error

	// GetOrderByID retrieves an order with its items.
	GetOrderByID(ctx context.Context, id string) (*Order, error)

	// ListOrdersByBuyer returns all orders placed by a buyer.
	ListOrdersByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*Order, error)

	// ListOrdersByProducer returns orders holding at least one line of the producer.
	ListOrdersByProducer(ctx context.Context, producerID uuid.UUID) ([]*Order, error)

	ListOrders(ctx context.Context) ([]*Order, error)

	// UpdateStatus overwrites the status; the last writer wins.
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error
}
