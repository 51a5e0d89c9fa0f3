package operator

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines operator storage. CreateOperator is only used by the
// seed command.
type Repository interface {
	CreateOperator(ctx context.Context, o *Operator) error
	GetOperatorByEmail(ctx context.Context, email string) (*Operator, error)
	GetOperatorByID(ctx context.Context, id uuid.UUID) (*Operator, error)
}
