package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/platform/errs"
)

// ErrUnknownIdentity is returned when no store knows the identifier.
var ErrUnknownIdentity = errors.New("unknown identity")

// Source looks an identifier up in one identity store. It returns
// errs.ErrNotFound when the store has no such identity.
type Source interface {
	FindIdentity(ctx context.Context, id uuid.UUID) (Identity, error)
}

// Resolver maps a credential's identity reference onto exactly one identity.
// Stores are consulted in a fixed priority order: operator, buyer, producer.
type Resolver struct {
	sources []Source
}

func NewResolver(operators, buyers, producers Source) *Resolver {
	return &Resolver{sources: []Source{operators, buyers, producers}}
}

// Resolve looks ref up in each store at most once and returns the first hit.
func (r *Resolver) Resolve(ctx context.Context, ref string) (Identity, error) {
	id, err := uuid.Parse(ref)
	if err != nil {
		return Identity{}, unknown()
	}
	for _, src := range r.sources {
		found, err := src.FindIdentity(ctx, id)
		if err == nil {
			return found, nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return Identity{}, errs.Wrap(err, errs.CodeInternal, "resolve identity")
		}
	}
	return Identity{}, unknown()
}

func unknown() error {
	return errs.Wrap(ErrUnknownIdentity, errs.CodeUnauthorized, "unknown identity")
}
