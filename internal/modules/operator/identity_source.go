package operator

import (
	"context"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/modules/identity"
)

// IdentitySource exposes the operator store to the identity resolver.
type IdentitySource struct {
	repo Repository
}

func NewIdentitySource(repo Repository) *IdentitySource {
	return &IdentitySource{repo: repo}
}

func (s *IdentitySource) FindIdentity(ctx context.Context, id uuid.UUID) (identity.Identity, error) {
	o, err := s.repo.GetOperatorByID(ctx, id)
	if err != nil {
		return identity.Identity{}, err
	}
	return identity.Operator(o.ID, o.Email), nil
}
