package buyer

import (
	"context"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/modules/identity"
)

// IdentitySource exposes the buyer store to the identity resolver.
type IdentitySource struct {
	repo Repository
}

func NewIdentitySource(repo Repository) *IdentitySource {
	return &IdentitySource{repo: repo}
}

func (s *IdentitySource) FindIdentity(ctx context.Context, id uuid.UUID) (identity.Identity, error) {
	b, err := s.repo.GetBuyerByID(ctx, id)
	if err != nil {
		return identity.Identity{}, err
	}
	return identity.Buyer(b.ID, b.Email), nil
}
