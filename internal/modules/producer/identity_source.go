package producer

import (
	"context"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/modules/identity"
)

// IdentitySource exposes the producer store to the identity resolver. The
// verified flag is read from the store on every lookup.
type IdentitySource struct {
	repo Repository
}

func NewIdentitySource(repo Repository) *IdentitySource {
	return &IdentitySource{repo: repo}
}

func (s *IdentitySource) FindIdentity(ctx context.Context, id uuid.UUID) (identity.Identity, error) {
	p, err := s.repo.GetProducerByID(ctx, id)
	if err != nil {
		return identity.Identity{}, err
	}
	return identity.Producer(p.ID, p.Email, p.Verified), nil
}
