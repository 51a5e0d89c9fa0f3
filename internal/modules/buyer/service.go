package buyer

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/modules/auth"
	"github.com/P-N-S-U/backend/internal/modules/identity"
	"github.com/P-N-S-U/backend/internal/modules/listing"
	"github.com/P-N-S-U/backend/internal/platform/errs"
	"github.com/P-N-S-U/backend/internal/platform/metrics"
)

// ListingReader loads listings for cart population.
type ListingReader interface {
	GetListing(ctx context.Context, id string) (*listing.Listing, error)
}

// Service defines buyer business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Buyer, error)
	Login(ctx context.Context, email, password string) (string, *Buyer, error)
	Profile(ctx context.Context, caller identity.Identity) (*Buyer, error)
	SaveCart(ctx context.Context, caller identity.Identity, cart []CartItem) error
	GetCart(ctx context.Context, caller identity.Identity) ([]CartLine, error)
}

type service struct {
	repo     Repository
	hasher   auth.Hasher
	issuer   auth.Issuer
	listings ListingReader
	metrics  *metrics.Metrics
}

func NewService(repo Repository, hasher auth.Hasher, issuer auth.Issuer, listings ListingReader, m *metrics.Metrics) Service {
	return &service{repo: repo, hasher: hasher, issuer: issuer, listings: listings, metrics: m}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Buyer, error) {
	b := &Buyer{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(req.Name),
		Email: normalizeEmail(req.Email),
		Phone: strings.TrimSpace(req.Phone),
	}
	switch {
	case b.Name == "":
		return nil, errs.New(errs.CodeValidation, "name is required")
	case b.Phone == "":
		return nil, errs.New(errs.CodeValidation, "phone is required")
	case req.Password == "":
		return nil, errs.New(errs.CodeValidation, "password is required")
	}
	if _, err := mail.ParseAddress(b.Email); err != nil {
		return nil, errs.New(errs.CodeValidation, "a valid email is required")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeInternal, "hash password")
	}
	b.PasswordHash = hash

	if err := s.repo.CreateBuyer(ctx, b); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return nil, errs.Wrap(err, errs.CodeConflict, "email already registered")
		}
		return nil, errs.Wrap(err, errs.CodeInternal, "create buyer")
	}
	return b, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *Buyer, error) {
	b, err := s.repo.GetBuyerByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.metrics.IncLogin(auth.RoleBuyer, "rejected")
			return "", nil, invalidCredentials()
		}
		return "", nil, errs.Wrap(err, errs.CodeInternal, "load buyer")
	}
	if err := s.hasher.Compare(b.PasswordHash, password); err != nil {
		s.metrics.IncLogin(auth.RoleBuyer, "rejected")
		return "", nil, invalidCredentials()
	}

	token, err := s.issuer.Issue(auth.Subject{ID: b.ID, Email: b.Email, Role: auth.RoleBuyer})
	if err != nil {
		return "", nil, err
	}
	s.metrics.IncLogin(auth.RoleBuyer, "ok")
	return token, b, nil
}

func (s *service) Profile(ctx context.Context, caller identity.Identity) (*Buyer, error) {
	if !caller.IsBuyer() {
		return nil, errs.New(errs.CodeForbidden, "access denied: buyers only")
	}
	return s.load(ctx, caller.ID)
}

func (s *service) SaveCart(ctx context.Context, caller identity.Identity, cart []CartItem) error {
	if !caller.IsBuyer() {
		return errs.New(errs.CodeForbidden, "access denied: buyers only")
	}
	for _, item := range cart {
		if item.ProductID == uuid.Nil {
			return errs.New(errs.CodeValidation, "cart item product_id is required")
		}
		if item.Quantity <= 0 {
			return errs.New(errs.CodeValidation, "cart item quantity must be greater than 0")
		}
	}
	if err := s.repo.SaveCart(ctx, caller.ID, cart); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.Wrap(err, errs.CodeNotFound, "buyer not found")
		}
		return errs.Wrap(err, errs.CodeInternal, "save cart")
	}
	return nil
}

// GetCart returns the saved cart with each listing loaded at read time.
// Entries whose listing was deleted keep a nil Listing.
func (s *service) GetCart(ctx context.Context, caller identity.Identity) ([]CartLine, error) {
	if !caller.IsBuyer() {
		return nil, errs.New(errs.CodeForbidden, "access denied: buyers only")
	}
	b, err := s.load(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(b.Cart))
	for _, item := range b.Cart {
		line := CartLine{ProductID: item.ProductID, Quantity: item.Quantity}
		l, err := s.listings.GetListing(ctx, item.ProductID.String())
		switch {
		case err == nil:
			line.Listing = l
		case !errs.HasCode(err, errs.CodeNotFound):
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*Buyer, error) {
	b, err := s.repo.GetBuyerByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.Wrap(err, errs.CodeNotFound, "buyer not found")
		}
		return nil, errs.Wrap(err, errs.CodeInternal, "load buyer")
	}
	return b, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func invalidCredentials() error {
	return errs.Wrap(auth.ErrInvalidCredentials, errs.CodeUnauthorized, "invalid credentials")
}
