package listing

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/modules/access"
	"github.com/P-N-S-U/backend/internal/modules/identity"
	"github.com/P-N-S-U/backend/internal/platform/errs"
)

// Service defines listing business logic.
type Service interface {
	CreateListing(ctx context.Context, caller identity.Identity, req CreateListingRequest) (*Listing, error)
	GetListing(ctx context.Context, id string) (*Listing, error)
	ListListings(ctx context.Context, category string) ([]*Listing, error)
	UpdateListing(ctx context.Context, caller identity.Identity, id string, req UpdateListingRequest) (*Listing, error)
	DeleteListing(ctx context.Context, caller identity.Identity, id string) error
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateListing(ctx context.Context, caller identity.Identity, req CreateListingRequest) (*Listing, error) {
	if !caller.IsVerifiedProducer() {
		return nil, errs.New(errs.CodeForbidden, "only verified producers can add listings")
	}
	l := &Listing{
		ID:          uuid.New(),
		ProducerID:  caller.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Category:    strings.TrimSpace(req.Category),
		Quantity:    req.Quantity,
		ImageURL:    strings.TrimSpace(req.ImageURL),
	}
	if err := validate(l); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, errs.Wrap(err, errs.CodeInternal, "create listing")
	}
	return l, nil
}

func (s *service) GetListing(ctx context.Context, id string) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return l, nil
}

func (s *service) ListListings(ctx context.Context, category string) ([]*Listing, error) {
	listings, err := s.repo.List(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeInternal, "list listings")
	}
	return listings, nil
}

func (s *service) UpdateListing(ctx context.Context, caller identity.Identity, id string, req UpdateListingRequest) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if err := access.RequireOwnership(l.ProducerID, caller); err != nil {
		return nil, err
	}

	if req.Name != nil {
		l.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		l.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		l.Price = *req.Price
	}
	if req.Category != nil {
		l.Category = strings.TrimSpace(*req.Category)
	}
	if req.Quantity != nil {
		l.Quantity = *req.Quantity
	}
	if req.ImageURL != nil {
		l.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if err := validate(l); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, notFound(err)
	}
	return l, nil
}

func (s *service) DeleteListing(ctx context.Context, caller identity.Identity, id string) error {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if err := access.RequireOwnership(l.ProducerID, caller); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	return nil
}

func validate(l *Listing) error {
	switch {
	case l.Name == "":
		return errs.New(errs.CodeValidation, "name is required")
	case l.Description == "":
		return errs.New(errs.CodeValidation, "description is required")
	case l.Category == "":
		return errs.New(errs.CodeValidation, "category is required")
	case l.ImageURL == "":
		return errs.New(errs.CodeValidation, "image_url is required")
	case l.Price <= 0:
		return errs.New(errs.CodeValidation, "price must be greater than 0")
	case l.Quantity < 0:
		return errs.New(errs.CodeValidation, "quantity must not be negative")
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, errs.ErrNotFound) {
		return errs.Wrap(err, errs.CodeNotFound, "listing not found")
	}
	return errs.Wrap(err, errs.CodeInternal, "load listing")
}
