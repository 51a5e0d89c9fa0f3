package listing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/P-N-S-U/backend/internal/modules/identity"
	"github.com/P-N-S-U/backend/internal/platform/errs"
)

type ServiceSuite struct {
	suite.Suite
	repo    *InMemoryRepository
	service Service
	owner   identity.Identity
	other   identity.Identity
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.repo = NewInMemoryRepository()
	s.service = NewService(s.repo)
	s.owner = identity.Producer(uuid.New(), "owner@example.com", true)
	s.other = identity.Producer(uuid.New(), "other@example.com", true)
	s.ctx = context.Background()
}

func validRequest() CreateListingRequest {
	return CreateListingRequest{
		Name:        "Heirloom tomatoes",
		Description: "Vine ripened",
		Price:       4.5,
		Category:    "Vegetables",
		Quantity:    20,
		ImageURL:    "/uploads/tomatoes.jpg",
	}
}

func (s *ServiceSuite) create() *Listing {
	l, err := s.service.CreateListing(s.ctx, s.owner, validRequest())
	s.Require().NoError(err)
	return l
}

func (s *ServiceSuite) TestCreate() {
	s.Run("verified producer owns the new listing", func() {
		l := s.create()
		s.Equal(s.owner.ID, l.ProducerID)

		got, err := s.service.GetListing(s.ctx, l.ID.String())
		s.Require().NoError(err)
		s.Equal("Heirloom tomatoes", got.Name)
	})

	s.Run("unverified producer is forbidden", func() {
		_, err := s.service.CreateListing(s.ctx, identity.Producer(uuid.New(), "new@example.com", false), validRequest())
		s.True(errs.HasCode(err, errs.CodeForbidden))
	})

	s.Run("buyer is forbidden", func() {
		_, err := s.service.CreateListing(s.ctx, identity.Buyer(uuid.New(), "b@example.com"), validRequest())
		s.True(errs.HasCode(err, errs.CodeForbidden))
	})

	s.Run("validation", func() {
		cases := map[string]func(*CreateListingRequest){
			"zero price":        func(r *CreateListingRequest) { r.Price = 0 },
			"negative quantity": func(r *CreateListingRequest) { r.Quantity = -1 },
			"missing name":      func(r *CreateListingRequest) { r.Name = "  " },
			"missing image":     func(r *CreateListingRequest) { r.ImageURL = "" },
		}
		for name, mutate := range cases {
			req := validRequest()
			mutate(&req)
			_, err := s.service.CreateListing(s.ctx, s.owner, req)
			s.True(errs.HasCode(err, errs.CodeValidation), name)
		}
	})

	s.Run("zero quantity allowed", func() {
		req := validRequest()
		req.Quantity = 0
		_, err := s.service.CreateListing(s.ctx, s.owner, req)
		s.NoError(err)
	})
}

func (s *ServiceSuite) TestUpdate() {
	l := s.create()
	price := 6.0

	s.Run("non-owner is forbidden", func() {
		_, err := s.service.UpdateListing(s.ctx, s.other, l.ID.String(), UpdateListingRequest{Price: &price})
		s.True(errs.HasCode(err, errs.CodeForbidden))

		got, _ := s.service.GetListing(s.ctx, l.ID.String())
		s.Equal(4.5, got.Price)
	})

	s.Run("owner update is partial and visible", func() {
		updated, err := s.service.UpdateListing(s.ctx, s.owner, l.ID.String(), UpdateListingRequest{Price: &price})
		s.Require().NoError(err)
		s.Equal(6.0, updated.Price)

		got, err := s.service.GetListing(s.ctx, l.ID.String())
		s.Require().NoError(err)
		s.Equal(6.0, got.Price)
		s.Equal("Heirloom tomatoes", got.Name)
	})

	s.Run("owner update still validated", func() {
		bad := -1.0
		_, err := s.service.UpdateListing(s.ctx, s.owner, l.ID.String(), UpdateListingRequest{Price: &bad})
		s.True(errs.HasCode(err, errs.CodeValidation))
	})

	s.Run("missing listing", func() {
		_, err := s.service.UpdateListing(s.ctx, s.owner, uuid.NewString(), UpdateListingRequest{})
		s.True(errs.HasCode(err, errs.CodeNotFound))
	})
}

func (s *ServiceSuite) TestDelete() {
	l := s.create()

	err := s.service.DeleteListing(s.ctx, s.other, l.ID.String())
	s.True(errs.HasCode(err, errs.CodeForbidden))

	s.Require().NoError(s.service.DeleteListing(s.ctx, s.owner, l.ID.String()))
	_, err = s.service.GetListing(s.ctx, l.ID.String())
	s.True(errs.HasCode(err, errs.CodeNotFound))
}

func (s *ServiceSuite) TestListByCategory() {
	s.create()
	fruit := validRequest()
	fruit.Name, fruit.Category = "Apples", "Fruits"
	_, err := s.service.CreateListing(s.ctx, s.owner, fruit)
	s.Require().NoError(err)

	all, err := s.service.ListListings(s.ctx, "")
	s.Require().NoError(err)
	s.Len(all, 2)

	fruits, err := s.service.ListListings(s.ctx, "Fruits")
	s.Require().NoError(err)
	s.Require().Len(fruits, 1)
	s.Equal("Apples", fruits[0].Name)
}
