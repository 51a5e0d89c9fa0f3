package producer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"path"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/P-N-S-U/backend/internal/modules/auth"
	"github.com/P-N-S-U/backend/internal/modules/identity"
	"github.com/P-N-S-U/backend/internal/platform/errs"
	"github.com/P-N-S-U/backend/internal/platform/metrics"
	"github.com/P-N-S-U/backend/internal/platform/render"
	"github.com/P-N-S-U/backend/internal/platform/storage"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest, docs []Document) (*Producer, error)
	Login(ctx context.Context, email, password string) (string, *Producer, error)
	Profile(ctx context.Context, caller identity.Identity) (*Producer, error)
	Verification(ctx context.Context, id string) (*Verification, error)
}

type service struct {
	repo    Repository
	hasher  auth.Hasher
	issuer  auth.Issuer
	store   storage.Store
	metrics *metrics.Metrics
}

func NewService(repo Repository, hasher auth.Hasher, issuer auth.Issuer, store storage.Store, m *metrics.Metrics) Service {
	return &service{repo: repo, hasher: hasher, issuer: issuer, store: store, metrics: m}
}

func (s *service) Register(ctx context.Context, req RegisterRequest, docs []Document) (*Producer, error) {
	p := &Producer{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
	}
	switch {
	case p.Name == "":
		return nil, errs.New(errs.CodeValidation, "name is required")
	case p.Phone == "":
		return nil, errs.New(errs.CodeValidation, "phone is required")
	case p.Address == "":
		return nil, errs.New(errs.CodeValidation, "address is required")
	case req.Password == "":
		return nil, errs.New(errs.CodeValidation, "password is required")
	case len(docs) == 0:
		return nil, errs.New(errs.CodeValidation, "at least one document is required")
	case len(docs) > MaxDocuments:
		return nil, errs.Newf(errs.CodeValidation, "at most %d documents are accepted", MaxDocuments)
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return nil, errs.New(errs.CodeValidation, "a valid email is required")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeInternal, "hash password")
	}
	p.PasswordHash = hash

	documents, err := s.storeDocuments(ctx, p.ID, docs)
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeInternal, "store document")
	}
	p.Documents = documents

	if err := s.repo.CreateProducer(ctx, p); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return nil, errs.Wrap(err, errs.CodeConflict, "email or phone already registered")
		}
		return nil, errs.Wrap(err, errs.CodeInternal, "create producer")
	}
	return p, nil
}

// Login issues a credential carrying the verified flag as stored right now.
func (s *service) Login(ctx context.Context, email, password string) (string, *Producer, error) {
	p, err := s.repo.GetProducerByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.metrics.IncLogin(auth.RoleProducer, "rejected")
			return "", nil, invalidCredentials()
		}
		return "", nil, errs.Wrap(err, errs.CodeInternal, "load producer")
	}
	if err := s.hasher.Compare(p.PasswordHash, password); err != nil {
		s.metrics.IncLogin(auth.RoleProducer, "rejected")
		return "", nil, invalidCredentials()
	}

	token, err := s.issuer.Issue(auth.Subject{ID: p.ID, Email: p.Email, Role: auth.RoleProducer, Verified: p.Verified})
	if err != nil {
		return "", nil, err
	}
	s.metrics.IncLogin(auth.RoleProducer, "ok")
	return token, p, nil
}

func (s *service) Profile(ctx context.Context, caller identity.Identity) (*Producer, error) {
	if !caller.IsProducer() {
		return nil, errs.New(errs.CodeForbidden, "access denied: producers only")
	}
	return s.load(ctx, caller.ID)
}

func (s *service) Verification(ctx context.Context, id string) (*Verification, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, errs.New(errs.CodeNotFound, "producer not found")
	}
	p, err := s.load(ctx, parsed)
	if err != nil {
		return nil, err
	}
	v := &Verification{ID: p.ID, Name: p.Name, Verified: p.Verified}
	if p.Verified {
		v.CertificateNumber = render.Certificate{ProducerID: p.ID.String()}.Number()
		v.CertificateURL = p.CertificateURL
		v.QRCodeURL = p.QRCodeURL
	}
	return v, nil
}

// storeDocuments uploads docs in parallel; locators keep the upload order.
func (s *service) storeDocuments(ctx context.Context, id uuid.UUID, docs []Document) ([]string, error) {
	locators := make([]string, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	for i, doc := range docs {
		i, doc := i, doc
		key := fmt.Sprintf("documents/%s/%d-%s", id, i+1, path.Base(doc.Filename))
		g.Go(func() error {
			locator, err := s.store.Put(ctx, key, doc.Content)
			if err != nil {
				return err
			}
			locators[i] = locator
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return locators, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*Producer, error) {
	p, err := s.repo.GetProducerByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.Wrap(err, errs.CodeNotFound, "producer not found")
		}
		return nil, errs.Wrap(err, errs.CodeInternal, "load producer")
	}
	return p, nil
}

func invalidCredentials() error {
	return errs.Wrap(auth.ErrInvalidCredentials, errs.CodeUnauthorized, "invalid credentials")
}
