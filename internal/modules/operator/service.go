package operator

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/modules/auth"
	"github.com/P-N-S-U/backend/internal/modules/certification"
	"github.com/P-N-S-U/backend/internal/modules/identity"
	"github.com/P-N-S-U/backend/internal/modules/producer"
	"github.com/P-N-S-U/backend/internal/platform/errs"
	"github.com/P-N-S-U/backend/internal/platform/metrics"
)

// Certifier runs the producer certification workflow.
type Certifier interface {
	Approve(ctx context.Context, producerID uuid.UUID) (*certification.Result, error)
}

// ProducerLister reads producers for the approval queue.
type ProducerLister interface {
	ListProducers(ctx context.Context, verified *bool) ([]*producer.Producer, error)
}

type Service interface {
	Login(ctx context.Context, email, password string) (string, *Operator, error)
	Approve(ctx context.Context, caller identity.Identity, producerID string) (*certification.Result, error)
	Producers(ctx context.Context, caller identity.Identity, verified *bool) ([]*producer.Producer, error)
}

type service struct {
	repo        Repository
	hasher      auth.Hasher
	issuer      auth.Issuer
	pinnedEmail string
	certifier   Certifier
	producers   ProducerLister
	metrics     *metrics.Metrics
}

// NewService returns the operator service. Only pinnedEmail may sign in as
// the operator.
func NewService(repo Repository, hasher auth.Hasher, issuer auth.Issuer, pinnedEmail string, certifier Certifier, producers ProducerLister, m *metrics.Metrics) Service {
	return &service{
		repo:        repo,
		hasher:      hasher,
		issuer:      issuer,
		pinnedEmail: normalizeEmail(pinnedEmail),
		certifier:   certifier,
		producers:   producers,
		metrics:     m,
	}
}

// Login rejects any email but the pinned one before touching the store or
// comparing a password.
func (s *service) Login(ctx context.Context, email, password string) (string, *Operator, error) {
	email = normalizeEmail(email)
	if email != s.pinnedEmail {
		s.metrics.IncLogin(auth.RoleOperator, "forbidden")
		return "", nil, errs.New(errs.CodeForbidden, "access denied: not the operator account")
	}

	o, err := s.repo.GetOperatorByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.metrics.IncLogin(auth.RoleOperator, "rejected")
			return "", nil, invalidCredentials()
		}
		return "", nil, errs.Wrap(err, errs.CodeInternal, "load operator")
	}
	if err := s.hasher.Compare(o.PasswordHash, password); err != nil {
		s.metrics.IncLogin(auth.RoleOperator, "rejected")
		return "", nil, invalidCredentials()
	}

	token, err := s.issuer.Issue(auth.Subject{ID: o.ID, Email: o.Email, Role: auth.RoleOperator})
	if err != nil {
		return "", nil, err
	}
	s.metrics.IncLogin(auth.RoleOperator, "ok")
	return token, o, nil
}

func (s *service) Approve(ctx context.Context, caller identity.Identity, producerID string) (*certification.Result, error) {
	if err := s.authorize(caller); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(producerID)
	if err != nil {
		return nil, errs.New(errs.CodeNotFound, "producer not found")
	}
	return s.certifier.Approve(ctx, id)
}

func (s *service) Producers(ctx context.Context, caller identity.Identity, verified *bool) ([]*producer.Producer, error) {
	if err := s.authorize(caller); err != nil {
		return nil, err
	}
	producers, err := s.producers.ListProducers(ctx, verified)
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeInternal, "list producers")
	}
	if producers == nil {
		producers = []*producer.Producer{}
	}
	return producers, nil
}

func (s *service) authorize(caller identity.Identity) error {
	if !caller.IsOperator() || normalizeEmail(caller.Email) != s.pinnedEmail {
		return errs.New(errs.CodeForbidden, "access denied: operators only")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func invalidCredentials() error {
	return errs.Wrap(auth.ErrInvalidCredentials, errs.CodeUnauthorized, "invalid credentials")
}
