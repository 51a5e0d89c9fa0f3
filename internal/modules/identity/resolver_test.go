package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/P-N-S-U/backend/internal/platform/errs"
)

type fakeSource struct {
	known map[uuid.UUID]Identity
	err   error
	calls int
}

func newFakeSource() *fakeSource { return &fakeSource{known: map[uuid.UUID]Identity{}} }

func (f *fakeSource) FindIdentity(_ context.Context, id uuid.UUID) (Identity, error) {
	f.calls++
	if f.err != nil {
		return Identity{}, f.err
	}
	if found, ok := f.known[id]; ok {
		return found, nil
	}
	return Identity{}, errs.ErrNotFound
}

type ResolverSuite struct {
	suite.Suite
	operators *fakeSource
	buyers    *fakeSource
	producers *fakeSource
	resolver  *Resolver
	ctx       context.Context
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.operators = newFakeSource()
	s.buyers = newFakeSource()
	s.producers = newFakeSource()
	s.resolver = NewResolver(s.operators, s.buyers, s.producers)
	s.ctx = context.Background()
}

func (s *ResolverSuite) TestResolvesEachKind() {
	op := Operator(uuid.New(), "admin@naturalfarm.com")
	buyer := Buyer(uuid.New(), "buyer@example.com")
	producer := Producer(uuid.New(), "farm@example.com", true)
	s.operators.known[op.ID] = op
	s.buyers.known[buyer.ID] = buyer
	s.producers.known[producer.ID] = producer

	for _, want := range []Identity{op, buyer, producer} {
		got, err := s.resolver.Resolve(s.ctx, want.ID.String())
		s.Require().NoError(err)
		s.Equal(want, got)
	}
}

func (s *ResolverSuite) TestProducerCarriesStoredFlag() {
	p := Producer(uuid.New(), "farm@example.com", false)
	s.producers.known[p.ID] = p

	got, err := s.resolver.Resolve(s.ctx, p.ID.String())
	s.Require().NoError(err)
	s.True(got.IsProducer())
	s.False(got.IsVerifiedProducer())
}

func (s *ResolverSuite) TestUnknownIdentity() {
	_, err := s.resolver.Resolve(s.ctx, uuid.NewString())
	s.Require().Error(err)
	s.True(errors.Is(err, ErrUnknownIdentity))
	s.True(errs.HasCode(err, errs.CodeUnauthorized))

	s.Equal(1, s.operators.calls)
	s.Equal(1, s.buyers.calls)
	s.Equal(1, s.producers.calls)
}

func (s *ResolverSuite) TestMalformedRefIsUnknown() {
	_, err := s.resolver.Resolve(s.ctx, "not-a-uuid")
	s.True(errors.Is(err, ErrUnknownIdentity))
	s.Zero(s.operators.calls)
}

func (s *ResolverSuite) TestPriorityOnCollision() {
	id := uuid.New()
	s.operators.known[id] = Operator(id, "admin@naturalfarm.com")
	s.buyers.known[id] = Buyer(id, "buyer@example.com")
	s.producers.known[id] = Producer(id, "farm@example.com", true)

	got, err := s.resolver.Resolve(s.ctx, id.String())
	s.Require().NoError(err)
	s.Equal(KindOperator, got.Kind)
	s.Zero(s.buyers.calls)
	s.Zero(s.producers.calls)

	delete(s.operators.known, id)
	got, err = s.resolver.Resolve(s.ctx, id.String())
	s.Require().NoError(err)
	s.Equal(KindBuyer, got.Kind)
	s.Zero(s.producers.calls)
}

func (s *ResolverSuite) TestStoreFailureIsInternal() {
	s.buyers.err = errors.New("connection refused")

	_, err := s.resolver.Resolve(s.ctx, uuid.NewString())
	s.Require().Error(err)
	s.True(errs.HasCode(err, errs.CodeInternal))
	s.Zero(s.producers.calls)
}

func (s *ResolverSuite) TestContextRoundTrip() {
	_, ok := FromContext(s.ctx)
	s.False(ok)

	b := Buyer(uuid.New(), "buyer@example.com")
	got, ok := FromContext(WithIdentity(s.ctx, b))
	s.True(ok)
	s.Equal(b, got)
}
