package producer

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/P-N-S-U/backend/internal/modules/auth"
	"github.com/P-N-S-U/backend/internal/modules/identity"
	"github.com/P-N-S-U/backend/internal/platform/errs"
)

type memStore struct {
	mu    sync.Mutex
	blobs map[string]string
}

func (m *memStore) Put(_ context.Context, key string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blobs == nil {
		m.blobs = map[string]string{}
	}
	m.blobs[key] = string(b)
	return "/" + key, nil
}

type ServiceSuite struct {
	suite.Suite
	repo    *InMemoryRepository
	store   *memStore
	codec   *auth.Codec
	service Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.repo = NewInMemoryRepository()
	s.store = &memStore{}
	s.codec = auth.NewCodec("test-secret")
	s.service = NewService(s.repo, auth.NewBcryptHasher(4), s.codec, s.store, nil)
	s.ctx = context.Background()
}

func registration() RegisterRequest {
	return RegisterRequest{
		Name:     "Green Acres",
		Email:    "farm@example.com",
		Phone:    "555-0199",
		Address:  "1 Orchard Lane",
		Password: "s3cret",
	}
}

func documents(n int) []Document {
	docs := make([]Document, n)
	for i := range docs {
		docs[i] = Document{Filename: "permit.pdf", Content: strings.NewReader("permit")}
	}
	return docs
}

func (s *ServiceSuite) register() *Producer {
	p, err := s.service.Register(s.ctx, registration(), documents(2))
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) TestRegisterStoresDocuments() {
	p := s.register()
	s.False(p.Verified)
	s.Require().Len(p.Documents, 2)
	s.Equal("/documents/"+p.ID.String()+"/1-permit.pdf", p.Documents[0])
	s.Equal("permit", s.store.blobs["documents/"+p.ID.String()+"/2-permit.pdf"])
}

func (s *ServiceSuite) TestRegisterDocumentFailure() {
	docs := documents(3)
	docs[1].Content = iotest.ErrReader(io.ErrUnexpectedEOF)

	_, err := s.service.Register(s.ctx, registration(), docs)
	s.True(errs.HasCode(err, errs.CodeInternal))

	_, err = s.repo.GetProducerByEmail(s.ctx, "farm@example.com")
	s.ErrorIs(err, errs.ErrNotFound)
}

func (s *ServiceSuite) TestRegisterValidation() {
	_, err := s.service.Register(s.ctx, registration(), nil)
	s.True(errs.HasCode(err, errs.CodeValidation))

	_, err = s.service.Register(s.ctx, registration(), documents(MaxDocuments+1))
	s.True(errs.HasCode(err, errs.CodeValidation))

	req := registration()
	req.Address = ""
	_, err = s.service.Register(s.ctx, req, documents(1))
	s.True(errs.HasCode(err, errs.CodeValidation))
}

func (s *ServiceSuite) TestRegisterDuplicatePhone() {
	s.register()
	req := registration()
	req.Email = "other@example.com"
	_, err := s.service.Register(s.ctx, req, documents(1))
	s.True(errs.HasCode(err, errs.CodeConflict))
}

func (s *ServiceSuite) TestLoginCarriesVerifiedSnapshot() {
	p := s.register()

	token, _, err := s.service.Login(s.ctx, "farm@example.com", "s3cret")
	s.Require().NoError(err)
	claims, err := s.codec.Verify(token)
	s.Require().NoError(err)
	s.Equal(auth.RoleProducer, claims.Role)
	s.Require().NotNil(claims.Verified)
	s.False(*claims.Verified)

	s.Require().NoError(s.repo.MarkVerified(s.ctx, p.ID, "/certificates/x.pdf", "/qrcodes/x.png"))
	token, _, err = s.service.Login(s.ctx, "farm@example.com", "s3cret")
	s.Require().NoError(err)
	claims, err = s.codec.Verify(token)
	s.Require().NoError(err)
	s.True(*claims.Verified)

	_, _, err = s.service.Login(s.ctx, "farm@example.com", "nope")
	s.True(errs.HasCode(err, errs.CodeUnauthorized))
}

func (s *ServiceSuite) TestIdentitySourceReadsCurrentFlag() {
	p := s.register()
	src := NewIdentitySource(s.repo)

	id, err := src.FindIdentity(s.ctx, p.ID)
	s.Require().NoError(err)
	s.False(id.IsVerifiedProducer())

	s.Require().NoError(s.repo.MarkVerified(s.ctx, p.ID, "/c.pdf", "/q.png"))
	id, err = src.FindIdentity(s.ctx, p.ID)
	s.Require().NoError(err)
	s.True(id.IsVerifiedProducer())
}

func (s *ServiceSuite) TestVerification() {
	p := s.register()

	v, err := s.service.Verification(s.ctx, p.ID.String())
	s.Require().NoError(err)
	s.False(v.Verified)
	s.Empty(v.CertificateNumber)

	s.Require().NoError(s.repo.MarkVerified(s.ctx, p.ID, "/certificates/c.pdf", "/qrcodes/q.png"))
	v, err = s.service.Verification(s.ctx, p.ID.String())
	s.Require().NoError(err)
	s.True(v.Verified)
	s.Equal("HT-"+p.ID.String()[:8], v.CertificateNumber)
	s.Equal("/certificates/c.pdf", v.CertificateURL)

	_, err = s.service.Verification(s.ctx, "not-a-uuid")
	s.True(errs.HasCode(err, errs.CodeNotFound))
	_, err = s.service.Verification(s.ctx, uuid.NewString())
	s.True(errs.HasCode(err, errs.CodeNotFound))
}

func (s *ServiceSuite) TestProfileRequiresProducer() {
	p := s.register()
	_, err := s.service.Profile(s.ctx, identity.Buyer(p.ID, p.Email))
	s.True(errs.HasCode(err, errs.CodeForbidden))

	got, err := s.service.Profile(s.ctx, identity.Producer(p.ID, p.Email, false))
	s.Require().NoError(err)
	s.Equal("Green Acres", got.Name)
}

func (s *ServiceSuite) TestListProducersFilter() {
	p := s.register()
	req := registration()
	req.Email, req.Phone = "second@example.com", "555-0200"
	_, err := s.service.Register(s.ctx, req, documents(1))
	s.Require().NoError(err)
	s.Require().NoError(s.repo.MarkVerified(s.ctx, p.ID, "/c.pdf", "/q.png"))

	pending := false
	list, err := s.repo.ListProducers(s.ctx, &pending)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("second@example.com", list[0].Email)

	all, err := s.repo.ListProducers(s.ctx, nil)
	s.Require().NoError(err)
	s.Len(all, 2)
}
