package certification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/P-N-S-U/backend/internal/modules/identity"
	"github.com/P-N-S-U/backend/internal/modules/listing"
	"github.com/P-N-S-U/backend/internal/modules/producer"
	"github.com/P-N-S-U/backend/internal/platform/errs"
	"github.com/P-N-S-U/backend/internal/platform/logger"
	"github.com/P-N-S-U/backend/internal/platform/render"
)

type fakeCertificates struct {
	err   error
	calls []render.Certificate
}

func (f *fakeCertificates) RenderCertificate(_ context.Context, c render.Certificate) (string, error) {
	f.calls = append(f.calls, c)
	if f.err != nil {
		return "", f.err
	}
	return "/certificates/" + c.ProducerID + ".pdf", nil
}

type fakeQRs struct {
	err      error
	contents []string
}

func (f *fakeQRs) RenderQR(_ context.Context, key, content string) (string, error) {
	f.contents = append(f.contents, content)
	if f.err != nil {
		return "", f.err
	}
	return "/qrcodes/" + key + ".png", nil
}

type WorkflowSuite struct {
	suite.Suite
	producers *producer.InMemoryRepository
	certs     *fakeCertificates
	qrs       *fakeQRs
	workflow  *Workflow
	target    *producer.Producer
	ctx       context.Context
}

func TestWorkflowSuite(t *testing.T) {
	suite.Run(t, new(WorkflowSuite))
}

func (s *WorkflowSuite) SetupTest() {
	s.ctx = context.Background()
	s.producers = producer.NewInMemoryRepository()
	s.certs = &fakeCertificates{}
	s.qrs = &fakeQRs{}
	s.workflow = NewWorkflow(s.producers, s.certs, s.qrs, "https://market.example", logger.Discard(), nil)
	s.workflow.now = func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }

	s.target = &producer.Producer{
		ID:        uuid.New(),
		Name:      "Green Acres",
		Email:     "farm@example.com",
		Phone:     "555-0199",
		Address:   "1 Orchard Lane",
		Documents: []string{"/documents/permit.pdf"},
	}
	s.Require().NoError(s.producers.CreateProducer(s.ctx, s.target))
}

func (s *WorkflowSuite) stored() *producer.Producer {
	p, err := s.producers.GetProducerByID(s.ctx, s.target.ID)
	s.Require().NoError(err)
	return p
}

func (s *WorkflowSuite) TestApprovePersistsBothArtifacts() {
	res, err := s.workflow.Approve(s.ctx, s.target.ID)
	s.Require().NoError(err)

	id := s.target.ID.String()
	s.Equal("/certificates/"+id+".pdf", res.CertificateURL)
	s.Equal("/qrcodes/"+id+".png", res.QRCodeURL)
	s.Equal([]string{"https://market.example/certificates/" + id + ".pdf"}, s.qrs.contents)
	s.Require().Len(s.certs.calls, 1)
	s.Equal("Green Acres", s.certs.calls[0].ProducerName)

	p := s.stored()
	s.True(p.Verified)
	s.Equal(res.CertificateURL, p.CertificateURL)
	s.Equal(res.QRCodeURL, p.QRCodeURL)
}

func (s *WorkflowSuite) TestQRFailureLeavesProducerUnverified() {
	s.qrs.err = errors.New("encoder unavailable")

	_, err := s.workflow.Approve(s.ctx, s.target.ID)
	s.True(errs.HasCode(err, errs.CodeUpstream))

	var stepErr *StepError
	s.Require().ErrorAs(err, &stepErr)
	s.Equal(StepQR, stepErr.Step)
	s.Equal(s.target.ID, stepErr.ProducerID)
	s.Contains(errs.Message(err), s.target.ID.String())

	p := s.stored()
	s.False(p.Verified)
	s.Empty(p.CertificateURL)
	s.Empty(p.QRCodeURL)
}

func (s *WorkflowSuite) TestCertificateFailureSkipsQR() {
	s.certs.err = errors.New("pdf failed")

	_, err := s.workflow.Approve(s.ctx, s.target.ID)
	var stepErr *StepError
	s.Require().ErrorAs(err, &stepErr)
	s.Equal(StepCertificate, stepErr.Step)
	s.Empty(s.qrs.contents)
	s.False(s.stored().Verified)
}

func (s *WorkflowSuite) TestRetryAfterFailureSucceeds() {
	s.qrs.err = errors.New("transient")
	_, err := s.workflow.Approve(s.ctx, s.target.ID)
	s.Require().Error(err)

	s.qrs.err = nil
	_, err = s.workflow.Approve(s.ctx, s.target.ID)
	s.Require().NoError(err)
	s.True(s.stored().Verified)
	s.Len(s.certs.calls, 2)
}

func (s *WorkflowSuite) TestUnknownProducer() {
	_, err := s.workflow.Approve(s.ctx, uuid.New())
	s.True(errs.HasCode(err, errs.CodeNotFound))
	s.Empty(s.certs.calls)
}

func (s *WorkflowSuite) TestApprovedProducerCanList() {
	listings := listing.NewService(listing.NewInMemoryRepository())
	source := producer.NewIdentitySource(s.producers)
	req := listing.CreateListingRequest{
		Name: "Honey", Description: "Raw", Price: 9, Category: "Pantry", Quantity: 3, ImageURL: "/honey.jpg",
	}

	before, err := source.FindIdentity(s.ctx, s.target.ID)
	s.Require().NoError(err)
	_, err = listings.CreateListing(s.ctx, before, req)
	s.True(errs.HasCode(err, errs.CodeForbidden))

	_, err = s.workflow.Approve(s.ctx, s.target.ID)
	s.Require().NoError(err)

	after, err := source.FindIdentity(s.ctx, s.target.ID)
	s.Require().NoError(err)
	s.Equal(identity.KindProducer, after.Kind)
	l, err := listings.CreateListing(s.ctx, after, req)
	s.Require().NoError(err)
	s.Equal("Honey", l.Name)
}
