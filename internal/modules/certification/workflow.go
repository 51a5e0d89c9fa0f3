package certification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/modules/producer"
	"github.com/P-N-S-U/backend/internal/platform/errs"
	"github.com/P-N-S-U/backend/internal/platform/metrics"
	"github.com/P-N-S-U/backend/internal/platform/render"
)

// Step names the stage a certification run failed at.
type Step string

const (
	StepLoad        Step = "load"
	StepCertificate Step = "certificate"
	StepQR          Step = "qr"
	StepPersist     Step = "persist"
)

// ProducerStore is the slice of producer storage the workflow needs.
type ProducerStore interface {
	GetProducerByID(ctx context.Context, id uuid.UUID) (*producer.Producer, error)
	MarkVerified(ctx context.Context, id uuid.UUID, certificateURL, qrCodeURL string) error
}

type CertificateRenderer interface {
	RenderCertificate(ctx context.Context, c render.Certificate) (string, error)
}

type QRRenderer interface {
	RenderQR(ctx context.Context, key, content string) (string, error)
}

// StepError records which producer and step a run failed on.
type StepError struct {
	ProducerID uuid.UUID
	Step       Step
	Err        error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("certify producer %s: %s: %v", e.ProducerID, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Result is returned by a successful run.
type Result struct {
	ProducerID     uuid.UUID `json:"producer_id"`
	Verified       bool      `json:"verified"`
	CertificateURL string    `json:"certificate_url"`
	QRCodeURL      string    `json:"qr_code_url"`
	IssuedAt       time.Time `json:"issued_at"`
}

// Workflow marks a producer verified once both artifacts exist. Renderers
// overwrite by producer id, so a failed run can be retried as is.
type Workflow struct {
	producers    ProducerStore
	certificates CertificateRenderer
	qrs          QRRenderer
	baseURL      string
	now          func() time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

func NewWorkflow(producers ProducerStore, certificates CertificateRenderer, qrs QRRenderer, baseURL string, logger *slog.Logger, m *metrics.Metrics) *Workflow {
	return &Workflow{
		producers:    producers,
		certificates: certificates,
		qrs:          qrs,
		baseURL:      baseURL,
		now:          time.Now,
		logger:       logger,
		metrics:      m,
	}
}

func (w *Workflow) Approve(ctx context.Context, producerID uuid.UUID) (*Result, error) {
	p, err := w.producers.GetProducerByID(ctx, producerID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, w.fail(ctx, producerID, StepLoad, err, errs.CodeNotFound)
		}
		return nil, w.fail(ctx, producerID, StepLoad, err, errs.CodeInternal)
	}

	issuedAt := w.now()
	certURL, err := w.certificates.RenderCertificate(ctx, render.Certificate{
		ProducerID:   p.ID.String(),
		ProducerName: p.Name,
		IssuedAt:     issuedAt,
	})
	if err != nil {
		return nil, w.fail(ctx, producerID, StepCertificate, err, errs.CodeUpstream)
	}

	qrURL, err := w.qrs.RenderQR(ctx, p.ID.String(), w.baseURL+certURL)
	if err != nil {
		return nil, w.fail(ctx, producerID, StepQR, err, errs.CodeUpstream)
	}

	if err := w.producers.MarkVerified(ctx, p.ID, certURL, qrURL); err != nil {
		return nil, w.fail(ctx, producerID, StepPersist, err, errs.CodeInternal)
	}

	w.metrics.IncCertification("verified")
	w.logger.InfoContext(ctx, "producer verified",
		"producer_id", p.ID,
		"certificate_url", certURL,
		"qr_code_url", qrURL,
	)
	return &Result{
		ProducerID:     p.ID,
		Verified:       true,
		CertificateURL: certURL,
		QRCodeURL:      qrURL,
		IssuedAt:       issuedAt,
	}, nil
}

func (w *Workflow) fail(ctx context.Context, id uuid.UUID, step Step, err error, code errs.Code) error {
	w.metrics.IncCertification("failed_" + string(step))
	w.logger.ErrorContext(ctx, "certification failed",
		"producer_id", id,
		"step", step,
		"error", err,
	)
	stepErr := &StepError{ProducerID: id, Step: step, Err: err}
	if code == errs.CodeNotFound {
		return errs.Wrap(stepErr, code, "producer not found")
	}
	return errs.Wrap(stepErr, code, fmt.Sprintf("certification of producer %s failed at %s step", id, step))
}
