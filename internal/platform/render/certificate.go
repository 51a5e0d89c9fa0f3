package render

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/P-N-S-U/backend/internal/platform/storage"
)

const (
	DefaultIssuer    = "HarvestTrace"
	certificateTitle = "Certificate of Natural Farming"
	certificateBody  = "Has successfully met all the requirements and standards for Natural Farming practices " +
		"as established by %s and has been verified through our inspection and certification process."
	validity = 2 // years
)

// Certificate is the data printed on a producer certificate.
type Certificate struct {
	ProducerID   string
	ProducerName string
	IssuedAt     time.Time
}

// Number is the printed certificate number.
func (c Certificate) Number() string {
	id := c.ProducerID
	if len(id) > 8 {
		id = id[:8]
	}
	return "HT-" + id
}

func (c Certificate) ValidUntil() time.Time {
	return c.IssuedAt.AddDate(validity, 0, 0)
}

// CertificateRenderer draws a landscape A4 PDF and stores it under
// certificates/<producer id>.pdf.
type CertificateRenderer struct {
	store  storage.Store
	issuer string
}

func NewCertificateRenderer(store storage.Store, issuer string) *CertificateRenderer {
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return &CertificateRenderer{store: store, issuer: issuer}
}

func (r *CertificateRenderer) RenderCertificate(ctx context.Context, c Certificate) (string, error) {
	var buf bytes.Buffer
	if err := r.draw(&buf, c); err != nil {
		return "", fmt.Errorf("draw certificate: %w", err)
	}
	return r.store.Put(ctx, "certificates/"+c.ProducerID+".pdf", &buf)
}

func (r *CertificateRenderer) draw(buf *bytes.Buffer, c Certificate) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(certificateTitle, true)
	pdf.SetAuthor(r.issuer, true)
	pdf.SetCreationDate(c.IssuedAt)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	w, h := pdf.GetPageSize()
	pdf.SetDrawColor(44, 94, 26)
	pdf.SetLineWidth(1.2)
	pdf.Rect(14, 14, w-28, h-28, "D")
	pdf.SetLineWidth(0.4)
	pdf.Rect(18, 18, w-36, h-36, "D")

	center := func(y float64, size float64, style, text string) {
		pdf.SetFont("Helvetica", style, size)
		pdf.SetXY(20, y)
		pdf.CellFormat(w-40, size*0.5, text, "", 0, "C", false, 0, "")
	}

	pdf.SetTextColor(44, 94, 26)
	center(32, 16, "B", r.issuer)
	pdf.SetTextColor(85, 85, 85)
	center(42, 11, "", "NATURAL FARMING CERTIFICATION AUTHORITY")
	pdf.SetTextColor(44, 94, 26)
	center(58, 28, "B", certificateTitle)
	pdf.SetTextColor(51, 51, 51)
	center(80, 14, "", "This is to certify that")
	pdf.SetTextColor(44, 94, 26)
	center(92, 24, "B", c.ProducerName)
	pdf.SetTextColor(85, 85, 85)
	center(106, 11, "", "Producer ID: "+c.ProducerID)

	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "", 13)
	pdf.SetXY(w/2-90, 116)
	pdf.MultiCell(180, 6, fmt.Sprintf(certificateBody, r.issuer), "", "C", false)

	center(145, 11, "", "Certification Date: "+c.IssuedAt.Format("January 2, 2006"))
	center(152, 11, "", "Valid Until: "+c.ValidUntil().Format("January 2, 2006"))
	center(159, 11, "", "Certificate Number: "+c.Number())

	pdf.SetTextColor(136, 136, 136)
	center(h-28, 8, "", "This certificate is issued based on the inspection conducted by "+r.issuer+
		" and is subject to periodic verification.")

	return pdf.Output(buf)
}
