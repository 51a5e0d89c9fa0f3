package producer

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// MaxDocuments caps the supporting documents accepted at registration.
const MaxDocuments = 5

// Producer represents a farm account that lists produce.
// @Description Producer information
// @Description with id, name, email, phone, address, documents, verified and certification artifacts
type Producer struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	PasswordHash   string    `json:"-"`
	Address        string    `json:"address"`
	Documents      []string  `json:"documents"`
	Verified       bool      `json:"verified"`
	CertificateURL string    `json:"certificate_url,omitempty"`
	QRCodeURL      string    `json:"qr_code_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Password string
}

// Document is an uploaded supporting file.
type Document struct {
	Filename string
	Content  io.Reader
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Verification is the public view behind a certificate's QR code.
type Verification struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Verified          bool      `json:"verified"`
	CertificateNumber string    `json:"certificate_number,omitempty"`
	CertificateURL    string    `json:"certificate_url,omitempty"`
	QRCodeURL         string    `json:"qr_code_url,omitempty"`
}
