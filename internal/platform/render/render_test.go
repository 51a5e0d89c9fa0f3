package render

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	blobs map[string][]byte
}

func (m *memStore) Put(_ context.Context, key string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.blobs == nil {
		m.blobs = map[string][]byte{}
	}
	m.blobs[key] = b
	return "/" + key, nil
}

var issued = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestCertificateRenderer(t *testing.T) {
	store := &memStore{}
	r := NewCertificateRenderer(store, "")
	c := Certificate{ProducerID: "0b7c2f3e-1111-2222-3333-444455556666", ProducerName: "Green Acres", IssuedAt: issued}

	loc, err := r.RenderCertificate(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "/certificates/0b7c2f3e-1111-2222-3333-444455556666.pdf", loc)
	assert.True(t, bytes.HasPrefix(store.blobs["certificates/0b7c2f3e-1111-2222-3333-444455556666.pdf"], []byte("%PDF")))
}

func TestCertificateDetails(t *testing.T) {
	c := Certificate{ProducerID: "0b7c2f3e-1111", IssuedAt: issued}
	assert.Equal(t, "HT-0b7c2f3e", c.Number())
	assert.Equal(t, issued.AddDate(2, 0, 0), c.ValidUntil())
	assert.Equal(t, "HT-abc", Certificate{ProducerID: "abc"}.Number())
}

func TestQRRenderer(t *testing.T) {
	store := &memStore{}
	loc, err := NewQRRenderer(store).RenderQR(context.Background(), "p1", "https://example.com/certificates/p1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/qrcodes/p1.png", loc)
	assert.True(t, bytes.HasPrefix(store.blobs["qrcodes/p1.png"], []byte("\x89PNG")))
}

func TestInvoiceRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewInvoiceRenderer("").RenderInvoice(&buf, Invoice{
		OrderID:    "o1",
		BuyerName:  "Ada",
		BuyerEmail: "ada@example.com",
		Status:     "pending",
		CreatedAt:  issued,
		Lines:      []InvoiceLine{{Description: "Tomatoes", Quantity: 2, UnitPrice: 10}},
		Total:      20,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Equal(t, 20.0, InvoiceLine{Quantity: 2, UnitPrice: 10}.Amount())
}
