package render

import (
	"bytes"
	"context"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/P-N-S-U/backend/internal/platform/storage"
)

const qrSize = 256

// QRRenderer encodes content as a PNG stored under qrcodes/<key>.png.
type QRRenderer struct {
	store storage.Store
}

func NewQRRenderer(store storage.Store) *QRRenderer {
	return &QRRenderer{store: store}
}

func (r *QRRenderer) RenderQR(ctx context.Context, key, content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, qrSize)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return r.store.Put(ctx, "qrcodes/"+key+".png", bytes.NewReader(png))
}
