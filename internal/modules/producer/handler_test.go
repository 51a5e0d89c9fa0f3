package producer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/P-N-S-U/backend/internal/modules/access"
	"github.com/P-N-S-U/backend/internal/modules/auth"
	"github.com/P-N-S-U/backend/internal/platform/logger"
)

func newRouter(t *testing.T) (*chi.Mux, *memStore) {
	t.Helper()
	store := &memStore{}
	codec := auth.NewCodec("test-secret")
	svc := NewService(NewInMemoryRepository(), auth.NewBcryptHasher(4), codec, store, nil)
	guard := access.NewGuard(codec, nil, logger.Discard(), nil)

	r := chi.NewRouter()
	NewHandler(svc, guard).RegisterRoutes(r)
	return r, store
}

func multipartBody(t *testing.T, files int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"name":     "Green Acres",
		"email":    "farm@example.com",
		"phone":    "555-0199",
		"address":  "1 Orchard Lane",
		"password": "s3cret",
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for i := 0; i < files; i++ {
		fw, err := mw.CreateFormFile("documents", "license.pdf")
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestRegisterMultipart(t *testing.T) {
	r, store := newRouter(t)

	body, contentType := multipartBody(t, 2)
	req := httptest.NewRequest(http.MethodPost, "/producers/register", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var p Producer
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.Len(t, p.Documents, 2)
	assert.False(t, p.Verified)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Len(t, store.blobs, 2)
}

func TestRegisterRejectsTooManyDocuments(t *testing.T) {
	r, store := newRouter(t)

	body, contentType := multipartBody(t, MaxDocuments+1)
	req := httptest.NewRequest(http.MethodPost, "/producers/register", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.blobs)
}

func TestRegisterRejectsJSON(t *testing.T) {
	r, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/producers/register", bytes.NewBufferString(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileRequiresToken(t *testing.T) {
	r, _ := newRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/producers/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
