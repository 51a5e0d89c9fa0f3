package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/P-N-S-U/backend/internal/platform/errs"
)

// ErrorBody is the stable error response shape.
type ErrorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError maps err to a status and writes the error body. Internal errors
// never expose their description.
func WriteError(w http.ResponseWriter, err error) {
	code := errs.CodeOf(err)
	body := ErrorBody{Error: errorName(code)}
	if code != errs.CodeInternal {
		body.ErrorDescription = errs.Message(err)
	}
	Respond(w, StatusOf(code), body)
}

// StatusOf maps an error code to an HTTP status.
func StatusOf(code errs.Code) int {
	switch code {
	case errs.CodeUnauthorized:
		return http.StatusUnauthorized
	case errs.CodeForbidden:
		return http.StatusForbidden
	case errs.CodeNotFound:
		return http.StatusNotFound
	case errs.CodeValidation:
		return http.StatusBadRequest
	case errs.CodeConflict:
		return http.StatusConflict
	case errs.CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorName(code errs.Code) string {
	switch code {
	case errs.CodeValidation:
		return "bad_request"
	case errs.CodeInternal:
		return "internal_error"
	default:
		return string(code)
	}
}

// DecodeJSON decodes the request body into dst, returning a validation error
// on malformed input.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.Wrap(err, errs.CodeValidation, "malformed request body")
	}
	return nil
}

// RequestLogger logs one line per request with its chi request id.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
