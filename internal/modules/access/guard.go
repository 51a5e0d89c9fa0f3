package access

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/modules/auth"
	"github.com/P-N-S-U/backend/internal/modules/identity"
	"github.com/P-N-S-U/backend/internal/platform/errs"
	"github.com/P-N-S-U/backend/internal/platform/httputil"
	"github.com/P-N-S-U/backend/internal/platform/metrics"
)

// TokenVerifier validates a bearer credential.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// IdentityResolver maps a verified identity reference to an identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, ref string) (identity.Identity, error)
}

// Guard builds the authorization middleware chain. Each predicate writes the
// rejection itself and stops the chain.
type Guard struct {
	verifier TokenVerifier
	resolver IdentityResolver
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewGuard(verifier TokenVerifier, resolver IdentityResolver, logger *slog.Logger, m *metrics.Metrics) *Guard {
	return &Guard{verifier: verifier, resolver: resolver, logger: logger, metrics: m}
}

// Authenticate verifies the bearer token, resolves the identity once and
// attaches it to the request context.
func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		header := r.Header.Get("Authorization")
		if header == "" {
			g.deny(w, r, "missing_token", unauthorized())
			return
		}

		claims, err := g.verifier.Verify(header)
		if err != nil {
			g.deny(w, r, "invalid_token", unauthorized())
			return
		}

		id, err := g.resolver.Resolve(ctx, claims.IdentityRef())
		if err != nil {
			if errs.HasCode(err, errs.CodeInternal) {
				g.logger.ErrorContext(ctx, "identity resolution failed",
					"error", err,
					"request_id", middleware.GetReqID(ctx),
				)
				httputil.WriteError(w, err)
				return
			}
			// same response as a bad token so identifiers cannot be probed
			g.deny(w, r, "unknown_identity", unauthorized())
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.WithIdentity(ctx, id)))
	})
}

// RequireRole rejects callers whose resolved kind is not kind.
func (g *Guard) RequireRole(kind identity.Kind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := identity.FromContext(r.Context())
			if !ok {
				g.deny(w, r, "missing_identity", unauthorized())
				return
			}
			if id.Kind != kind {
				g.deny(w, r, "role", errs.Newf(errs.CodeForbidden, "access denied: %ss only", kind))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireVerified rejects anyone but a producer whose stored verified flag was
// true when the request was resolved.
func (g *Guard) RequireVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.FromContext(r.Context())
		if !ok {
			g.deny(w, r, "missing_identity", unauthorized())
			return
		}
		if !id.IsVerifiedProducer() {
			g.deny(w, r, "unverified", errs.New(errs.CodeForbidden, "only verified producers can add listings"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *Guard) deny(w http.ResponseWriter, r *http.Request, reason string, err error) {
	ctx := r.Context()
	g.metrics.IncAccessDenied(reason)
	g.logger.WarnContext(ctx, "access denied",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(ctx),
	)
	httputil.WriteError(w, err)
}

func unauthorized() error {
	return errs.New(errs.CodeUnauthorized, "Invalid or expired token")
}

// RequireOwnership returns a Forbidden error unless caller owns the resource.
func RequireOwnership(owner uuid.UUID, caller identity.Identity) error {
	if owner == uuid.Nil || owner != caller.ID {
		return errs.New(errs.CodeForbidden, "you do not own this resource")
	}
	return nil
}
