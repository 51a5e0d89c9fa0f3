package listing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/P-N-S-U/backend/internal/modules/access"
	"github.com/P-N-S-U/backend/internal/modules/identity"
	"github.com/P-N-S-U/backend/internal/platform/httputil"
)

// Handler exposes listing HTTP endpoints.
type Handler struct {
	service Service
	guard   *access.Guard
}

func NewHandler(service Service, guard *access.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/listings", func(r chi.Router) {
		r.Get("/", h.listListings)   // GET    /listings?category=Vegetables
		r.Get("/{id}", h.getListing) // GET    /listings/{id}

		r.Group(func(r chi.Router) {
			r.Use(h.guard.Authenticate, h.guard.RequireRole(identity.KindProducer))
			r.With(h.guard.RequireVerified).Post("/add", h.createListing) // POST /listings/add
			r.Put("/{id}", h.updateListing)                               // PUT    /listings/{id}
			r.Delete("/{id}", h.deleteListing)                            // DELETE /listings/{id}
		})
	})
}

func (h *Handler) listListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.ListListings(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, listings)
}

func (h *Handler) getListing(w http.ResponseWriter, r *http.Request) {
	l, err := h.service.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, l)
}

func (h *Handler) createListing(w http.ResponseWriter, r *http.Request) {
	var req CreateListingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	caller, _ := identity.FromContext(r.Context())
	l, err := h.service.CreateListing(r.Context(), caller, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusCreated, l)
}

func (h *Handler) updateListing(w http.ResponseWriter, r *http.Request) {
	var req UpdateListingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	caller, _ := identity.FromContext(r.Context())
	l, err := h.service.UpdateListing(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, l)
}

func (h *Handler) deleteListing(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())
	if err := h.service.DeleteListing(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, map[string]string{"status": "listing deleted"})
}
