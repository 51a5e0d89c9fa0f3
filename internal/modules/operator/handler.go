package operator

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/P-N-S-U/backend/internal/modules/access"
	"github.com/P-N-S-U/backend/internal/modules/identity"
	"github.com/P-N-S-U/backend/internal/platform/errs"
	"github.com/P-N-S-U/backend/internal/platform/httputil"
)

type Handler struct {
	service Service
	guard   *access.Guard
}

func NewHandler(service Service, guard *access.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

type loginResponse struct {
	Token    string    `json:"token"`
	Operator *Operator `json:"operator"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/operator", func(r chi.Router) {
		r.Post("/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.guard.Authenticate, h.guard.RequireRole(identity.KindOperator))
			r.Post("/approve/{producerId}", h.approve) // POST /operator/approve/{producerId}
			r.Get("/producers", h.producers)           // GET  /operator/producers?verified=false
		})
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	token, o, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, loginResponse{Token: token, Operator: o})
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())
	res, err := h.service.Approve(r.Context(), caller, chi.URLParam(r, "producerId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, res)
}

func (h *Handler) producers(w http.ResponseWriter, r *http.Request) {
	var verified *bool
	if raw := r.URL.Query().Get("verified"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.WriteError(w, errs.New(errs.CodeValidation, "verified must be true or false"))
			return
		}
		verified = &v
	}
	caller, _ := identity.FromContext(r.Context())
	producers, err := h.service.Producers(r.Context(), caller, verified)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, producers)
}
