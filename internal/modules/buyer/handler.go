package buyer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/P-N-S-U/backend/internal/modules/access"
	"github.com/P-N-S-U/backend/internal/modules/identity"
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
	Token string `json:"token"`
	Buyer *Buyer `json:"buyer"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/buyers", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.guard.Authenticate, h.guard.RequireRole(identity.KindBuyer))
			r.Get("/profile", h.profile)
			r.Post("/cart/save", h.saveCart)
			r.Get("/cart", h.getCart)
		})
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	b, err := h.service.Register(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusCreated, b)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	token, b, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, loginResponse{Token: token, Buyer: b})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())
	b, err := h.service.Profile(r.Context(), caller)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, b)
}

func (h *Handler) saveCart(w http.ResponseWriter, r *http.Request) {
	var req SaveCartRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	caller, _ := identity.FromContext(r.Context())
	if err := h.service.SaveCart(r.Context(), caller, req.Cart); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, map[string]string{"status": "cart saved"})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())
	lines, err := h.service.GetCart(r.Context(), caller)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, map[string][]CartLine{"cart": lines})
}
