package order

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/P-N-S-U/backend/internal/modules/access"
	"github.com/P-N-S-U/backend/internal/modules/identity"
	"github.com/P-N-S-U/backend/internal/platform/httputil"
)

// Handler exposes order HTTP endpoints.
type Handler struct {
	service Service
	guard   *access.Guard
}

func NewHandler(service Service, guard *access.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	buyers := h.guard.RequireRole(identity.KindBuyer)
	producers := h.guard.RequireRole(identity.KindProducer)
	operators := h.guard.RequireRole(identity.KindOperator)

	r.Route("/orders", func(r chi.Router) {
		r.Use(h.guard.Authenticate)
		r.With(buyers).Post("/", h.placeOrder)                  // POST /orders
		r.With(buyers).Get("/my-orders", h.listOrders)          // GET  /orders/my-orders
		r.With(producers).Get("/producer-orders", h.listOrders) // GET  /orders/producer-orders
		r.With(operators).Get("/all", h.listOrders)             // GET  /orders/all
		r.With(producers).Put("/{id}", h.updateStatus)          // PUT  /orders/{id}
		r.Get("/{id}/invoice", h.invoice)                       // GET  /orders/{id}/invoice
		r.Get("/{id}", h.getOrder)                              // GET  /orders/{id}
	})
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	caller, _ := identity.FromContext(r.Context())
	o, err := h.service.Create(r.Context(), caller, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusCreated, o)
}

// listOrders serves every list route; the caller's role picks the scope.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())
	orders, err := h.service.List(r.Context(), caller)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())
	o, err := h.service.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	caller, _ := identity.FromContext(r.Context())
	o, err := h.service.Advance(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, o)
}

func (h *Handler) invoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller, _ := identity.FromContext(r.Context())
	pdf, err := h.service.Invoice(r.Context(), caller, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="invoice-`+id+`.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
