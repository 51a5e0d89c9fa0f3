package producer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/P-N-S-U/backend/internal/modules/access"
	"github.com/P-N-S-U/backend/internal/modules/identity"
	"github.com/P-N-S-U/backend/internal/platform/errs"
	"github.com/P-N-S-U/backend/internal/platform/httputil"
)

const maxUploadMemory = 32 << 20

type Handler struct {
	service Service
	guard   *access.Guard
}

func NewHandler(service Service, guard *access.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

type loginResponse struct {
	Token    string    `json:"token"`
	Producer *Producer `json:"producer"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/producers", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Get("/verify/{id}", h.verify)

		r.With(h.guard.Authenticate, h.guard.RequireRole(identity.KindProducer)).
			Get("/profile", h.profile)
	})
}

// register accepts multipart/form-data with the profile fields and one to
// five "documents" files.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httputil.WriteError(w, errs.Wrap(err, errs.CodeValidation, "expected multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := RegisterRequest{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Phone:    r.FormValue("phone"),
		Address:  r.FormValue("address"),
		Password: r.FormValue("password"),
	}

	headers := r.MultipartForm.File["documents"]
	if len(headers) > MaxDocuments {
		httputil.WriteError(w, errs.Newf(errs.CodeValidation, "at most %d documents are accepted", MaxDocuments))
		return
	}
	docs := make([]Document, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			httputil.WriteError(w, errs.Wrap(err, errs.CodeValidation, "unreadable document"))
			return
		}
		defer f.Close()
		docs = append(docs, Document{Filename: fh.Filename, Content: f})
	}

	p, err := h.service.Register(r.Context(), req, docs)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusCreated, p)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	token, p, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, loginResponse{Token: token, Producer: p})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())
	p, err := h.service.Profile(r.Context(), caller)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, p)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.Verification(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, v)
}
