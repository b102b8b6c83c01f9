// AngelaMos | 2026
// handler.go

package lease

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/makao-dev/makao-api/internal/core"
	"github.com/makao-dev/makao-api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leases", func(r chi.Router) {
		r.Get("/", h.ListAll)
		r.Post("/", h.Create)
		r.Get("/my", h.GetMine)
		r.Post("/{leaseID}/terminate", h.Terminate)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var req CreateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	l, err := h.service.Create(r.Context(), caller, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.SuccessCreated(w, ToLeaseResponse(l))
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	rows, err := h.service.ListAll(r.Context(), caller, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]LeaseViewResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToLeaseViewResponse(&rows[i]))
	}

	core.OK(w, map[string]any{"leases": out})
}

func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	row, err := h.service.GetMine(r.Context(), caller)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "active lease")
			return
		}
		h.writeError(w, err)
		return
	}

	core.OK(w, ToLeaseViewResponse(row))
}

func (h *Handler) Terminate(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	leaseID := chi.URLParam(r, "leaseID")

	l, err := h.service.Terminate(r.Context(), caller, leaseID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Success(w, ToLeaseResponse(l))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnauthenticated),
		errors.Is(err, core.ErrForbidden):
		middleware.WriteAuthzError(w, err)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "lease")
	case core.IsAppError(err):
		core.JSONError(w, err)
	case errors.Is(err, core.ErrDuplicateKey):
		core.JSONError(w, core.DuplicateError("lease"))
	default:
		core.InternalServerError(w, err)
	}
}
