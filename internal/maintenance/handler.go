// AngelaMos | 2026
// handler.go

package maintenance

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
	r.Route("/maintenance", func(r chi.Router) {
		r.Get("/", h.ListMine)
		r.Post("/", h.Submit)
		r.Get("/{requestID}", h.Get)
	})
	r.Route("/admin/maintenance", func(r chi.Router) {
		r.Get("/", h.ListAll)
		r.Post("/{requestID}/updates", h.AppendUpdate)
	})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	m, err := h.service.Submit(r.Context(), caller, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.SuccessCreated(w, map[string]any{
		"request_id": m.ID,
		"status":     m.Status,
		"priority":   m.Priority,
	})
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	rows, err := h.service.ListMine(r.Context(), caller, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, map[string]any{"requests": toRequestResponses(rows)})
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	rows, err := h.service.ListAll(r.Context(), caller, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, map[string]any{"requests": toRequestResponses(rows)})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	requestID := chi.URLParam(r, "requestID")

	row, updates, err := h.service.Get(r.Context(), caller, requestID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToRequestDetailResponse(row, updates))
}

func (h *Handler) AppendUpdate(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	requestID := chi.URLParam(r, "requestID")

	var req AppendUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.AppendUpdate(r.Context(), caller, requestID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.SuccessCreated(w, map[string]any{
		"update_id":  u.ID,
		"request_id": u.RequestID,
	})
}

func toRequestResponses(rows []RequestRow) []RequestResponse {
	out := make([]RequestResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToRequestResponse(&rows[i]))
	}
	return out
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnauthenticated),
		errors.Is(err, core.ErrForbidden):
		middleware.WriteAuthzError(w, err)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "maintenance request")
	case core.IsAppError(err):
		core.JSONError(w, err)
	default:
		core.InternalServerError(w, err)
	}
}
