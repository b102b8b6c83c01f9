// AngelaMos | 2026
// handler.go

package property

import (
	"encoding/json"
	"errors"
	"net/http"

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
	r.Route("/properties", func(r chi.Router) {
		r.Get("/", h.ListMine)
		r.Post("/", h.Create)
		r.Route("/{propertyID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
			r.Get("/units", h.ListUnits)
			r.Post("/units", h.AddUnit)
		})
	})
	r.Route("/units/{unitID}", func(r chi.Router) {
		r.Put("/", h.UpdateUnit)
		r.Delete("/", h.DeleteUnit)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var req CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Create(r.Context(), caller, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, ToPropertyResponse(p, 0))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	rows, err := h.service.ListMine(r.Context(), caller)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]PropertyResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToPropertyResponse(&rows[i].Property, rows[i].UnitCount))
	}

	core.OK(w, map[string]any{"properties": out})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	propertyID := chi.URLParam(r, "propertyID")

	p, err := h.service.Get(r.Context(), caller, propertyID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	units, err := h.service.ListUnits(r.Context(), caller, propertyID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToPropertyResponse(p, len(units)))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	propertyID := chi.URLParam(r, "propertyID")

	var req UpdatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Update(r.Context(), caller, propertyID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Success(w, ToPropertyResponse(p, 0))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	propertyID := chi.URLParam(r, "propertyID")

	if err := h.service.Delete(r.Context(), caller, propertyID); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) AddUnit(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	propertyID := chi.URLParam(r, "propertyID")

	var req CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.AddUnit(r.Context(), caller, propertyID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, ToUnitResponse(u))
}

func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	propertyID := chi.URLParam(r, "propertyID")

	units, err := h.service.ListUnits(r.Context(), caller, propertyID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]UnitResponse, 0, len(units))
	for i := range units {
		out = append(out, ToUnitResponse(&units[i]))
	}

	core.OK(w, map[string]any{"units": out})
}

func (h *Handler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	unitID := chi.URLParam(r, "unitID")

	var req UpdateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.UpdateUnit(r.Context(), caller, unitID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Success(w, ToUnitResponse(u))
}

func (h *Handler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	unitID := chi.URLParam(r, "unitID")

	if err := h.service.DeleteUnit(r.Context(), caller, unitID); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnauthenticated),
		errors.Is(err, core.ErrForbidden):
		middleware.WriteAuthzError(w, err)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "property")
	case errors.Is(err, core.ErrDuplicateKey):
		core.JSONError(w, core.DuplicateError("property"))
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}
