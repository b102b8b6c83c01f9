// AngelaMos | 2026
// handler.go

package user

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
	r.Route("/me", func(r chi.Router) {
		r.Get("/", h.GetMe)
		r.Post("/role", h.SelectRole)
	})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	subjectID := middleware.GetSubjectID(r.Context())

	user, err := h.service.GetMe(r.Context(), subjectID)
	if err != nil {
		if errors.Is(err, core.ErrUnauthenticated) {
			core.Unauthorized(w, "")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			appErr := core.NotFoundError("user")
			appErr.Details = "role selection not completed"
			core.JSONError(w, appErr)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) SelectRole(w http.ResponseWriter, r *http.Request) {
	subjectID := middleware.GetSubjectID(r.Context())

	var req SelectRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.SelectRole(r.Context(), subjectID, req.UserType)
	if err != nil {
		if errors.Is(err, core.ErrUnauthenticated) {
			core.Unauthorized(w, "")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Success(w, ToUserResponse(user))
}
