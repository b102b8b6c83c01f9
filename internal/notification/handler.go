// AngelaMos | 2026
// handler.go

package notification

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/makao-dev/makao-api/internal/core"
	"github.com/makao-dev/makao-api/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.ListMine)
		r.Post("/{notificationID}/read", h.MarkRead)
	})
}

type notificationView struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	NotificationType string    `json:"notification_type"`
	IsRead           bool      `json:"is_read"`
	CreatedAt        time.Time `json:"created_at"`
}

// ListMine degrades to an empty list with provisioned=false when the
// notification store does not exist yet.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	rows, err := h.service.ListMine(r.Context(), caller)
	if err != nil {
		if errors.Is(err, core.ErrNotProvisioned) {
			core.OK(w, map[string]any{
				"notifications": []notificationView{},
				"provisioned":   false,
			})
			return
		}
		h.writeError(w, err)
		return
	}

	out := make([]notificationView, 0, len(rows))
	for _, n := range rows {
		out = append(out, notificationView{
			ID:               n.ID,
			Title:            n.Title,
			Content:          n.Content,
			NotificationType: n.NotificationType,
			IsRead:           n.IsRead,
			CreatedAt:        n.CreatedAt,
		})
	}

	core.OK(w, map[string]any{
		"notifications": out,
		"provisioned":   true,
	})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	notificationID := chi.URLParam(r, "notificationID")

	err := h.service.MarkRead(r.Context(), caller, notificationID)
	if err != nil {
		if errors.Is(err, core.ErrNotProvisioned) {
			core.NotFound(w, "notification")
			return
		}
		h.writeError(w, err)
		return
	}

	core.Success(w, map[string]any{"notification_id": notificationID})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnauthenticated),
		errors.Is(err, core.ErrForbidden):
		middleware.WriteAuthzError(w, err)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "notification")
	default:
		core.InternalServerError(w, err)
	}
}
