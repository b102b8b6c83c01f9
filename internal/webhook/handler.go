// AngelaMos | 2026
// handler.go

// Package webhook receives the identity provider's user lifecycle event
// stream and mirrors it into the persisted user records. It is the only
// writer of identity state; request-path code never creates users.
package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/makao-dev/makao-api/internal/core"
)

const maxEventBody = 1 << 20

type UserSyncer interface {
	SyncCreated(
		ctx context.Context,
		id, email, fullName string,
		phone *string,
	) error
	SyncUpdated(
		ctx context.Context,
		id, email, fullName string,
		phone *string,
	) error
	SyncDeleted(ctx context.Context, id string) error
}

type Handler struct {
	verifier SignatureVerifier
	users    UserSyncer
	logger   *slog.Logger
}

func NewHandler(
	verifier SignatureVerifier,
	users UserSyncer,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		verifier: verifier,
		users:    users,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/webhooks/identity", h.HandleIdentityEvent)
}

// HandleIdentityEvent verifies the event signature before touching
// storage; missing or invalid signature headers are rejected with 400.
// Unknown event types are acknowledged and ignored.
func (h *Handler) HandleIdentityEvent(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxEventBody))
	if err != nil {
		core.BadRequest(w, "unreadable request body")
		return
	}

	if r.Header.Get("svix-id") == "" ||
		r.Header.Get("svix-timestamp") == "" ||
		r.Header.Get("svix-signature") == "" {
		core.BadRequest(w, "missing signature headers")
		return
	}

	if err := h.verifier.Verify(payload, r.Header); err != nil {
		core.BadRequest(w, "invalid signature")
		return
	}

	var event identityEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		core.BadRequest(w, "invalid event payload")
		return
	}

	switch event.Type {
	case eventUserCreated:
		err = h.users.SyncCreated(
			r.Context(),
			event.Data.ID,
			event.Data.primaryEmail(),
			event.Data.fullName(),
			event.Data.primaryPhone(),
		)
	case eventUserUpdated:
		err = h.users.SyncUpdated(
			r.Context(),
			event.Data.ID,
			event.Data.primaryEmail(),
			event.Data.fullName(),
			event.Data.primaryPhone(),
		)
	case eventUserDeleted:
		err = h.users.SyncDeleted(r.Context(), event.Data.ID)
	default:
		h.logger.Debug("ignoring identity event", "type", event.Type)
		core.OK(w, map[string]any{"received": true, "handled": false})
		return
	}

	if err != nil {
		h.logger.Error("identity sync failed",
			"type", event.Type,
			"user_id", event.Data.ID,
			"error", err,
		)
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]any{"received": true, "handled": true})
}
