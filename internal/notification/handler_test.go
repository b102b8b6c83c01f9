// AngelaMos | 2026
// handler_test.go

package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makao-dev/makao-api/internal/authz"
	"github.com/makao-dev/makao-api/internal/core"
	"github.com/makao-dev/makao-api/internal/middleware"
)

type fakeRepository struct {
	provisioned   bool
	notifications map[string]*Notification
}

func (f *fakeRepository) ListByUser(
	_ context.Context,
	userID string,
) ([]Notification, error) {
	if !f.provisioned {
		return nil, fmt.Errorf("list notifications: %w", core.ErrNotProvisioned)
	}
	out := make([]Notification, 0)
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeRepository) GetByID(
	_ context.Context,
	id string,
) (*Notification, error) {
	if !f.provisioned {
		return nil, fmt.Errorf("get notification: %w", core.ErrNotProvisioned)
	}
	n, ok := f.notifications[id]
	if !ok {
		return nil, fmt.Errorf("get notification: %w", core.ErrNotFound)
	}
	copied := *n
	return &copied, nil
}

func (f *fakeRepository) MarkRead(_ context.Context, id string) error {
	n, ok := f.notifications[id]
	if !ok {
		return fmt.Errorf("mark notification read: %w", core.ErrNotFound)
	}
	n.IsRead = true
	return nil
}

func (f *fakeRepository) Insert(_ context.Context, n *Notification) error {
	copied := *n
	f.notifications[n.ID] = &copied
	return nil
}

func newTestRouter(repo *fakeRepository) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(NewService(repo, authz.NewGate(), logger))

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func authedRequest(method, path, subjectID, role string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	ctx := context.WithValue(req.Context(), middleware.SubjectIDKey, subjectID)
	ctx = context.WithValue(ctx, middleware.UserRoleKey, role)
	return req.WithContext(ctx)
}

func TestListMineUnprovisionedDegrades(t *testing.T) {
	router := newTestRouter(&fakeRepository{provisioned: false})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(
		http.MethodGet, "/notifications", "tenant-1", "tenant",
	))

	require.Equal(t, http.StatusOK, rec.Code,
		"a missing notification store must not error")

	var body struct {
		Notifications []notificationView `json:"notifications"`
		Provisioned   bool               `json:"provisioned"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Provisioned)
	assert.Empty(t, body.Notifications)
}

func TestListMineScopedToCaller(t *testing.T) {
	repo := &fakeRepository{
		provisioned: true,
		notifications: map[string]*Notification{
			"n-1": {
				ID:        "n-1",
				UserID:    "tenant-1",
				Title:     "Rent due",
				CreatedAt: time.Now(),
			},
			"n-2": {
				ID:        "n-2",
				UserID:    "tenant-2",
				Title:     "Inspection",
				CreatedAt: time.Now(),
			},
		},
	}
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(
		http.MethodGet, "/notifications", "tenant-1", "tenant",
	))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Notifications []notificationView `json:"notifications"`
		Provisioned   bool               `json:"provisioned"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Provisioned)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, "n-1", body.Notifications[0].ID)
}

func TestMarkReadForeignNotificationForbidden(t *testing.T) {
	repo := &fakeRepository{
		provisioned: true,
		notifications: map[string]*Notification{
			"n-2": {ID: "n-2", UserID: "tenant-2"},
		},
	}
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(
		http.MethodPost, "/notifications/n-2/read", "tenant-1", "tenant",
	))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, repo.notifications["n-2"].IsRead)
}

func TestMarkReadOwnNotification(t *testing.T) {
	repo := &fakeRepository{
		provisioned: true,
		notifications: map[string]*Notification{
			"n-1": {ID: "n-1", UserID: "tenant-1"},
		},
	}
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(
		http.MethodPost, "/notifications/n-1/read", "tenant-1", "tenant",
	))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, repo.notifications["n-1"].IsRead)
}
