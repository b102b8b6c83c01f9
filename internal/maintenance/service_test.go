// AngelaMos | 2026
// service_test.go

package maintenance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makao-dev/makao-api/internal/authz"
	"github.com/makao-dev/makao-api/internal/core"
)

type fakeRepository struct {
	requests    map[string]*RequestRow
	updates     map[string][]UpdateRow
	failUpdates bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		requests: map[string]*RequestRow{},
		updates:  map[string][]UpdateRow{},
	}
}

func (f *fakeRepository) Create(_ context.Context, req *Request) error {
	f.requests[req.ID] = &RequestRow{Request: *req}
	return nil
}

func (f *fakeRepository) GetRow(
	_ context.Context,
	id string,
) (*RequestRow, error) {
	row, ok := f.requests[id]
	if !ok {
		return nil, fmt.Errorf("get maintenance request: %w", core.ErrNotFound)
	}
	copied := *row
	return &copied, nil
}

func (f *fakeRepository) ListAll(
	_ context.Context,
	limit int,
) ([]RequestRow, error) {
	out := make([]RequestRow, 0, len(f.requests))
	for _, row := range f.requests {
		out = append(out, *row)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepository) ListByTenant(
	_ context.Context,
	tenantID string,
	limit int,
) ([]RequestRow, error) {
	out := make([]RequestRow, 0)
	for _, row := range f.requests {
		if row.TenantID != nil && *row.TenantID == tenantID {
			out = append(out, *row)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepository) CreateUpdate(_ context.Context, u *Update) error {
	if f.failUpdates {
		return fmt.Errorf("create maintenance update: connection reset")
	}
	f.updates[u.RequestID] = append(f.updates[u.RequestID], UpdateRow{Update: *u})
	return nil
}

// AppendUpdate mirrors the transactional contract: on failure neither the
// log entry nor the status move is visible.
func (f *fakeRepository) AppendUpdate(
	ctx context.Context,
	u *Update,
	status *string,
) error {
	if f.failUpdates {
		return fmt.Errorf("append maintenance update: connection reset")
	}
	if status != nil {
		row, ok := f.requests[u.RequestID]
		if !ok {
			return fmt.Errorf("set maintenance status: %w", core.ErrNotFound)
		}
		row.Status = *status
	}
	return f.CreateUpdate(ctx, u)
}

func (f *fakeRepository) ListUpdates(
	_ context.Context,
	requestID string,
) ([]UpdateRow, error) {
	return f.updates[requestID], nil
}

func newTestService(repo *fakeRepository) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, authz.NewGate(), logger)
}

var (
	tenantCaller  = authz.Caller{ID: "tenant-1", Role: "tenant"}
	tenant2Caller = authz.Caller{ID: "tenant-2", Role: "tenant"}
	adminCaller   = authz.Caller{ID: "admin-1", Role: "admin"}
)

func TestSubmitSeedsProgressLog(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	m, err := svc.Submit(context.Background(), tenantCaller, &SubmitRequest{
		Title:       "Leaking tap",
		Description: "Kitchen tap drips continuously",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, m.Status)
	assert.Equal(t, PriorityMedium, m.Priority)

	updates := repo.updates[m.ID]
	require.Len(t, updates, 1)
	assert.Equal(t, "Request submitted", updates[0].Note)
}

func TestSubmitSucceedsWhenLogSeedFails(t *testing.T) {
	repo := newFakeRepository()
	repo.failUpdates = true
	svc := newTestService(repo)

	m, err := svc.Submit(context.Background(), tenantCaller, &SubmitRequest{
		Title:       "Broken lock",
		Description: "Front door lock jammed",
	})
	require.NoError(t, err, "request row is the source of truth; a lost log entry is tolerated")

	stored, err := repo.GetRow(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, stored.Status)
	assert.Empty(t, repo.updates[m.ID])
}

func TestListMineIsolatedPerTenant(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	ctx := context.Background()
	_, err := svc.Submit(ctx, tenantCaller, &SubmitRequest{
		Title:       "Leaking tap",
		Description: "Kitchen tap drips continuously",
	})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, tenant2Caller, &SubmitRequest{
		Title:       "Cracked window",
		Description: "Bedroom window cracked",
	})
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, tenantCaller, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Leaking tap", mine[0].Title)

	all, err := svc.ListAll(ctx, adminCaller, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListAllNoLimitReturnsEverything(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	ctx := context.Background()
	for i := 0; i < 60; i++ {
		require.NoError(t, repo.Create(ctx, &Request{
			ID:          fmt.Sprintf("req-%03d", i),
			Title:       "Leaking tap",
			Description: "Kitchen tap drips continuously",
			Priority:    PriorityMedium,
			Status:      StatusSubmitted,
		}))
	}

	all, err := svc.ListAll(ctx, adminCaller, 0)
	require.NoError(t, err)
	assert.Len(t, all, 60, "no limit means the whole collection")

	page, err := svc.ListAll(ctx, adminCaller, 10)
	require.NoError(t, err)
	assert.Len(t, page, 10)
}

func TestListAllDeniedForTenant(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.ListAll(context.Background(), tenantCaller, 0)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestGetDeniesForeignTenant(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	ctx := context.Background()
	m, err := svc.Submit(ctx, tenantCaller, &SubmitRequest{
		Title:       "Leaking tap",
		Description: "Kitchen tap drips continuously",
	})
	require.NoError(t, err)

	_, _, err = svc.Get(ctx, tenant2Caller, m.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)

	row, updates, err := svc.Get(ctx, adminCaller, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, row.ID)
	assert.Len(t, updates, 1)
}

func TestAppendUpdateMovesStatus(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	ctx := context.Background()
	m, err := svc.Submit(ctx, tenantCaller, &SubmitRequest{
		Title:       "Leaking tap",
		Description: "Kitchen tap drips continuously",
	})
	require.NoError(t, err)

	scheduled := StatusScheduled
	u, err := svc.AppendUpdate(ctx, adminCaller, m.ID, &AppendUpdateRequest{
		Note:   "Plumber booked for Tuesday",
		Status: &scheduled,
	})
	require.NoError(t, err)
	require.NotNil(t, u.Status)

	stored, err := repo.GetRow(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, stored.Status)
	assert.Len(t, repo.updates[m.ID], 2)
}

func TestAppendUpdateFailureLeavesRequestUntouched(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	ctx := context.Background()
	m, err := svc.Submit(ctx, tenantCaller, &SubmitRequest{
		Title:       "Leaking tap",
		Description: "Kitchen tap drips continuously",
	})
	require.NoError(t, err)

	repo.failUpdates = true
	scheduled := StatusScheduled
	_, err = svc.AppendUpdate(ctx, adminCaller, m.ID, &AppendUpdateRequest{
		Note:   "Plumber booked for Tuesday",
		Status: &scheduled,
	})
	require.Error(t, err)

	stored, getErr := repo.GetRow(ctx, m.ID)
	require.NoError(t, getErr)
	assert.Equal(t, StatusSubmitted, stored.Status,
		"a failed append must not move the status")
	assert.Len(t, repo.updates[m.ID], 1)
}

func TestAppendUpdateRejectsUnknownStatus(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	ctx := context.Background()
	m, err := svc.Submit(ctx, tenantCaller, &SubmitRequest{
		Title:       "Leaking tap",
		Description: "Kitchen tap drips continuously",
	})
	require.NoError(t, err)

	bogus := "abandoned"
	_, err = svc.AppendUpdate(ctx, adminCaller, m.ID, &AppendUpdateRequest{
		Note:   "closing this out",
		Status: &bogus,
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestAppendUpdateDeniedForTenant(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	ctx := context.Background()
	m, err := svc.Submit(ctx, tenantCaller, &SubmitRequest{
		Title:       "Leaking tap",
		Description: "Kitchen tap drips continuously",
	})
	require.NoError(t, err)

	_, err = svc.AppendUpdate(ctx, tenantCaller, m.ID, &AppendUpdateRequest{
		Note: "any progress?",
	})
	assert.ErrorIs(t, err, core.ErrForbidden)
}
