// AngelaMos | 2026
// service_test.go

package lease

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makao-dev/makao-api/internal/authz"
	"github.com/makao-dev/makao-api/internal/core"
)

type fakeRepository struct {
	leases map[string]*Lease
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{leases: map[string]*Lease{}}
}

func (f *fakeRepository) Create(_ context.Context, l *Lease) error {
	copied := *l
	f.leases[l.ID] = &copied
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*Lease, error) {
	l, ok := f.leases[id]
	if !ok {
		return nil, fmt.Errorf("get lease: %w", core.ErrNotFound)
	}
	copied := *l
	return &copied, nil
}

func (f *fakeRepository) ListAll(
	_ context.Context,
	limit int,
) ([]LeaseRow, error) {
	out := make([]LeaseRow, 0, len(f.leases))
	for _, l := range f.leases {
		out = append(out, LeaseRow{Lease: *l})
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepository) GetActiveByTenant(
	_ context.Context,
	tenantID string,
) (*LeaseRow, error) {
	for _, l := range f.leases {
		if l.TenantID == tenantID && l.Status == StatusActive {
			return &LeaseRow{Lease: *l}, nil
		}
	}
	return nil, fmt.Errorf("get active lease: %w", core.ErrNotFound)
}

func (f *fakeRepository) SetStatus(
	_ context.Context,
	id, status string,
) error {
	l, ok := f.leases[id]
	if !ok {
		return fmt.Errorf("set lease status: %w", core.ErrNotFound)
	}
	l.Status = status
	return nil
}

type fakeUnits struct {
	units map[string]*UnitInfo
}

func (f *fakeUnits) GetUnitInfo(
	_ context.Context,
	unitID string,
) (*UnitInfo, error) {
	u, ok := f.units[unitID]
	if !ok {
		return nil, fmt.Errorf("get unit: %w", core.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUnits) SetUnitStatus(
	_ context.Context,
	unitID, status string,
) error {
	u, ok := f.units[unitID]
	if !ok {
		return fmt.Errorf("set unit status: %w", core.ErrNotFound)
	}
	u.Status = status
	return nil
}

func newTestService(repo *fakeRepository, units *fakeUnits) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, units, authz.NewGate(), logger)
}

var (
	adminCaller  = authz.Caller{ID: "admin-1", Role: "admin"}
	tenantCaller = authz.Caller{ID: "tenant-1", Role: "tenant"}
)

func createRequest(unitID string) *CreateLeaseRequest {
	return &CreateLeaseRequest{
		UnitID:    unitID,
		TenantID:  "tenant-1",
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 8, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateMarksUnitOccupied(t *testing.T) {
	repo := newFakeRepository()
	units := &fakeUnits{units: map[string]*UnitInfo{
		"unit-1": {ID: "unit-1", Status: "vacant", RentAmount: 1200},
	}}
	svc := newTestService(repo, units)

	l, err := svc.Create(context.Background(), adminCaller, createRequest("unit-1"))
	require.NoError(t, err)

	assert.Equal(t, StatusActive, l.Status)
	assert.Equal(t, 1200.0, l.RentAmount, "rent defaults from the unit")
	assert.Equal(t, "occupied", units.units["unit-1"].Status)
}

func TestCreateRejectsOccupiedUnit(t *testing.T) {
	repo := newFakeRepository()
	units := &fakeUnits{units: map[string]*UnitInfo{
		"unit-1": {ID: "unit-1", Status: "occupied"},
	}}
	svc := newTestService(repo, units)

	_, err := svc.Create(context.Background(), adminCaller, createRequest("unit-1"))
	require.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Empty(t, repo.leases, "no lease row on a failed vacancy check")
}

func TestCreateDeniedForTenant(t *testing.T) {
	svc := newTestService(newFakeRepository(), &fakeUnits{})

	_, err := svc.Create(context.Background(), tenantCaller, createRequest("unit-1"))
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestListAllNoLimitReturnsEverything(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, &fakeUnits{})

	ctx := context.Background()
	for i := 0; i < 60; i++ {
		require.NoError(t, repo.Create(ctx, &Lease{
			ID:     fmt.Sprintf("lease-%03d", i),
			Status: StatusActive,
		}))
	}

	all, err := svc.ListAll(ctx, adminCaller, 0)
	require.NoError(t, err)
	assert.Len(t, all, 60, "no limit means the whole collection")

	page, err := svc.ListAll(ctx, adminCaller, 10)
	require.NoError(t, err)
	assert.Len(t, page, 10)
}

func TestGetMineReturnsActiveLease(t *testing.T) {
	repo := newFakeRepository()
	units := &fakeUnits{units: map[string]*UnitInfo{
		"unit-1": {ID: "unit-1", Status: "vacant"},
	}}
	svc := newTestService(repo, units)

	ctx := context.Background()
	created, err := svc.Create(ctx, adminCaller, createRequest("unit-1"))
	require.NoError(t, err)

	row, err := svc.GetMine(ctx, tenantCaller)
	require.NoError(t, err)
	assert.Equal(t, created.ID, row.ID)
}

func TestGetMineWithoutLease(t *testing.T) {
	svc := newTestService(newFakeRepository(), &fakeUnits{})

	_, err := svc.GetMine(context.Background(), tenantCaller)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestTerminateFreesUnit(t *testing.T) {
	repo := newFakeRepository()
	units := &fakeUnits{units: map[string]*UnitInfo{
		"unit-1": {ID: "unit-1", Status: "vacant"},
	}}
	svc := newTestService(repo, units)

	ctx := context.Background()
	created, err := svc.Create(ctx, adminCaller, createRequest("unit-1"))
	require.NoError(t, err)

	terminated, err := svc.Terminate(ctx, adminCaller, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusTerminated, terminated.Status)
	assert.Equal(t, "vacant", units.units["unit-1"].Status)

	_, err = svc.Terminate(ctx, adminCaller, created.ID)
	assert.ErrorIs(t, err, core.ErrInvalidInput, "terminating twice is rejected")
}
