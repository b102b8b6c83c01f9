// AngelaMos | 2026
// service.go

// Package lease handles lease agreements between tenants and units. Lease
// creation is admin territory; tenants only read their own active lease.
package lease

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/makao-dev/makao-api/internal/authz"
	"github.com/makao-dev/makao-api/internal/core"
)

const maxListLimit = 200

// UnitProvider is the slice of the property domain lease assignment needs.
// Implemented by property.Service.
type UnitProvider interface {
	GetUnitInfo(ctx context.Context, unitID string) (*UnitInfo, error)
	SetUnitStatus(ctx context.Context, unitID, status string) error
}

type Service struct {
	repo   Repository
	units  UnitProvider
	gate   *authz.Gate
	logger *slog.Logger
}

func NewService(
	repo Repository,
	units UnitProvider,
	gate *authz.Gate,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:   repo,
		units:  units,
		gate:   gate,
		logger: logger,
	}
}

// Create assigns a tenant to a vacant unit. The lease insert and the unit
// status flip are two separate writes; a failure between them leaves an
// active lease on a vacant-marked unit, surfaced to the caller as an error.
func (s *Service) Create(
	ctx context.Context,
	caller authz.Caller,
	req *CreateLeaseRequest,
) (*Lease, error) {
	err := s.gate.Authorize(caller, authz.OpManageLeases, authz.Resource{})
	if err != nil {
		return nil, err
	}

	unit, err := s.units.GetUnitInfo(ctx, req.UnitID)
	if err != nil {
		return nil, err
	}

	if unit.Status != "vacant" {
		return nil, core.ValidationError("unit is not vacant")
	}

	rentAmount := req.RentAmount
	if rentAmount == 0 {
		rentAmount = unit.RentAmount
	}

	l := &Lease{
		ID:         uuid.NewString(),
		UnitID:     req.UnitID,
		TenantID:   req.TenantID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		RentAmount: rentAmount,
		Status:     StatusActive,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create lease: %w", err)
	}

	if err := s.units.SetUnitStatus(ctx, req.UnitID, "occupied"); err != nil {
		s.logger.Error("unit status flip failed after lease insert",
			"lease_id", l.ID,
			"unit_id", req.UnitID,
			"error", err,
		)
		return nil, fmt.Errorf("mark unit occupied: %w", err)
	}

	s.logger.Info("lease created",
		"lease_id", l.ID,
		"unit_id", l.UnitID,
		"tenant_id", l.TenantID,
	)

	return l, nil
}

func (s *Service) ListAll(
	ctx context.Context,
	caller authz.Caller,
	limit int,
) ([]LeaseRow, error) {
	err := s.gate.Authorize(caller, authz.OpManageLeases, authz.Resource{})
	if err != nil {
		return nil, err
	}

	// A zero limit reaches the repository as "no limit": callers who do
	// not ask for a page get everything.
	if limit < 0 {
		limit = 0
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	return s.repo.ListAll(ctx, limit)
}

// GetMine returns the caller's active lease with its joined unit and
// property context.
func (s *Service) GetMine(
	ctx context.Context,
	caller authz.Caller,
) (*LeaseRow, error) {
	err := s.gate.Authorize(caller, authz.OpReadOwnLease, authz.Resource{
		OwnerID: caller.ID,
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetActiveByTenant(ctx, caller.ID)
}

// Terminate ends a lease and frees its unit. Same two-write shape as Create.
func (s *Service) Terminate(
	ctx context.Context,
	caller authz.Caller,
	leaseID string,
) (*Lease, error) {
	err := s.gate.Authorize(caller, authz.OpManageLeases, authz.Resource{})
	if err != nil {
		return nil, err
	}

	l, err := s.repo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	if l.Status != StatusActive {
		return nil, core.ValidationError("lease is not active")
	}

	if err := s.repo.SetStatus(ctx, leaseID, StatusTerminated); err != nil {
		return nil, fmt.Errorf("terminate lease: %w", err)
	}
	l.Status = StatusTerminated

	if err := s.units.SetUnitStatus(ctx, l.UnitID, "vacant"); err != nil {
		s.logger.Error("unit status flip failed after lease termination",
			"lease_id", l.ID,
			"unit_id", l.UnitID,
			"error", err,
		)
		return nil, fmt.Errorf("mark unit vacant: %w", err)
	}

	s.logger.Info("lease terminated", "lease_id", l.ID)

	return l, nil
}
