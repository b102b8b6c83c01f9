// AngelaMos | 2026
// service.go

// Package maintenance tracks tenant maintenance requests and their
// progress log. Tenants submit and read their own requests; admins see
// everything and drive status through appended updates.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/makao-dev/makao-api/internal/authz"
	"github.com/makao-dev/makao-api/internal/core"
	"github.com/makao-dev/makao-api/internal/shape"
)

const maxListLimit = 200

type Service struct {
	repo   Repository
	gate   *authz.Gate
	logger *slog.Logger
}

func NewService(
	repo Repository,
	gate *authz.Gate,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:   repo,
		gate:   gate,
		logger: logger,
	}
}

// Submit records a new request and seeds its progress log. The two writes
// are intentionally separate statements: a log-seed failure leaves the
// request in place and is reported as success, since the request row is
// the source of truth and the log entry is reconstructible.
func (s *Service) Submit(
	ctx context.Context,
	caller authz.Caller,
	req *SubmitRequest,
) (*Request, error) {
	err := s.gate.Authorize(caller, authz.OpSubmitMaintenance, authz.Resource{
		OwnerID: caller.ID,
	})
	if err != nil {
		return nil, err
	}

	tenantID := caller.ID
	m := &Request{
		ID:          uuid.NewString(),
		TenantID:    &tenantID,
		UnitID:      req.UnitID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      StatusSubmitted,
	}
	if m.Priority == "" {
		m.Priority = PriorityMedium
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("submit maintenance request: %w", err)
	}

	seed := &Update{
		ID:        uuid.NewString(),
		RequestID: m.ID,
		AuthorID:  &tenantID,
		Note:      "Request submitted",
	}
	if err := s.repo.CreateUpdate(ctx, seed); err != nil {
		s.logger.Warn("initial maintenance log entry failed",
			"request_id", m.ID,
			"error", err,
		)
	}

	s.logger.Info("maintenance request submitted",
		"request_id", m.ID,
		"tenant_id", caller.ID,
	)

	return m, nil
}

func (s *Service) ListMine(
	ctx context.Context,
	caller authz.Caller,
	limit int,
) ([]RequestRow, error) {
	err := s.gate.Authorize(caller, authz.OpListOwnMaintenance, authz.Resource{
		OwnerID: caller.ID,
	})
	if err != nil {
		return nil, err
	}

	return s.repo.ListByTenant(ctx, caller.ID, clampLimit(limit))
}

func (s *Service) ListAll(
	ctx context.Context,
	caller authz.Caller,
	limit int,
) ([]RequestRow, error) {
	err := s.gate.Authorize(caller, authz.OpListAllMaintenance, authz.Resource{})
	if err != nil {
		return nil, err
	}

	return s.repo.ListAll(ctx, clampLimit(limit))
}

// Get fetches the request first and gates on the fetched row's tenant,
// so a foreign request yields 403 for tenants while admins pass.
func (s *Service) Get(
	ctx context.Context,
	caller authz.Caller,
	id string,
) (*RequestRow, []UpdateRow, error) {
	row, err := s.repo.GetRow(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	err = s.gate.Authorize(caller, authz.OpReadMaintenance, authz.Resource{
		OwnerID: shape.ID(row.TenantID),
	})
	if err != nil {
		return nil, nil, err
	}

	updates, err := s.repo.ListUpdates(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return row, updates, nil
}

// AppendUpdate adds a progress entry and optionally moves the request's
// status with it. The two writes commit together.
func (s *Service) AppendUpdate(
	ctx context.Context,
	caller authz.Caller,
	requestID string,
	req *AppendUpdateRequest,
) (*Update, error) {
	err := s.gate.Authorize(
		caller,
		authz.OpAppendMaintenanceUpdate,
		authz.Resource{},
	)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetRow(ctx, requestID); err != nil {
		return nil, err
	}

	if req.Status != nil && !ValidStatus(*req.Status) {
		return nil, core.ValidationError("invalid status")
	}

	authorID := caller.ID
	u := &Update{
		ID:        uuid.NewString(),
		RequestID: requestID,
		AuthorID:  &authorID,
		Note:      req.Note,
		Status:    req.Status,
	}

	if err := s.repo.AppendUpdate(ctx, u, req.Status); err != nil {
		return nil, fmt.Errorf("append maintenance update: %w", err)
	}

	return u, nil
}

// clampLimit caps explicit caller limits. Zero or negative passes through
// as zero, which the repository treats as "no limit".
func clampLimit(limit int) int {
	if limit <= 0 {
		return 0
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
