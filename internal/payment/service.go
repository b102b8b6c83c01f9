// AngelaMos | 2026
// service.go

// Package payment records rent payments and their verification lifecycle.
// Tenants submit and read their own rows; verification and rejection are
// admin operations. Invoice reads additionally admit the property owner.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/makao-dev/makao-api/internal/authz"
	"github.com/makao-dev/makao-api/internal/core"
	"github.com/makao-dev/makao-api/internal/shape"
)

const maxListLimit = 200

// LeaseProvider resolves the active lease a submitted payment attaches to.
// Implemented by lease.Service.
type LeaseProvider interface {
	GetActiveLease(ctx context.Context, tenantID string) (*LeaseInfo, error)
}

type Service struct {
	repo   Repository
	leases LeaseProvider
	gate   *authz.Gate
	logger *slog.Logger
}

func NewService(
	repo Repository,
	leases LeaseProvider,
	gate *authz.Gate,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:   repo,
		leases: leases,
		gate:   gate,
		logger: logger,
	}
}

func (s *Service) ListAll(
	ctx context.Context,
	caller authz.Caller,
	limit int,
) ([]PaymentRow, error) {
	err := s.gate.Authorize(caller, authz.OpListAllPayments, authz.Resource{})
	if err != nil {
		return nil, err
	}

	return s.repo.ListAll(ctx, clampLimit(limit))
}

func (s *Service) ListMine(
	ctx context.Context,
	caller authz.Caller,
	limit int,
) ([]PaymentRow, error) {
	err := s.gate.Authorize(caller, authz.OpListOwnPayments, authz.Resource{
		OwnerID: caller.ID,
	})
	if err != nil {
		return nil, err
	}

	return s.repo.ListByTenant(ctx, caller.ID, clampLimit(limit))
}

// Submit records a pending payment against the caller's active lease.
// A caller without an active lease cannot submit.
func (s *Service) Submit(
	ctx context.Context,
	caller authz.Caller,
	req *SubmitPaymentRequest,
) (*Payment, error) {
	err := s.gate.Authorize(caller, authz.OpSubmitPayment, authz.Resource{
		OwnerID: caller.ID,
	})
	if err != nil {
		return nil, err
	}

	lease, err := s.leases.GetActiveLease(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.ValidationError("no active lease")
		}
		return nil, fmt.Errorf("resolve active lease: %w", err)
	}

	tenantID := caller.ID
	p := &Payment{
		ID:              uuid.NewString(),
		LeaseID:         &lease.ID,
		TenantID:        &tenantID,
		Amount:          req.Amount,
		PaymentDate:     time.Now().UTC(),
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		Status:          StatusPending,
		Notes:           req.Notes,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("submit payment: %w", err)
	}

	s.logger.Info("payment submitted",
		"payment_id", p.ID,
		"tenant_id", caller.ID,
		"amount", p.Amount,
	)

	return p, nil
}

// Verify transitions a pending payment to verified, stamping the deciding
// admin. A payment that is missing or already decided reports not found.
func (s *Service) Verify(
	ctx context.Context,
	caller authz.Caller,
	paymentID string,
) (*Payment, error) {
	err := s.gate.Authorize(caller, authz.OpVerifyPayment, authz.Resource{})
	if err != nil {
		return nil, err
	}

	p, err := s.repo.Verify(ctx, paymentID, caller.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment verified",
		"payment_id", p.ID,
		"verified_by", caller.ID,
	)

	return p, nil
}

func (s *Service) Reject(
	ctx context.Context,
	caller authz.Caller,
	paymentID string,
	reason *string,
) (*Payment, error) {
	err := s.gate.Authorize(caller, authz.OpRejectPayment, authz.Resource{})
	if err != nil {
		return nil, err
	}

	p, err := s.repo.Reject(ctx, paymentID, caller.ID, reason)
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment rejected",
		"payment_id", p.ID,
		"rejected_by", caller.ID,
	)

	return p, nil
}

// Invoice fetches the payment first and gates on the fetched row's
// parties: tenant, property owner, or any admin may read it.
func (s *Service) Invoice(
	ctx context.Context,
	caller authz.Caller,
	paymentID string,
) (*PaymentRow, error) {
	row, err := s.repo.GetRow(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	err = s.gate.Authorize(caller, authz.OpViewInvoice, authz.Resource{
		OwnerID:         shape.ID(row.TenantID),
		PropertyOwnerID: shape.ID(row.PropertyOwnerID),
	})
	if err != nil {
		return nil, err
	}

	return row, nil
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
