// AngelaMos | 2026
// repository.go

package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/makao-dev/makao-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetRow(ctx context.Context, id string) (*PaymentRow, error)
	ListAll(ctx context.Context, limit int) ([]PaymentRow, error)
	ListByTenant(
		ctx context.Context,
		tenantID string,
		limit int,
	) ([]PaymentRow, error)
	Verify(ctx context.Context, id, verifierID string) (*Payment, error)
	Reject(
		ctx context.Context,
		id, verifierID string,
		reason *string,
	) (*Payment, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const paymentRowColumns = `
	pay.id, pay.lease_id, pay.tenant_id, pay.amount, pay.payment_date,
	pay.payment_method, pay.reference_number, pay.status,
	pay.verified_by, pay.verification_date, pay.rejection_reason,
	pay.notes, pay.created_at, pay.updated_at,
	t.full_name AS tenant_name,
	t.email AS tenant_email,
	u.unit_number AS unit_number,
	p.name AS property_name,
	p.owner_id AS property_owner_id`

const paymentRowJoins = `
	FROM payments pay
	LEFT JOIN users t ON t.id = pay.tenant_id
	LEFT JOIN leases l ON l.id = pay.lease_id
	LEFT JOIN units u ON u.id = l.unit_id
	LEFT JOIN properties p ON p.id = u.property_id`

func (r *repository) Create(ctx context.Context, p *Payment) error {
	query := `
		INSERT INTO payments
			(id, lease_id, tenant_id, amount, payment_date,
			 payment_method, reference_number, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, p, query,
		p.ID,
		p.LeaseID,
		p.TenantID,
		p.Amount,
		p.PaymentDate,
		p.PaymentMethod,
		p.ReferenceNumber,
		p.Status,
		p.Notes,
	)
	if err != nil {
		if core.IsDuplicateKey(err) {
			return fmt.Errorf("create payment: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create payment: %w", err)
	}

	return nil
}

func (r *repository) GetRow(
	ctx context.Context,
	id string,
) (*PaymentRow, error) {
	query := `SELECT ` + paymentRowColumns + paymentRowJoins + `
		WHERE pay.id = $1`

	var row PaymentRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get payment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &row, nil
}

func (r *repository) ListAll(
	ctx context.Context,
	limit int,
) ([]PaymentRow, error) {
	query := `SELECT ` + paymentRowColumns + paymentRowJoins + `
		ORDER BY pay.payment_date DESC
		LIMIT NULLIF($1, 0)`

	var rows []PaymentRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	return rows, nil
}

func (r *repository) ListByTenant(
	ctx context.Context,
	tenantID string,
	limit int,
) ([]PaymentRow, error) {
	query := `SELECT ` + paymentRowColumns + paymentRowJoins + `
		WHERE pay.tenant_id = $1
		ORDER BY pay.payment_date DESC
		LIMIT NULLIF($2, 0)`

	var rows []PaymentRow
	err := r.db.SelectContext(ctx, &rows, query, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list tenant payments: %w", err)
	}

	return rows, nil
}

// Verify flips a pending payment to verified in one guarded statement.
// The status predicate makes the transition race-safe without a
// transaction: a payment already decided simply misses.
func (r *repository) Verify(
	ctx context.Context,
	id, verifierID string,
) (*Payment, error) {
	query := `
		UPDATE payments
		SET status = 'verified',
		    verified_by = $2,
		    verification_date = NOW(),
		    updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING id, lease_id, tenant_id, amount, payment_date,
		          payment_method, reference_number, status,
		          verified_by, verification_date, rejection_reason,
		          notes, created_at, updated_at`

	var p Payment
	err := r.db.GetContext(ctx, &p, query, id, verifierID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("verify payment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}

	return &p, nil
}

func (r *repository) Reject(
	ctx context.Context,
	id, verifierID string,
	reason *string,
) (*Payment, error) {
	query := `
		UPDATE payments
		SET status = 'rejected',
		    verified_by = $2,
		    verification_date = NOW(),
		    rejection_reason = $3,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING id, lease_id, tenant_id, amount, payment_date,
		          payment_method, reference_number, status,
		          verified_by, verification_date, rejection_reason,
		          notes, created_at, updated_at`

	var p Payment
	err := r.db.GetContext(ctx, &p, query, id, verifierID, reason)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reject payment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reject payment: %w", err)
	}

	return &p, nil
}
