// AngelaMos | 2026
// repository.go

package lease

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/makao-dev/makao-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, l *Lease) error
	GetByID(ctx context.Context, id string) (*Lease, error)
	ListAll(ctx context.Context, limit int) ([]LeaseRow, error)
	GetActiveByTenant(ctx context.Context, tenantID string) (*LeaseRow, error)
	SetStatus(ctx context.Context, id, status string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const leaseRowColumns = `
	l.id, l.unit_id, l.tenant_id, l.start_date, l.end_date,
	l.rent_amount, l.status, l.created_at, l.updated_at,
	t.full_name AS tenant_name,
	t.email AS tenant_email,
	u.unit_number AS unit_number,
	p.name AS property_name`

const leaseRowJoins = `
	FROM leases l
	LEFT JOIN users t ON t.id = l.tenant_id
	LEFT JOIN units u ON u.id = l.unit_id
	LEFT JOIN properties p ON p.id = u.property_id`

func (r *repository) Create(ctx context.Context, l *Lease) error {
	query := `
		INSERT INTO leases
			(id, unit_id, tenant_id, start_date, end_date, rent_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, l, query,
		l.ID,
		l.UnitID,
		l.TenantID,
		l.StartDate,
		l.EndDate,
		l.RentAmount,
		l.Status,
	)
	if err != nil {
		if core.IsDuplicateKey(err) {
			return fmt.Errorf("create lease: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create lease: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Lease, error) {
	query := `
		SELECT id, unit_id, tenant_id, start_date, end_date,
		       rent_amount, status, created_at, updated_at
		FROM leases
		WHERE id = $1`

	var l Lease
	err := r.db.GetContext(ctx, &l, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get lease: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get lease: %w", err)
	}

	return &l, nil
}

func (r *repository) ListAll(
	ctx context.Context,
	limit int,
) ([]LeaseRow, error) {
	query := `SELECT ` + leaseRowColumns + leaseRowJoins + `
		ORDER BY l.created_at DESC
		LIMIT NULLIF($1, 0)`

	var rows []LeaseRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list leases: %w", err)
	}

	return rows, nil
}

func (r *repository) GetActiveByTenant(
	ctx context.Context,
	tenantID string,
) (*LeaseRow, error) {
	query := `SELECT ` + leaseRowColumns + leaseRowJoins + `
		WHERE l.tenant_id = $1 AND l.status = 'active'
		ORDER BY l.start_date DESC
		LIMIT 1`

	var row LeaseRow
	err := r.db.GetContext(ctx, &row, query, tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get active lease: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get active lease: %w", err)
	}

	return &row, nil
}

func (r *repository) SetStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE leases
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("set lease status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set lease status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set lease status: %w", core.ErrNotFound)
	}

	return nil
}
