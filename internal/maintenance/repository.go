// AngelaMos | 2026
// repository.go

package maintenance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/makao-dev/makao-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, req *Request) error
	GetRow(ctx context.Context, id string) (*RequestRow, error)
	ListAll(ctx context.Context, limit int) ([]RequestRow, error)
	ListByTenant(
		ctx context.Context,
		tenantID string,
		limit int,
	) ([]RequestRow, error)

	CreateUpdate(ctx context.Context, u *Update) error
	AppendUpdate(ctx context.Context, u *Update, status *string) error
	ListUpdates(ctx context.Context, requestID string) ([]UpdateRow, error)
}

// The repository holds the concrete pool rather than core.DBTX:
// AppendUpdate opens its own transaction.
type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const requestRowColumns = `
	m.id, m.tenant_id, m.unit_id, m.title, m.description,
	m.priority, m.status, m.created_at, m.updated_at,
	t.full_name AS tenant_name,
	u.unit_number AS unit_number,
	p.name AS property_name`

const requestRowJoins = `
	FROM maintenance_requests m
	LEFT JOIN users t ON t.id = m.tenant_id
	LEFT JOIN units u ON u.id = m.unit_id
	LEFT JOIN properties p ON p.id = u.property_id`

func (r *repository) Create(ctx context.Context, req *Request) error {
	query := `
		INSERT INTO maintenance_requests
			(id, tenant_id, unit_id, title, description, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, req, query,
		req.ID,
		req.TenantID,
		req.UnitID,
		req.Title,
		req.Description,
		req.Priority,
		req.Status,
	)
	if err != nil {
		if core.IsDuplicateKey(err) {
			return fmt.Errorf("create maintenance request: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create maintenance request: %w", err)
	}

	return nil
}

func (r *repository) GetRow(
	ctx context.Context,
	id string,
) (*RequestRow, error) {
	query := `SELECT ` + requestRowColumns + requestRowJoins + `
		WHERE m.id = $1`

	var row RequestRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get maintenance request: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get maintenance request: %w", err)
	}

	return &row, nil
}

func (r *repository) ListAll(
	ctx context.Context,
	limit int,
) ([]RequestRow, error) {
	query := `SELECT ` + requestRowColumns + requestRowJoins + `
		ORDER BY m.created_at DESC
		LIMIT NULLIF($1, 0)`

	var rows []RequestRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list maintenance requests: %w", err)
	}

	return rows, nil
}

func (r *repository) ListByTenant(
	ctx context.Context,
	tenantID string,
	limit int,
) ([]RequestRow, error) {
	query := `SELECT ` + requestRowColumns + requestRowJoins + `
		WHERE m.tenant_id = $1
		ORDER BY m.created_at DESC
		LIMIT NULLIF($2, 0)`

	var rows []RequestRow
	err := r.db.SelectContext(ctx, &rows, query, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list tenant maintenance requests: %w", err)
	}

	return rows, nil
}

func (r *repository) CreateUpdate(ctx context.Context, u *Update) error {
	return insertUpdate(ctx, r.db, u)
}

// AppendUpdate inserts a progress entry and, when a status is given, moves
// the request's status in the same transaction. The log and the request
// row never disagree about a status change.
func (r *repository) AppendUpdate(
	ctx context.Context,
	u *Update,
	status *string,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := insertUpdate(ctx, tx, u); err != nil {
			return err
		}
		if status == nil {
			return nil
		}
		return setStatus(ctx, tx, u.RequestID, *status)
	})
}

func insertUpdate(ctx context.Context, db core.DBTX, u *Update) error {
	query := `
		INSERT INTO maintenance_updates (id, request_id, author_id, note, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := db.GetContext(ctx, &u.CreatedAt, query,
		u.ID,
		u.RequestID,
		u.AuthorID,
		u.Note,
		u.Status,
	)
	if err != nil {
		return fmt.Errorf("create maintenance update: %w", err)
	}

	return nil
}

func setStatus(ctx context.Context, db core.DBTX, id, status string) error {
	query := `
		UPDATE maintenance_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("set maintenance status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set maintenance status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set maintenance status: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListUpdates(
	ctx context.Context,
	requestID string,
) ([]UpdateRow, error) {
	query := `
		SELECT mu.id, mu.request_id, mu.author_id, mu.note, mu.status,
		       mu.created_at,
		       a.full_name AS author_name
		FROM maintenance_updates mu
		LEFT JOIN users a ON a.id = mu.author_id
		WHERE mu.request_id = $1
		ORDER BY mu.created_at ASC`

	var rows []UpdateRow
	if err := r.db.SelectContext(ctx, &rows, query, requestID); err != nil {
		return nil, fmt.Errorf("list maintenance updates: %w", err)
	}

	return rows, nil
}
