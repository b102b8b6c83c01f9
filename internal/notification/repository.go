// AngelaMos | 2026
// repository.go

package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/makao-dev/makao-api/internal/core"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Notification, error)
	GetByID(ctx context.Context, id string) (*Notification, error)
	MarkRead(ctx context.Context, id string) error
	Insert(ctx context.Context, n *Notification) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// ListByUser reports ErrNotProvisioned when the notifications table does
// not exist yet. Environments are provisioned independently and a missing
// table is an expected state, not a failure.
func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Notification, error) {
	query := `
		SELECT id, user_id, title, content, notification_type, is_read,
		       created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var rows []Notification
	err := r.db.SelectContext(ctx, &rows, query, userID)
	if err != nil {
		if core.IsUndefinedTable(err) {
			return nil, fmt.Errorf("list notifications: %w", core.ErrNotProvisioned)
		}
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return rows, nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Notification, error) {
	query := `
		SELECT id, user_id, title, content, notification_type, is_read,
		       created_at
		FROM notifications
		WHERE id = $1`

	var n Notification
	err := r.db.GetContext(ctx, &n, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get notification: %w", core.ErrNotFound)
	}
	if err != nil {
		if core.IsUndefinedTable(err) {
			return nil, fmt.Errorf("get notification: %w", core.ErrNotProvisioned)
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}

	return &n, nil
}

func (r *repository) MarkRead(ctx context.Context, id string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if core.IsUndefinedTable(err) {
			return fmt.Errorf("mark notification read: %w", core.ErrNotProvisioned)
		}
		return fmt.Errorf("mark notification read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("mark notification read: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Insert(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications
			(id, user_id, title, content, notification_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &n.CreatedAt, query,
		n.ID,
		n.UserID,
		n.Title,
		n.Content,
		n.NotificationType,
	)
	if err != nil {
		if core.IsUndefinedTable(err) {
			return fmt.Errorf("insert notification: %w", core.ErrNotProvisioned)
		}
		return fmt.Errorf("insert notification: %w", err)
	}

	return nil
}
