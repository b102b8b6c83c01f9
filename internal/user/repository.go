// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/makao-dev/makao-api/internal/core"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	Insert(ctx context.Context, user *User) error
	UpsertContact(
		ctx context.Context,
		id, email, fullName string,
		phone *string,
	) error
	Redact(ctx context.Context, id, placeholderEmail string) error
	SetUserType(ctx context.Context, id, userType string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, email, full_name, phone_number, user_type,
		       created_at, updated_at
		FROM users
		WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// Insert is idempotent: replaying a creation event for an existing id is a
// no-op and never clobbers a role the user has already selected.
func (r *repository) Insert(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, full_name, phone_number, user_type)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.FullName,
		user.PhoneNumber,
		user.UserType,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// UpsertContact refreshes contact fields only; user_type is deliberately
// untouched so lifecycle updates can never change a role.
func (r *repository) UpsertContact(
	ctx context.Context,
	id, email, fullName string,
	phone *string,
) error {
	query := `
		INSERT INTO users (id, email, full_name, phone_number)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    full_name = EXCLUDED.full_name,
		    phone_number = EXCLUDED.phone_number,
		    updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query, id, email, fullName, phone)
	if err != nil {
		return fmt.Errorf("upsert user contact: %w", err)
	}

	return nil
}

func (r *repository) Redact(
	ctx context.Context,
	id, placeholderEmail string,
) error {
	query := `
		UPDATE users
		SET email = $2, phone_number = NULL, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, placeholderEmail)
	if err != nil {
		return fmt.Errorf("redact user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("redact user: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("redact user: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SetUserType(
	ctx context.Context,
	id, userType string,
) error {
	query := `
		UPDATE users
		SET user_type = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, userType)
	if err != nil {
		return fmt.Errorf("set user type: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set user type: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set user type: %w", core.ErrNotFound)
	}

	return nil
}
