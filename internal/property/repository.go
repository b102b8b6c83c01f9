// AngelaMos | 2026
// repository.go

package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/makao-dev/makao-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, id string) (*Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]PropertyRow, error)
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id string) error

	CreateUnit(ctx context.Context, u *Unit) error
	GetUnit(ctx context.Context, unitID string) (*Unit, error)
	ListUnits(ctx context.Context, propertyID string) ([]Unit, error)
	UpdateUnit(ctx context.Context, u *Unit) error
	DeleteUnit(ctx context.Context, unitID string) error
	SetUnitStatus(ctx context.Context, unitID, status string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Property) error {
	query := `
		INSERT INTO properties (id, owner_id, name, location)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, p, query,
		p.ID,
		p.OwnerID,
		p.Name,
		p.Location,
	)
	if err != nil {
		if core.IsDuplicateKey(err) {
			return fmt.Errorf("create property: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create property: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Property, error) {
	query := `
		SELECT id, owner_id, name, location, created_at, updated_at
		FROM properties
		WHERE id = $1`

	var p Property
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get property: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}

	return &p, nil
}

func (r *repository) ListByOwner(
	ctx context.Context,
	ownerID string,
) ([]PropertyRow, error) {
	query := `
		SELECT p.id, p.owner_id, p.name, p.location,
		       p.created_at, p.updated_at,
		       (SELECT COUNT(*) FROM units u WHERE u.property_id = p.id)
		           AS unit_count
		FROM properties p
		WHERE p.owner_id = $1
		ORDER BY p.created_at DESC`

	var rows []PropertyRow
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	return rows, nil
}

func (r *repository) Update(ctx context.Context, p *Property) error {
	query := `
		UPDATE properties
		SET name = $2, location = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &p.UpdatedAt, query, p.ID, p.Name, p.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update property: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM properties WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete property: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CreateUnit(ctx context.Context, u *Unit) error {
	query := `
		INSERT INTO units (id, property_id, unit_number, rent_amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, u, query,
		u.ID,
		u.PropertyID,
		u.UnitNumber,
		u.RentAmount,
		u.Status,
	)
	if err != nil {
		if core.IsDuplicateKey(err) {
			return fmt.Errorf("create unit: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create unit: %w", err)
	}

	return nil
}

func (r *repository) GetUnit(
	ctx context.Context,
	unitID string,
) (*Unit, error) {
	query := `
		SELECT id, property_id, unit_number, rent_amount, status,
		       created_at, updated_at
		FROM units
		WHERE id = $1`

	var u Unit
	err := r.db.GetContext(ctx, &u, query, unitID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get unit: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get unit: %w", err)
	}

	return &u, nil
}

func (r *repository) ListUnits(
	ctx context.Context,
	propertyID string,
) ([]Unit, error) {
	query := `
		SELECT id, property_id, unit_number, rent_amount, status,
		       created_at, updated_at
		FROM units
		WHERE property_id = $1
		ORDER BY created_at DESC`

	var units []Unit
	if err := r.db.SelectContext(ctx, &units, query, propertyID); err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}

	return units, nil
}

func (r *repository) UpdateUnit(ctx context.Context, u *Unit) error {
	query := `
		UPDATE units
		SET unit_number = $2, rent_amount = $3, status = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &u.UpdatedAt, query,
		u.ID,
		u.UnitNumber,
		u.RentAmount,
		u.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update unit: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update unit: %w", err)
	}

	return nil
}

func (r *repository) DeleteUnit(ctx context.Context, unitID string) error {
	query := `DELETE FROM units WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, unitID)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete unit: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SetUnitStatus(
	ctx context.Context,
	unitID, status string,
) error {
	query := `
		UPDATE units
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, unitID, status)
	if err != nil {
		return fmt.Errorf("set unit status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set unit status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set unit status: %w", core.ErrNotFound)
	}

	return nil
}
