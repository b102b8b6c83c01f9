// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/makao-dev/makao-api/internal/core"
)

// Counts is the platform-level tally block for the admin dashboard.
type Counts struct {
	Tenants         int `db:"tenants"`
	Admins          int `db:"admins"`
	Properties      int `db:"properties"`
	VacantUnits     int `db:"vacant_units"`
	OccupiedUnits   int `db:"occupied_units"`
	ActiveLeases    int `db:"active_leases"`
	PendingPayments int `db:"pending_payments"`
	OpenMaintenance int `db:"open_maintenance"`
}

type StatsRepository interface {
	GetCounts(ctx context.Context) (*Counts, error)
}

type statsRepository struct {
	db core.DBTX
}

func NewStatsRepository(db core.DBTX) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) GetCounts(ctx context.Context) (*Counts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE user_type = 'tenant') AS tenants,
			(SELECT COUNT(*) FROM users
				WHERE user_type IN ('admin', 'landlord')) AS admins,
			(SELECT COUNT(*) FROM properties) AS properties,
			(SELECT COUNT(*) FROM units WHERE status = 'vacant') AS vacant_units,
			(SELECT COUNT(*) FROM units
				WHERE status = 'occupied') AS occupied_units,
			(SELECT COUNT(*) FROM leases WHERE status = 'active') AS active_leases,
			(SELECT COUNT(*) FROM payments
				WHERE status = 'pending') AS pending_payments,
			(SELECT COUNT(*) FROM maintenance_requests
				WHERE status <> 'completed') AS open_maintenance`

	var counts Counts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("get platform counts: %w", err)
	}

	return &counts, nil
}
