// AngelaMos | 2026
// entity.go

package lease

import (
	"time"
)

type Lease struct {
	ID         string    `db:"id"`
	UnitID     string    `db:"unit_id"`
	TenantID   string    `db:"tenant_id"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	RentAmount float64   `db:"rent_amount"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

const (
	StatusActive     = "active"
	StatusTerminated = "terminated"
	StatusExpired    = "expired"
)

// LeaseRow is the statically declared join shape for lease listings. The
// joined columns are pointers: a LEFT JOIN miss (redacted user, removed
// unit) surfaces as nil and is replaced at the shaping step, never dropped.
type LeaseRow struct {
	Lease
	TenantName   *string `db:"tenant_name"`
	TenantEmail  *string `db:"tenant_email"`
	UnitNumber   *string `db:"unit_number"`
	PropertyName *string `db:"property_name"`
}

// UnitInfo is the slice of unit state lease assignment needs from the
// property domain.
type UnitInfo struct {
	ID              string
	PropertyID      string
	PropertyOwnerID string
	UnitNumber      string
	RentAmount      float64
	Status          string
}
