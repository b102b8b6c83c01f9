// AngelaMos | 2026
// entity.go

package property

import (
	"time"
)

type Property struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	Location  string    `db:"location"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PropertyRow carries the statically declared join shape for listings:
// the property plus its unit count.
type PropertyRow struct {
	Property
	UnitCount int `db:"unit_count"`
}

type Unit struct {
	ID         string    `db:"id"`
	PropertyID string    `db:"property_id"`
	UnitNumber string    `db:"unit_number"`
	RentAmount float64   `db:"rent_amount"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

const (
	UnitStatusVacant   = "vacant"
	UnitStatusOccupied = "occupied"
)
