// AngelaMos | 2026
// entity.go

package maintenance

import (
	"time"
)

type Request struct {
	ID          string    `db:"id"`
	TenantID    *string   `db:"tenant_id"`
	UnitID      *string   `db:"unit_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Priority    string    `db:"priority"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const (
	StatusSubmitted  = "submitted"
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// RequestRow joins the tenant and unit context for request reads. Pointer
// columns tolerate redacted users and removed units.
type RequestRow struct {
	Request
	TenantName   *string `db:"tenant_name"`
	UnitNumber   *string `db:"unit_number"`
	PropertyName *string `db:"property_name"`
}

// Update is one entry in a request's progress log.
type Update struct {
	ID        string    `db:"id"`
	RequestID string    `db:"request_id"`
	AuthorID  *string   `db:"author_id"`
	Note      string    `db:"note"`
	Status    *string   `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

// UpdateRow joins the author's display name.
type UpdateRow struct {
	Update
	AuthorName *string `db:"author_name"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusSubmitted, StatusScheduled, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}
