// AngelaMos | 2026
// dto.go

package lease

import (
	"time"

	"github.com/makao-dev/makao-api/internal/shape"
)

type CreateLeaseRequest struct {
	UnitID     string    `json:"unit_id" validate:"required"`
	TenantID   string    `json:"tenant_id" validate:"required"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
	RentAmount float64   `json:"rent_amount" validate:"gte=0"`
}

type LeaseResponse struct {
	ID         string    `json:"id"`
	UnitID     string    `json:"unit_id"`
	TenantID   string    `json:"tenant_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	RentAmount float64   `json:"rent_amount"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// LeaseViewResponse is the joined read shape. Missing join context is
// shaped to the "Unknown" placeholder rather than surfaced as null.
type LeaseViewResponse struct {
	LeaseResponse
	TenantName   string `json:"tenant_name"`
	TenantEmail  string `json:"tenant_email"`
	UnitNumber   string `json:"unit_number"`
	PropertyName string `json:"property_name"`
}

func ToLeaseResponse(l *Lease) LeaseResponse {
	return LeaseResponse{
		ID:         l.ID,
		UnitID:     l.UnitID,
		TenantID:   l.TenantID,
		StartDate:  l.StartDate,
		EndDate:    l.EndDate,
		RentAmount: l.RentAmount,
		Status:     l.Status,
		CreatedAt:  l.CreatedAt,
	}
}

func ToLeaseViewResponse(row *LeaseRow) LeaseViewResponse {
	return LeaseViewResponse{
		LeaseResponse: ToLeaseResponse(&row.Lease),
		TenantName:    shape.String(row.TenantName),
		TenantEmail:   shape.String(row.TenantEmail),
		UnitNumber:    shape.String(row.UnitNumber),
		PropertyName:  shape.String(row.PropertyName),
	}
}
