// AngelaMos | 2026
// dto.go

package property

import (
	"time"
)

type CreatePropertyRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Location string `json:"location" validate:"required,min=2,max=255"`
}

type UpdatePropertyRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Location string `json:"location" validate:"required,min=2,max=255"`
}

type CreateUnitRequest struct {
	UnitNumber string  `json:"unit_number" validate:"required,min=1,max=32"`
	RentAmount float64 `json:"rent_amount" validate:"required,gt=0"`
}

type UpdateUnitRequest struct {
	UnitNumber string  `json:"unit_number" validate:"required,min=1,max=32"`
	RentAmount float64 `json:"rent_amount" validate:"required,gt=0"`
	Status     string  `json:"status" validate:"required,oneof=vacant occupied"`
}

type PropertyResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	UnitCount int       `json:"unit_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UnitResponse struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	UnitNumber string    `json:"unit_number"`
	RentAmount float64   `json:"rent_amount"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToPropertyResponse(p *Property, unitCount int) PropertyResponse {
	return PropertyResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Location:  p.Location,
		UnitCount: unitCount,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func ToUnitResponse(u *Unit) UnitResponse {
	return UnitResponse{
		ID:         u.ID,
		PropertyID: u.PropertyID,
		UnitNumber: u.UnitNumber,
		RentAmount: u.RentAmount,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
