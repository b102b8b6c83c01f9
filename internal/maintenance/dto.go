// AngelaMos | 2026
// dto.go

package maintenance

import (
	"time"

	"github.com/makao-dev/makao-api/internal/shape"
)

type SubmitRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=150"`
	Description string  `json:"description" validate:"required,min=3,max=2000"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=low medium high"`
	UnitID      *string `json:"unit_id" validate:"omitempty,max=64"`
}

type AppendUpdateRequest struct {
	Note   string  `json:"note" validate:"required,min=1,max=2000"`
	Status *string `json:"status"`
}

type RequestResponse struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	TenantName   string    `json:"tenant_name"`
	UnitID       string    `json:"unit_id"`
	UnitNumber   string    `json:"unit_number"`
	PropertyName string    `json:"property_name"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Priority     string    `json:"priority"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UpdateResponse struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Note       string    `json:"note"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type RequestDetailResponse struct {
	RequestResponse
	Updates []UpdateResponse `json:"updates"`
}

func ToRequestResponse(row *RequestRow) RequestResponse {
	return RequestResponse{
		ID:           row.ID,
		TenantID:     shape.ID(row.TenantID),
		TenantName:   shape.String(row.TenantName),
		UnitID:       shape.ID(row.UnitID),
		UnitNumber:   shape.String(row.UnitNumber),
		PropertyName: shape.String(row.PropertyName),
		Title:        row.Title,
		Description:  row.Description,
		Priority:     row.Priority,
		Status:       row.Status,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func ToUpdateResponse(row *UpdateRow) UpdateResponse {
	return UpdateResponse{
		ID:         row.ID,
		RequestID:  row.RequestID,
		AuthorID:   shape.ID(row.AuthorID),
		AuthorName: shape.String(row.AuthorName),
		Note:       row.Note,
		Status:     shape.ID(row.Status),
		CreatedAt:  row.CreatedAt,
	}
}

func ToRequestDetailResponse(
	row *RequestRow,
	updates []UpdateRow,
) RequestDetailResponse {
	out := RequestDetailResponse{
		RequestResponse: ToRequestResponse(row),
		Updates:         make([]UpdateResponse, 0, len(updates)),
	}
	for i := range updates {
		out.Updates = append(out.Updates, ToUpdateResponse(&updates[i]))
	}
	return out
}
