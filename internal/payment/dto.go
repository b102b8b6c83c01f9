// AngelaMos | 2026
// dto.go

package payment

import (
	"time"

	"github.com/makao-dev/makao-api/internal/shape"
)

type SubmitPaymentRequest struct {
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod   string  `json:"payment_method" validate:"required,min=2,max=50"`
	ReferenceNumber *string `json:"reference_number" validate:"omitempty,max=100"`
	Notes           *string `json:"notes" validate:"omitempty,max=500"`
}

// VerifyPaymentRequest carries no validate tags: the payment_id presence
// check happens in the handler so the error message stays stable.
type VerifyPaymentRequest struct {
	PaymentID string `json:"payment_id"`
}

type RejectPaymentRequest struct {
	PaymentID string  `json:"payment_id"`
	Reason    *string `json:"reason"`
}

// PaymentResponse is the shaped read view. Joined display fields fall back
// to the "Unknown" placeholder; joined ids fall back to empty.
type PaymentResponse struct {
	ID               string     `json:"id"`
	LeaseID          string     `json:"lease_id"`
	TenantID         string     `json:"tenant_id"`
	TenantName       string     `json:"tenant_name"`
	UnitNumber       string     `json:"unit_number"`
	PropertyName     string     `json:"property_name"`
	Amount           float64    `json:"amount"`
	PaymentDate      time.Time  `json:"payment_date"`
	PaymentMethod    string     `json:"payment_method"`
	ReferenceNumber  string     `json:"reference_number"`
	Status           string     `json:"status"`
	VerifiedBy       string     `json:"verified_by"`
	VerificationDate *time.Time `json:"verification_date"`
	RejectionReason  string     `json:"rejection_reason,omitempty"`
	Notes            string     `json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
}

type VerificationResponse struct {
	PaymentID        string     `json:"payment_id"`
	Status           string     `json:"status"`
	VerifiedBy       string     `json:"verified_by"`
	VerificationDate *time.Time `json:"verification_date"`
	RejectionReason  string     `json:"rejection_reason,omitempty"`
}

type InvoiceResponse struct {
	InvoiceNumber   string    `json:"invoice_number"`
	PaymentID       string    `json:"payment_id"`
	TenantName      string    `json:"tenant_name"`
	TenantEmail     string    `json:"tenant_email"`
	PropertyName    string    `json:"property_name"`
	UnitNumber      string    `json:"unit_number"`
	Amount          float64   `json:"amount"`
	PaymentDate     time.Time `json:"payment_date"`
	PaymentMethod   string    `json:"payment_method"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	IssuedAt        time.Time `json:"issued_at"`
}

func ToPaymentResponse(row *PaymentRow) PaymentResponse {
	return PaymentResponse{
		ID:               row.ID,
		LeaseID:          shape.ID(row.LeaseID),
		TenantID:         shape.ID(row.TenantID),
		TenantName:       shape.String(row.TenantName),
		UnitNumber:       shape.String(row.UnitNumber),
		PropertyName:     shape.String(row.PropertyName),
		Amount:           row.Amount,
		PaymentDate:      row.PaymentDate,
		PaymentMethod:    row.PaymentMethod,
		ReferenceNumber:  shape.ID(row.ReferenceNumber),
		Status:           row.Status,
		VerifiedBy:       shape.ID(row.VerifiedBy),
		VerificationDate: row.VerificationDate,
		RejectionReason:  shape.ID(row.RejectionReason),
		Notes:            shape.ID(row.Notes),
		CreatedAt:        row.CreatedAt,
	}
}

func ToVerificationResponse(p *Payment) VerificationResponse {
	return VerificationResponse{
		PaymentID:        p.ID,
		Status:           p.Status,
		VerifiedBy:       shape.ID(p.VerifiedBy),
		VerificationDate: p.VerificationDate,
		RejectionReason:  shape.ID(p.RejectionReason),
	}
}

func ToInvoiceResponse(row *PaymentRow) InvoiceResponse {
	return InvoiceResponse{
		InvoiceNumber:   "INV-" + row.ID,
		PaymentID:       row.ID,
		TenantName:      shape.String(row.TenantName),
		TenantEmail:     shape.String(row.TenantEmail),
		PropertyName:    shape.String(row.PropertyName),
		UnitNumber:      shape.String(row.UnitNumber),
		Amount:          row.Amount,
		PaymentDate:     row.PaymentDate,
		PaymentMethod:   row.PaymentMethod,
		Status:          row.Status,
		RejectionReason: shape.ID(row.RejectionReason),
		IssuedAt:        time.Now().UTC(),
	}
}
