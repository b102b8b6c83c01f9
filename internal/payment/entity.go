// AngelaMos | 2026
// entity.go

package payment

import (
	"time"
)

type Payment struct {
	ID               string     `db:"id"`
	LeaseID          *string    `db:"lease_id"`
	TenantID         *string    `db:"tenant_id"`
	Amount           float64    `db:"amount"`
	PaymentDate      time.Time  `db:"payment_date"`
	PaymentMethod    string     `db:"payment_method"`
	ReferenceNumber  *string    `db:"reference_number"`
	Status           string     `db:"status"`
	VerifiedBy       *string    `db:"verified_by"`
	VerificationDate *time.Time `db:"verification_date"`
	RejectionReason  *string    `db:"rejection_reason"`
	Notes            *string    `db:"notes"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
	StatusPaid     = "paid"
)

// PaymentRow is the statically declared join shape for payment reads.
// Every joined column is a pointer: lease, tenant, unit, or property
// context can be gone (redacted user, deleted lease) and the payment must
// still render. PropertyOwnerID feeds the invoice access decision.
type PaymentRow struct {
	Payment
	TenantName      *string `db:"tenant_name"`
	TenantEmail     *string `db:"tenant_email"`
	UnitNumber      *string `db:"unit_number"`
	PropertyName    *string `db:"property_name"`
	PropertyOwnerID *string `db:"property_owner_id"`
}

// LeaseInfo is the slice of lease state payment submission needs.
// Implemented by lease.Service.
type LeaseInfo struct {
	ID         string
	UnitID     string
	TenantID   string
	RentAmount float64
}
