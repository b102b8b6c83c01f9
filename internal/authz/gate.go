// AngelaMos | 2026
// gate.go

// Package authz is the single authorization policy for the API. Every route
// and service consults the same (role, operation) table here instead of
// re-deriving checks per endpoint.
package authz

import (
	"fmt"

	"github.com/makao-dev/makao-api/internal/core"
)

type Role string

const (
	RoleTenant Role = "tenant"
	RoleAdmin  Role = "admin"
	RoleNone   Role = ""
)

// Normalize maps raw role strings to a domain role. "landlord" is a display
// alias of "admin" and must be granted identical outcomes everywhere.
func Normalize(raw string) Role {
	switch raw {
	case "tenant":
		return RoleTenant
	case "admin", "landlord":
		return RoleAdmin
	default:
		return RoleNone
	}
}

type Operation string

const (
	OpListAllPayments         Operation = "payments.list_all"
	OpVerifyPayment           Operation = "payments.verify"
	OpRejectPayment           Operation = "payments.reject"
	OpListOwnPayments         Operation = "payments.list_own"
	OpSubmitPayment           Operation = "payments.submit"
	OpViewInvoice             Operation = "payments.view_invoice"
	OpManageLeases            Operation = "leases.manage"
	OpReadOwnLease            Operation = "leases.read_own"
	OpManageProperty          Operation = "properties.manage"
	OpListAllMaintenance      Operation = "maintenance.list_all"
	OpAppendMaintenanceUpdate Operation = "maintenance.append_update"
	OpListOwnMaintenance      Operation = "maintenance.list_own"
	OpReadMaintenance         Operation = "maintenance.read"
	OpSubmitMaintenance       Operation = "maintenance.submit"
	OpReadNotifications       Operation = "notifications.read"
	OpMarkNotificationRead    Operation = "notifications.mark_read"
	OpViewSystemStats         Operation = "admin.stats"
)

type opClass int

const (
	classAdminOnly opClass = iota
	classTenantScoped
	classPropertyOwner
	classInvoice
)

var policy = map[Operation]opClass{
	OpListAllPayments:         classAdminOnly,
	OpVerifyPayment:           classAdminOnly,
	OpRejectPayment:           classAdminOnly,
	OpManageLeases:            classAdminOnly,
	OpListAllMaintenance:      classAdminOnly,
	OpAppendMaintenanceUpdate: classAdminOnly,
	OpViewSystemStats:         classAdminOnly,

	OpListOwnPayments:      classTenantScoped,
	OpSubmitPayment:        classTenantScoped,
	OpReadOwnLease:         classTenantScoped,
	OpListOwnMaintenance:   classTenantScoped,
	OpReadMaintenance:      classTenantScoped,
	OpSubmitMaintenance:    classTenantScoped,
	OpReadNotifications:    classTenantScoped,
	OpMarkNotificationRead: classTenantScoped,

	OpManageProperty: classPropertyOwner,

	OpViewInvoice: classInvoice,
}

// Caller is the resolved request identity. ID is the internal user id,
// which by the linkage invariant equals the identity provider's subject id.
// Role is the raw user_type from the persisted row; empty means the caller
// is authenticated but has not completed role selection.
type Caller struct {
	ID   string
	Role string
}

// Resource carries the ownership hints a decision needs. OwnerID is the
// owning user (tenant for tenant-scoped rows, landlord for properties).
// PropertyOwnerID is the landlord behind a payment's unit, for invoices.
// Empty hints mean the operation is scoped to the caller by the query
// itself (list-own patterns).
type Resource struct {
	OwnerID         string
	PropertyOwnerID string
}

type Gate struct{}

func NewGate() *Gate {
	return &Gate{}
}

// Authorize decides allow/deny for one operation. Anonymous callers are
// denied before any role consideration. Unknown operations are denied.
func (g *Gate) Authorize(c Caller, op Operation, res Resource) error {
	if c.ID == "" {
		return fmt.Errorf("%s: %w", op, core.ErrUnauthenticated)
	}

	class, known := policy[op]
	if !known {
		return fmt.Errorf("%s: unknown operation: %w", op, core.ErrForbidden)
	}

	role := Normalize(c.Role)
	if role == RoleNone {
		return fmt.Errorf(
			"%s: role selection not completed: %w",
			op,
			core.ErrForbidden,
		)
	}

	switch class {
	case classAdminOnly:
		if role != RoleAdmin {
			return fmt.Errorf("%s: admin required: %w", op, core.ErrForbidden)
		}

	case classTenantScoped:
		if role == RoleAdmin {
			return nil
		}
		if res.OwnerID != "" && res.OwnerID != c.ID {
			return fmt.Errorf("%s: not resource owner: %w", op, core.ErrForbidden)
		}

	case classPropertyOwner:
		if res.OwnerID != "" {
			if res.OwnerID != c.ID {
				return fmt.Errorf(
					"%s: not property owner: %w",
					op,
					core.ErrForbidden,
				)
			}
			return nil
		}
		if role != RoleAdmin {
			return fmt.Errorf("%s: admin required: %w", op, core.ErrForbidden)
		}

	case classInvoice:
		if role == RoleAdmin {
			return nil
		}
		if res.OwnerID != "" && res.OwnerID == c.ID {
			return nil
		}
		if res.PropertyOwnerID != "" && res.PropertyOwnerID == c.ID {
			return nil
		}
		return fmt.Errorf("%s: not invoice party: %w", op, core.ErrForbidden)
	}

	return nil
}
