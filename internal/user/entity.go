// AngelaMos | 2026
// entity.go

package user

import (
	"fmt"
	"time"

	"github.com/makao-dev/makao-api/internal/authz"
)

// User mirrors one identity-provider account. By the linkage invariant the
// primary key IS the provider's subject id; there is no separate external
// id column to keep in sync.
type User struct {
	ID          string    `db:"id"`
	Email       string    `db:"email"`
	FullName    string    `db:"full_name"`
	PhoneNumber *string   `db:"phone_number"`
	UserType    string    `db:"user_type"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const (
	UserTypeTenant = "tenant"
	UserTypeAdmin  = "admin"
)

func (u *User) IsAdmin() bool {
	return authz.Normalize(u.UserType) == authz.RoleAdmin
}

// DeletedEmail is the deterministic redaction placeholder written when the
// provider reports the account deleted. The row itself is retained to keep
// lease and payment references intact.
func DeletedEmail(id string) string {
	return fmt.Sprintf("deleted_%s@deleted.com", id)
}
