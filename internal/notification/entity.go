// AngelaMos | 2026
// entity.go

package notification

import (
	"time"
)

type Notification struct {
	ID               string    `db:"id"`
	UserID           string    `db:"user_id"`
	Title            string    `db:"title"`
	Content          string    `db:"content"`
	NotificationType string    `db:"notification_type"`
	IsRead           bool      `db:"is_read"`
	CreatedAt        time.Time `db:"created_at"`
}
