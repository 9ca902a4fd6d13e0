package tables

import (
	"time"

	"github.com/google/uuid"
)

// InviteTable represents the invites table.
// A consumed or expired invite is never deleted, it stays on as an audit record.
type InviteTable struct {
	ID           uuid.UUID  `db:"id"`
	Token        string     `db:"token"`
	Email        *string    `db:"email"`
	Role         string     `db:"role"`
	RestaurantID int        `db:"restaurant_id"`
	CreatedBy    int        `db:"created_by"`
	ExpiresAt    *time.Time `db:"expires_at"`
	Used         bool       `db:"used"`
	CreatedAt    time.Time  `db:"created_at"`
}
