package tables

import "time"

// ActivityLogTable represents the activity_log table, the append-only
// record of domain events scoped to a restaurant
type ActivityLogTable struct {
	ID           int          `db:"id"`
	EventType    string       `db:"event_type"`
	UserID       int          `db:"user_id"`
	ResourceID   *int         `db:"resource_id"`
	ResourceType *string      `db:"resource_type"`
	Details      MapStructure `db:"details"`
	RestaurantID int          `db:"restaurant_id"`
	CreatedAt    time.Time    `db:"created_at"`
}
