package tables

import "time"

// RestaurantTable represents the restaurants table
type RestaurantTable struct {
	ID          int       `db:"id"`
	Name        string    `db:"name"`
	Email       *string   `db:"email"`
	Phone       *string   `db:"phone"`
	Address     *string   `db:"address"`
	Description *string   `db:"description"`
	OwnerID     int       `db:"owner_id"`
	CreatedAt   time.Time `db:"created_at"`
}
