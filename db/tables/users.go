package tables

import "time"

// UserTable represents the users table
type UserTable struct {
	ID           int       `db:"id"`
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	Password     string    `db:"password"      json:"-"`
	Role         string    `db:"role"`
	Avatar       *string   `db:"avatar"`
	RestaurantID *int      `db:"restaurant_id"`
	CreatedAt    time.Time `db:"created_at"`
}
