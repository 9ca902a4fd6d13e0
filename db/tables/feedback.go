package tables

import "time"

// FeedbackTable represents the feedback table
type FeedbackTable struct {
	ID           int       `db:"id"`
	Content      string    `db:"content"`
	Rating       *int      `db:"rating"`
	UserID       int       `db:"user_id"`
	RestaurantID int       `db:"restaurant_id"`
	CreatedAt    time.Time `db:"created_at"`
}
