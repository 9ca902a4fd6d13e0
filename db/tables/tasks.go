package tables

import "time"

// TaskTable represents the tasks table
type TaskTable struct {
	ID           int        `db:"id"`
	Title        string     `db:"title"`
	Description  *string    `db:"description"`
	AssignedTo   *int       `db:"assigned_to"`
	Priority     string     `db:"priority"`
	Status       string     `db:"status"`
	DueDate      *time.Time `db:"due_date"`
	RestaurantID int        `db:"restaurant_id"`
	CreatedBy    int        `db:"created_by"`
	CreatedAt    time.Time  `db:"created_at"`
}
