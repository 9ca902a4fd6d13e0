package tables

import "time"

// ResourceTable represents the resources table, the document library entries
type ResourceTable struct {
	ID           int         `db:"id"`
	Title        string      `db:"title"`
	Description  *string     `db:"description"`
	FileURL      *string     `db:"file_url"`
	FileType     *string     `db:"file_type"`
	FileSize     *int        `db:"file_size"`
	VisibleTo    StringSlice `db:"visible_to"`
	RestaurantID int         `db:"restaurant_id"`
	UploadedBy   int         `db:"uploaded_by"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}
