package db

import (
	"time"

	"github.com/crewline/crewline/db/tables"
	"github.com/jmoiron/sqlx"

	sq "github.com/Masterminds/squirrel"
)

type auditor struct {
	db *sqlx.DB
}

// addToActivityLog appends an activity log entry
func (d *auditor) addToActivityLog(
	eventType string,
	userID int,
	restaurantID int,
	resourceID *int,
	resourceType *string,
	details tables.MapStructure,
) error {
	insert := sq.
		Insert("activity_log").
		Columns(
			"event_type",
			"user_id",
			"resource_id",
			"resource_type",
			"details",
			"restaurant_id",
			"created_at",
		).
		Values(eventType, userID, resourceID, resourceType, details, restaurantID, time.Now().UTC())
	q, a, err := insert.ToSql()
	if err != nil {
		return err
	}
	_, err = d.db.Exec(d.db.Rebind(q), a...)
	return err
}
