package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/crewline/crewline/db/tables"
)

// InsertLog appends a manually reported entry to the activity log
func (d *DataStore) InsertLog(ctx context.Context, entry *tables.ActivityLogTable) (int, error) {
	var id int
	q := sq.Insert("activity_log").
		Columns(
			"event_type",
			"user_id",
			"resource_id",
			"resource_type",
			"details",
			"restaurant_id",
			"created_at",
		).
		Values(
			entry.EventType,
			entry.UserID,
			entry.ResourceID,
			entry.ResourceType,
			entry.Details,
			entry.RestaurantID,
			time.Now().UTC(),
		).
		Suffix("RETURNING id")
	err := d.returningInsertStatement(ctx, &id, q, nil)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Log returns a single activity log entry by id
func (d *DataStore) Log(ctx context.Context, id int) (*tables.ActivityLogTable, error) {
	q := sq.Select("*").From("activity_log").Where(sq.Eq{"id": id})
	var entity tables.ActivityLogTable
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// LogsByRestaurant returns the tenants activity log newest-first,
// limit <= 0 means no limit
func (d *DataStore) LogsByRestaurant(
	ctx context.Context,
	restaurantID int,
	limit int,
) ([]*tables.ActivityLogTable, error) {
	q := sq.Select("*").
		From("activity_log").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	entities := make([]*tables.ActivityLogTable, 0)
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		return nil, err
	}
	return entities, nil
}
