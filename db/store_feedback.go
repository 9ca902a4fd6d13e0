package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/crewline/crewline/db/tables"
)

func (d *DataStore) InsertFeedback(
	ctx context.Context,
	feedback *tables.FeedbackTable,
) (int, error) {
	var id int
	q := sq.Insert("feedback").
		Columns("content", "rating", "user_id", "restaurant_id", "created_at").
		Values(
			feedback.Content,
			feedback.Rating,
			feedback.UserID,
			feedback.RestaurantID,
			time.Now().UTC(),
		).
		Suffix("RETURNING id")
	err := d.returningInsertStatement(ctx, &id, q, nil)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (d *DataStore) Feedback(ctx context.Context, id int) (*tables.FeedbackTable, error) {
	q := sq.Select("*").From("feedback").Where(sq.Eq{"id": id})
	var entity tables.FeedbackTable
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (d *DataStore) FeedbackByRestaurant(
	ctx context.Context,
	restaurantID int,
) ([]*tables.FeedbackTable, error) {
	q := sq.Select("*").
		From("feedback").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		OrderBy("created_at DESC")
	entities := make([]*tables.FeedbackTable, 0)
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		return nil, err
	}
	return entities, nil
}
