package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/crewline/crewline/db/tables"
)

// ResourceUpdate carries the changeable fields of a library resource,
// nil fields are left untouched
type ResourceUpdate struct {
	Title       *string
	Description *string
	FileURL     *string
	FileType    *string
	FileSize    *int
	VisibleTo   *tables.StringSlice
}

func (d *DataStore) Resource(ctx context.Context, id int) (*tables.ResourceTable, error) {
	q := sq.Select("*").From("resources").Where(sq.Eq{"id": id})
	var entity tables.ResourceTable
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (d *DataStore) ResourcesByRestaurant(
	ctx context.Context,
	restaurantID int,
) ([]*tables.ResourceTable, error) {
	q := sq.Select("*").
		From("resources").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		OrderBy("created_at DESC")
	entities := make([]*tables.ResourceTable, 0)
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (d *DataStore) InsertResource(
	ctx context.Context,
	resource *tables.ResourceTable,
) (int, error) {
	visibleTo := resource.VisibleTo
	if len(visibleTo) == 0 {
		visibleTo = tables.StringSlice{"all"}
	}
	now := time.Now().UTC()
	var id int
	q := sq.Insert("resources").
		Columns(
			"title",
			"description",
			"file_url",
			"file_type",
			"file_size",
			"visible_to",
			"restaurant_id",
			"uploaded_by",
			"created_at",
			"updated_at",
		).
		Values(
			resource.Title,
			resource.Description,
			resource.FileURL,
			resource.FileType,
			resource.FileSize,
			visibleTo,
			resource.RestaurantID,
			resource.UploadedBy,
			now,
			now,
		).
		Suffix("RETURNING id")
	err := d.returningInsertStatement(ctx, &id, q, nil)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (d *DataStore) UpdateResource(
	ctx context.Context,
	id int,
	update ResourceUpdate,
) (bool, error) {
	set := map[string]interface{}{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.FileURL != nil {
		set["file_url"] = *update.FileURL
	}
	if update.FileType != nil {
		set["file_type"] = *update.FileType
	}
	if update.FileSize != nil {
		set["file_size"] = *update.FileSize
	}
	if update.VisibleTo != nil {
		set["visible_to"] = *update.VisibleTo
	}
	if len(set) == 0 {
		return d.exists(ctx, "resources", sq.Eq{"id": id})
	}
	set["updated_at"] = time.Now().UTC()
	q := sq.Update("resources").SetMap(set).Where(sq.Eq{"id": id})
	res, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (d *DataStore) DeleteResource(ctx context.Context, id int) (bool, error) {
	q := sq.Delete("resources").Where(sq.Eq{"id": id})
	res, err := d.deleteStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
