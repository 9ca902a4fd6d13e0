package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/crewline/crewline/db/tables"
)

// TaskUpdate carries the changeable fields of a task,
// nil fields are left untouched
type TaskUpdate struct {
	Title       *string
	Description *string
	AssignedTo  *int
	Priority    *string
	Status      *string
	DueDate     *time.Time
}

func (d *DataStore) Task(ctx context.Context, id int) (*tables.TaskTable, error) {
	q := sq.Select("*").From("tasks").Where(sq.Eq{"id": id})
	var entity tables.TaskTable
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (d *DataStore) TasksByRestaurant(
	ctx context.Context,
	restaurantID int,
) ([]*tables.TaskTable, error) {
	q := sq.Select("*").
		From("tasks").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		OrderBy("created_at DESC")
	entities := make([]*tables.TaskTable, 0)
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (d *DataStore) TasksByAssignee(
	ctx context.Context,
	assigneeID int,
) ([]*tables.TaskTable, error) {
	q := sq.Select("*").
		From("tasks").
		Where(sq.Eq{"assigned_to": assigneeID}).
		OrderBy("created_at DESC")
	entities := make([]*tables.TaskTable, 0)
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (d *DataStore) InsertTask(ctx context.Context, task *tables.TaskTable) (int, error) {
	var id int
	q := sq.Insert("tasks").
		Columns(
			"title",
			"description",
			"assigned_to",
			"priority",
			"status",
			"due_date",
			"restaurant_id",
			"created_by",
			"created_at",
		).
		Values(
			task.Title,
			task.Description,
			task.AssignedTo,
			task.Priority,
			task.Status,
			task.DueDate,
			task.RestaurantID,
			task.CreatedBy,
			time.Now().UTC(),
		).
		Suffix("RETURNING id")
	err := d.returningInsertStatement(ctx, &id, q, nil)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (d *DataStore) UpdateTask(ctx context.Context, id int, update TaskUpdate) (bool, error) {
	set := map[string]interface{}{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.AssignedTo != nil {
		set["assigned_to"] = *update.AssignedTo
	}
	if update.Priority != nil {
		set["priority"] = *update.Priority
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.DueDate != nil {
		set["due_date"] = *update.DueDate
	}
	if len(set) == 0 {
		return d.exists(ctx, "tasks", sq.Eq{"id": id})
	}
	q := sq.Update("tasks").SetMap(set).Where(sq.Eq{"id": id})
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

func (d *DataStore) DeleteTask(ctx context.Context, id int) (bool, error) {
	q := sq.Delete("tasks").Where(sq.Eq{"id": id})
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
