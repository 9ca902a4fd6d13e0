package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/crewline/crewline/db/tables"
)

// RestaurantUpdate carries the changeable fields of a restaurant,
// nil fields are left untouched
type RestaurantUpdate struct {
	Name        *string
	Email       *string
	Phone       *string
	Address     *string
	Description *string
}

func (d *DataStore) Restaurant(ctx context.Context, id int) (*tables.RestaurantTable, error) {
	q := sq.Select("*").From("restaurants").Where(sq.Eq{"id": id})
	var entity tables.RestaurantTable
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (d *DataStore) RestaurantsByOwner(
	ctx context.Context,
	ownerID int,
) ([]*tables.RestaurantTable, error) {
	q := sq.Select("*").
		From("restaurants").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("id ASC")
	entities := make([]*tables.RestaurantTable, 0)
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (d *DataStore) InsertRestaurant(
	ctx context.Context,
	restaurant *tables.RestaurantTable,
) (int, error) {
	var id int
	q := sq.Insert("restaurants").
		Columns("name", "email", "phone", "address", "description", "owner_id", "created_at").
		Values(
			restaurant.Name,
			restaurant.Email,
			restaurant.Phone,
			restaurant.Address,
			restaurant.Description,
			restaurant.OwnerID,
			time.Now().UTC(),
		).
		Suffix("RETURNING id")
	err := d.returningInsertStatement(ctx, &id, q, nil)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (d *DataStore) UpdateRestaurant(
	ctx context.Context,
	id int,
	update RestaurantUpdate,
) (bool, error) {
	set := map[string]interface{}{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if len(set) == 0 {
		return d.exists(ctx, "restaurants", sq.Eq{"id": id})
	}
	q := sq.Update("restaurants").SetMap(set).Where(sq.Eq{"id": id})
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

func (d *DataStore) DeleteRestaurant(ctx context.Context, id int) (bool, error) {
	q := sq.Delete("restaurants").Where(sq.Eq{"id": id})
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
