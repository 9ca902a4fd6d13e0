package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/crewline/crewline/db/tables"
)

// UserUpdate carries the changeable fields of a user,
// nil fields are left untouched
type UserUpdate struct {
	Email        *string
	Username     *string
	Password     *string
	Role         *string
	Avatar       *string
	RestaurantID *int
}

func (d *DataStore) User(ctx context.Context, id int) (*tables.UserTable, error) {
	q := sq.Select("*").From("users").Where(sq.Eq{"id": id})
	var entity tables.UserTable
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (d *DataStore) UserByEmail(ctx context.Context, email string) (*tables.UserTable, error) {
	q := sq.Select("*").From("users").Where(sq.Eq{"email": email})
	var entity tables.UserTable
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// IsRegistered checks whether the email is already taken by a user
func (d *DataStore) IsRegistered(ctx context.Context, email string) (bool, error) {
	return d.exists(ctx, "users", sq.Eq{"email": email})
}

// InsertUser stores a new user and returns its id. The password is
// expected to already be hashed by the caller.
func (d *DataStore) InsertUser(
	ctx context.Context,
	email string,
	username string,
	passwordHash string,
	role string,
	restaurantID *int,
) (int, error) {
	exists, err := d.IsRegistered(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrAlreadyExists
	}
	var id int
	q := sq.Insert("users").
		Columns("email", "username", "password", "role", "restaurant_id", "created_at").
		Values(email, username, passwordHash, role, restaurantID, time.Now().UTC()).
		Suffix("RETURNING id")
	err = d.returningInsertStatement(ctx, &id, q, nil)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (d *DataStore) UpdateUser(ctx context.Context, id int, update UserUpdate) (bool, error) {
	set := map[string]interface{}{}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.Password != nil {
		set["password"] = *update.Password
	}
	if update.Role != nil {
		set["role"] = *update.Role
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}
	if update.RestaurantID != nil {
		set["restaurant_id"] = *update.RestaurantID
	}
	if len(set) == 0 {
		return d.exists(ctx, "users", sq.Eq{"id": id})
	}
	q := sq.Update("users").SetMap(set).Where(sq.Eq{"id": id})
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

func (d *DataStore) DeleteUser(ctx context.Context, id int) (bool, error) {
	q := sq.Delete("users").Where(sq.Eq{"id": id})
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

func (d *DataStore) UsersByRestaurant(
	ctx context.Context,
	restaurantID int,
) ([]*tables.UserTable, error) {
	q := sq.Select("*").
		From("users").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		OrderBy("id ASC")
	entities := make([]*tables.UserTable, 0)
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// Users lists every account, used by the CLI only
func (d *DataStore) Users(ctx context.Context) ([]*tables.UserTable, error) {
	q := sq.Select("*").From("users").OrderBy("id ASC")
	entities := make([]*tables.UserTable, 0)
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// HasAnyUser reports whether at least one account exists,
// used to guard the demo seed
func (d *DataStore) HasAnyUser(ctx context.Context) (bool, error) {
	return d.exists(ctx, "users", sq.NotEq{"id": nil})
}
