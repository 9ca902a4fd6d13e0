package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/crewline/crewline/db/tables"
)

// CreateInvite stores a new invite record. The token must already be
// generated by the caller, the store does not issue tokens itself.
func (d *DataStore) CreateInvite(ctx context.Context, invite *tables.InviteTable) error {
	q := sq.Insert("invites").
		Columns(
			"id",
			"token",
			"email",
			"role",
			"restaurant_id",
			"created_by",
			"expires_at",
			"used",
			"created_at",
		).
		Values(
			invite.ID,
			invite.Token,
			invite.Email,
			invite.Role,
			invite.RestaurantID,
			invite.CreatedBy,
			invite.ExpiresAt,
			invite.Used,
			invite.CreatedAt,
		)
	_, err := d.insertStatement(ctx, q, nil)
	return err
}

// InviteByToken does an exact-match lookup, it has no side effects
func (d *DataStore) InviteByToken(
	ctx context.Context,
	token string,
) (*tables.InviteTable, error) {
	q := sq.Select("*").From("invites").Where(sq.Eq{"token": token})
	var entity tables.InviteTable
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// InviteTokenExists checks whether a token is already taken
func (d *DataStore) InviteTokenExists(ctx context.Context, token string) (bool, error) {
	return d.exists(ctx, "invites", sq.Eq{"token": token})
}

// InvitesByRestaurant returns the tenants invites newest-first,
// consumed and expired ones included since they stay on as audit records
func (d *DataStore) InvitesByRestaurant(
	ctx context.Context,
	restaurantID int,
) ([]*tables.InviteTable, error) {
	q := sq.Select("*").
		From("invites").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		OrderBy("created_at DESC")
	entities := make([]*tables.InviteTable, 0)
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// ConsumeInvite flips the used flag with a conditional update. The affected
// row count decides which of two racing redemptions wins: the loser sees
// false and must treat the invite as gone.
func (d *DataStore) ConsumeInvite(ctx context.Context, token string) (bool, error) {
	q := sq.Update("invites").
		Set("used", true).
		Where(sq.Eq{"token": token, "used": false})
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

// ExpiredUnusedInviteCount is used for administrative reporting
func (d *DataStore) ExpiredUnusedInviteCount(ctx context.Context, restaurantID int) (int, error) {
	var c int
	q := sq.Select("COUNT(*)").
		From("invites").
		Where(sq.And{
			sq.Eq{"restaurant_id": restaurantID, "used": false},
			sq.NotEq{"expires_at": nil},
			sq.Lt{"expires_at": time.Now().UTC()},
		})
	err := d.getStatement(ctx, &c, q, nil)
	if err != nil {
		return 0, err
	}
	return c, nil
}
