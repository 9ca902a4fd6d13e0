package manage

import (
	"context"
	"errors"

	"github.com/crewline/crewline/db"
	"github.com/crewline/crewline/db/tables"
	"github.com/crewline/crewline/events"
	"github.com/crewline/crewline/events/event"
	"go.uber.org/zap"
)

func NewRestaurantService(store *db.DataStore,
	log *zap.Logger,
	dispatcher *events.Dispatcher) *RestaurantService {
	return &RestaurantService{
		store:      store,
		log:        log,
		dispatcher: dispatcher,
	}
}

type RestaurantService struct {
	store      *db.DataStore
	log        *zap.Logger
	dispatcher *events.Dispatcher
}

func (g *RestaurantService) ByID(ctx context.Context, id int) (*RestaurantDTO, error) {
	restaurant, err := g.store.Restaurant(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return restaurantDTOfromDB(restaurant), nil
}

func (g *RestaurantService) ListByOwner(ctx context.Context, ownerID int) ([]*RestaurantDTO, error) {
	restaurants, err := g.store.RestaurantsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*RestaurantDTO, 0, len(restaurants))
	for _, v := range restaurants {
		dtos = append(dtos, restaurantDTOfromDB(v))
	}
	return dtos, nil
}

func (g *RestaurantService) Create(
	ctx context.Context,
	ownerID int,
	name string,
	email *string,
	phone *string,
	address *string,
	description *string,
) (*RestaurantDTO, error) {
	id, err := g.store.InsertRestaurant(ctx, &tables.RestaurantTable{
		Name:        name,
		Email:       email,
		Phone:       phone,
		Address:     address,
		Description: description,
		OwnerID:     ownerID,
	})
	if err != nil {
		g.log.Error("Could not store restaurant", zap.Error(err))
		return nil, err
	}
	g.dispatcher.Dispatch(ctx, &event.RestaurantCreated{
		RestaurantID:   id,
		RestaurantName: name,
		OwnerID:        ownerID,
	})
	return g.ByID(ctx, id)
}

func (g *RestaurantService) Update(
	ctx context.Context,
	id int,
	update db.RestaurantUpdate,
) (*RestaurantDTO, error) {
	ok, err := g.store.UpdateRestaurant(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return g.ByID(ctx, id)
}

func (g *RestaurantService) Delete(ctx context.Context, id int) error {
	ok, err := g.store.DeleteRestaurant(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
