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

func NewResourceService(store *db.DataStore,
	log *zap.Logger,
	dispatcher *events.Dispatcher) *ResourceService {
	return &ResourceService{
		store:      store,
		log:        log,
		dispatcher: dispatcher,
	}
}

type ResourceService struct {
	store      *db.DataStore
	log        *zap.Logger
	dispatcher *events.Dispatcher
}

func (g *ResourceService) ByID(ctx context.Context, id int) (*ResourceDTO, error) {
	resource, err := g.store.Resource(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return resourceDTOfromDB(resource), nil
}

func (g *ResourceService) ListByRestaurant(
	ctx context.Context,
	restaurantID int,
) ([]*ResourceDTO, error) {
	resources, err := g.store.ResourcesByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*ResourceDTO, 0, len(resources))
	for _, v := range resources {
		dtos = append(dtos, resourceDTOfromDB(v))
	}
	return dtos, nil
}

func (g *ResourceService) Create(
	ctx context.Context,
	uploadedBy int,
	restaurantID int,
	title string,
	description *string,
	fileURL *string,
	fileType *string,
	fileSize *int,
	visibleTo []string,
) (*ResourceDTO, error) {
	id, err := g.store.InsertResource(ctx, &tables.ResourceTable{
		Title:        title,
		Description:  description,
		FileURL:      fileURL,
		FileType:     fileType,
		FileSize:     fileSize,
		VisibleTo:    visibleTo,
		RestaurantID: restaurantID,
		UploadedBy:   uploadedBy,
	})
	if err != nil {
		g.log.Error("Could not store resource", zap.Error(err))
		return nil, err
	}
	g.dispatcher.Dispatch(ctx, &event.ResourceUploaded{
		ResourceID:   id,
		Title:        title,
		RestaurantID: restaurantID,
		UploadedBy:   uploadedBy,
	})
	return g.ByID(ctx, id)
}

func (g *ResourceService) Update(
	ctx context.Context,
	id int,
	update db.ResourceUpdate,
) (*ResourceDTO, error) {
	ok, err := g.store.UpdateResource(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return g.ByID(ctx, id)
}

func (g *ResourceService) Delete(ctx context.Context, id int) error {
	ok, err := g.store.DeleteResource(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
