package manage

import (
	"context"

	"github.com/crewline/crewline/db"
	"github.com/crewline/crewline/db/tables"
	"go.uber.org/zap"
)

func NewLogService(store *db.DataStore, log *zap.Logger) *LogService {
	return &LogService{
		store: store,
		log:   log,
	}
}

// LogService reads the activity log and takes client reported entries,
// everything else is written through the event listeners
type LogService struct {
	store *db.DataStore
	log   *zap.Logger
}

// Append records an entry reported through the API rather than raised by a
// domain event, the original client logs task views and file downloads this way
func (g *LogService) Append(
	ctx context.Context,
	eventType string,
	userID int,
	restaurantID int,
	resourceID *int,
	resourceType *string,
	details map[string]interface{},
) (*ActivityLogDTO, error) {
	id, err := g.store.InsertLog(ctx, &tables.ActivityLogTable{
		EventType:    eventType,
		UserID:       userID,
		RestaurantID: restaurantID,
		ResourceID:   resourceID,
		ResourceType: resourceType,
		Details:      tables.MapStructure(details),
	})
	if err != nil {
		return nil, err
	}
	entry, err := g.store.Log(ctx, id)
	if err != nil {
		return nil, err
	}
	return activityLogDTOfromDB(entry), nil
}

func (g *LogService) ListByRestaurant(
	ctx context.Context,
	restaurantID int,
	limit int,
) ([]*ActivityLogDTO, error) {
	entries, err := g.store.LogsByRestaurant(ctx, restaurantID, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]*ActivityLogDTO, 0, len(entries))
	for _, v := range entries {
		dtos = append(dtos, activityLogDTOfromDB(v))
	}
	return dtos, nil
}
