package manage

import (
	"context"

	"github.com/crewline/crewline/db"
	"github.com/crewline/crewline/db/tables"
	"github.com/crewline/crewline/events"
	"github.com/crewline/crewline/events/event"
	"go.uber.org/zap"
)

func NewFeedbackService(store *db.DataStore,
	log *zap.Logger,
	dispatcher *events.Dispatcher) *FeedbackService {
	return &FeedbackService{
		store:      store,
		log:        log,
		dispatcher: dispatcher,
	}
}

type FeedbackService struct {
	store      *db.DataStore
	log        *zap.Logger
	dispatcher *events.Dispatcher
}

func (g *FeedbackService) Submit(
	ctx context.Context,
	userID int,
	restaurantID int,
	content string,
	rating *int,
) (*FeedbackDTO, error) {
	id, err := g.store.InsertFeedback(ctx, &tables.FeedbackTable{
		Content:      content,
		Rating:       rating,
		UserID:       userID,
		RestaurantID: restaurantID,
	})
	if err != nil {
		g.log.Error("Could not store feedback", zap.Error(err))
		return nil, err
	}
	g.dispatcher.Dispatch(ctx, &event.FeedbackSubmitted{
		FeedbackID:   id,
		Rating:       rating,
		RestaurantID: restaurantID,
		UserID:       userID,
	})
	entity, err := g.store.Feedback(ctx, id)
	if err != nil {
		return nil, err
	}
	return feedbackDTOfromDB(entity), nil
}

func (g *FeedbackService) ListByRestaurant(
	ctx context.Context,
	restaurantID int,
) ([]*FeedbackDTO, error) {
	entries, err := g.store.FeedbackByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*FeedbackDTO, 0, len(entries))
	for _, v := range entries {
		dtos = append(dtos, feedbackDTOfromDB(v))
	}
	return dtos, nil
}
