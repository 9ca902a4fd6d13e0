package manage

import (
	"context"
	"errors"
	"time"

	"github.com/crewline/crewline/db"
	"github.com/crewline/crewline/db/tables"
	"github.com/crewline/crewline/events"
	"github.com/crewline/crewline/events/event"
	"go.uber.org/zap"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

func NewTaskService(store *db.DataStore,
	log *zap.Logger,
	dispatcher *events.Dispatcher) *TaskService {
	return &TaskService{
		store:      store,
		log:        log,
		dispatcher: dispatcher,
	}
}

type TaskService struct {
	store      *db.DataStore
	log        *zap.Logger
	dispatcher *events.Dispatcher
}

func (g *TaskService) ByID(ctx context.Context, id int) (*TaskDTO, error) {
	task, err := g.store.Task(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return taskDTOfromDB(task), nil
}

func (g *TaskService) ListByRestaurant(ctx context.Context, restaurantID int) ([]*TaskDTO, error) {
	tasks, err := g.store.TasksByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*TaskDTO, 0, len(tasks))
	for _, v := range tasks {
		dtos = append(dtos, taskDTOfromDB(v))
	}
	return dtos, nil
}

func (g *TaskService) ListByAssignee(ctx context.Context, userID int) ([]*TaskDTO, error) {
	tasks, err := g.store.TasksByAssignee(ctx, userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*TaskDTO, 0, len(tasks))
	for _, v := range tasks {
		dtos = append(dtos, taskDTOfromDB(v))
	}
	return dtos, nil
}

func (g *TaskService) Create(
	ctx context.Context,
	createdBy int,
	restaurantID int,
	title string,
	description *string,
	assignedTo *int,
	priority string,
	dueDate *time.Time,
) (*TaskDTO, error) {
	if priority == "" {
		priority = "medium"
	}
	id, err := g.store.InsertTask(ctx, &tables.TaskTable{
		Title:        title,
		Description:  description,
		AssignedTo:   assignedTo,
		Priority:     priority,
		Status:       TaskStatusPending,
		DueDate:      dueDate,
		RestaurantID: restaurantID,
		CreatedBy:    createdBy,
	})
	if err != nil {
		g.log.Error("Could not store task", zap.Error(err))
		return nil, err
	}
	g.dispatcher.Dispatch(ctx, &event.TaskCreated{
		TaskID:       id,
		Title:        title,
		RestaurantID: restaurantID,
		CreatedBy:    createdBy,
		AssignedTo:   assignedTo,
	})
	return g.ByID(ctx, id)
}

// Update applies a partial task update. A transition into the completed
// status raises a completion event exactly once, updates that keep the
// status completed stay silent.
func (g *TaskService) Update(
	ctx context.Context,
	updatedBy int,
	id int,
	update db.TaskUpdate,
) (*TaskDTO, error) {
	before, err := g.store.Task(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	ok, err := g.store.UpdateTask(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	completed := update.Status != nil &&
		*update.Status == TaskStatusCompleted &&
		before.Status != TaskStatusCompleted
	if completed {
		g.dispatcher.Dispatch(ctx, &event.TaskCompleted{
			TaskID:       id,
			Title:        before.Title,
			RestaurantID: before.RestaurantID,
			CompletedBy:  updatedBy,
		})
	}
	return g.ByID(ctx, id)
}

func (g *TaskService) Delete(ctx context.Context, id int) error {
	ok, err := g.store.DeleteTask(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
