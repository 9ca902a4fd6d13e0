package db

import (
	"context"

	"github.com/crewline/crewline/db/tables"
	"github.com/crewline/crewline/events"
	"github.com/crewline/crewline/events/event"
	"go.uber.org/zap"
)

// Auditor is a way to write activity log entries into a persistent store
type Auditor interface {
	addToActivityLog(
		eventType string,
		userID int,
		restaurantID int,
		resourceID *int,
		resourceType *string,
		details tables.MapStructure,
	) error
}

// BootstrapListeners registers all the event listeners from this package
func BootstrapListeners(store Auditor, log *zap.Logger) []events.EventListener {
	return []events.EventListener{
		&inviteCreatedListener{
			log:   log,
			store: store,
		},
		&inviteConsumedListener{
			log:   log,
			store: store,
		},
		&inviteMailSentListener{
			log:   log,
			store: store,
		},
		&userRegisteredListener{
			log:   log,
			store: store,
		},
		&userCreatedListener{
			log:   log,
			store: store,
		},
		&userDeletedListener{
			log:   log,
			store: store,
		},
		&restaurantCreatedListener{
			log:   log,
			store: store,
		},
		&taskCreatedListener{
			log:   log,
			store: store,
		},
		&taskCompletedListener{
			log:   log,
			store: store,
		},
		&resourceUploadedListener{
			log:   log,
			store: store,
		},
		&feedbackSubmittedListener{
			log:   log,
			store: store,
		},
	}
}

type inviteCreatedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*inviteCreatedListener) ForEvent() events.EventName {
	return event.InviteCreatedEvent
}

func (l *inviteCreatedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.InviteCreated)
	details := map[string]interface{}{
		"invite_id": e.InviteID.String(),
		"role":      e.Role,
	}
	if e.Email != nil {
		details["email"] = *e.Email
	}
	if e.ExpiresAt != nil {
		details["expires_at"] = e.ExpiresAt.UTC().Format("2006-01-02 15:04:05")
	}
	err := l.store.addToActivityLog(string(l.ForEvent()), e.CreatedBy, e.RestaurantID, nil, nil, details)
	if err != nil {
		l.log.Warn("Could not persist event to activity log", zap.Error(err))
	}
	return nil
}

type inviteConsumedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*inviteConsumedListener) ForEvent() events.EventName {
	return event.InviteConsumedEvent
}

func (l *inviteConsumedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.InviteConsumed)
	err := l.store.addToActivityLog(string(l.ForEvent()), e.UserID, e.RestaurantID, nil, nil,
		map[string]interface{}{
			"token": e.Token,
		})
	if err != nil {
		l.log.Warn("Could not persist event to activity log", zap.Error(err))
	}
	return nil
}

type inviteMailSentListener struct {
	store Auditor
	log   *zap.Logger
}

func (*inviteMailSentListener) ForEvent() events.EventName {
	return event.InviteMailSentEvent
}

func (l *inviteMailSentListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.InviteMailSent)
	l.log.Debug("Invite mail sent",
		zap.String("email", e.Email),
		zap.Time("sent", e.Sent))
	return nil
}

type userRegisteredListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userRegisteredListener) ForEvent() events.EventName {
	return event.UserRegisteredEvent
}

func (l *userRegisteredListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.UserRegistered)
	resourceType := "user"
	err := l.store.addToActivityLog(string(l.ForEvent()), e.UserID, e.RestaurantID, &e.UserID, &resourceType,
		map[string]interface{}{
			"email": e.Email,
			"role":  e.Role,
			"token": e.InviteToken,
		})
	if err != nil {
		l.log.Warn("Could not persist event to activity log", zap.Error(err))
	}
	return nil
}

type userCreatedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userCreatedListener) ForEvent() events.EventName {
	return event.UserCreatedEvent
}

func (l *userCreatedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.UserCreated)
	resourceType := "user"
	err := l.store.addToActivityLog(string(l.ForEvent()), e.CreatedBy, e.RestaurantID, &e.UserID, &resourceType,
		map[string]interface{}{
			"email": e.Email,
			"role":  e.Role,
		})
	if err != nil {
		l.log.Warn("Could not persist event to activity log", zap.Error(err))
	}
	return nil
}

type userDeletedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userDeletedListener) ForEvent() events.EventName {
	return event.UserDeletedEvent
}

func (l *userDeletedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.UserDeleted)
	resourceType := "user"
	err := l.store.addToActivityLog(string(l.ForEvent()), e.UserID, e.RestaurantID, &e.UserID, &resourceType, nil)
	if err != nil {
		l.log.Warn("Could not persist event to activity log", zap.Error(err))
	}
	return nil
}

type restaurantCreatedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*restaurantCreatedListener) ForEvent() events.EventName {
	return event.RestaurantCreatedEvent
}

func (l *restaurantCreatedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.RestaurantCreated)
	resourceType := "restaurant"
	err := l.store.addToActivityLog(string(l.ForEvent()), e.OwnerID, e.RestaurantID, &e.RestaurantID, &resourceType,
		map[string]interface{}{
			"name": e.RestaurantName,
		})
	if err != nil {
		l.log.Warn("Could not persist event to activity log", zap.Error(err))
	}
	return nil
}

type taskCreatedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*taskCreatedListener) ForEvent() events.EventName {
	return event.TaskCreatedEvent
}

func (l *taskCreatedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.TaskCreated)
	resourceType := "task"
	details := map[string]interface{}{
		"title": e.Title,
	}
	if e.AssignedTo != nil {
		details["assigned_to"] = *e.AssignedTo
	}
	err := l.store.addToActivityLog(string(l.ForEvent()), e.CreatedBy, e.RestaurantID, &e.TaskID, &resourceType, details)
	if err != nil {
		l.log.Warn("Could not persist event to activity log", zap.Error(err))
	}
	return nil
}

type taskCompletedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*taskCompletedListener) ForEvent() events.EventName {
	return event.TaskCompletedEvent
}

func (l *taskCompletedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.TaskCompleted)
	resourceType := "task"
	err := l.store.addToActivityLog(string(l.ForEvent()), e.CompletedBy, e.RestaurantID, &e.TaskID, &resourceType,
		map[string]interface{}{
			"title": e.Title,
		})
	if err != nil {
		l.log.Warn("Could not persist event to activity log", zap.Error(err))
	}
	return nil
}

type resourceUploadedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*resourceUploadedListener) ForEvent() events.EventName {
	return event.ResourceUploadedEvent
}

func (l *resourceUploadedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.ResourceUploaded)
	resourceType := "resource"
	err := l.store.addToActivityLog(string(l.ForEvent()), e.UploadedBy, e.RestaurantID, &e.ResourceID, &resourceType,
		map[string]interface{}{
			"title": e.Title,
		})
	if err != nil {
		l.log.Warn("Could not persist event to activity log", zap.Error(err))
	}
	return nil
}

type feedbackSubmittedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*feedbackSubmittedListener) ForEvent() events.EventName {
	return event.FeedbackSubmittedEvent
}

func (l *feedbackSubmittedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.FeedbackSubmitted)
	resourceType := "feedback"
	details := tables.MapStructure{}
	if e.Rating != nil {
		details["rating"] = *e.Rating
	}
	err := l.store.addToActivityLog(string(l.ForEvent()), e.UserID, e.RestaurantID, &e.FeedbackID, &resourceType, details)
	if err != nil {
		l.log.Warn("Could not persist event to activity log", zap.Error(err))
	}
	return nil
}
