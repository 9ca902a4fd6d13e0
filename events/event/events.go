package event

import (
	"time"

	"github.com/crewline/crewline/events"
	"github.com/google/uuid"
)

const (
	InviteCreatedEvent  events.EventName = "invite_created"
	InviteConsumedEvent events.EventName = "invite_consumed"
	InviteMailSentEvent events.EventName = "invite_mail_sent"

	UserRegisteredEvent events.EventName = "user_registered"
	UserCreatedEvent    events.EventName = "user_created"
	UserDeletedEvent    events.EventName = "user_deleted"

	RestaurantCreatedEvent events.EventName = "restaurant_created"

	TaskCreatedEvent   events.EventName = "task_created"
	TaskCompletedEvent events.EventName = "task_completed"

	ResourceUploadedEvent  events.EventName = "resource_uploaded"
	FeedbackSubmittedEvent events.EventName = "feedback_submitted"
)

type InviteCreated struct {
	InviteID     uuid.UUID
	Token        string
	Email        *string
	Role         string
	RestaurantID int
	CreatedBy    int
	ExpiresAt    *time.Time
}

func (*InviteCreated) Name() events.EventName { return InviteCreatedEvent }

type InviteConsumed struct {
	Token        string
	UserID       int
	RestaurantID int
}

func (*InviteConsumed) Name() events.EventName { return InviteConsumedEvent }

type InviteMailSent struct {
	Token string
	Email string
	Sent  time.Time
}

func (*InviteMailSent) Name() events.EventName { return InviteMailSentEvent }

type UserRegistered struct {
	UserID       int
	Email        string
	Role         string
	RestaurantID int
	InviteToken  string
}

func (*UserRegistered) Name() events.EventName { return UserRegisteredEvent }

type UserCreated struct {
	UserID       int
	Email        string
	Role         string
	RestaurantID int
	CreatedBy    int
}

func (*UserCreated) Name() events.EventName { return UserCreatedEvent }

type UserDeleted struct {
	UserID       int
	RestaurantID int
}

func (*UserDeleted) Name() events.EventName { return UserDeletedEvent }

type RestaurantCreated struct {
	RestaurantID   int
	RestaurantName string
	OwnerID        int
}

func (*RestaurantCreated) Name() events.EventName { return RestaurantCreatedEvent }

type TaskCreated struct {
	TaskID       int
	Title        string
	RestaurantID int
	CreatedBy    int
	AssignedTo   *int
}

func (*TaskCreated) Name() events.EventName { return TaskCreatedEvent }

type TaskCompleted struct {
	TaskID       int
	Title        string
	RestaurantID int
	CompletedBy  int
}

func (*TaskCompleted) Name() events.EventName { return TaskCompletedEvent }

type ResourceUploaded struct {
	ResourceID   int
	Title        string
	RestaurantID int
	UploadedBy   int
}

func (*ResourceUploaded) Name() events.EventName { return ResourceUploadedEvent }

type FeedbackSubmitted struct {
	FeedbackID   int
	Rating       *int
	RestaurantID int
	UserID       int
}

func (*FeedbackSubmitted) Name() events.EventName { return FeedbackSubmittedEvent }
