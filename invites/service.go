package invites

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crewline/crewline/config"
	"github.com/crewline/crewline/db"
	"github.com/crewline/crewline/db/tables"
	"github.com/crewline/crewline/events"
	"github.com/crewline/crewline/events/event"
	"github.com/crewline/crewline/generator"
	"github.com/crewline/crewline/roles"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const maxIterationCycles = 100

var (
	// ErrInviteNotFound indicates no invite exists for the supplied token
	ErrInviteNotFound = errors.New("no invite exists for this token")
	// ErrInviteUsed indicates the invite has already been consumed
	ErrInviteUsed = errors.New("invite has already been used")
	// ErrInviteExpired indicates the invite expiry has passed
	ErrInviteExpired = errors.New("invite has expired")
	// ErrInvalidRole indicates the invite role is not grantable by invitation
	ErrInvalidRole = errors.New("role can not be granted by invitation")
	// ErrEmailTaken indicates the email is already registered
	ErrEmailTaken         = errors.New("email is already registered")
	ErrPasswordGuidelines = errors.New("password doesnt match password guidelines")
	ErrTokenGenTimeout    = errors.New("could not generate a token within given cycles")
)

// InviteStorer is the persistence surface the workflow needs
type InviteStorer interface {
	CreateInvite(ctx context.Context, invite *tables.InviteTable) error
	InviteByToken(ctx context.Context, token string) (*tables.InviteTable, error)
	InviteTokenExists(ctx context.Context, token string) (bool, error)
	InvitesByRestaurant(ctx context.Context, restaurantID int) ([]*tables.InviteTable, error)
	ConsumeInvite(ctx context.Context, token string) (bool, error)
	IsRegistered(ctx context.Context, email string) (bool, error)
	InsertUser(
		ctx context.Context,
		email string,
		username string,
		passwordHash string,
		role string,
		restaurantID *int,
	) (int, error)
	DeleteUser(ctx context.Context, id int) (bool, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, ev events.Event)
}

type InviteMailer interface {
	SendInviteMail(email string, link string) error
}

// Invite is the outward representation of an invite record
type Invite struct {
	ID           uuid.UUID  `json:"id"`
	Token        string     `json:"token"`
	Email        *string    `json:"email,omitempty"`
	Role         string     `json:"role"`
	RestaurantID int        `json:"restaurantId"`
	CreatedBy    int        `json:"createdBy"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	Used         bool       `json:"used"`
	CreatedAt    time.Time  `json:"createdAt"`
	Link         string     `json:"link"`
}

// RegisteredUser is returned after a successful invite redemption
type RegisteredUser struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	RestaurantID int    `json:"restaurantId"`
}

func New(store InviteStorer,
	logger *zap.Logger,
	cfg *config.Configuration,
	mailer InviteMailer,
	dispatcher Dispatcher) *Service {
	return &Service{
		store:      store,
		log:        logger,
		cfg:        cfg,
		mailer:     mailer,
		dispatcher: dispatcher,
	}
}

type Service struct {
	store      InviteStorer
	log        *zap.Logger
	cfg        *config.Configuration
	mailer     InviteMailer
	dispatcher Dispatcher
}

func (g *Service) toInvite(entity *tables.InviteTable) *Invite {
	return &Invite{
		ID:           entity.ID,
		Token:        entity.Token,
		Email:        entity.Email,
		Role:         entity.Role,
		RestaurantID: entity.RestaurantID,
		CreatedBy:    entity.CreatedBy,
		ExpiresAt:    entity.ExpiresAt,
		Used:         entity.Used,
		CreatedAt:    entity.CreatedAt,
		Link:         g.InviteLink(entity.Token),
	}
}

// InviteLink builds the registration link handed out to invitees
func (g *Service) InviteLink(token string) string {
	site := strings.TrimSuffix(g.cfg.Behaviour.Site, "/")
	return fmt.Sprintf("%s/register/%s", site, token)
}

// Create issues a new invite on behalf of createdBy. Only roles that may be
// granted by invitation are accepted, the restaurant binding is fixed at
// creation and can not be changed by the redeeming user.
func (g *Service) Create(
	ctx context.Context,
	createdBy int,
	role string,
	restaurantID int,
	email *string,
	expiresAt *time.Time,
) (*Invite, error) {
	if !roles.Invitable(role) {
		return nil, ErrInvalidRole
	}

	gen := generator.New()
	token := ""
	exists := true
	timeout := 0
	for exists {
		candidate := string(gen.CreateInviteToken())
		var err error
		exists, err = g.store.InviteTokenExists(ctx, candidate)
		if err != nil {
			g.log.Error("Could not check if invite token already exists", zap.Error(err))
			return nil, err
		}
		timeout++
		if timeout >= maxIterationCycles {
			return nil, ErrTokenGenTimeout
		}
		if !exists {
			token = candidate
		}
	}

	if expiresAt == nil && g.cfg.Behaviour.InviteExpiry > 0 {
		t := time.Now().UTC().Add(g.cfg.Behaviour.InviteExpiry)
		expiresAt = &t
	}

	entity := &tables.InviteTable{
		ID:           uuid.New(),
		Token:        token,
		Email:        email,
		Role:         role,
		RestaurantID: restaurantID,
		CreatedBy:    createdBy,
		ExpiresAt:    expiresAt,
		Used:         false,
		CreatedAt:    time.Now().UTC(),
	}
	err := g.store.CreateInvite(ctx, entity)
	if err != nil {
		g.log.Error("Could not store invite", zap.Error(err))
		return nil, err
	}

	g.dispatcher.Dispatch(ctx, &event.InviteCreated{
		InviteID:     entity.ID,
		Token:        entity.Token,
		Email:        entity.Email,
		Role:         entity.Role,
		RestaurantID: entity.RestaurantID,
		CreatedBy:    entity.CreatedBy,
		ExpiresAt:    entity.ExpiresAt,
	})

	if email != nil {
		err = g.mailer.SendInviteMail(*email, g.InviteLink(token))
		if err != nil {
			g.log.Error("Invite mail could not be sent", zap.Error(err))
		} else {
			g.dispatcher.Dispatch(ctx, &event.InviteMailSent{
				Token: token,
				Email: *email,
				Sent:  time.Now(),
			})
		}
	}

	return g.toInvite(entity), nil
}

// Validate looks up an invite and checks whether it can still be redeemed.
// It has no side effects, a valid invite stays valid.
func (g *Service) Validate(ctx context.Context, token string) (*Invite, error) {
	entity, err := g.store.InviteByToken(ctx, token)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		g.log.Error("Could not load invite from data store", zap.Error(err))
		return nil, err
	}
	if entity.Used {
		return nil, ErrInviteUsed
	}
	if entity.ExpiresAt != nil && entity.ExpiresAt.Before(time.Now().UTC()) {
		return nil, ErrInviteExpired
	}
	return g.toInvite(entity), nil
}

// Redeem registers a new user from an invite. Role, restaurant and a fixed
// email address are taken from the invite record, never from the request.
// On a redemption race the loser's user row is removed again and the invite
// reported as used.
func (g *Service) Redeem(
	ctx context.Context,
	token string,
	email string,
	username string,
	password string,
) (*RegisteredUser, error) {
	invite, err := g.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	if invite.Email != nil {
		email = *invite.Email
	}
	if len(password) < g.cfg.Behaviour.PasswordMinLength {
		return nil, ErrPasswordGuidelines
	}

	registered, err := g.store.IsRegistered(ctx, email)
	if err != nil {
		g.log.Error(
			"Could not check registration in data store",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}
	if registered {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		g.log.Error("Could not hash password", zap.Error(err))
		return nil, err
	}

	restaurantID := invite.RestaurantID
	id, err := g.store.InsertUser(
		ctx,
		email,
		username,
		string(hashed),
		invite.Role,
		&restaurantID,
	)
	if err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	won, err := g.store.ConsumeInvite(ctx, token)
	if err != nil {
		g.log.Error("Could not consume invite", zap.String("token", token), zap.Error(err))
		return nil, err
	}
	if !won {
		// lost the race for the invite, take the user row back out
		if _, derr := g.store.DeleteUser(ctx, id); derr != nil {
			g.log.Error("Could not remove user after lost invite race",
				zap.Int("user_id", id),
				zap.Error(derr))
		}
		return nil, ErrInviteUsed
	}

	g.dispatcher.Dispatch(ctx, &event.InviteConsumed{
		Token:        token,
		UserID:       id,
		RestaurantID: invite.RestaurantID,
	})
	g.dispatcher.Dispatch(ctx, &event.UserRegistered{
		UserID:       id,
		Email:        email,
		Role:         invite.Role,
		RestaurantID: invite.RestaurantID,
		InviteToken:  token,
	})

	return &RegisteredUser{
		ID:           id,
		Email:        email,
		Username:     username,
		Role:         invite.Role,
		RestaurantID: invite.RestaurantID,
	}, nil
}

// ListByRestaurant returns every invite issued for a restaurant
func (g *Service) ListByRestaurant(ctx context.Context, restaurantID int) ([]*Invite, error) {
	entities, err := g.store.InvitesByRestaurant(ctx, restaurantID)
	if err != nil {
		g.log.Error("Could not list invites", zap.Int("restaurant_id", restaurantID), zap.Error(err))
		return nil, err
	}
	invites := make([]*Invite, 0, len(entities))
	for _, e := range entities {
		invites = append(invites, g.toInvite(e))
	}
	return invites, nil
}
