package manage

import (
	"context"
	"errors"

	"github.com/crewline/crewline/config"
	"github.com/crewline/crewline/db"
	"github.com/crewline/crewline/events"
	"github.com/crewline/crewline/events/event"
	"github.com/crewline/crewline/roles"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//this contains the administrative operations, everything a user does for
//himself goes through the invites registration flow instead

var (
	ErrNotFound            = errors.New("entity not found")
	ErrEntityAlreadyExists = errors.New("entity already exists in system")
	ErrUnknownRole         = errors.New("supplied role is not known")
	ErrPasswordGuidelines  = errors.New("password doesnt match password guidelines")
)

func NewUserService(store *db.DataStore,
	log *zap.Logger,
	cfg *config.Configuration,
	dispatcher *events.Dispatcher) *UserService {
	return &UserService{
		store:      store,
		log:        log,
		cfg:        cfg,
		dispatcher: dispatcher,
	}
}

type UserService struct {
	store      *db.DataStore
	log        *zap.Logger
	cfg        *config.Configuration
	dispatcher *events.Dispatcher
}

func (g *UserService) List(ctx context.Context) ([]*UserDTO, error) {
	users, err := g.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*UserDTO, 0, len(users))
	for _, v := range users {
		dtos = append(dtos, userDTOfromDB(v))
	}
	return dtos, nil
}

func (g *UserService) ListByRestaurant(ctx context.Context, restaurantID int) ([]*UserDTO, error) {
	users, err := g.store.UsersByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*UserDTO, 0, len(users))
	for _, v := range users {
		dtos = append(dtos, userDTOfromDB(v))
	}
	return dtos, nil
}

func (g *UserService) ByID(ctx context.Context, id int) (*UserDTO, error) {
	user, err := g.store.User(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return userDTOfromDB(user), nil
}

func (g *UserService) ByEmail(ctx context.Context, email string) (*UserDTO, error) {
	user, err := g.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return userDTOfromDB(user), nil
}

// Create inserts a user directly, bypassing the invitation flow. This is
// reserved for administrative callers, the role is not restricted to
// invitable ones here.
func (g *UserService) Create(
	ctx context.Context,
	createdBy int,
	email string,
	username string,
	password string,
	role string,
	restaurantID *int,
) (*UserDTO, error) {
	if !roles.Known(role) {
		return nil, ErrUnknownRole
	}
	if len(password) < g.cfg.Behaviour.PasswordMinLength {
		return nil, ErrPasswordGuidelines
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		g.log.Error("Could not hash password", zap.Error(err))
		return nil, err
	}
	id, err := g.store.InsertUser(ctx, email, username, string(hashed), role, restaurantID)
	if err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			return nil, ErrEntityAlreadyExists
		}
		return nil, err
	}
	rid := 0
	if restaurantID != nil {
		rid = *restaurantID
	}
	g.dispatcher.Dispatch(ctx, &event.UserCreated{
		UserID:       id,
		Email:        email,
		Role:         role,
		RestaurantID: rid,
		CreatedBy:    createdBy,
	})
	return g.ByID(ctx, id)
}

func (g *UserService) Update(ctx context.Context, id int, update db.UserUpdate) (*UserDTO, error) {
	if update.Role != nil && !roles.Known(*update.Role) {
		return nil, ErrUnknownRole
	}
	if update.Password != nil {
		if len(*update.Password) < g.cfg.Behaviour.PasswordMinLength {
			return nil, ErrPasswordGuidelines
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		s := string(hashed)
		update.Password = &s
	}
	ok, err := g.store.UpdateUser(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return g.ByID(ctx, id)
}

func (g *UserService) Delete(ctx context.Context, id int) error {
	user, err := g.store.User(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	ok, err := g.store.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	rid := 0
	if user.RestaurantID != nil {
		rid = *user.RestaurantID
	}
	g.dispatcher.Dispatch(ctx, &event.UserDeleted{
		UserID:       id,
		RestaurantID: rid,
	})
	return nil
}
