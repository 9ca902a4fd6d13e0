package invites

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crewline/crewline/config"
	"github.com/crewline/crewline/db"
	"github.com/crewline/crewline/db/tables"
	"github.com/crewline/crewline/invites/mocks"
	"github.com/crewline/crewline/roles"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"
)

func testConfiguration() *config.Configuration {
	return &config.Configuration{
		Behaviour: &config.BehaviourConfiguration{
			Name:              "crewline",
			Site:              "https://crewline.example",
			InviteExpiry:      72 * time.Hour,
			PasswordMinLength: 8,
		},
	}
}

func TestCreateRejectsNonInvitableRole(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	_, err := service.Create(ctx, 1, roles.Owner, 7, nil, nil)
	assert.ErrorIs(err, ErrInvalidRole)

	_, err = service.Create(ctx, 1, roles.SuperAdmin, 7, nil, nil)
	assert.ErrorIs(err, ErrInvalidRole)

	_, err = service.Create(ctx, 1, "chef", 7, nil, nil)
	assert.ErrorIs(err, ErrInvalidRole)
}

func TestCreateIssuesInvite(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	dataStore.On("InviteTokenExists", ctx, mock.Anything).Return(false, nil)
	dataStore.On("CreateInvite", ctx, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("*event.InviteCreated")).Return()

	invite, err := service.Create(ctx, 1, roles.Staff, 7, nil, nil)
	assert.Nil(err)
	if assert.NotNil(invite) {
		assert.Regexp("^[0-9a-f]{32}$", invite.Token)
		assert.Equal(roles.Staff, invite.Role)
		assert.Equal(7, invite.RestaurantID)
		assert.Equal(1, invite.CreatedBy)
		assert.False(invite.Used)
		assert.Equal("https://crewline.example/register/"+invite.Token, invite.Link)
		// default expiry from configuration
		if assert.NotNil(invite.ExpiresAt) {
			assert.WithinDuration(time.Now().UTC().Add(72*time.Hour), *invite.ExpiresAt, time.Minute)
		}
	}
}

func TestCreateSendsMailWhenEmailSupplied(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	email := "newhire@example.com"
	dataStore.On("InviteTokenExists", ctx, mock.Anything).Return(false, nil)
	dataStore.On("CreateInvite", ctx, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("*event.InviteCreated")).Return()
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("*event.InviteMailSent")).Return()
	mailer.On("SendInviteMail", email, mock.Anything).Return(nil)

	invite, err := service.Create(ctx, 1, roles.GeneralManager, 7, &email, nil)
	assert.Nil(err)
	assert.NotNil(invite)
}

func TestCreateSurvivesMailFailure(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	email := "newhire@example.com"
	dataStore.On("InviteTokenExists", ctx, mock.Anything).Return(false, nil)
	dataStore.On("CreateInvite", ctx, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("*event.InviteCreated")).Return()
	mailer.On("SendInviteMail", email, mock.Anything).Return(errors.New("smtp down"))

	invite, err := service.Create(ctx, 1, roles.Staff, 7, &email, nil)
	assert.Nil(err)
	assert.NotNil(invite)
	dispatcher.AssertNotCalled(t, "Dispatch", ctx, mock.AnythingOfType("*event.InviteMailSent"))
}

func TestCreateRetriesTokenCollisions(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	dataStore.On("InviteTokenExists", ctx, mock.Anything).Return(true, nil).Twice()
	dataStore.On("InviteTokenExists", ctx, mock.Anything).Return(false, nil).Once()
	dataStore.On("CreateInvite", ctx, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("*event.InviteCreated")).Return()

	invite, err := service.Create(ctx, 1, roles.Staff, 7, nil, nil)
	assert.Nil(err)
	assert.NotNil(invite)
}

func TestCreateGivesUpAfterTooManyCollisions(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	dataStore.On("InviteTokenExists", ctx, mock.Anything).Return(true, nil)

	_, err := service.Create(ctx, 1, roles.Staff, 7, nil, nil)
	assert.ErrorIs(err, ErrTokenGenTimeout)
}

func TestValidateUnknownToken(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	dataStore.On("InviteByToken", ctx, "ffffffffffffffffffffffffffffffff").
		Return(nil, db.ErrNotFound)

	_, err := service.Validate(ctx, "ffffffffffffffffffffffffffffffff")
	assert.ErrorIs(err, ErrInviteNotFound)
}

func TestValidateUsedInvite(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	dataStore.On("InviteByToken", ctx, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa").
		Return(&tables.InviteTable{
			ID:           uuid.New(),
			Token:        "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			Role:         roles.Staff,
			RestaurantID: 7,
			Used:         true,
		}, nil)

	_, err := service.Validate(ctx, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	assert.ErrorIs(err, ErrInviteUsed)
}

func TestValidateExpiredInvite(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	expired := time.Now().UTC().Add(-time.Hour)
	dataStore.On("InviteByToken", ctx, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb").
		Return(&tables.InviteTable{
			ID:           uuid.New(),
			Token:        "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
			Role:         roles.Staff,
			RestaurantID: 7,
			ExpiresAt:    &expired,
		}, nil)

	_, err := service.Validate(ctx, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	assert.ErrorIs(err, ErrInviteExpired)
}

func TestValidateHasNoSideEffects(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	expires := time.Now().UTC().Add(time.Hour)
	dataStore.On("InviteByToken", ctx, "cccccccccccccccccccccccccccccccc").
		Return(&tables.InviteTable{
			ID:           uuid.New(),
			Token:        "cccccccccccccccccccccccccccccccc",
			Role:         roles.GeneralManager,
			RestaurantID: 7,
			ExpiresAt:    &expires,
		}, nil)

	invite, err := service.Validate(ctx, "cccccccccccccccccccccccccccccccc")
	assert.Nil(err)
	if assert.NotNil(invite) {
		assert.Equal(roles.GeneralManager, invite.Role)
		assert.False(invite.Used)
	}
	// validation must never consume
	invite, err = service.Validate(ctx, "cccccccccccccccccccccccccccccccc")
	assert.Nil(err)
	assert.NotNil(invite)
	dataStore.AssertNotCalled(t, "ConsumeInvite", ctx, mock.Anything)
}

func redeemableInvite(token string) *tables.InviteTable {
	expires := time.Now().UTC().Add(time.Hour)
	return &tables.InviteTable{
		ID:           uuid.New(),
		Token:        token,
		Role:         roles.Staff,
		RestaurantID: 7,
		CreatedBy:    1,
		ExpiresAt:    &expires,
	}
}

func TestRedeemRegistersUser(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	token := "dddddddddddddddddddddddddddddddd"
	email := "jane@example.com"
	restaurantID := 7

	dataStore.On("InviteByToken", ctx, token).Return(redeemableInvite(token), nil)
	dataStore.On("IsRegistered", ctx, email).Return(false, nil)
	dataStore.On("InsertUser", ctx, email, "Jane", mock.Anything, roles.Staff, &restaurantID).
		Return(42, nil)
	dataStore.On("ConsumeInvite", ctx, token).Return(true, nil)
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("*event.InviteConsumed")).Return()
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("*event.UserRegistered")).Return()

	user, err := service.Redeem(ctx, token, email, "Jane", "longenough")
	assert.Nil(err)
	if assert.NotNil(user) {
		assert.Equal(42, user.ID)
		assert.Equal(email, user.Email)
		// role and restaurant come from the invite, not the request
		assert.Equal(roles.Staff, user.Role)
		assert.Equal(7, user.RestaurantID)
	}
}

func TestRedeemForcesInviteEmail(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	token := "cccccccccccccccccccccccccccccccc"
	fixed := "invited@example.com"
	restaurantID := 7

	invite := redeemableInvite(token)
	invite.Email = &fixed

	dataStore.On("InviteByToken", ctx, token).Return(invite, nil)
	dataStore.On("IsRegistered", ctx, fixed).Return(false, nil)
	dataStore.On("InsertUser", ctx, fixed, "Jane", mock.Anything, roles.Staff, &restaurantID).
		Return(42, nil)
	dataStore.On("ConsumeInvite", ctx, token).Return(true, nil)
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("*event.InviteConsumed")).Return()
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("*event.UserRegistered")).Return()

	// the address on the invite wins over whatever the registrant supplies
	user, err := service.Redeem(ctx, token, "someoneelse@example.com", "Jane", "longenough")
	assert.Nil(err)
	if assert.NotNil(user) {
		assert.Equal(fixed, user.Email)
	}
	dataStore.AssertNotCalled(t, "IsRegistered", ctx, "someoneelse@example.com")
}

func TestRedeemRejectsShortPassword(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	token := "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"
	dataStore.On("InviteByToken", ctx, token).Return(redeemableInvite(token), nil)

	_, err := service.Redeem(ctx, token, "jane@example.com", "Jane", "short")
	assert.ErrorIs(err, ErrPasswordGuidelines)
}

func TestRedeemRejectsTakenEmail(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	token := "abcdefabcdefabcdefabcdefabcdefab"
	dataStore.On("InviteByToken", ctx, token).Return(redeemableInvite(token), nil)
	dataStore.On("IsRegistered", ctx, "taken@example.com").Return(true, nil)

	_, err := service.Redeem(ctx, token, "taken@example.com", "Jane", "longenough")
	assert.ErrorIs(err, ErrEmailTaken)
}

func TestRedeemMapsInsertConflictToEmailTaken(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	token := "0123456789abcdef0123456789abcdef"
	restaurantID := 7
	dataStore.On("InviteByToken", ctx, token).Return(redeemableInvite(token), nil)
	dataStore.On("IsRegistered", ctx, "jane@example.com").Return(false, nil)
	dataStore.On("InsertUser", ctx, "jane@example.com", "Jane", mock.Anything, roles.Staff, &restaurantID).
		Return(0, db.ErrAlreadyExists)

	_, err := service.Redeem(ctx, token, "jane@example.com", "Jane", "longenough")
	assert.ErrorIs(err, ErrEmailTaken)
}

func TestRedeemLosesRaceRollsBackUser(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	token := "fedcbafedcbafedcbafedcbafedcbafe"
	email := "jane@example.com"
	restaurantID := 7

	dataStore.On("InviteByToken", ctx, token).Return(redeemableInvite(token), nil)
	dataStore.On("IsRegistered", ctx, email).Return(false, nil)
	dataStore.On("InsertUser", ctx, email, "Jane", mock.Anything, roles.Staff, &restaurantID).
		Return(42, nil)
	dataStore.On("ConsumeInvite", ctx, token).Return(false, nil)
	dataStore.On("DeleteUser", ctx, 42).Return(true, nil)

	_, err := service.Redeem(ctx, token, email, "Jane", "longenough")
	assert.ErrorIs(err, ErrInviteUsed)
	dataStore.AssertCalled(t, "DeleteUser", ctx, 42)
	dispatcher.AssertNotCalled(t, "Dispatch", ctx, mock.AnythingOfType("*event.UserRegistered"))
}

func TestRedeemHashesPassword(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	token := "1111aaaa2222bbbb3333cccc4444dddd"
	email := "jane@example.com"
	restaurantID := 7
	var storedHash string

	dataStore.On("InviteByToken", ctx, token).Return(redeemableInvite(token), nil)
	dataStore.On("IsRegistered", ctx, email).Return(false, nil)
	dataStore.On("InsertUser", ctx, email, "Jane", mock.MatchedBy(func(hash string) bool {
		storedHash = hash
		return hash != "longenough"
	}), roles.Staff, &restaurantID).Return(42, nil)
	dataStore.On("ConsumeInvite", ctx, token).Return(true, nil)
	dispatcher.On("Dispatch", ctx, mock.Anything).Return()

	_, err := service.Redeem(ctx, token, email, "Jane", "longenough")
	assert.Nil(err)
	assert.NotEmpty(storedHash)
	assert.NotEqual("longenough", storedHash)
}

func TestListByRestaurant(t *testing.T) {
	assert := assert.New(t)
	logger := zaptest.NewLogger(t)
	dataStore := mocks.NewInviteStorer(t)
	mailer := mocks.NewInviteMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := New(dataStore, logger, testConfiguration(), mailer, dispatcher)

	dataStore.On("InvitesByRestaurant", ctx, 7).Return([]*tables.InviteTable{
		{ID: uuid.New(), Token: "11111111111111111111111111111111", Role: roles.Staff, RestaurantID: 7},
		{ID: uuid.New(), Token: "22222222222222222222222222222222", Role: roles.GeneralManager, RestaurantID: 7, Used: true},
	}, nil)

	invites, err := service.ListByRestaurant(ctx, 7)
	assert.Nil(err)
	if assert.Len(invites, 2) {
		assert.Equal("https://crewline.example/register/11111111111111111111111111111111", invites[0].Link)
		assert.True(invites[1].Used)
	}
}
