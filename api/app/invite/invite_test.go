package invite

import (
	"net/http"
	"testing"

	"github.com/crewline/crewline/config"
	"github.com/crewline/crewline/db"
	"github.com/crewline/crewline/db/tables"
	"github.com/crewline/crewline/invites"
	"github.com/crewline/crewline/invites/mocks"
	"github.com/crewline/crewline/roles"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func testInviteService(t *testing.T, store *mocks.InviteStorer) *invites.Service {
	cfg := &config.Configuration{
		Behaviour: &config.BehaviourConfiguration{
			Name: "crewline",
			Site: "http://example.com",
		},
	}
	return invites.New(store, zap.NewNop(), cfg, mocks.NewInviteMailer(t), mocks.NewDispatcher(t))
}

func TestValidateInviteEndpoint(t *testing.T) {
	store := mocks.NewInviteStorer(t)
	store.On("InviteByToken", mock.Anything, "4da254cf3a7d4a0b9c2f1e8b5d603911").
		Return(&tables.InviteTable{
			ID:           uuid.MustParse("0b4f6017-8c41-4b2c-9f6e-02d05c9c6b11"),
			Token:        "4da254cf3a7d4a0b9c2f1e8b5d603911",
			Role:         roles.Staff,
			RestaurantID: 7,
			CreatedBy:    1,
		}, nil)
	m := NewInviteRessource(zap.NewNop(), testInviteService(t, store), validator.New())
	apitest.New(). // configuration
			Handler(m.Router()).
			Get("/4da254cf3a7d4a0b9c2f1e8b5d603911"). // request
			Expect(t).                                // expectations
			Body(`{"id":"0b4f6017-8c41-4b2c-9f6e-02d05c9c6b11","token":"4da254cf3a7d4a0b9c2f1e8b5d603911","role":"staff","restaurantId":7,"createdBy":1,"used":false,"createdAt":"0001-01-01T00:00:00Z","link":"http://example.com/register/4da254cf3a7d4a0b9c2f1e8b5d603911"}`).
			Status(http.StatusOK).
			End()
}

func TestValidateInviteEndpointUnknownToken(t *testing.T) {
	store := mocks.NewInviteStorer(t)
	store.On("InviteByToken", mock.Anything, "ffffffffffffffffffffffffffffffff").
		Return(nil, db.ErrNotFound)
	m := NewInviteRessource(zap.NewNop(), testInviteService(t, store), validator.New())
	apitest.New().
		Handler(m.Router()).
		Get("/ffffffffffffffffffffffffffffffff").
		Expect(t).
		Body(`{"error":"no invite exists for this token"}`).
		Status(http.StatusNotFound).
		End()
}

func TestValidateInviteEndpointUsedToken(t *testing.T) {
	store := mocks.NewInviteStorer(t)
	store.On("InviteByToken", mock.Anything, "4da254cf3a7d4a0b9c2f1e8b5d603911").
		Return(&tables.InviteTable{
			ID:           uuid.MustParse("0b4f6017-8c41-4b2c-9f6e-02d05c9c6b11"),
			Token:        "4da254cf3a7d4a0b9c2f1e8b5d603911",
			Role:         roles.Staff,
			RestaurantID: 7,
			CreatedBy:    1,
			Used:         true,
		}, nil)
	m := NewInviteRessource(zap.NewNop(), testInviteService(t, store), validator.New())
	apitest.New().
		Handler(m.Router()).
		Get("/4da254cf3a7d4a0b9c2f1e8b5d603911").
		Expect(t).
		Body(`{"error":"invite has already been used"}`).
		Status(http.StatusGone).
		End()
}
