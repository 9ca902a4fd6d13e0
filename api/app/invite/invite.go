package invite

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/crewline/crewline/api/app/principal"
	"github.com/crewline/crewline/invites"
	"github.com/crewline/crewline/roles"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// InviteRessource habours the invite lifecycle endpoints. Validation by
// token is public, everything else requires an inviting role.
type InviteRessource struct {
	log           *zap.Logger
	inviteService *invites.Service
	validate      *validator.Validate
}

func NewInviteRessource(logger *zap.Logger,
	inviteService *invites.Service,
	validate *validator.Validate) *InviteRessource {
	return &InviteRessource{
		log:           logger,
		inviteService: inviteService,
		validate:      validate,
	}
}

func (m *InviteRessource) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Get("/{token}", m.validateInvite)
	r.Group(func(gr chi.Router) {
		gr.Use(jwtauth.Authenticator)
		gr.Post("/", m.createInvite)
		gr.Get("/", m.listInvites)
	})
	return r
}

type createInviteRequest struct {
	Email        *string    `json:"email"        validate:"omitempty,email"`
	Role         string     `json:"role"         validate:"required"`
	RestaurantID int        `json:"restaurantId" validate:"required"`
	ExpiresAt    *time.Time `json:"expiresAt"`
}

func (m *InviteRessource) validateInvite(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	invite, err := m.inviteService.Validate(r.Context(), token)
	if err != nil {
		m.renderInviteError(w, r, err)
		return
	}
	render.Respond(w, r, invite)
}

func (m *InviteRessource) createInvite(w http.ResponseWriter, r *http.Request) {
	caller, err := principal.FromContext(r.Context())
	if err != nil {
		render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	if !roles.CanInvite(caller.Role) {
		render.Render(w, r, createError("role may not issue invites", http.StatusForbidden))
		return
	}
	var req createInviteRequest
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		m.log.Info("invalid payload data", zap.Error(err))
		render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if err := m.validate.Struct(&req); err != nil {
		render.Render(w, r, createError("role and restaurantId are required", http.StatusBadRequest))
		return
	}
	// non super admins only ever invite into their own restaurant
	if caller.Role != roles.SuperAdmin &&
		(caller.RestaurantID == nil || *caller.RestaurantID != req.RestaurantID) {
		render.Render(w, r, createError("restaurant is out of scope", http.StatusForbidden))
		return
	}
	invite, err := m.inviteService.Create(
		r.Context(),
		caller.UserID,
		req.Role,
		req.RestaurantID,
		req.Email,
		req.ExpiresAt,
	)
	if err != nil {
		m.renderInviteError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.Respond(w, r, invite)
}

func (m *InviteRessource) listInvites(w http.ResponseWriter, r *http.Request) {
	caller, err := principal.FromContext(r.Context())
	if err != nil {
		render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	if !roles.CanInvite(caller.Role) {
		render.Render(w, r, createError("role may not list invites", http.StatusForbidden))
		return
	}
	restaurantID, err := strconv.Atoi(r.URL.Query().Get("restaurantId"))
	if err != nil {
		render.Render(w, r, createError("restaurantId is required", http.StatusBadRequest))
		return
	}
	if caller.Role != roles.SuperAdmin &&
		(caller.RestaurantID == nil || *caller.RestaurantID != restaurantID) {
		render.Render(w, r, createError("restaurant is out of scope", http.StatusForbidden))
		return
	}
	list, err := m.inviteService.ListByRestaurant(r.Context(), restaurantID)
	if err != nil {
		m.log.Error("error listing invites", zap.Error(err))
		render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	render.Respond(w, r, list)
}

func (m *InviteRessource) renderInviteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, invites.ErrInviteNotFound):
		render.Render(w, r, createError("no invite exists for this token", http.StatusNotFound))
	case errors.Is(err, invites.ErrInviteUsed):
		render.Render(w, r, createError("invite has already been used", http.StatusGone))
	case errors.Is(err, invites.ErrInviteExpired):
		render.Render(w, r, createError("invite has expired", http.StatusGone))
	case errors.Is(err, invites.ErrInvalidRole):
		render.Render(
			w,
			r,
			createError("role can not be granted by invitation", http.StatusBadRequest),
		)
	default:
		m.log.Error("invite operation failed", zap.Error(err))
		render.Render(w, r, createError("internal error", http.StatusInternalServerError))
	}
}

func createError(err string, status int) *genericErrorResponse {
	return &genericErrorResponse{
		Error:      err,
		StatusCode: status,
	}
}

type genericErrorResponse struct {
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"-"`
}

func (e *genericErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}
