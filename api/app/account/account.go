package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crewline/crewline/invites"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AccountRessource habours the public registration endpoints, no token
// required, possession of an invite token is the credential here
type AccountRessource struct {
	log           *zap.Logger
	inviteService *invites.Service
	validate      *validator.Validate
}

func NewAccountRessource(logger *zap.Logger,
	inviteService *invites.Service,
	validate *validator.Validate) *AccountRessource {
	return &AccountRessource{
		log:           logger,
		inviteService: inviteService,
		validate:      validate,
	}
}

func (a *AccountRessource) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Post("/invite", a.RegisterWithInvite)
	return r
}

type registerRequest struct {
	Token    string `json:"token"    validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterWithInvite redeems an invite token into a new staff account
func (a *AccountRessource) RegisterWithInvite(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		a.log.Info("invalid payload data", zap.Error(err))
		render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	// allow the token to come from the url as well
	if req.Token == "" {
		req.Token = chi.URLParam(r, "token")
	}
	if err := a.validate.Struct(&req); err != nil {
		render.Render(
			w,
			r,
			createError("token, email, username and password are required", http.StatusBadRequest),
		)
		return
	}
	user, err := a.inviteService.Redeem(r.Context(), req.Token, req.Email, req.Username, req.Password)
	if err != nil {
		a.renderInviteError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.Respond(w, r, user)
}

func (a *AccountRessource) renderInviteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, invites.ErrInviteNotFound):
		render.Render(w, r, createError("no invite exists for this token", http.StatusNotFound))
	case errors.Is(err, invites.ErrInviteUsed):
		render.Render(w, r, createError("invite has already been used", http.StatusGone))
	case errors.Is(err, invites.ErrInviteExpired):
		render.Render(w, r, createError("invite has expired", http.StatusGone))
	case errors.Is(err, invites.ErrEmailTaken):
		render.Render(w, r, createError("email is already registered", http.StatusConflict))
	case errors.Is(err, invites.ErrPasswordGuidelines):
		render.Render(w, r, createError("password is too short", http.StatusBadRequest))
	default:
		a.log.Error("invite operation failed", zap.Error(err))
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
