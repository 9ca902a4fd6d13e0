package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/crewline/crewline/db"
	"github.com/crewline/crewline/manage"
	"github.com/crewline/crewline/tokens"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthRessource habours the credential based signin endpoint
type AuthRessource struct {
	log      *zap.Logger
	store    *db.DataStore
	issuer   *tokens.TokenIssuer
	validate *validator.Validate
}

func NewAuthRessource(logger *zap.Logger,
	store *db.DataStore,
	issuer *tokens.TokenIssuer,
	validate *validator.Validate) *AuthRessource {
	return &AuthRessource{
		log:      logger,
		store:    store,
		issuer:   issuer,
		validate: validate,
	}
}

func (a *AuthRessource) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Post("/login", a.login)
	return r
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string         `json:"token"`
	TokenType string         `json:"tokenType"`
	ExpiresIn int            `json:"expiresIn"`
	User      *manage.UserDTO `json:"user"`
}

func (l *loginResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (a *AuthRessource) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		a.log.Info("invalid payload data", zap.Error(err))
		render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if err := a.validate.Struct(&req); err != nil {
		render.Render(w, r, createError("email and password are required", http.StatusBadRequest))
		return
	}
	user, err := a.store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			a.log.Error("could not load user for signin", zap.Error(err))
		}
		render.Render(w, r, createError("invalid credentials", http.StatusUnauthorized))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		render.Render(w, r, createError("invalid credentials", http.StatusUnauthorized))
		return
	}
	token, err := a.issuer.IssueAccessToken(
		user.ID,
		user.Email,
		user.Username,
		user.Role,
		user.RestaurantID,
	)
	if err != nil {
		a.log.Error("could not issue access token", zap.Error(err))
		render.Render(w, r, createError("unable to issue token", http.StatusInternalServerError))
		return
	}
	err = render.Render(w, r, &loginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(a.issuer.Expiry() / time.Second),
		User: &manage.UserDTO{
			ID:           user.ID,
			Email:        user.Email,
			Username:     user.Username,
			Role:         user.Role,
			Avatar:       user.Avatar,
			RestaurantID: user.RestaurantID,
			CreatedAt:    user.CreatedAt,
		},
	})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
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
