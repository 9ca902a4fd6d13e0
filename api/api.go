package api

import (
	"net/http"
	"time"

	"github.com/crewline/crewline/api/app/account"
	"github.com/crewline/crewline/api/app/auth"
	"github.com/crewline/crewline/api/app/invite"
	"github.com/crewline/crewline/api/app/management"
	"github.com/crewline/crewline/config"
	"github.com/crewline/crewline/db"
	"github.com/crewline/crewline/invites"
	"github.com/crewline/crewline/manage"
	"github.com/crewline/crewline/tokens"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-playground/validator/v10"

	"go.uber.org/zap"
)

var validate *validator.Validate
var tokenAuth *jwtauth.JWTAuth

func compose(logger *zap.Logger,
	cfg *config.Configuration,
	issuer *tokens.TokenIssuer,
	store *db.DataStore,
	inviteService *invites.Service,
	userService *manage.UserService,
	restaurantService *manage.RestaurantService,
	taskService *manage.TaskService,
	resourceService *manage.ResourceService,
	feedbackService *manage.FeedbackService,
	logService *manage.LogService) (*chi.Mux, error) {
	validate = validator.New()

	err := validate.RegisterValidation("minpwd", func(fl validator.FieldLevel) bool {
		if cfg.Behaviour.PasswordMinLength <= 0 {
			return true
		}
		return len(fl.Field().String()) >= cfg.Behaviour.PasswordMinLength
	})
	if err != nil {
		logger.Error("Could not create minpwd validation", zap.Error(err))
	}
	// use same settings as issuer (duh)
	tokenAuth = jwtauth.New(issuer.Alg(), issuer.PrivateKey(), nil)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Use(loggerMiddleware(logger))

	r.Use(middleware.Recoverer)

	r.Use(middleware.Timeout(50 * time.Second))

	r.Use(jwtauth.Verifier(tokenAuth))

	if cfg.API != nil && cfg.API.CORS != nil {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.API.CORS.AllowedOrigins,
			AllowedMethods:   cfg.API.CORS.AllowedMethods,
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: cfg.API.CORS.AllowCredentials,
			MaxAge:           300,
		}))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, cfg.Behaviour.Site, http.StatusFound)
	})

	authRessource := auth.NewAuthRessource(
		logger.Named("auth_ressource"),
		store,
		issuer,
		validate,
	)
	inviteRessource := invite.NewInviteRessource(
		logger.Named("invite_ressource"),
		inviteService,
		validate,
	)
	accountRessource := account.NewAccountRessource(
		logger.Named("account_ressource"),
		inviteService,
		validate,
	)
	managementRessource := management.NewManagementRessource(
		logger.Named("management_ressource"),
		userService,
		restaurantService,
		taskService,
		resourceService,
		feedbackService,
		logService,
		validate,
	)

	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", authRessource.Router())
		api.Mount("/invites", inviteRessource.Router())
		api.Mount("/register", accountRessource.Router())
		// alias kept for older clients
		api.Post("/register-with-invite", accountRessource.RegisterWithInvite)
		api.Mount("/", managementRessource.Router())
	})

	r.Get("/healthy", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	return r, nil
}
