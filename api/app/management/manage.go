package management

import (
	"net/http"

	"github.com/crewline/crewline/api/app/principal"
	"github.com/crewline/crewline/manage"
	"github.com/crewline/crewline/roles"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ManagementRessource habours the token guarded staff management endpoints
type ManagementRessource struct {
	log               *zap.Logger
	userService       *manage.UserService
	restaurantService *manage.RestaurantService
	taskService       *manage.TaskService
	resourceService   *manage.ResourceService
	feedbackService   *manage.FeedbackService
	logService        *manage.LogService
	validate          *validator.Validate
}

func NewManagementRessource(logger *zap.Logger,
	userService *manage.UserService,
	restaurantService *manage.RestaurantService,
	taskService *manage.TaskService,
	resourceService *manage.ResourceService,
	feedbackService *manage.FeedbackService,
	logService *manage.LogService,
	validate *validator.Validate) *ManagementRessource {
	return &ManagementRessource{
		log:               logger,
		userService:       userService,
		restaurantService: restaurantService,
		taskService:       taskService,
		resourceService:   resourceService,
		feedbackService:   feedbackService,
		logService:        logService,
		validate:          validate,
	}
}

func (m *ManagementRessource) Router() *chi.Mux {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		m.log.Debug(
			"route not found",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		w.WriteHeader(404)
	})

	r.Group(func(gr chi.Router) {
		gr.Use(jwtauth.Authenticator)
		gr.Route("/users", func(r chi.Router) {
			r.Get("/", m.listUsers)
			r.Get("/{id}", m.userByID)
			r.Post("/", m.createUser)
			r.Put("/{id}", m.updateUser)
			r.Delete("/{id}", m.deleteUser)
		})
		gr.Route("/restaurants", func(r chi.Router) {
			r.Get("/", m.listRestaurants)
			r.Get("/{id}", m.restaurantByID)
			r.Post("/", m.createRestaurant)
			r.Put("/{id}", m.updateRestaurant)
			r.Delete("/{id}", m.deleteRestaurant)
		})
		gr.Route("/tasks", func(r chi.Router) {
			r.Get("/", m.listTasks)
			r.Get("/{id}", m.taskByID)
			r.Post("/", m.createTask)
			r.Put("/{id}", m.updateTask)
			r.Delete("/{id}", m.deleteTask)
		})
		gr.Route("/resources", func(r chi.Router) {
			r.Get("/", m.listResources)
			r.Get("/{id}", m.resourceByID)
			r.Post("/", m.createResource)
			r.Put("/{id}", m.updateResource)
			r.Delete("/{id}", m.deleteResource)
		})
		gr.Route("/feedback", func(r chi.Router) {
			r.Get("/", m.listFeedback)
			r.Post("/", m.submitFeedback)
		})
		gr.Route("/logs", func(r chi.Router) {
			r.Get("/", m.listLogs)
			r.Post("/", m.appendLog)
		})
	})
	return r
}

// caller resolves the authenticated principal or writes a 401
func (m *ManagementRessource) caller(w http.ResponseWriter, r *http.Request) *principal.Principal {
	p, err := principal.FromContext(r.Context())
	if err != nil {
		render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return nil
	}
	return p
}

// inScope checks whether a caller may touch data of the given restaurant
func inScope(p *principal.Principal, restaurantID int) bool {
	if p.Role == roles.SuperAdmin {
		return true
	}
	return p.RestaurantID != nil && *p.RestaurantID == restaurantID
}

func (m *ManagementRessource) requireManager(
	w http.ResponseWriter,
	r *http.Request,
	p *principal.Principal,
) bool {
	if !roles.CanManage(p.Role) {
		render.Render(w, r, createError("insufficient role", http.StatusForbidden))
		return false
	}
	return true
}
