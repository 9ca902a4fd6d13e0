package management

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crewline/crewline/db"
	"github.com/crewline/crewline/manage"
	"github.com/crewline/crewline/roles"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

type createUserRequest struct {
	Email        string `json:"email"    validate:"required,email"`
	Username     string `json:"username" validate:"required"`
	Password     string `json:"password" validate:"required"`
	Role         string `json:"role"     validate:"required"`
	RestaurantID *int   `json:"restaurantId"`
}

type updateUserRequest struct {
	Email        *string `json:"email"    validate:"omitempty,email"`
	Username     *string `json:"username"`
	Password     *string `json:"password"`
	Role         *string `json:"role"`
	Avatar       *string `json:"avatar"`
	RestaurantID *int    `json:"restaurantId"`
}

func (m *ManagementRessource) listUsers(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	if restaurantID, ok := restaurantIDQuery(r); ok {
		if !inScope(caller, restaurantID) {
			render.Render(w, r, createError("restaurant is out of scope", http.StatusForbidden))
			return
		}
		users, err := m.userService.ListByRestaurant(r.Context(), restaurantID)
		if err != nil {
			m.log.Error("error listing users", zap.Error(err))
			render.Render(w, r, createError("internal error", http.StatusInternalServerError))
			return
		}
		render.Respond(w, r, users)
		return
	}
	if caller.Role != roles.SuperAdmin {
		render.Render(w, r, createError("restaurantId is required", http.StatusBadRequest))
		return
	}
	users, err := m.userService.List(r.Context())
	if err != nil {
		m.log.Error("error listing users", zap.Error(err))
		render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	render.Respond(w, r, users)
}

func (m *ManagementRessource) userByID(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	id := idParam(r)
	if id < 0 {
		render.Render(w, r, createError("invalid id", http.StatusBadRequest))
		return
	}
	user, err := m.userService.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, manage.ErrNotFound) {
			render.Render(w, r, createError("user not found", http.StatusNotFound))
			return
		}
		m.log.Error("error loading user", zap.Error(err))
		render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	if caller.UserID != user.ID &&
		(user.RestaurantID == nil || !inScope(caller, *user.RestaurantID)) {
		render.Render(w, r, createError("restaurant is out of scope", http.StatusForbidden))
		return
	}
	render.Respond(w, r, user)
}

func (m *ManagementRessource) createUser(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	if !m.requireManager(w, r, caller) {
		return
	}
	var req createUserRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		m.log.Info("invalid payload data", zap.Error(err))
		render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if err := m.validate.Struct(&req); err != nil {
		render.Render(
			w,
			r,
			createError("email, username, password and role are required", http.StatusBadRequest),
		)
		return
	}
	// only the super admin hands out the privileged roles
	if caller.Role != roles.SuperAdmin && !roles.Invitable(req.Role) {
		render.Render(w, r, createError("insufficient role", http.StatusForbidden))
		return
	}
	if req.RestaurantID != nil && !inScope(caller, *req.RestaurantID) {
		render.Render(w, r, createError("restaurant is out of scope", http.StatusForbidden))
		return
	}
	user, err := m.userService.Create(
		r.Context(),
		caller.UserID,
		req.Email,
		req.Username,
		req.Password,
		req.Role,
		req.RestaurantID,
	)
	if err != nil {
		m.renderUserError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.Respond(w, r, user)
}

func (m *ManagementRessource) updateUser(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	id := idParam(r)
	if id < 0 {
		render.Render(w, r, createError("invalid id", http.StatusBadRequest))
		return
	}
	// users may edit their own profile, everyone else needs a manager role
	if caller.UserID != id && !roles.CanManage(caller.Role) {
		render.Render(w, r, createError("insufficient role", http.StatusForbidden))
		return
	}
	var req updateUserRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		m.log.Info("invalid payload data", zap.Error(err))
		render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if err := m.validate.Struct(&req); err != nil {
		render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	// role changes stay a manager's call and the privileged roles
	// stay with the super admin
	if req.Role != nil {
		if !roles.CanManage(caller.Role) ||
			(caller.Role != roles.SuperAdmin && !roles.Invitable(*req.Role)) {
			render.Render(w, r, createError("insufficient role", http.StatusForbidden))
			return
		}
	}
	user, err := m.userService.Update(r.Context(), id, db.UserUpdate{
		Email:        req.Email,
		Username:     req.Username,
		Password:     req.Password,
		Role:         req.Role,
		Avatar:       req.Avatar,
		RestaurantID: req.RestaurantID,
	})
	if err != nil {
		m.renderUserError(w, r, err)
		return
	}
	render.Respond(w, r, user)
}

func (m *ManagementRessource) deleteUser(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	if !m.requireManager(w, r, caller) {
		return
	}
	id := idParam(r)
	if id < 0 {
		render.Render(w, r, createError("invalid id", http.StatusBadRequest))
		return
	}
	err := m.userService.Delete(r.Context(), id)
	if err != nil {
		m.renderUserError(w, r, err)
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "user deleted",
	})
	if err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}

func (m *ManagementRessource) renderUserError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, manage.ErrNotFound):
		render.Render(w, r, createError("user not found", http.StatusNotFound))
	case errors.Is(err, manage.ErrEntityAlreadyExists):
		render.Render(w, r, createError("email is already registered", http.StatusConflict))
	case errors.Is(err, manage.ErrUnknownRole):
		render.Render(w, r, createError("unknown role", http.StatusBadRequest))
	case errors.Is(err, manage.ErrPasswordGuidelines):
		render.Render(w, r, createError("password is too short", http.StatusBadRequest))
	default:
		m.log.Error("user operation failed", zap.Error(err))
		render.Render(w, r, createError("internal error", http.StatusInternalServerError))
	}
}
