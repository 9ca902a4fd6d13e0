package management

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/crewline/crewline/db"
	"github.com/crewline/crewline/manage"
	"github.com/crewline/crewline/roles"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

type createRestaurantRequest struct {
	Name        string  `json:"name" validate:"required"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}

type updateRestaurantRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}

func (m *ManagementRessource) listRestaurants(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	ownerID := caller.UserID
	if o := r.URL.Query().Get("ownerId"); o != "" {
		parsed, err := strconv.Atoi(o)
		if err != nil {
			render.Render(w, r, createError("invalid ownerId", http.StatusBadRequest))
			return
		}
		ownerID = parsed
	}
	if ownerID != caller.UserID && caller.Role != roles.SuperAdmin {
		render.Render(w, r, createError("owner is out of scope", http.StatusForbidden))
		return
	}
	restaurants, err := m.restaurantService.ListByOwner(r.Context(), ownerID)
	if err != nil {
		m.log.Error("error listing restaurants", zap.Error(err))
		render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	render.Respond(w, r, restaurants)
}

func (m *ManagementRessource) restaurantByID(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	id := idParam(r)
	if id < 0 {
		render.Render(w, r, createError("invalid id", http.StatusBadRequest))
		return
	}
	if !inScope(caller, id) && caller.Role != roles.Owner {
		render.Render(w, r, createError("restaurant is out of scope", http.StatusForbidden))
		return
	}
	restaurant, err := m.restaurantService.ByID(r.Context(), id)
	if err != nil {
		m.renderRestaurantError(w, r, err)
		return
	}
	render.Respond(w, r, restaurant)
}

func (m *ManagementRessource) createRestaurant(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	// only owners and the super admin open new restaurants
	if caller.Role != roles.Owner && caller.Role != roles.SuperAdmin {
		render.Render(w, r, createError("insufficient role", http.StatusForbidden))
		return
	}
	var req createRestaurantRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		m.log.Info("invalid payload data", zap.Error(err))
		render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if err := m.validate.Struct(&req); err != nil {
		render.Render(w, r, createError("name is required", http.StatusBadRequest))
		return
	}
	restaurant, err := m.restaurantService.Create(
		r.Context(),
		caller.UserID,
		req.Name,
		req.Email,
		req.Phone,
		req.Address,
		req.Description,
	)
	if err != nil {
		m.renderRestaurantError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.Respond(w, r, restaurant)
}

func (m *ManagementRessource) updateRestaurant(w http.ResponseWriter, r *http.Request) {
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
	if !inScope(caller, id) {
		render.Render(w, r, createError("restaurant is out of scope", http.StatusForbidden))
		return
	}
	var req updateRestaurantRequest
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
	restaurant, err := m.restaurantService.Update(r.Context(), id, db.RestaurantUpdate{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Description: req.Description,
	})
	if err != nil {
		m.renderRestaurantError(w, r, err)
		return
	}
	render.Respond(w, r, restaurant)
}

func (m *ManagementRessource) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	if caller.Role != roles.SuperAdmin && caller.Role != roles.Owner {
		render.Render(w, r, createError("insufficient role", http.StatusForbidden))
		return
	}
	id := idParam(r)
	if id < 0 {
		render.Render(w, r, createError("invalid id", http.StatusBadRequest))
		return
	}
	err := m.restaurantService.Delete(r.Context(), id)
	if err != nil {
		m.renderRestaurantError(w, r, err)
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "restaurant deleted",
	})
	if err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}

func (m *ManagementRessource) renderRestaurantError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
) {
	if errors.Is(err, manage.ErrNotFound) {
		render.Render(w, r, createError("restaurant not found", http.StatusNotFound))
		return
	}
	m.log.Error("restaurant operation failed", zap.Error(err))
	render.Render(w, r, createError("internal error", http.StatusInternalServerError))
}
