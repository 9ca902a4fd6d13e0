package management

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crewline/crewline/db"
	"github.com/crewline/crewline/db/tables"
	"github.com/crewline/crewline/manage"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

type createResourceRequest struct {
	Title        string   `json:"title"        validate:"required"`
	Description  *string  `json:"description"`
	FileURL      *string  `json:"fileUrl"`
	FileType     *string  `json:"fileType"`
	FileSize     *int     `json:"fileSize"`
	VisibleTo    []string `json:"visibleTo"`
	RestaurantID int      `json:"restaurantId" validate:"required"`
}

type updateResourceRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	FileURL     *string   `json:"fileUrl"`
	FileType    *string   `json:"fileType"`
	FileSize    *int      `json:"fileSize"`
	VisibleTo   *[]string `json:"visibleTo"`
}

func (m *ManagementRessource) listResources(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	restaurantID, ok := restaurantIDQuery(r)
	if !ok {
		render.Render(w, r, createError("restaurantId is required", http.StatusBadRequest))
		return
	}
	if !inScope(caller, restaurantID) {
		render.Render(w, r, createError("restaurant is out of scope", http.StatusForbidden))
		return
	}
	resources, err := m.resourceService.ListByRestaurant(r.Context(), restaurantID)
	if err != nil {
		m.log.Error("error listing resources", zap.Error(err))
		render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	render.Respond(w, r, resources)
}

func (m *ManagementRessource) resourceByID(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	id := idParam(r)
	if id < 0 {
		render.Render(w, r, createError("invalid id", http.StatusBadRequest))
		return
	}
	resource, err := m.resourceService.ByID(r.Context(), id)
	if err != nil {
		m.renderResourceError(w, r, err)
		return
	}
	if !inScope(caller, resource.RestaurantID) {
		render.Render(w, r, createError("restaurant is out of scope", http.StatusForbidden))
		return
	}
	render.Respond(w, r, resource)
}

func (m *ManagementRessource) createResource(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	if !m.requireManager(w, r, caller) {
		return
	}
	var req createResourceRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		m.log.Info("invalid payload data", zap.Error(err))
		render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if err := m.validate.Struct(&req); err != nil {
		render.Render(w, r, createError("title and restaurantId are required", http.StatusBadRequest))
		return
	}
	if !inScope(caller, req.RestaurantID) {
		render.Render(w, r, createError("restaurant is out of scope", http.StatusForbidden))
		return
	}
	resource, err := m.resourceService.Create(
		r.Context(),
		caller.UserID,
		req.RestaurantID,
		req.Title,
		req.Description,
		req.FileURL,
		req.FileType,
		req.FileSize,
		req.VisibleTo,
	)
	if err != nil {
		m.renderResourceError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.Respond(w, r, resource)
}

func (m *ManagementRessource) updateResource(w http.ResponseWriter, r *http.Request) {
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
	before, err := m.resourceService.ByID(r.Context(), id)
	if err != nil {
		m.renderResourceError(w, r, err)
		return
	}
	if !inScope(caller, before.RestaurantID) {
		render.Render(w, r, createError("restaurant is out of scope", http.StatusForbidden))
		return
	}
	var req updateResourceRequest
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		m.log.Info("invalid payload data", zap.Error(err))
		render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	update := db.ResourceUpdate{
		Title:       req.Title,
		Description: req.Description,
		FileURL:     req.FileURL,
		FileType:    req.FileType,
		FileSize:    req.FileSize,
	}
	if req.VisibleTo != nil {
		visibleTo := tables.StringSlice(*req.VisibleTo)
		update.VisibleTo = &visibleTo
	}
	resource, err := m.resourceService.Update(r.Context(), id, update)
	if err != nil {
		m.renderResourceError(w, r, err)
		return
	}
	render.Respond(w, r, resource)
}

func (m *ManagementRessource) deleteResource(w http.ResponseWriter, r *http.Request) {
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
	err := m.resourceService.Delete(r.Context(), id)
	if err != nil {
		m.renderResourceError(w, r, err)
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "resource deleted",
	})
	if err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}

func (m *ManagementRessource) renderResourceError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
) {
	if errors.Is(err, manage.ErrNotFound) {
		render.Render(w, r, createError("resource not found", http.StatusNotFound))
		return
	}
	m.log.Error("resource operation failed", zap.Error(err))
	render.Render(w, r, createError("internal error", http.StatusInternalServerError))
}
