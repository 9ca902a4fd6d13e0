package management

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/crewline/crewline/db"
	"github.com/crewline/crewline/manage"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

type createTaskRequest struct {
	Title        string     `json:"title"        validate:"required"`
	Description  *string    `json:"description"`
	AssignedTo   *int       `json:"assignedTo"`
	Priority     string     `json:"priority"`
	DueDate      *time.Time `json:"dueDate"`
	RestaurantID int        `json:"restaurantId" validate:"required"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	AssignedTo  *int       `json:"assignedTo"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
}

func (m *ManagementRessource) listTasks(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	if a := r.URL.Query().Get("assigneeId"); a != "" {
		assigneeID, err := strconv.Atoi(a)
		if err != nil {
			render.Render(w, r, createError("invalid assigneeId", http.StatusBadRequest))
			return
		}
		// staff may only pull their own task list
		if assigneeID != caller.UserID && !m.requireManager(w, r, caller) {
			return
		}
		tasks, err := m.taskService.ListByAssignee(r.Context(), assigneeID)
		if err != nil {
			m.log.Error("error listing tasks", zap.Error(err))
			render.Render(w, r, createError("internal error", http.StatusInternalServerError))
			return
		}
		render.Respond(w, r, tasks)
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
	tasks, err := m.taskService.ListByRestaurant(r.Context(), restaurantID)
	if err != nil {
		m.log.Error("error listing tasks", zap.Error(err))
		render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	render.Respond(w, r, tasks)
}

func (m *ManagementRessource) taskByID(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	id := idParam(r)
	if id < 0 {
		render.Render(w, r, createError("invalid id", http.StatusBadRequest))
		return
	}
	task, err := m.taskService.ByID(r.Context(), id)
	if err != nil {
		m.renderTaskError(w, r, err)
		return
	}
	if !inScope(caller, task.RestaurantID) {
		render.Render(w, r, createError("restaurant is out of scope", http.StatusForbidden))
		return
	}
	render.Respond(w, r, task)
}

func (m *ManagementRessource) createTask(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	if !m.requireManager(w, r, caller) {
		return
	}
	var req createTaskRequest
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
	task, err := m.taskService.Create(
		r.Context(),
		caller.UserID,
		req.RestaurantID,
		req.Title,
		req.Description,
		req.AssignedTo,
		req.Priority,
		req.DueDate,
	)
	if err != nil {
		m.renderTaskError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.Respond(w, r, task)
}

func (m *ManagementRessource) updateTask(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	id := idParam(r)
	if id < 0 {
		render.Render(w, r, createError("invalid id", http.StatusBadRequest))
		return
	}
	before, err := m.taskService.ByID(r.Context(), id)
	if err != nil {
		m.renderTaskError(w, r, err)
		return
	}
	if !inScope(caller, before.RestaurantID) {
		render.Render(w, r, createError("restaurant is out of scope", http.StatusForbidden))
		return
	}
	var req updateTaskRequest
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		m.log.Info("invalid payload data", zap.Error(err))
		render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	task, err := m.taskService.Update(r.Context(), caller.UserID, id, db.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		m.renderTaskError(w, r, err)
		return
	}
	render.Respond(w, r, task)
}

func (m *ManagementRessource) deleteTask(w http.ResponseWriter, r *http.Request) {
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
	err := m.taskService.Delete(r.Context(), id)
	if err != nil {
		m.renderTaskError(w, r, err)
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "task deleted",
	})
	if err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}

func (m *ManagementRessource) renderTaskError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, manage.ErrNotFound) {
		render.Render(w, r, createError("task not found", http.StatusNotFound))
		return
	}
	m.log.Error("task operation failed", zap.Error(err))
	render.Render(w, r, createError("internal error", http.StatusInternalServerError))
}
