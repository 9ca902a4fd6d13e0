package management

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"go.uber.org/zap"
)

type appendLogRequest struct {
	EventType    string                 `json:"eventType"    validate:"required"`
	RestaurantID int                    `json:"restaurantId" validate:"required"`
	ResourceID   *int                   `json:"resourceId"`
	ResourceType *string                `json:"resourceType"`
	Details      map[string]interface{} `json:"details"`
}

func (m *ManagementRessource) appendLog(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	var req appendLogRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		m.log.Info("invalid payload data", zap.Error(err))
		render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if err := m.validate.Struct(&req); err != nil {
		render.Render(w, r, createError("eventType and restaurantId are required", http.StatusBadRequest))
		return
	}
	if !inScope(caller, req.RestaurantID) {
		render.Render(w, r, createError("restaurant is out of scope", http.StatusForbidden))
		return
	}
	entry, err := m.logService.Append(
		r.Context(),
		req.EventType,
		caller.UserID,
		req.RestaurantID,
		req.ResourceID,
		req.ResourceType,
		req.Details,
	)
	if err != nil {
		m.log.Error("error appending to activity log", zap.Error(err))
		render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	render.Status(r, http.StatusCreated)
	render.Respond(w, r, entry)
}

func (m *ManagementRessource) listLogs(w http.ResponseWriter, r *http.Request) {
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
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 0 {
			render.Render(w, r, createError("invalid limit", http.StatusBadRequest))
			return
		}
		limit = parsed
	}
	logs, err := m.logService.ListByRestaurant(r.Context(), restaurantID, limit)
	if err != nil {
		m.log.Error("error listing activity log", zap.Error(err))
		render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	render.Respond(w, r, logs)
}
