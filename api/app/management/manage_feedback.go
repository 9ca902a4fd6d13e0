package management

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"
)

type submitFeedbackRequest struct {
	Content      string `json:"content"      validate:"required"`
	Rating       *int   `json:"rating"       validate:"omitempty,min=1,max=5"`
	RestaurantID int    `json:"restaurantId" validate:"required"`
}

func (m *ManagementRessource) listFeedback(w http.ResponseWriter, r *http.Request) {
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
	feedback, err := m.feedbackService.ListByRestaurant(r.Context(), restaurantID)
	if err != nil {
		m.log.Error("error listing feedback", zap.Error(err))
		render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	render.Respond(w, r, feedback)
}

func (m *ManagementRessource) submitFeedback(w http.ResponseWriter, r *http.Request) {
	caller := m.caller(w, r)
	if caller == nil {
		return
	}
	var req submitFeedbackRequest
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
			createError("content and restaurantId are required", http.StatusBadRequest),
		)
		return
	}
	if !inScope(caller, req.RestaurantID) {
		render.Render(w, r, createError("restaurant is out of scope", http.StatusForbidden))
		return
	}
	feedback, err := m.feedbackService.Submit(
		r.Context(),
		caller.UserID,
		req.RestaurantID,
		req.Content,
		req.Rating,
	)
	if err != nil {
		m.log.Error("feedback operation failed", zap.Error(err))
		render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	render.Status(r, http.StatusCreated)
	render.Respond(w, r, feedback)
}
