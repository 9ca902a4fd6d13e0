package management

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type genericSuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (g *genericSuccessResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
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

// idParam reads the numeric {id} url parameter, a negative return means
// the parameter was malformed
func idParam(r *http.Request) int {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return -1
	}
	return id
}

// restaurantIDQuery reads the restaurantId query parameter
func restaurantIDQuery(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.URL.Query().Get("restaurantId"))
	if err != nil {
		return 0, false
	}
	return id, true
}
