package manage

import (
	"net/http"
	"time"

	"github.com/crewline/crewline/db/tables"
)

// UserDTO is the outward user representation, the password hash never leaves
// the service layer
type UserDTO struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	Avatar       *string   `json:"avatar,omitempty"`
	RestaurantID *int      `json:"restaurantId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *UserDTO) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func userDTOfromDB(t *tables.UserTable) *UserDTO {
	return &UserDTO{
		ID:           t.ID,
		Email:        t.Email,
		Username:     t.Username,
		Role:         t.Role,
		Avatar:       t.Avatar,
		RestaurantID: t.RestaurantID,
		CreatedAt:    t.CreatedAt,
	}
}

type RestaurantDTO struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Description *string   `json:"description,omitempty"`
	OwnerID     int       `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (a *RestaurantDTO) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func restaurantDTOfromDB(t *tables.RestaurantTable) *RestaurantDTO {
	return &RestaurantDTO{
		ID:          t.ID,
		Name:        t.Name,
		Email:       t.Email,
		Phone:       t.Phone,
		Address:     t.Address,
		Description: t.Description,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
	}
}

type TaskDTO struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	AssignedTo   *int       `json:"assignedTo,omitempty"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	RestaurantID int        `json:"restaurantId"`
	CreatedBy    int        `json:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (t *TaskDTO) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func taskDTOfromDB(t *tables.TaskTable) *TaskDTO {
	return &TaskDTO{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		AssignedTo:   t.AssignedTo,
		Priority:     t.Priority,
		Status:       t.Status,
		DueDate:      t.DueDate,
		RestaurantID: t.RestaurantID,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
	}
}

type ResourceDTO struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	FileURL      *string   `json:"fileUrl,omitempty"`
	FileType     *string   `json:"fileType,omitempty"`
	FileSize     *int      `json:"fileSize,omitempty"`
	VisibleTo    []string  `json:"visibleTo"`
	RestaurantID int       `json:"restaurantId"`
	UploadedBy   int       `json:"uploadedBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (r *ResourceDTO) Render(w http.ResponseWriter, req *http.Request) error {
	return nil
}

func resourceDTOfromDB(t *tables.ResourceTable) *ResourceDTO {
	return &ResourceDTO{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		FileURL:      t.FileURL,
		FileType:     t.FileType,
		FileSize:     t.FileSize,
		VisibleTo:    t.VisibleTo,
		RestaurantID: t.RestaurantID,
		UploadedBy:   t.UploadedBy,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

type FeedbackDTO struct {
	ID           int       `json:"id"`
	Content      string    `json:"content"`
	Rating       *int      `json:"rating,omitempty"`
	UserID       int       `json:"userId"`
	RestaurantID int       `json:"restaurantId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (f *FeedbackDTO) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func feedbackDTOfromDB(t *tables.FeedbackTable) *FeedbackDTO {
	return &FeedbackDTO{
		ID:           t.ID,
		Content:      t.Content,
		Rating:       t.Rating,
		UserID:       t.UserID,
		RestaurantID: t.RestaurantID,
		CreatedAt:    t.CreatedAt,
	}
}

type ActivityLogDTO struct {
	ID           int                    `json:"id"`
	EventType    string                 `json:"eventType"`
	UserID       int                    `json:"userId"`
	ResourceID   *int                   `json:"resourceId,omitempty"`
	ResourceType *string                `json:"resourceType,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
	RestaurantID int                    `json:"restaurantId"`
	CreatedAt    time.Time              `json:"createdAt"`
}

func (a *ActivityLogDTO) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func activityLogDTOfromDB(t *tables.ActivityLogTable) *ActivityLogDTO {
	return &ActivityLogDTO{
		ID:           t.ID,
		EventType:    t.EventType,
		UserID:       t.UserID,
		ResourceID:   t.ResourceID,
		ResourceType: t.ResourceType,
		Details:      t.Details,
		RestaurantID: t.RestaurantID,
		CreatedAt:    t.CreatedAt,
	}
}
