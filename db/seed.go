package db

import (
	"context"
	"fmt"
	"time"

	"github.com/crewline/crewline/db/tables"
	"github.com/crewline/crewline/roles"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SeedDemoData populates an empty database with a super admin, a sample
// restaurant and a handful of tasks and resources. It is a no-op once
// any user exists.
func (d *DataStore) SeedDemoData(ctx context.Context) error {
	seeded, err := d.HasAnyUser(ctx)
	if err != nil {
		return err
	}
	if seeded {
		d.log.Debug("Users present, skipping demo seed")
		return nil
	}
	d.log.Info("Seeding demo data")

	adminID, err := d.seedUser(ctx, "admin@dishwasher.guide", "Super Admin", "adminpass", roles.SuperAdmin, nil)
	if err != nil {
		return err
	}

	restaurantID, err := d.InsertRestaurant(ctx, &tables.RestaurantTable{
		Name:        "Pasta Paradise",
		Email:       strPtr("info@pastaparadise.com"),
		Phone:       strPtr("(555) 123-4567"),
		Address:     strPtr("123 Main St, Anytown, CA 12345"),
		Description: strPtr("Family-owned Italian restaurant specializing in authentic pasta dishes made from scratch daily."),
		OwnerID:     adminID,
	})
	if err != nil {
		return err
	}

	managerID, err := d.seedUser(
		ctx,
		"manager@pastaparadise.com",
		"John Smith",
		"password",
		roles.GeneralManager,
		&restaurantID,
	)
	if err != nil {
		return err
	}

	tasks := []*tables.TaskTable{
		{
			Title:        "Inventory check - Dry goods",
			Description:  strPtr("Perform a complete inventory check of all dry goods and update the stock list."),
			AssignedTo:   &managerID,
			Priority:     "medium",
			Status:       "pending",
			DueDate:      timePtr(time.Now().UTC().Add(5 * time.Hour)),
			RestaurantID: restaurantID,
			CreatedBy:    adminID,
		},
		{
			Title:        "Staff meeting - New menu items",
			Description:  strPtr("Conduct a staff meeting to introduce the new seasonal menu items and discuss serving suggestions."),
			AssignedTo:   &managerID,
			Priority:     "high",
			Status:       "pending",
			DueDate:      timePtr(time.Now().UTC().Add(6 * time.Hour)),
			RestaurantID: restaurantID,
			CreatedBy:    adminID,
		},
		{
			Title:        "Equipment maintenance - Dishwasher",
			Description:  strPtr("Perform routine maintenance on the main kitchen dishwasher."),
			AssignedTo:   &managerID,
			Priority:     "medium",
			Status:       "completed",
			DueDate:      timePtr(time.Now().UTC().Add(-1 * time.Hour)),
			RestaurantID: restaurantID,
			CreatedBy:    adminID,
		},
		{
			Title:        "Clean and sanitize prep area",
			Description:  strPtr("Thoroughly clean and sanitize the food preparation area according to health standards."),
			AssignedTo:   &managerID,
			Priority:     "low",
			Status:       "pending",
			DueDate:      timePtr(time.Now().UTC().Add(8 * time.Hour)),
			RestaurantID: restaurantID,
			CreatedBy:    adminID,
		},
	}
	for _, t := range tasks {
		if _, err := d.InsertTask(ctx, t); err != nil {
			return fmt.Errorf("could not seed task %q: %w", t.Title, err)
		}
	}

	resources := []*tables.ResourceTable{
		{
			Title:        "Employee Handbook",
			Description:  strPtr("Comprehensive guide for all employees covering policies and procedures."),
			FileURL:      strPtr("/resources/employee_handbook.pdf"),
			FileType:     strPtr("pdf"),
			FileSize:     intPtr(2457600),
			VisibleTo:    tables.StringSlice{"all"},
			RestaurantID: restaurantID,
			UploadedBy:   adminID,
		},
		{
			Title:        "Kitchen Training Guide",
			Description:  strPtr("Training materials for kitchen staff covering food safety and preparation techniques."),
			FileURL:      strPtr("/resources/kitchen_training.docx"),
			FileType:     strPtr("docx"),
			FileSize:     intPtr(1843200),
			VisibleTo:    tables.StringSlice{"kitchen"},
			RestaurantID: restaurantID,
			UploadedBy:   adminID,
		},
	}
	for _, r := range resources {
		if _, err := d.InsertResource(ctx, r); err != nil {
			return fmt.Errorf("could not seed resource %q: %w", r.Title, err)
		}
	}

	d.log.Info("Demo data seeded",
		zap.Int("restaurant_id", restaurantID),
		zap.Int("admin_id", adminID))
	return nil
}

func (d *DataStore) seedUser(
	ctx context.Context,
	email string,
	username string,
	password string,
	role string,
	restaurantID *int,
) (int, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	return d.InsertUser(ctx, email, username, string(hashed), role, restaurantID)
}

func strPtr(s string) *string        { return &s }
func intPtr(i int) *int              { return &i }
func timePtr(t time.Time) *time.Time { return &t }
