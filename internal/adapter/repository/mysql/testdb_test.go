package mysql

import (
	"context"
	"testing"
	"time"

	appDomain "workforce-backend/internal/domain/application"
	empDomain "workforce-backend/internal/domain/employee"
	projDomain "workforce-backend/internal/domain/project"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with the full schema. A single
// connection keeps every statement on the same in-memory database and
// serialises transactions the way row locks do on MySQL.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&appDomain.Application{}, &empDomain.Employee{}, &projDomain.Project{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, e empDomain.Employee) *empDomain.Employee {
	t.Helper()
	if e.AvailabilityStatus == "" {
		e.AvailabilityStatus = empDomain.AvailabilityAvailable
	}
	if err := NewEmployeeRepository(db).Create(context.Background(), &e); err != nil {
		t.Fatalf("seed employee %d: %v", e.EmployeeID, err)
	}
	return &e
}

func seedProject(t *testing.T, db *gorm.DB, projectID string, start, end time.Time) *projDomain.Project {
	t.Helper()
	p := &projDomain.Project{
		ProjectID:    projectID,
		Description:  "project " + projectID,
		ProjectStart: start,
		ProjectEnd:   end,
		Status:       projDomain.StatusStaffing,
		IsPublished:  true,
		CreatedBy:    "9",
		Roles: []projDomain.RoleRequirement{
			{RequiredRole: "Backend Developer", Capacity: 100, NumberOfEmployees: 2},
		},
	}
	if err := NewProjectRepository(db).Create(context.Background(), p); err != nil {
		t.Fatalf("seed project %s: %v", projectID, err)
	}
	return p
}

func makeApplication(t *testing.T, appID string, slot appDomain.Slot, status appDomain.Status) *appDomain.Application {
	t.Helper()
	a, err := appDomain.NewSuggestion(appID, slot, appDomain.UserAction{UserID: "7", DisplayName: "Pat Planner", Role: empDomain.RoleResourcePlanner}, time.Now())
	if err != nil {
		t.Fatalf("new suggestion: %v", err)
	}
	a.CurrentStatus = status
	if !status.IsLive() {
		a.LiveKey = nil
	}
	return &a
}
