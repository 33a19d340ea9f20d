package application

import "time"

// IDGenerator returns a fresh business id for an application on projectID.
type IDGenerator func(projectID string) string

// Clock returns the current time.
type Clock func() time.Time

type SuggestInput struct {
	EmployeeID    int    `json:"employee_id" validate:"required,gt=0"`
	ProjectID     string `json:"project_id" validate:"required,notblank"`
	ProjectRole   string `json:"project_role" validate:"required,notblank"`
	PlannerUserID string `json:"planner_user_id" validate:"required,numeric"`
}

type ApplyInput struct {
	EmployeeID  int    `json:"employee_id" validate:"required,gt=0"`
	ProjectID   string `json:"project_id" validate:"required,notblank"`
	ProjectRole string `json:"project_role" validate:"required,notblank"`
}
