package application

import (
	"strconv"
	"strings"
	"time"

	"workforce-backend/internal/domain/employee"
)

// UserAction stamps who performed a workflow step. The zero value means the
// step has not happened.
type UserAction struct {
	UserID      string        `gorm:"column:user_id;size:32" json:"user_id"`
	DisplayName string        `gorm:"column:display_name;size:255" json:"display_name"`
	Role        employee.Role `gorm:"column:role;size:32" json:"role"`
}

func (u UserAction) IsSet() bool { return u.UserID != "" }

// ActionBy stamps e acting in role.
func ActionBy(e employee.Employee, role employee.Role) UserAction {
	return UserAction{UserID: strconv.Itoa(e.EmployeeID), DisplayName: e.DisplayName(), Role: role}
}

type Timestamps struct {
	SuggestedAt        *time.Time `gorm:"column:suggested_at" json:"suggested_at,omitempty"`
	AppliedAt          *time.Time `gorm:"column:applied_at" json:"applied_at,omitempty"`
	DHRequestedAt      *time.Time `gorm:"column:dh_requested_at" json:"dh_requested_at,omitempty"`
	ApprovedAt         *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RejectedAt         *time.Time `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
	ProjectCompletedAt *time.Time `gorm:"column:project_completed_at" json:"project_completed_at,omitempty"`
}

// Table: applications
type Application struct {
	ID            uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ApplicationID string `gorm:"column:application_id;size:128;not null;uniqueIndex:ux_applications_application_id" json:"application_id"`
	EmployeeID    int    `gorm:"column:employee_id;not null;index:idx_applications_employee" json:"employee_id"`
	ProjectID     string `gorm:"column:project_id;size:64;not null;index:idx_applications_project" json:"project_id"`
	ProjectRole   string `gorm:"column:project_role;size:128;not null" json:"project_role"`
	CurrentStatus Status `gorm:"column:current_status;size:32;not null;index:idx_applications_status" json:"current_status"`

	// LiveKey is set while the application is live; the unique index keeps a
	// single live application per (employee, project, role).
	LiveKey *string `gorm:"column:live_key;size:255;uniqueIndex:ux_applications_live_key" json:"-"`

	InitiatedBy              UserAction `gorm:"embedded;embeddedPrefix:initiated_by_" json:"initiated_by"`
	SuggestedBy              UserAction `gorm:"embedded;embeddedPrefix:suggested_by_" json:"suggested_by"`
	ApprovedByProjectManager UserAction `gorm:"embedded;embeddedPrefix:approved_by_pm_" json:"approved_by_project_manager"`
	ApprovedByDepartmentHead UserAction `gorm:"embedded;embeddedPrefix:approved_by_dh_" json:"approved_by_department_head"`
	RejectedBy               UserAction `gorm:"embedded;embeddedPrefix:rejected_by_" json:"rejected_by"`

	ProjectManagerComments string `gorm:"column:pm_comments;type:text" json:"pm_comments,omitempty"`
	ApprovalComments       string `gorm:"column:approval_comments;type:text" json:"approval_comments,omitempty"`
	CompletionComments     string `gorm:"column:completion_comments;type:text" json:"completion_comments,omitempty"`
	RejectionReason        string `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`

	EmployeeProjectStartDate *time.Time `gorm:"column:employee_project_start_date;type:date" json:"employee_project_start_date,omitempty"`
	EmployeeProjectEndDate   *time.Time `gorm:"column:employee_project_end_date;type:date" json:"employee_project_end_date,omitempty"`

	Timestamps Timestamps `gorm:"embedded" json:"timestamps"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string { return "applications" }

// Slot identifies the role an application competes for.
type Slot struct {
	EmployeeID  int
	ProjectID   string
	ProjectRole string
}

func (s Slot) normalized() Slot {
	return Slot{EmployeeID: s.EmployeeID, ProjectID: strings.TrimSpace(s.ProjectID), ProjectRole: strings.TrimSpace(s.ProjectRole)}
}

func (s Slot) Validate() error {
	n := s.normalized()
	switch {
	case n.EmployeeID <= 0:
		return validationf("employee_id must be positive")
	case n.ProjectID == "":
		return validationf("project_id is required")
	case n.ProjectRole == "":
		return validationf("project_role is required")
	}
	return nil
}

// LiveKey is the uniqueness key held by live applications of the slot.
func (s Slot) LiveKey() string {
	n := s.normalized()
	return strconv.Itoa(n.EmployeeID) + "|" + n.ProjectID + "|" + n.ProjectRole
}

func (a Application) Slot() Slot {
	return Slot{EmployeeID: a.EmployeeID, ProjectID: a.ProjectID, ProjectRole: a.ProjectRole}
}

// IsLive mirrors Status.IsLive.
func (a Application) IsLive() bool { return a.CurrentStatus.IsLive() }
