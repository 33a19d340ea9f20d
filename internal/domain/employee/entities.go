package employee

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleEmployee        Role = "EMPLOYEE"
	RoleResourcePlanner Role = "RESOURCE_PLANNER"
	RoleProjectManager  Role = "PROJECT_MANAGER"
	RoleDepartmentHead  Role = "DEPARTMENT_HEAD"
	RoleSystemAdmin     Role = "SYSTEM_ADMIN"
)

// ParseRole accepts the upper-case wire names only.
func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(s))
	switch r {
	case RoleEmployee, RoleResourcePlanner, RoleProjectManager, RoleDepartmentHead, RoleSystemAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type Availability string

const (
	AvailabilityAvailable    Availability = "AVAILABLE"
	AvailabilityNotAvailable Availability = "NOT_AVAILABLE"
)

// Table: employees
type Employee struct {
	ID                 uint64       `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EmployeeID         int          `gorm:"column:employee_id;not null;uniqueIndex:ux_employees_employee_id" json:"employee_id"`
	FirstName          string       `gorm:"column:first_name;size:100" json:"first_name"`
	LastName           string       `gorm:"column:last_name;size:100" json:"last_name"`
	Username           string       `gorm:"column:username;size:100" json:"username"`
	Email              string       `gorm:"column:email;size:255" json:"email"`
	Department         string       `gorm:"column:department;size:100;index:idx_employees_department" json:"department"`
	Role               Role         `gorm:"column:role;size:32;not null" json:"role"`
	AvailabilityStatus Availability `gorm:"column:availability_status;size:32;not null;default:'AVAILABLE'" json:"availability_status"`
	AssignedProjectID  *string      `gorm:"column:assigned_project_id;size:64" json:"assigned_project_id,omitempty"`
	Supervisor         string       `gorm:"column:supervisor;size:64" json:"supervisor,omitempty"`
	CreatedAt          time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Employee) TableName() string { return "employees" }

// DisplayName prefers the full name and falls back to the username.
func (e Employee) DisplayName() string {
	full := strings.TrimSpace(e.FirstName + " " + e.LastName)
	if full != "" {
		return full
	}
	return e.Username
}

func (e Employee) SameDepartment(other Employee) bool {
	return e.Department != "" && e.Department == other.Department
}

// AssignTo returns a copy of e staffed on projectID.
func (e Employee) AssignTo(projectID, supervisor string) Employee {
	next := e
	pid := projectID
	next.AssignedProjectID = &pid
	next.AvailabilityStatus = AvailabilityNotAvailable
	next.Supervisor = supervisor
	return next
}

// Release returns a copy of e freed from its current project.
func (e Employee) Release() Employee {
	next := e
	next.AssignedProjectID = nil
	next.AvailabilityStatus = AvailabilityAvailable
	return next
}

func (e Employee) IsAssignedTo(projectID string) bool {
	return e.AssignedProjectID != nil && *e.AssignedProjectID == projectID
}
