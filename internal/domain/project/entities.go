package project

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPlanned   Status = "PLANNED"
	StatusOpen      Status = "OPEN"
	StatusStaffing  Status = "STAFFING"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
)

// RoleRequirement is one open role on a project.
type RoleRequirement struct {
	RequiredRole         string   `json:"required_role"`
	RequiredCompetencies []string `json:"required_competencies,omitempty"`
	Capacity             int      `json:"capacity"`
	NumberOfEmployees    int      `json:"number_of_employees"`
}

// Table: projects
type Project struct {
	ID              uint64            `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ProjectID       string            `gorm:"column:project_id;size:64;not null;uniqueIndex:ux_projects_project_id" json:"project_id"`
	Description     string            `gorm:"column:description;type:text" json:"description"`
	TaskDescription string            `gorm:"column:task_description;type:text" json:"task_description"`
	ProjectStart    time.Time         `gorm:"column:project_start;type:date;not null" json:"project_start"`
	ProjectEnd      time.Time         `gorm:"column:project_end;type:date;not null" json:"project_end"`
	Roles           []RoleRequirement `gorm:"column:roles;type:text;serializer:json" json:"roles"`
	Status          Status            `gorm:"column:status;size:32;not null" json:"status"`
	IsPublished     bool              `gorm:"column:is_published;not null;default:false" json:"is_published"`
	CreatedBy       string            `gorm:"column:created_by;size:64" json:"created_by"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

// RequestedCapacity returns the head count wanted for role, matched case-insensitively.
func (p Project) RequestedCapacity(role string) (int, bool) {
	for _, r := range p.Roles {
		if strings.EqualFold(strings.TrimSpace(r.RequiredRole), strings.TrimSpace(role)) {
			return r.NumberOfEmployees, true
		}
	}
	return 0, false
}
