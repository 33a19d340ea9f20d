// Package projection turns stored applications into response views.
package projection

import (
	"context"
	"errors"
	"strconv"
	"time"

	"workforce-backend/internal/domain/application"
	"workforce-backend/internal/domain/employee"
	"workforce-backend/internal/domain/project"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UnknownUser is shown when a stamped actor can no longer be resolved.
const UnknownUser = "Unknown User"

type UserActionView struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

type ApplicationView struct {
	ApplicationID string `json:"application_id"`
	EmployeeID    int    `json:"employee_id"`
	ProjectID     string `json:"project_id"`
	ProjectRole   string `json:"project_role"`
	CurrentStatus string `json:"current_status"`

	InitiatedBy              *UserActionView `json:"initiated_by"`
	SuggestedBy              *UserActionView `json:"suggested_by"`
	ApprovedByProjectManager *UserActionView `json:"approved_by_project_manager"`
	ApprovedByDepartmentHead *UserActionView `json:"approved_by_department_head"`
	RejectedBy               *UserActionView `json:"rejected_by"`

	ProjectManagerComments string `json:"pm_comments,omitempty"`
	ApprovalComments       string `json:"approval_comments,omitempty"`
	CompletionComments     string `json:"completion_comments,omitempty"`
	RejectionReason        string `json:"rejection_reason,omitempty"`

	EmployeeProjectStartDate *time.Time `json:"employee_project_start_date,omitempty"`
	EmployeeProjectEndDate   *time.Time `json:"employee_project_end_date,omitempty"`

	Timestamps application.Timestamps `json:"timestamps"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

type ProjectSummary struct {
	ProjectID       string         `json:"project_id"`
	Description     string         `json:"description"`
	TaskDescription string         `json:"task_description,omitempty"`
	ProjectStart    time.Time      `json:"project_start"`
	ProjectEnd      time.Time      `json:"project_end"`
	Status          project.Status `json:"status"`
}

// SuggestedProjectView pairs a suggestion with the project it points at.
type SuggestedProjectView struct {
	Application       ApplicationView `json:"application"`
	Project           *ProjectSummary `json:"project"`
	RequestedCapacity *int            `json:"requested_capacity"`
}

// Mapper resolves actor stamps against the employee store.
type Mapper struct {
	employees employee.Repository
	log       *zap.Logger
}

func NewMapper(employees employee.Repository, log *zap.Logger) *Mapper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mapper{employees: employees, log: log}
}

// View projects a single application.
func (m *Mapper) View(ctx context.Context, a application.Application) ApplicationView {
	return m.view(ctx, a, map[string]string{})
}

// Views projects a list, resolving each distinct actor once.
func (m *Mapper) Views(ctx context.Context, apps []application.Application) []ApplicationView {
	names := map[string]string{}
	out := make([]ApplicationView, 0, len(apps))
	for _, a := range apps {
		out = append(out, m.view(ctx, a, names))
	}
	return out
}

// SuggestedProject builds the employee-facing view of a suggestion. p may be nil.
func (m *Mapper) SuggestedProject(ctx context.Context, a application.Application, p *project.Project) SuggestedProjectView {
	v := SuggestedProjectView{Application: m.View(ctx, a)}
	if p == nil {
		return v
	}
	v.Project = Summary(*p)
	if n, ok := p.RequestedCapacity(a.ProjectRole); ok {
		v.RequestedCapacity = &n
	}
	return v
}

func Summary(p project.Project) *ProjectSummary {
	return &ProjectSummary{
		ProjectID:       p.ProjectID,
		Description:     p.Description,
		TaskDescription: p.TaskDescription,
		ProjectStart:    p.ProjectStart,
		ProjectEnd:      p.ProjectEnd,
		Status:          p.Status,
	}
}

func (m *Mapper) view(ctx context.Context, a application.Application, names map[string]string) ApplicationView {
	return ApplicationView{
		ApplicationID:            a.ApplicationID,
		EmployeeID:               a.EmployeeID,
		ProjectID:                a.ProjectID,
		ProjectRole:              a.ProjectRole,
		CurrentStatus:            string(a.CurrentStatus),
		InitiatedBy:              m.actor(ctx, a.InitiatedBy, names),
		SuggestedBy:              m.actor(ctx, a.SuggestedBy, names),
		ApprovedByProjectManager: m.actor(ctx, a.ApprovedByProjectManager, names),
		ApprovedByDepartmentHead: m.actor(ctx, a.ApprovedByDepartmentHead, names),
		RejectedBy:               m.actor(ctx, a.RejectedBy, names),
		ProjectManagerComments:   a.ProjectManagerComments,
		ApprovalComments:         a.ApprovalComments,
		CompletionComments:       a.CompletionComments,
		RejectionReason:          a.RejectionReason,
		EmployeeProjectStartDate: a.EmployeeProjectStartDate,
		EmployeeProjectEndDate:   a.EmployeeProjectEndDate,
		Timestamps:               a.Timestamps,
		CreatedAt:                a.CreatedAt,
		UpdatedAt:                a.UpdatedAt,
	}
}

func (m *Mapper) actor(ctx context.Context, u application.UserAction, names map[string]string) *UserActionView {
	if !u.IsSet() {
		return nil
	}
	name, ok := names[u.UserID]
	if !ok {
		name = m.displayName(ctx, u.UserID)
		names[u.UserID] = name
	}
	return &UserActionView{UserID: u.UserID, DisplayName: name, Role: string(u.Role)}
}

func (m *Mapper) displayName(ctx context.Context, userID string) string {
	id, err := strconv.Atoi(userID)
	if err != nil || m.employees == nil {
		return UnknownUser
	}
	e, err := m.employees.GetByEmployeeID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			m.log.Warn("resolve actor display name", zap.String("user_id", userID), zap.Error(err))
		}
		return UnknownUser
	}
	return e.DisplayName()
}
