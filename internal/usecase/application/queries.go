package application

import (
	"context"
	"errors"

	domain "workforce-backend/internal/domain/application"
	"workforce-backend/internal/domain/project"
	"workforce-backend/internal/usecase/projection"

	"gorm.io/gorm"
)

// ListAll returns every application in creation order.
func (u *Usecase) ListAll(ctx context.Context) ([]projection.ApplicationView, error) {
	apps, err := u.repos.Applications.List(ctx, domain.Filter{})
	if err != nil {
		return nil, err
	}
	return u.views.Views(ctx, apps), nil
}

// ListByStatus backs the project manager's suggested and applied queues.
func (u *Usecase) ListByStatus(ctx context.Context, status domain.Status) ([]projection.ApplicationView, error) {
	apps, err := u.repos.Applications.List(ctx, domain.Filter{Statuses: []domain.Status{status}})
	if err != nil {
		return nil, err
	}
	return u.views.Views(ctx, apps), nil
}

// GroupedByProject buckets applications by project id. An empty status
// means no filter; an unknown status yields an empty result.
func (u *Usecase) GroupedByProject(ctx context.Context, status string) (map[string][]projection.ApplicationView, error) {
	out := map[string][]projection.ApplicationView{}

	var f domain.Filter
	if status != "" {
		st, err := domain.ParseStatus(status)
		if err != nil {
			return out, nil
		}
		f.Statuses = []domain.Status{st}
	}

	apps, err := u.repos.Applications.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for _, v := range u.views.Views(ctx, apps) {
		out[v.ProjectID] = append(out[v.ProjectID], v)
	}
	return out, nil
}

// SuggestedProjectsForEmployee lists the employee's open suggestions with
// the project each one points at.
func (u *Usecase) SuggestedProjectsForEmployee(ctx context.Context, employeeID int) ([]projection.SuggestedProjectView, error) {
	if _, err := u.repos.Employees.GetByEmployeeID(ctx, employeeID); err != nil {
		return nil, lookupErr(err, "employee %d", employeeID)
	}
	apps, err := u.repos.Applications.List(ctx, domain.Filter{
		EmployeeIDs: []int{employeeID},
		Statuses:    []domain.Status{domain.StatusSuggested},
	})
	if err != nil {
		return nil, err
	}

	projects := map[string]*project.Project{}
	out := make([]projection.SuggestedProjectView, 0, len(apps))
	for _, a := range apps {
		p, seen := projects[a.ProjectID]
		if !seen {
			p, err = u.repos.Projects.GetByProjectID(ctx, a.ProjectID)
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				p = nil
			case err != nil:
				return nil, err
			}
			projects[a.ProjectID] = p
		}
		out = append(out, u.views.SuggestedProject(ctx, a, p))
	}
	return out, nil
}
