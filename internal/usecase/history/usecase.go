// Package history answers where employees have worked and are working now.
package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	domain "workforce-backend/internal/domain/application"
	"workforce-backend/internal/domain/uow"
	"workforce-backend/internal/usecase/projection"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Clock func() time.Time

type Usecase struct {
	repos uow.Repos
	views *projection.Mapper
	now   Clock
}

func NewUsecase(repos uow.Repos, now Clock, log *zap.Logger) *Usecase {
	if now == nil {
		now = time.Now
	}
	return &Usecase{repos: repos, views: projection.NewMapper(repos.Employees, log), now: now}
}

var finished = []domain.Status{domain.StatusCompleted, domain.StatusProjectCompleted}

// EmployeeHistory lists assignments whose employee end date is already
// behind us, most recent first.
func (u *Usecase) EmployeeHistory(ctx context.Context, employeeID int) ([]projection.ApplicationView, error) {
	if _, err := u.repos.Employees.GetByEmployeeID(ctx, employeeID); err != nil {
		return nil, lookupErr(err, "employee %d", employeeID)
	}
	apps, err := u.repos.Applications.List(ctx, domain.Filter{EmployeeIDs: []int{employeeID}, Statuses: finished})
	if err != nil {
		return nil, err
	}

	today := u.today()
	past := apps[:0]
	for _, a := range apps {
		if a.EmployeeProjectEndDate != nil && a.EmployeeProjectEndDate.Before(today) {
			past = append(past, a)
		}
	}
	byEndDesc(past)
	return u.views.Views(ctx, past), nil
}

// ProjectHistory lists every employee ever assigned to the project, most
// recent end date first.
func (u *Usecase) ProjectHistory(ctx context.Context, projectID string) ([]projection.ApplicationView, error) {
	if _, err := u.repos.Projects.GetByProjectID(ctx, projectID); err != nil {
		return nil, lookupErr(err, "project %s", projectID)
	}
	apps, err := u.repos.Applications.List(ctx, domain.Filter{ProjectID: projectID, Statuses: finished})
	if err != nil {
		return nil, err
	}
	byEndDesc(apps)
	return u.views.Views(ctx, apps), nil
}

// CurrentActive returns the approved assignment the employee is working on
// today, or nil.
func (u *Usecase) CurrentActive(ctx context.Context, employeeID int) (*projection.ApplicationView, error) {
	e, err := u.repos.Employees.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, lookupErr(err, "employee %d", employeeID)
	}
	if e.AssignedProjectID == nil {
		return nil, nil
	}
	apps, err := u.repos.Applications.List(ctx, domain.Filter{
		EmployeeIDs: []int{employeeID},
		ProjectID:   *e.AssignedProjectID,
		Statuses:    []domain.Status{domain.StatusCompleted},
	})
	if err != nil {
		return nil, err
	}

	today := u.today()
	for _, a := range apps {
		if a.EmployeeProjectEndDate == nil || !a.EmployeeProjectEndDate.Before(today) {
			v := u.views.View(ctx, a)
			return &v, nil
		}
	}
	return nil, nil
}

func (u *Usecase) today() time.Time {
	n := u.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// byEndDesc orders by employee end date, newest first; open-ended rows lead.
func byEndDesc(apps []domain.Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		ei, ej := apps[i].EmployeeProjectEndDate, apps[j].EmployeeProjectEndDate
		switch {
		case ei == nil:
			return ej != nil
		case ej == nil:
			return false
		}
		return ei.After(*ej)
	})
}

func lookupErr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, fmt.Sprintf(format, args...))
	}
	return err
}
