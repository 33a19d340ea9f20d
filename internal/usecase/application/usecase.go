package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	domain "workforce-backend/internal/domain/application"
	"workforce-backend/internal/domain/employee"
	"workforce-backend/internal/domain/uow"
	"workforce-backend/internal/usecase/projection"
	"workforce-backend/pkg/id"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	repos uow.Repos
	uow   uow.UnitOfWork
	views *projection.Mapper
	newID IDGenerator
	now   Clock
	log   *zap.Logger
}

// NewUsecase wires the creation and listing operations. A nil newID, now or
// log falls back to id.NewApplicationID, time.Now and a no-op logger.
func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, newID IDGenerator, now Clock, log *zap.Logger) *Usecase {
	if newID == nil {
		newID = id.NewApplicationID
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{
		repos: repos,
		uow:   tx,
		views: projection.NewMapper(repos.Employees, log),
		newID: newID,
		now:   now,
		log:   log,
	}
}

// Suggest creates a SUGGESTED application on behalf of a resource planner.
func (u *Usecase) Suggest(ctx context.Context, in SuggestInput) (*projection.ApplicationView, error) {
	plannerID, err := strconv.Atoi(strings.TrimSpace(in.PlannerUserID))
	if err != nil {
		return nil, fmt.Errorf("%w: planner_user_id must be numeric", domain.ErrValidation)
	}
	slot := domain.Slot{EmployeeID: in.EmployeeID, ProjectID: in.ProjectID, ProjectRole: in.ProjectRole}

	return u.create(ctx, domain.OpSuggest, slot, plannerID, func(actor employee.Employee, now time.Time) (domain.Application, error) {
		by := domain.ActionBy(actor, employee.RoleResourcePlanner)
		return domain.NewSuggestion(u.newID(strings.TrimSpace(slot.ProjectID)), slot, by, now)
	})
}

// ApplyToOpen creates an APPLIED application initiated by the employee.
func (u *Usecase) ApplyToOpen(ctx context.Context, in ApplyInput) (*projection.ApplicationView, error) {
	slot := domain.Slot{EmployeeID: in.EmployeeID, ProjectID: in.ProjectID, ProjectRole: in.ProjectRole}

	return u.create(ctx, domain.OpApplyToOpen, slot, in.EmployeeID, func(actor employee.Employee, now time.Time) (domain.Application, error) {
		by := domain.ActionBy(actor, employee.RoleEmployee)
		return domain.NewOpenApplication(u.newID(strings.TrimSpace(slot.ProjectID)), slot, by, now)
	})
}

func (u *Usecase) create(ctx context.Context, op domain.Operation, slot domain.Slot, actorID int,
	build func(actor employee.Employee, now time.Time) (domain.Application, error)) (*projection.ApplicationView, error) {
	if err := slot.Validate(); err != nil {
		return nil, err
	}
	if u.uow == nil {
		return nil, errors.New("application usecase: unit of work not configured")
	}

	var created domain.Application
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := r.Employees.GetByEmployeeID(ctx, actorID)
		if err != nil {
			return lookupErr(err, "employee %d", actorID)
		}
		if _, err := r.Employees.GetByEmployeeID(ctx, slot.EmployeeID); err != nil {
			return lookupErr(err, "employee %d", slot.EmployeeID)
		}
		if _, err := r.Projects.GetByProjectID(ctx, strings.TrimSpace(slot.ProjectID)); err != nil {
			return lookupErr(err, "project %s", slot.ProjectID)
		}

		// Block if the slot is already held by a live application.
		live, err := r.Applications.FindLive(ctx, slot)
		switch {
		case err == nil:
			return &domain.DuplicateError{ApplicationID: live.ApplicationID, Status: live.CurrentStatus}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		a, err := build(*actor, u.now())
		if err != nil {
			return err
		}
		if err := r.Applications.Create(ctx, &a); err != nil {
			// a concurrent request took the slot between FindLive and Create
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &domain.DuplicateError{}
			}
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, u.fail(op, slot.LiveKey(), err)
	}

	u.log.Info("application created",
		zap.String("op", string(op)),
		zap.String("application_id", created.ApplicationID),
		zap.String("status", string(created.CurrentStatus)),
		zap.Int("actor_id", actorID))
	v := u.views.View(ctx, created)
	return &v, nil
}

// ApplyToSuggested lets the suggested employee accept the suggestion.
func (u *Usecase) ApplyToSuggested(ctx context.Context, applicationID string, employeeID int) (*projection.ApplicationView, error) {
	if u.uow == nil {
		return nil, errors.New("application usecase: unit of work not configured")
	}

	var updated domain.Application
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *domain.Application) error {
		if a.EmployeeID != employeeID {
			return fmt.Errorf("%w: application %s belongs to employee %d", domain.ErrForbidden, a.ApplicationID, a.EmployeeID)
		}
		if err := a.Expect(domain.OpApplyToSuggested); err != nil {
			return err
		}
		actor, err := r.Employees.GetByEmployeeID(ctx, employeeID)
		if err != nil {
			return lookupErr(err, "employee %d", employeeID)
		}
		next, err := a.ApplyToSuggested(domain.ActionBy(*actor, employee.RoleEmployee), u.now())
		if err != nil {
			return err
		}
		if err := r.Applications.SaveTransition(ctx, &next, a.CurrentStatus); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, u.fail(domain.OpApplyToSuggested, applicationID, applicationErr(err, applicationID))
	}

	u.log.Info("application transitioned",
		zap.String("op", string(domain.OpApplyToSuggested)),
		zap.String("application_id", applicationID),
		zap.String("status", string(updated.CurrentStatus)),
		zap.Int("actor_id", employeeID))
	v := u.views.View(ctx, updated)
	return &v, nil
}

// lookupErr turns a missing record into ErrNotFound naming what was missing.
func lookupErr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, fmt.Sprintf(format, args...))
	}
	return err
}

// applicationErr maps a failed row-locked load of the application itself.
func applicationErr(err error, applicationID string) error {
	return lookupErr(err, "application %s", applicationID)
}

// fail logs unexpected errors; domain errors pass through untouched.
func (u *Usecase) fail(op domain.Operation, ref string, err error) error {
	if !domain.IsExpected(err) {
		u.log.Error("application operation failed",
			zap.String("op", string(op)), zap.String("ref", ref), zap.Error(err))
	}
	return err
}
