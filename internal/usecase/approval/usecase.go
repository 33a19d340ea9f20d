package approval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "workforce-backend/internal/domain/application"
	"workforce-backend/internal/domain/employee"
	"workforce-backend/internal/domain/uow"
	"workforce-backend/internal/usecase/projection"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	repos uow.Repos
	uow   uow.UnitOfWork
	views *projection.Mapper
	now   Clock
	log   *zap.Logger
}

// NewUsecase: pass the non-tx repos for reads and a UoW for transitions.
func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, now Clock, log *zap.Logger) *Usecase {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repos: repos, uow: tx, views: projection.NewMapper(repos.Employees, log), now: now, log: log}
}

// RequestDepartmentHeadApproval is the project manager's endorsement.
func (u *Usecase) RequestDepartmentHeadApproval(ctx context.Context, in ActionInput) (*projection.ApplicationView, error) {
	return u.transition(ctx, domain.OpRequestDHApproval, in.ApplicationID, in.ActorID,
		func(r uow.Repos, a *domain.Application) (domain.Changeset, error) {
			if err := a.Expect(domain.OpRequestDHApproval); err != nil {
				return domain.Changeset{}, err
			}
			manager, err := getEmployee(ctx, r, in.ActorID)
			if err != nil {
				return domain.Changeset{}, err
			}
			next, err := a.RequestDepartmentHeadApproval(domain.ActionBy(*manager, employee.RoleProjectManager), in.Comments, u.now())
			if err != nil {
				return domain.Changeset{}, err
			}
			return single(next, a.CurrentStatus), nil
		})
}

// Approve is the department head's final approval. It assigns the employee
// and rejects every other pending application of theirs in the same tx.
func (u *Usecase) Approve(ctx context.Context, in ActionInput) (*projection.ApplicationView, error) {
	return u.transition(ctx, domain.OpApprove, in.ApplicationID, in.ActorID,
		func(r uow.Repos, a *domain.Application) (domain.Changeset, error) {
			if err := a.Expect(domain.OpApprove); err != nil {
				return domain.Changeset{}, err
			}
			subject, approver, err := authorizeDepartmentHead(ctx, r, a, in.ActorID)
			if err != nil {
				return domain.Changeset{}, err
			}
			proj, err := r.Projects.GetByProjectID(ctx, a.ProjectID)
			if err != nil {
				return domain.Changeset{}, lookupErr(err, "project %s", a.ProjectID)
			}
			others, err := r.Applications.List(ctx, domain.Filter{
				EmployeeIDs: []int{a.EmployeeID},
				Statuses:    []domain.Status{domain.StatusSuggested, domain.StatusApplied, domain.StatusRequestDHApproval},
			})
			if err != nil {
				return domain.Changeset{}, err
			}
			by := domain.ActionBy(*approver, employee.RoleDepartmentHead)
			return domain.PlanApproval(*a, others, *subject, *proj, by, in.Comments, u.now())
		})
}

// Reject is the department head's rejection. The reason is checked before
// anything is loaded.
func (u *Usecase) Reject(ctx context.Context, in RejectInput) (*projection.ApplicationView, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
	}
	return u.transition(ctx, domain.OpRejectByDH, in.ApplicationID, in.ActorID,
		func(r uow.Repos, a *domain.Application) (domain.Changeset, error) {
			if err := a.Expect(domain.OpRejectByDH); err != nil {
				return domain.Changeset{}, err
			}
			_, approver, err := authorizeDepartmentHead(ctx, r, a, in.ActorID)
			if err != nil {
				return domain.Changeset{}, err
			}
			next, err := a.RejectByDepartmentHead(domain.ActionBy(*approver, employee.RoleDepartmentHead), in.Reason, u.now())
			if err != nil {
				return domain.Changeset{}, err
			}
			return single(next, a.CurrentStatus), nil
		})
}

// RejectByProjectManager closes a suggestion or application before it
// reaches the department head.
func (u *Usecase) RejectByProjectManager(ctx context.Context, in RejectInput) (*projection.ApplicationView, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
	}
	return u.transition(ctx, domain.OpRejectByPM, in.ApplicationID, in.ActorID,
		func(r uow.Repos, a *domain.Application) (domain.Changeset, error) {
			if err := a.Expect(domain.OpRejectByPM); err != nil {
				return domain.Changeset{}, err
			}
			manager, err := getEmployee(ctx, r, in.ActorID)
			if err != nil {
				return domain.Changeset{}, err
			}
			next, err := a.RejectByProjectManager(domain.ActionBy(*manager, employee.RoleProjectManager), in.Reason, u.now())
			if err != nil {
				return domain.Changeset{}, err
			}
			return single(next, a.CurrentStatus), nil
		})
}

// MarkProjectCompleted ends the assignment and frees the employee.
func (u *Usecase) MarkProjectCompleted(ctx context.Context, applicationID, comments string) (*projection.ApplicationView, error) {
	return u.transition(ctx, domain.OpMarkProjectCompleted, applicationID, 0,
		func(r uow.Repos, a *domain.Application) (domain.Changeset, error) {
			if err := a.Expect(domain.OpMarkProjectCompleted); err != nil {
				return domain.Changeset{}, err
			}
			subject, err := getEmployee(ctx, r, a.EmployeeID)
			if err != nil {
				return domain.Changeset{}, err
			}
			return domain.PlanCompletion(*a, *subject, comments, u.now())
		})
}

type planFn func(r uow.Repos, a *domain.Application) (domain.Changeset, error)

// transition locks the application, plans the change and writes it in one tx.
func (u *Usecase) transition(ctx context.Context, op domain.Operation, applicationID string, actorID int, plan planFn) (*projection.ApplicationView, error) {
	if u.uow == nil {
		return nil, errors.New("approval usecase: unit of work not configured")
	}

	var cs domain.Changeset
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *domain.Application) error {
		planned, err := plan(r, a)
		if err != nil {
			return err
		}
		if err := apply(ctx, r, planned); err != nil {
			return err
		}
		cs = planned
		return nil
	})
	if err != nil {
		err = lookupErr(err, "application %s", applicationID)
		if !domain.IsExpected(err) {
			u.log.Error("approval transition failed",
				zap.String("op", string(op)), zap.String("application_id", applicationID), zap.Error(err))
		}
		return nil, err
	}

	next := cs.Primary.Next
	u.log.Info("application transitioned",
		zap.String("op", string(op)),
		zap.String("application_id", next.ApplicationID),
		zap.String("from", string(cs.Primary.From)),
		zap.String("to", string(next.CurrentStatus)),
		zap.Int("actor_id", actorID),
		zap.Int("cascaded", len(cs.Cascaded)))
	v := u.views.View(ctx, next)
	return &v, nil
}

// apply persists every write of cs; any failure aborts the whole tx.
func apply(ctx context.Context, r uow.Repos, cs domain.Changeset) error {
	for _, w := range cs.Writes() {
		next := w.Next
		if err := r.Applications.SaveTransition(ctx, &next, w.From); err != nil {
			return err
		}
	}
	if cs.Employee != nil {
		if err := r.Employees.Save(ctx, cs.Employee); err != nil {
			return err
		}
	}
	return nil
}

func single(next domain.Application, from domain.Status) domain.Changeset {
	return domain.Changeset{Primary: domain.Write{Next: next, From: from}}
}

func getEmployee(ctx context.Context, r uow.Repos, employeeID int) (*employee.Employee, error) {
	e, err := r.Employees.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, lookupErr(err, "employee %d", employeeID)
	}
	return e, nil
}

// authorizeDepartmentHead loads the subject and the acting user and checks
// the actor heads the subject's department.
func authorizeDepartmentHead(ctx context.Context, r uow.Repos, a *domain.Application, actorID int) (*employee.Employee, *employee.Employee, error) {
	subject, err := getEmployee(ctx, r, a.EmployeeID)
	if err != nil {
		return nil, nil, err
	}
	approver, err := getEmployee(ctx, r, actorID)
	if err != nil {
		return nil, nil, err
	}
	if approver.Role != employee.RoleDepartmentHead {
		return nil, nil, fmt.Errorf("%w: employee %d is not a department head", domain.ErrForbidden, actorID)
	}
	if !approver.SameDepartment(*subject) {
		return nil, nil, fmt.Errorf("%w: employee %d does not head department of employee %d",
			domain.ErrForbidden, actorID, subject.EmployeeID)
	}
	return subject, approver, nil
}

func lookupErr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, fmt.Sprintf(format, args...))
	}
	return err
}
