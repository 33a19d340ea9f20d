package uow

import (
	"context"

	"workforce-backend/internal/domain/application"
	"workforce-backend/internal/domain/employee"
	"workforce-backend/internal/domain/project"
)

// Repos is the set of repositories bound to one transaction.
type Repos struct {
	Applications application.Repository
	Employees    employee.Repository
	Projects     project.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
}
