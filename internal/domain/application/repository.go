package application

import "context"

// Filter narrows List. Zero fields do not filter.
type Filter struct {
	EmployeeIDs []int
	ProjectID   string
	Statuses    []Status
}

type Repository interface {
	// Create inserts a new application; the live-key index rejects duplicates.
	Create(ctx context.Context, a *Application) error

	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)

	// GetByApplicationIDForUpdate row-locks the application for the running transaction.
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)

	// FindLive returns the live application occupying slot, if any.
	FindLive(ctx context.Context, slot Slot) (*Application, error)

	List(ctx context.Context, f Filter) ([]Application, error)

	// SaveTransition persists a only if the stored status is still from.
	// A lost race yields ErrConflict.
	SaveTransition(ctx context.Context, a *Application, from Status) error
}
