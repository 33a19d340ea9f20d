package applicationmock

import (
	"context"

	domain "workforce-backend/internal/domain/application"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups report gorm.ErrRecordNotFound; unset writes succeed.
type Repo struct {
	CreateFn                      func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.Application, error)
	FindLiveFn                    func(ctx context.Context, slot domain.Slot) (*domain.Application, error)
	ListFn                        func(ctx context.Context, f domain.Filter) ([]domain.Application, error)
	SaveTransitionFn              func(ctx context.Context, a *domain.Application, from domain.Status) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return m.GetByApplicationID(ctx, applicationID)
}

func (m *Repo) FindLive(ctx context.Context, slot domain.Slot) (*domain.Application, error) {
	if m.FindLiveFn != nil {
		return m.FindLiveFn(ctx, slot)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Application, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) SaveTransition(ctx context.Context, a *domain.Application, from domain.Status) error {
	if m.SaveTransitionFn != nil {
		return m.SaveTransitionFn(ctx, a, from)
	}
	return nil
}
