package projectmock

import (
	"context"

	domain "workforce-backend/internal/domain/project"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, p *domain.Project) error
	GetByProjectIDFn func(ctx context.Context, projectID string) (*domain.Project, error)
}

// Static returns a Repo serving the given projects by ProjectID.
func Static(projects ...domain.Project) *Repo {
	byID := make(map[string]domain.Project, len(projects))
	for _, p := range projects {
		byID[p.ProjectID] = p
	}
	return &Repo{
		GetByProjectIDFn: func(_ context.Context, id string) (*domain.Project, error) {
			p, ok := byID[id]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return &p, nil
		},
	}
}

func (m *Repo) Create(ctx context.Context, p *domain.Project) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByProjectID(ctx context.Context, projectID string) (*domain.Project, error) {
	if m.GetByProjectIDFn != nil {
		return m.GetByProjectIDFn(ctx, projectID)
	}
	return nil, gorm.ErrRecordNotFound
}
