package employeemock

import (
	"context"

	domain "workforce-backend/internal/domain/employee"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, e *domain.Employee) error
	GetByEmployeeIDFn  func(ctx context.Context, employeeID int) (*domain.Employee, error)
	ListByDepartmentFn func(ctx context.Context, department string) ([]domain.Employee, error)
	SaveFn             func(ctx context.Context, e *domain.Employee) error
}

// Static returns a Repo serving the given employees by EmployeeID.
func Static(employees ...domain.Employee) *Repo {
	byID := make(map[int]domain.Employee, len(employees))
	for _, e := range employees {
		byID[e.EmployeeID] = e
	}
	return &Repo{
		GetByEmployeeIDFn: func(_ context.Context, id int) (*domain.Employee, error) {
			e, ok := byID[id]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return &e, nil
		},
		ListByDepartmentFn: func(_ context.Context, dept string) ([]domain.Employee, error) {
			var out []domain.Employee
			for _, e := range employees {
				if e.Department == dept {
					out = append(out, e)
				}
			}
			return out, nil
		},
	}
}

func (m *Repo) Create(ctx context.Context, e *domain.Employee) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetByEmployeeID(ctx context.Context, employeeID int) (*domain.Employee, error) {
	if m.GetByEmployeeIDFn != nil {
		return m.GetByEmployeeIDFn(ctx, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByDepartment(ctx context.Context, department string) ([]domain.Employee, error) {
	if m.ListByDepartmentFn != nil {
		return m.ListByDepartmentFn(ctx, department)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, e *domain.Employee) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, e)
	}
	return nil
}
