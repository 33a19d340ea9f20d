package employee

import "context"

type Repository interface {
	Create(ctx context.Context, e *Employee) error
	GetByEmployeeID(ctx context.Context, employeeID int) (*Employee, error)
	ListByDepartment(ctx context.Context, department string) ([]Employee, error)
	Save(ctx context.Context, e *Employee) error
}
