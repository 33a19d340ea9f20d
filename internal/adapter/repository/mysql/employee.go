package mysql

import (
	"context"

	empDomain "workforce-backend/internal/domain/employee"

	"gorm.io/gorm"
)

type EmployeeRepository struct{ db *gorm.DB }

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository { return &EmployeeRepository{db: db} }

func (r *EmployeeRepository) Create(ctx context.Context, e *empDomain.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EmployeeRepository) GetByEmployeeID(ctx context.Context, employeeID int) (*empDomain.Employee, error) {
	var out empDomain.Employee
	res := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&out)
	return &out, res.Error
}

func (r *EmployeeRepository) ListByDepartment(ctx context.Context, department string) ([]empDomain.Employee, error) {
	var out []empDomain.Employee
	res := r.db.WithContext(ctx).
		Where("department = ?", department).
		Order("employee_id ASC").
		Find(&out)
	return out, res.Error
}

func (r *EmployeeRepository) Save(ctx context.Context, e *empDomain.Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}
