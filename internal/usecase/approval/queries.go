package approval

import (
	"context"
	"fmt"

	domain "workforce-backend/internal/domain/application"
	"workforce-backend/internal/domain/employee"
	"workforce-backend/internal/usecase/projection"
)

// ListForDepartment returns the applications of every employee in the
// department headed by deptHeadID, optionally narrowed to one status.
func (u *Usecase) ListForDepartment(ctx context.Context, deptHeadID int, status string) ([]projection.ApplicationView, error) {
	var statuses []domain.Status
	if status != "" {
		st, err := domain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		statuses = []domain.Status{st}
	}

	head, err := u.repos.Employees.GetByEmployeeID(ctx, deptHeadID)
	if err != nil {
		return nil, lookupErr(err, "employee %d", deptHeadID)
	}
	if head.Role != employee.RoleDepartmentHead {
		return nil, fmt.Errorf("%w: employee %d is not a department head", domain.ErrForbidden, deptHeadID)
	}
	if head.Department == "" {
		return []projection.ApplicationView{}, nil
	}

	members, err := u.repos.Employees.ListByDepartment(ctx, head.Department)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []projection.ApplicationView{}, nil
	}
	ids := make([]int, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.EmployeeID)
	}

	apps, err := u.repos.Applications.List(ctx, domain.Filter{EmployeeIDs: ids, Statuses: statuses})
	if err != nil {
		return nil, err
	}
	return u.views.Views(ctx, apps), nil
}
