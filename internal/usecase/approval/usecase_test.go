package approval

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	domain "workforce-backend/internal/domain/application"
	"workforce-backend/internal/domain/employee"
	"workforce-backend/internal/domain/project"
	"workforce-backend/internal/domain/uow"
	"workforce-backend/internal/testutil/applicationmock"
	"workforce-backend/internal/testutil/employeemock"
	"workforce-backend/internal/testutil/projectmock"
	"workforce-backend/internal/testutil/uowmock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// store is an in-memory backing for the function-backed mocks. Writes made
// inside a failed unit of work are rolled back.
type store struct {
	apps      map[string]domain.Application
	emps      map[int]employee.Employee
	projects  map[string]project.Project
	failSave  string
	appSaves  int
	empSaves  int
	txInvoked int
}

func newStore() *store {
	s := &store{
		apps: map[string]domain.Application{},
		emps: map[int]employee.Employee{},
		projects: map[string]project.Project{
			"PRJ-1": {ProjectID: "PRJ-1", CreatedBy: "9",
				ProjectStart: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
				ProjectEnd:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)},
			"PRJ-2": {ProjectID: "PRJ-2", CreatedBy: "9"},
			"PRJ-3": {ProjectID: "PRJ-3", CreatedBy: "9"},
		},
	}
	for _, e := range []employee.Employee{
		{EmployeeID: 42, FirstName: "Eve", LastName: "Employee", Department: "IT", Role: employee.RoleEmployee, AvailabilityStatus: employee.AvailabilityAvailable},
		{EmployeeID: 9, FirstName: "Mo", LastName: "Manager", Department: "PMO", Role: employee.RoleProjectManager},
		{EmployeeID: 3, FirstName: "Dee", LastName: "Head", Department: "IT", Role: employee.RoleDepartmentHead},
		{EmployeeID: 4, FirstName: "Hal", LastName: "Head", Department: "HR", Role: employee.RoleDepartmentHead},
		{EmployeeID: 5, FirstName: "Ian", LastName: "Peer", Department: "IT", Role: employee.RoleEmployee},
	} {
		s.emps[e.EmployeeID] = e
	}
	return s
}

func (s *store) put(t *testing.T, appID, projectID string, employeeID int, status domain.Status) {
	t.Helper()
	a, err := domain.NewSuggestion(appID, domain.Slot{EmployeeID: employeeID, ProjectID: projectID, ProjectRole: "Dev"},
		domain.UserAction{UserID: "7", Role: employee.RoleResourcePlanner}, fixedNow.Add(-48*time.Hour))
	require.NoError(t, err)
	a.CurrentStatus = status
	if !status.IsLive() {
		a.LiveKey = nil
	}
	s.apps[appID] = a
}

func (s *store) repos() uow.Repos {
	apps := &applicationmock.Repo{
		GetByApplicationIDFn: func(_ context.Context, id string) (*domain.Application, error) {
			a, ok := s.apps[id]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return &a, nil
		},
		ListFn: func(_ context.Context, f domain.Filter) ([]domain.Application, error) {
			var out []domain.Application
			for _, a := range s.apps {
				if len(f.EmployeeIDs) > 0 && !containsInt(f.EmployeeIDs, a.EmployeeID) {
					continue
				}
				if len(f.Statuses) > 0 && !containsStatus(f.Statuses, a.CurrentStatus) {
					continue
				}
				out = append(out, a)
			}
			sort.Slice(out, func(i, j int) bool { return out[i].ApplicationID < out[j].ApplicationID })
			return out, nil
		},
		SaveTransitionFn: func(_ context.Context, a *domain.Application, from domain.Status) error {
			if a.ApplicationID == s.failSave {
				return errors.New("disk full")
			}
			if s.apps[a.ApplicationID].CurrentStatus != from {
				return domain.ErrConflict
			}
			s.appSaves++
			s.apps[a.ApplicationID] = *a
			return nil
		},
	}
	emps := &employeemock.Repo{
		GetByEmployeeIDFn: func(_ context.Context, id int) (*employee.Employee, error) {
			e, ok := s.emps[id]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return &e, nil
		},
		ListByDepartmentFn: func(_ context.Context, dept string) ([]employee.Employee, error) {
			var out []employee.Employee
			for _, e := range s.emps {
				if e.Department == dept {
					out = append(out, e)
				}
			}
			return out, nil
		},
		SaveFn: func(_ context.Context, e *employee.Employee) error {
			s.empSaves++
			s.emps[e.EmployeeID] = *e
			return nil
		},
	}
	projs := &projectmock.Repo{
		GetByProjectIDFn: func(_ context.Context, id string) (*project.Project, error) {
			p, ok := s.projects[id]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return &p, nil
		},
	}
	return uow.Repos{Applications: apps, Employees: emps, Projects: projs}
}

func (s *store) uow() *uowmock.UoW {
	inner := uowmock.Passthrough(s.repos())
	return uowmock.New().WithWithinApplicationTx(
		func(ctx context.Context, id string, fn func(uow.Repos, *domain.Application) error) error {
			s.txInvoked++
			apps := make(map[string]domain.Application, len(s.apps))
			for k, v := range s.apps {
				apps[k] = v
			}
			emps := make(map[int]employee.Employee, len(s.emps))
			for k, v := range s.emps {
				emps[k] = v
			}
			if err := inner.WithinApplicationTx(ctx, id, fn); err != nil {
				s.apps, s.emps = apps, emps // rollback
				return err
			}
			return nil
		})
}

func (s *store) usecase() *Usecase {
	return NewUsecase(s.repos(), s.uow(), func() time.Time { return fixedNow }, nil)
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func containsStatus(xs []domain.Status, v domain.Status) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func TestRequestDepartmentHeadApproval(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.Status
		appID   string
		actor   int
		wantErr error
	}{
		{name: "applied", from: domain.StatusApplied, appID: "A1", actor: 9},
		{name: "suggested", from: domain.StatusSuggested, appID: "A1", actor: 9},
		{name: "already completed", from: domain.StatusCompleted, appID: "A1", actor: 9, wantErr: domain.ErrInvalidState},
		{name: "unknown application", from: domain.StatusApplied, appID: "NOPE", actor: 9, wantErr: domain.ErrNotFound},
		{name: "unknown manager", from: domain.StatusApplied, appID: "A1", actor: 999, wantErr: domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore()
			s.put(t, "A1", "PRJ-1", 42, tt.from)

			v, err := s.usecase().RequestDepartmentHeadApproval(context.Background(),
				ActionInput{ApplicationID: tt.appID, ActorID: tt.actor, Comments: "good fit"})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, s.apps["A1"].CurrentStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "REQUEST_DH_APPROVAL", v.CurrentStatus)
			require.NotNil(t, v.ApprovedByProjectManager)
			assert.Equal(t, "Mo Manager", v.ApprovedByProjectManager.DisplayName)
			assert.Equal(t, "PROJECT_MANAGER", v.ApprovedByProjectManager.Role)
			assert.Equal(t, "good fit", v.ProjectManagerComments)
			assert.Equal(t, domain.StatusRequestDHApproval, s.apps["A1"].CurrentStatus)
		})
	}
}

func TestApprove_CascadeRejectsOtherPendingApplications(t *testing.T) {
	s := newStore()
	s.put(t, "A1", "PRJ-1", 42, domain.StatusRequestDHApproval)
	s.put(t, "A2", "PRJ-2", 42, domain.StatusApplied)
	s.put(t, "A3", "PRJ-3", 42, domain.StatusSuggested)
	s.put(t, "B1", "PRJ-2", 5, domain.StatusApplied)

	v, err := s.usecase().Approve(context.Background(), ActionInput{ApplicationID: "A1", ActorID: 3, Comments: "approved"})
	require.NoError(t, err)

	assert.Equal(t, "COMPLETED", v.CurrentStatus)
	require.NotNil(t, v.ApprovedByDepartmentHead)
	assert.Equal(t, "Dee Head", v.ApprovedByDepartmentHead.DisplayName)
	require.NotNil(t, v.EmployeeProjectStartDate)
	assert.True(t, v.EmployeeProjectStartDate.Equal(s.projects["PRJ-1"].ProjectStart))
	assert.True(t, v.EmployeeProjectEndDate.Equal(s.projects["PRJ-1"].ProjectEnd))
	require.NotNil(t, v.Timestamps.ApprovedAt)

	for _, id := range []string{"A2", "A3"} {
		a := s.apps[id]
		assert.Equal(t, domain.StatusRejectedByDH, a.CurrentStatus, id)
		assert.Contains(t, a.RejectionReason, "PRJ-1", id)
		assert.Equal(t, "3", a.RejectedBy.UserID, id)
	}
	assert.Equal(t, domain.StatusApplied, s.apps["B1"].CurrentStatus)

	emp := s.emps[42]
	assert.True(t, emp.IsAssignedTo("PRJ-1"))
	assert.Equal(t, employee.AvailabilityNotAvailable, emp.AvailabilityStatus)
	assert.Equal(t, "9", emp.Supervisor)
}

func TestApprove_SecondAttemptFailsWithoutSideEffects(t *testing.T) {
	s := newStore()
	s.put(t, "A1", "PRJ-1", 42, domain.StatusRequestDHApproval)
	s.put(t, "A2", "PRJ-2", 42, domain.StatusApplied)
	uc := s.usecase()

	_, err := uc.Approve(context.Background(), ActionInput{ApplicationID: "A1", ActorID: 3})
	require.NoError(t, err)
	saves, empSaves := s.appSaves, s.empSaves

	_, err = uc.Approve(context.Background(), ActionInput{ApplicationID: "A1", ActorID: 3})
	require.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Contains(t, err.Error(), "COMPLETED")
	assert.Contains(t, err.Error(), "REQUEST_DH_APPROVAL")
	assert.Equal(t, saves, s.appSaves)
	assert.Equal(t, empSaves, s.empSaves)
}

func TestApprove_Guards(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.Status
		actor   int
		mutate  func(*store)
		wantErr error
	}{
		{name: "other department", from: domain.StatusRequestDHApproval, actor: 4, wantErr: domain.ErrForbidden},
		{name: "not a department head", from: domain.StatusRequestDHApproval, actor: 5, wantErr: domain.ErrForbidden},
		{name: "unknown approver", from: domain.StatusRequestDHApproval, actor: 999, wantErr: domain.ErrNotFound},
		{name: "status checked before approver", from: domain.StatusApplied, actor: 999, wantErr: domain.ErrInvalidState},
		{
			name: "subject missing", from: domain.StatusRequestDHApproval, actor: 3,
			mutate:  func(s *store) { delete(s.emps, 42) },
			wantErr: domain.ErrNotFound,
		},
		{
			name: "project missing", from: domain.StatusRequestDHApproval, actor: 3,
			mutate:  func(s *store) { delete(s.projects, "PRJ-1") },
			wantErr: domain.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore()
			s.put(t, "A1", "PRJ-1", 42, tt.from)
			if tt.mutate != nil {
				tt.mutate(s)
			}

			_, err := s.usecase().Approve(context.Background(), ActionInput{ApplicationID: "A1", ActorID: tt.actor})

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.from, s.apps["A1"].CurrentStatus)
			assert.Zero(t, s.appSaves)
			assert.Zero(t, s.empSaves)
		})
	}
}

func TestApprove_FailedCascadeRollsBackEverything(t *testing.T) {
	s := newStore()
	s.put(t, "A1", "PRJ-1", 42, domain.StatusRequestDHApproval)
	s.put(t, "A2", "PRJ-2", 42, domain.StatusApplied)
	s.failSave = "A2"

	_, err := s.usecase().Approve(context.Background(), ActionInput{ApplicationID: "A1", ActorID: 3})

	require.Error(t, err)
	assert.False(t, domain.IsExpected(err))
	assert.Equal(t, domain.StatusRequestDHApproval, s.apps["A1"].CurrentStatus)
	assert.Equal(t, domain.StatusApplied, s.apps["A2"].CurrentStatus)
	assert.Nil(t, s.emps[42].AssignedProjectID)
}

func TestReject(t *testing.T) {
	t.Run("reason required", func(t *testing.T) {
		s := newStore()
		s.put(t, "A1", "PRJ-1", 42, domain.StatusRequestDHApproval)

		_, err := s.usecase().Reject(context.Background(), RejectInput{ApplicationID: "A1", ActorID: 3, Reason: "  "})

		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, domain.StatusRequestDHApproval, s.apps["A1"].CurrentStatus)
		assert.Zero(t, s.txInvoked)
	})

	t.Run("rejects and frees slot", func(t *testing.T) {
		s := newStore()
		s.put(t, "A1", "PRJ-1", 42, domain.StatusRequestDHApproval)

		v, err := s.usecase().Reject(context.Background(), RejectInput{ApplicationID: "A1", ActorID: 3, Reason: "budget"})

		require.NoError(t, err)
		assert.Equal(t, "REJECTED_BY_DH", v.CurrentStatus)
		assert.Equal(t, "budget", v.RejectionReason)
		require.NotNil(t, v.RejectedBy)
		assert.Equal(t, "Dee Head", v.RejectedBy.DisplayName)
		assert.Nil(t, s.apps["A1"].LiveKey)
		assert.Zero(t, s.empSaves)
	})

	t.Run("other department", func(t *testing.T) {
		s := newStore()
		s.put(t, "A1", "PRJ-1", 42, domain.StatusRequestDHApproval)

		_, err := s.usecase().Reject(context.Background(), RejectInput{ApplicationID: "A1", ActorID: 4, Reason: "no"})
		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.Equal(t, domain.StatusRequestDHApproval, s.apps["A1"].CurrentStatus)
	})

	t.Run("wrong status", func(t *testing.T) {
		s := newStore()
		s.put(t, "A1", "PRJ-1", 42, domain.StatusApplied)

		_, err := s.usecase().Reject(context.Background(), RejectInput{ApplicationID: "A1", ActorID: 3, Reason: "no"})
		require.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestRejectByProjectManager(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.Status
		reason  string
		wantErr error
	}{
		{name: "suggested", from: domain.StatusSuggested, reason: "skills"},
		{name: "applied", from: domain.StatusApplied, reason: "skills"},
		{name: "missing reason", from: domain.StatusApplied, wantErr: domain.ErrValidation},
		{name: "awaiting department head", from: domain.StatusRequestDHApproval, reason: "late", wantErr: domain.ErrInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore()
			s.put(t, "A1", "PRJ-1", 42, tt.from)

			v, err := s.usecase().RejectByProjectManager(context.Background(), RejectInput{ApplicationID: "A1", ActorID: 9, Reason: tt.reason})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, s.apps["A1"].CurrentStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "REJECTED_BY_PM", v.CurrentStatus)
			assert.Equal(t, "PROJECT_MANAGER", v.RejectedBy.Role)
		})
	}
}

func TestMarkProjectCompleted(t *testing.T) {
	t.Run("frees employee", func(t *testing.T) {
		s := newStore()
		s.put(t, "A1", "PRJ-1", 42, domain.StatusCompleted)
		s.emps[42] = s.emps[42].AssignTo("PRJ-1", "9")

		v, err := s.usecase().MarkProjectCompleted(context.Background(), "A1", "delivered")

		require.NoError(t, err)
		assert.Equal(t, "PROJECT_COMPLETED", v.CurrentStatus)
		assert.Equal(t, "delivered", v.CompletionComments)
		require.NotNil(t, v.EmployeeProjectEndDate)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *v.EmployeeProjectEndDate)
		assert.Nil(t, s.emps[42].AssignedProjectID)
		assert.Equal(t, employee.AvailabilityAvailable, s.emps[42].AvailabilityStatus)
	})

	t.Run("employee not on project", func(t *testing.T) {
		s := newStore()
		s.put(t, "A1", "PRJ-1", 42, domain.StatusCompleted)

		_, err := s.usecase().MarkProjectCompleted(context.Background(), "A1", "")
		require.ErrorIs(t, err, domain.ErrInvalidState)
		assert.Equal(t, domain.StatusCompleted, s.apps["A1"].CurrentStatus)
	})

	t.Run("not completed", func(t *testing.T) {
		s := newStore()
		s.put(t, "A1", "PRJ-1", 42, domain.StatusApplied)

		_, err := s.usecase().MarkProjectCompleted(context.Background(), "A1", "")
		require.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestListForDepartment(t *testing.T) {
	s := newStore()
	s.put(t, "A1", "PRJ-1", 42, domain.StatusRequestDHApproval)
	s.put(t, "A2", "PRJ-2", 5, domain.StatusApplied)
	s.emps[77] = employee.Employee{EmployeeID: 77, Department: "HR", Role: employee.RoleEmployee}
	s.put(t, "C1", "PRJ-1", 77, domain.StatusRequestDHApproval)
	uc := s.usecase()

	got, err := uc.ListForDepartment(context.Background(), 3, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A1", got[0].ApplicationID)
	assert.Equal(t, "A2", got[1].ApplicationID)

	got, err = uc.ListForDepartment(context.Background(), 3, "request_dh_approval")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A1", got[0].ApplicationID)

	_, err = uc.ListForDepartment(context.Background(), 9, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ListForDepartment(context.Background(), 999, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ListForDepartment(context.Background(), 3, "bogus")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNilUnitOfWork(t *testing.T) {
	uc := NewUsecase(newStore().repos(), nil, nil, nil)
	_, err := uc.Approve(context.Background(), ActionInput{ApplicationID: "A1", ActorID: 3})
	require.Error(t, err)
	assert.False(t, domain.IsExpected(err))
}
