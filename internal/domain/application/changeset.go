package application

import (
	"fmt"
	"time"

	"workforce-backend/internal/domain/employee"
	"workforce-backend/internal/domain/project"
)

// Write is one application update guarded by the status it was read in.
type Write struct {
	Next Application
	From Status
}

// Changeset is every entity write a single workflow command produces.
// It is persisted as one unit.
type Changeset struct {
	Primary  Write
	Cascaded []Write
	Employee *employee.Employee
}

// Writes returns the primary write first, then the cascaded ones.
func (c Changeset) Writes() []Write {
	out := make([]Write, 0, 1+len(c.Cascaded))
	out = append(out, c.Primary)
	return append(out, c.Cascaded...)
}

// CascadeReason is the rejection reason recorded on competing applications.
func CascadeReason(projectID string) string {
	return "Employee has been assigned to project: " + projectID
}

// PlanApproval computes the department head approval of a: the approved
// application, the auto-rejection of every other pending application of the
// same employee, and the employee's new assignment.
func PlanApproval(a Application, others []Application, subject employee.Employee, proj project.Project,
	approver UserAction, comments string, now time.Time) (Changeset, error) {
	approved, err := a.Approve(approver, comments, proj.ProjectStart, proj.ProjectEnd, now)
	if err != nil {
		return Changeset{}, err
	}
	cs := Changeset{Primary: Write{Next: approved, From: a.CurrentStatus}}

	reason := CascadeReason(a.ProjectID)
	for _, o := range others {
		if o.ApplicationID == a.ApplicationID || o.EmployeeID != a.EmployeeID {
			continue
		}
		if !o.CurrentStatus.IsPending() {
			continue
		}
		rejected, err := o.transition(OpCascadeReject)
		if err != nil {
			return Changeset{}, err
		}
		rejected.RejectedBy = approver
		rejected.RejectionReason = reason
		rejected.Timestamps.RejectedAt = at(now)
		cs.Cascaded = append(cs.Cascaded, Write{Next: rejected, From: o.CurrentStatus})
	}

	assigned := subject.AssignTo(a.ProjectID, proj.CreatedBy)
	cs.Employee = &assigned
	return cs, nil
}

// PlanCompletion closes the assignment behind a and frees the employee.
func PlanCompletion(a Application, subject employee.Employee, comments string, now time.Time) (Changeset, error) {
	done, err := a.MarkProjectCompleted(comments, now)
	if err != nil {
		return Changeset{}, err
	}
	if !subject.IsAssignedTo(a.ProjectID) {
		return Changeset{}, fmt.Errorf("%w: employee %d is not assigned to project %s",
			ErrInvalidState, subject.EmployeeID, a.ProjectID)
	}
	released := subject.Release()
	return Changeset{Primary: Write{Next: done, From: a.CurrentStatus}, Employee: &released}, nil
}
