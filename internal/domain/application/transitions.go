package application

import (
	"strings"
	"time"

	"workforce-backend/internal/domain/employee"
)

// Operation names a workflow step.
type Operation string

const (
	OpSuggest              Operation = "suggest"
	OpApplyToOpen          Operation = "apply to open project"
	OpApplyToSuggested     Operation = "apply to suggested project"
	OpRequestDHApproval    Operation = "request department head approval"
	OpApprove              Operation = "approve"
	OpRejectByDH           Operation = "reject by department head"
	OpRejectByPM           Operation = "reject by project manager"
	OpMarkProjectCompleted Operation = "mark project completed"
	OpCascadeReject        Operation = "auto-reject"
)

type rule struct {
	from []Status
	to   Status
}

// transitions lists every legal move from an existing application.
// Anything not listed fails with a TransitionError.
var transitions = map[Operation]rule{
	OpApplyToSuggested:     {from: []Status{StatusSuggested}, to: StatusApplied},
	OpRequestDHApproval:    {from: []Status{StatusApplied, StatusSuggested}, to: StatusRequestDHApproval},
	OpApprove:              {from: []Status{StatusRequestDHApproval}, to: StatusCompleted},
	OpRejectByDH:           {from: []Status{StatusRequestDHApproval}, to: StatusRejectedByDH},
	OpRejectByPM:           {from: []Status{StatusSuggested, StatusApplied}, to: StatusRejectedByPM},
	OpMarkProjectCompleted: {from: []Status{StatusCompleted}, to: StatusProjectCompleted},
	OpCascadeReject:        {from: []Status{StatusSuggested, StatusApplied, StatusRequestDHApproval}, to: StatusRejectedByDH},
}

// Target returns the status op leads to from the given status.
func Target(op Operation, from Status) (Status, error) {
	r, ok := transitions[op]
	if !ok {
		return "", &TransitionError{Op: op, From: from}
	}
	for _, s := range r.from {
		if s == from {
			return r.to, nil
		}
	}
	return "", &TransitionError{Op: op, From: from, Expected: append([]Status(nil), r.from...)}
}

// Expect fails unless op is legal from the application's current status.
func (a Application) Expect(op Operation) error {
	_, err := Target(op, a.CurrentStatus)
	return err
}

func (a Application) transition(op Operation) (Application, error) {
	to, err := Target(op, a.CurrentStatus)
	if err != nil {
		return Application{}, err
	}
	next := a
	next.CurrentStatus = to
	next.LiveKey = liveKeyFor(next)
	return next, nil
}

func liveKeyFor(a Application) *string {
	if !a.CurrentStatus.IsLive() {
		return nil
	}
	k := a.Slot().LiveKey()
	return &k
}

func at(t time.Time) *time.Time {
	u := t.UTC()
	return &u
}

func dateOf(t time.Time) *time.Time {
	u := t.UTC()
	d := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

func newApplication(applicationID string, slot Slot, status Status) (Application, error) {
	if err := slot.Validate(); err != nil {
		return Application{}, err
	}
	if strings.TrimSpace(applicationID) == "" {
		return Application{}, validationf("application id is required")
	}
	n := slot.normalized()
	a := Application{
		ApplicationID: applicationID,
		EmployeeID:    n.EmployeeID,
		ProjectID:     n.ProjectID,
		ProjectRole:   n.ProjectRole,
		CurrentStatus: status,
	}
	a.LiveKey = liveKeyFor(a)
	return a, nil
}

// NewSuggestion creates a planner-initiated application.
func NewSuggestion(applicationID string, slot Slot, by UserAction, now time.Time) (Application, error) {
	a, err := newApplication(applicationID, slot, StatusSuggested)
	if err != nil {
		return Application{}, err
	}
	a.SuggestedBy = by
	a.Timestamps.SuggestedAt = at(now)
	return a, nil
}

// NewOpenApplication creates an employee self-initiated application.
func NewOpenApplication(applicationID string, slot Slot, by UserAction, now time.Time) (Application, error) {
	a, err := newApplication(applicationID, slot, StatusApplied)
	if err != nil {
		return Application{}, err
	}
	by.Role = employee.RoleEmployee
	a.InitiatedBy = by
	a.Timestamps.AppliedAt = at(now)
	return a, nil
}

func (a Application) ApplyToSuggested(by UserAction, now time.Time) (Application, error) {
	next, err := a.transition(OpApplyToSuggested)
	if err != nil {
		return Application{}, err
	}
	by.Role = employee.RoleEmployee
	next.InitiatedBy = by
	next.Timestamps.AppliedAt = at(now)
	return next, nil
}

func (a Application) RequestDepartmentHeadApproval(by UserAction, comments string, now time.Time) (Application, error) {
	next, err := a.transition(OpRequestDHApproval)
	if err != nil {
		return Application{}, err
	}
	next.ApprovedByProjectManager = by
	next.ProjectManagerComments = strings.TrimSpace(comments)
	next.Timestamps.DHRequestedAt = at(now)
	return next, nil
}

// Approve moves the application to COMPLETED and copies the project's
// schedule into the employee project dates.
func (a Application) Approve(by UserAction, comments string, start, end time.Time, now time.Time) (Application, error) {
	next, err := a.transition(OpApprove)
	if err != nil {
		return Application{}, err
	}
	next.ApprovedByDepartmentHead = by
	if c := strings.TrimSpace(comments); c != "" {
		next.ApprovalComments = c
	}
	next.Timestamps.ApprovedAt = at(now)
	next.EmployeeProjectStartDate = dateOf(start)
	next.EmployeeProjectEndDate = dateOf(end)
	return next, nil
}

func (a Application) RejectByDepartmentHead(by UserAction, reason string, now time.Time) (Application, error) {
	return a.reject(OpRejectByDH, by, reason, now)
}

func (a Application) RejectByProjectManager(by UserAction, reason string, now time.Time) (Application, error) {
	return a.reject(OpRejectByPM, by, reason, now)
}

func (a Application) reject(op Operation, by UserAction, reason string, now time.Time) (Application, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Application{}, validationf("rejection reason is required")
	}
	next, err := a.transition(op)
	if err != nil {
		return Application{}, err
	}
	next.RejectedBy = by
	next.RejectionReason = reason
	next.Timestamps.RejectedAt = at(now)
	return next, nil
}

func (a Application) MarkProjectCompleted(comments string, now time.Time) (Application, error) {
	next, err := a.transition(OpMarkProjectCompleted)
	if err != nil {
		return Application{}, err
	}
	next.EmployeeProjectEndDate = dateOf(now)
	next.CompletionComments = strings.TrimSpace(comments)
	next.Timestamps.ProjectCompletedAt = at(now)
	return next, nil
}
