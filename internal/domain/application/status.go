package application

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusDraft             Status = "DRAFT"
	StatusSuggested         Status = "SUGGESTED"
	StatusApplied           Status = "APPLIED"
	StatusRequestDHApproval Status = "REQUEST_DH_APPROVAL"
	StatusCompleted         Status = "COMPLETED"
	StatusRejectedByPM      Status = "REJECTED_BY_PM"
	StatusRejectedByDH      Status = "REJECTED_BY_DH"
	StatusProjectCompleted  Status = "PROJECT_COMPLETED"
)

// Legacy values are kept so old rows still load. No transition produces them.
const (
	StatusApprovalPendingPM Status = "APPROVAL_PENDING_PM"
	StatusApproved          Status = "APPROVED"
	StatusRejected          Status = "REJECTED"
	StatusAssigned          Status = "ASSIGNED"
	StatusWithdrawn         Status = "WITHDRAWN"
)

// ParseStatus accepts current and legacy values.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if st.IsCurrent() || st.IsLegacy() {
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown application status %q", ErrValidation, s)
}

func (s Status) IsCurrent() bool {
	switch s {
	case StatusDraft, StatusSuggested, StatusApplied, StatusRequestDHApproval,
		StatusCompleted, StatusRejectedByPM, StatusRejectedByDH, StatusProjectCompleted:
		return true
	}
	return false
}

func (s Status) IsLegacy() bool {
	switch s {
	case StatusApprovalPendingPM, StatusApproved, StatusRejected, StatusAssigned, StatusWithdrawn:
		return true
	}
	return false
}

// IsLive reports whether an application in s still occupies its
// (employee, project, role) slot.
func (s Status) IsLive() bool {
	switch s {
	case StatusRejectedByPM, StatusRejectedByDH, StatusRejected, StatusWithdrawn:
		return false
	}
	return true
}

// IsPending reports whether s is still waiting on a decision; pending
// applications are swept when a competing one is approved.
func (s Status) IsPending() bool {
	switch s {
	case StatusSuggested, StatusApplied, StatusRequestDHApproval:
		return true
	}
	return false
}
