package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus(" request_dh_approval ")
	require.NoError(t, err)
	assert.Equal(t, StatusRequestDHApproval, got)

	got, err = ParseStatus("withdrawn")
	require.NoError(t, err)
	assert.True(t, got.IsLegacy())

	_, err = ParseStatus("PENDING")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStatus_LiveAndPending(t *testing.T) {
	tests := []struct {
		s       Status
		live    bool
		pending bool
	}{
		{StatusSuggested, true, true},
		{StatusApplied, true, true},
		{StatusRequestDHApproval, true, true},
		{StatusCompleted, true, false},
		{StatusProjectCompleted, true, false},
		{StatusRejectedByPM, false, false},
		{StatusRejectedByDH, false, false},
		{StatusRejected, false, false},
		{StatusWithdrawn, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.s), func(t *testing.T) {
			assert.Equal(t, tt.live, tt.s.IsLive())
			assert.Equal(t, tt.pending, tt.s.IsPending())
		})
	}
}

func TestSlot_LiveKeyNormalizes(t *testing.T) {
	a := Slot{EmployeeID: 42, ProjectID: " PRJ-1", ProjectRole: "Dev "}
	b := Slot{EmployeeID: 42, ProjectID: "PRJ-1", ProjectRole: "Dev"}
	assert.Equal(t, a.LiveKey(), b.LiveKey())
	assert.NotEqual(t, b.LiveKey(), Slot{EmployeeID: 43, ProjectID: "PRJ-1", ProjectRole: "Dev"}.LiveKey())
}
