package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    AssignmentStatus
		to      AssignmentStatus
		allowed bool
	}{
		{"assigned to arrived", AssignmentStatusAssigned, AssignmentStatusArrived, true},
		{"assigned to rescheduled", AssignmentStatusAssigned, AssignmentStatusRescheduled, true},
		{"assigned to cancelled", AssignmentStatusAssigned, AssignmentStatusCancelled, true},
		{"assigned cannot skip to completed", AssignmentStatusAssigned, AssignmentStatusCompleted, false},
		{"assigned cannot skip to in_progress", AssignmentStatusAssigned, AssignmentStatusInProgress, false},
		{"arrived to in_progress", AssignmentStatusArrived, AssignmentStatusInProgress, true},
		{"arrived to waiting_on_parts", AssignmentStatusArrived, AssignmentStatusWaitingOnParts, true},
		{"arrived cannot complete directly", AssignmentStatusArrived, AssignmentStatusCompleted, false},
		{"in_progress to completed", AssignmentStatusInProgress, AssignmentStatusCompleted, true},
		{"in_progress to waiting_on_parts", AssignmentStatusInProgress, AssignmentStatusWaitingOnParts, true},
		{"waiting_on_parts back to in_progress", AssignmentStatusWaitingOnParts, AssignmentStatusInProgress, true},
		{"waiting_on_parts to completed", AssignmentStatusWaitingOnParts, AssignmentStatusCompleted, true},
		{"rescheduled re-enters through assigned", AssignmentStatusRescheduled, AssignmentStatusAssigned, true},
		{"rescheduled cannot jump to in_progress", AssignmentStatusRescheduled, AssignmentStatusInProgress, false},
		{"completed is terminal", AssignmentStatusCompleted, AssignmentStatusInProgress, false},
		{"completed cannot be cancelled", AssignmentStatusCompleted, AssignmentStatusCancelled, false},
		{"cancelled is terminal", AssignmentStatusCancelled, AssignmentStatusAssigned, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

func TestValidAssignmentStatus(t *testing.T) {
	for _, status := range []AssignmentStatus{
		AssignmentStatusAssigned, AssignmentStatusArrived, AssignmentStatusInProgress,
		AssignmentStatusWaitingOnParts, AssignmentStatusCompleted,
		AssignmentStatusRescheduled, AssignmentStatusCancelled,
	} {
		assert.True(t, ValidAssignmentStatus(status), string(status))
	}
	assert.False(t, ValidAssignmentStatus("paused"))
	assert.False(t, ValidAssignmentStatus(""))
}

func TestJobStatusForAssignment(t *testing.T) {
	cases := []struct {
		assignment AssignmentStatus
		job        JobStatus
		changed    bool
	}{
		{AssignmentStatusCompleted, JobStatusCompleted, true},
		{AssignmentStatusInProgress, JobStatusInProgress, true},
		{AssignmentStatusArrived, JobStatusInProgress, true},
		{AssignmentStatusCancelled, JobStatusAvailable, true},
		{AssignmentStatusAssigned, "", false},
		{AssignmentStatusWaitingOnParts, "", false},
		{AssignmentStatusRescheduled, "", false},
	}
	for _, tc := range cases {
		job, changed := JobStatusForAssignment(tc.assignment)
		assert.Equal(t, tc.changed, changed, string(tc.assignment))
		assert.Equal(t, tc.job, job, string(tc.assignment))
	}
}
