package model

import (
	"time"

	"github.com/google/uuid"
)

type AssignmentStatus string

const (
	AssignmentStatusAssigned       AssignmentStatus = "assigned"
	AssignmentStatusArrived        AssignmentStatus = "arrived"
	AssignmentStatusInProgress     AssignmentStatus = "in_progress"
	AssignmentStatusWaitingOnParts AssignmentStatus = "waiting_on_parts"
	AssignmentStatusCompleted      AssignmentStatus = "completed"
	AssignmentStatusRescheduled    AssignmentStatus = "rescheduled"
	AssignmentStatusCancelled      AssignmentStatus = "cancelled"
)

// assignmentTransitions is the lifecycle graph. completed and cancelled
// are terminal; rescheduled re-enters the normal flow through assigned.
var assignmentTransitions = map[AssignmentStatus][]AssignmentStatus{
	AssignmentStatusAssigned: {
		AssignmentStatusArrived,
		AssignmentStatusCancelled,
		AssignmentStatusRescheduled,
	},
	AssignmentStatusArrived: {
		AssignmentStatusInProgress,
		AssignmentStatusWaitingOnParts,
		AssignmentStatusCancelled,
	},
	AssignmentStatusInProgress: {
		AssignmentStatusWaitingOnParts,
		AssignmentStatusCompleted,
		AssignmentStatusCancelled,
	},
	AssignmentStatusWaitingOnParts: {
		AssignmentStatusInProgress,
		AssignmentStatusCompleted,
		AssignmentStatusCancelled,
	},
	AssignmentStatusRescheduled: {
		AssignmentStatusAssigned,
	},
}

// CanTransition reports whether the lifecycle graph permits moving from
// one assignment status to another.
func CanTransition(from, to AssignmentStatus) bool {
	for _, next := range assignmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidAssignmentStatus reports whether s is a known status value.
func ValidAssignmentStatus(s AssignmentStatus) bool {
	switch s {
	case AssignmentStatusAssigned, AssignmentStatusArrived,
		AssignmentStatusInProgress, AssignmentStatusWaitingOnParts,
		AssignmentStatusCompleted, AssignmentStatusRescheduled,
		AssignmentStatusCancelled:
		return true
	}
	return false
}

type RescheduleInfo struct {
	OriginalDate time.Time
	NewDate      time.Time
	Reason       string
	RequestedAt  time.Time
}

type Invoice struct {
	InvoiceNumber string
	GeneratedAt   time.Time
}

// Assignment binds one job to one vendor and tracks the work from claim
// through completion and billing. TotalCost is derived and must always
// equal TotalPartsCost + TotalLaborCost once a mutation settles.
type Assignment struct {
	ID                uuid.UUID
	JobID             uuid.UUID
	VendorID          uuid.UUID
	Status            AssignmentStatus
	AssignedAt        time.Time
	ScheduledArrival  *time.Time
	ActualArrival     *time.Time
	WorkStarted       *time.Time
	CompletedAt       *time.Time
	Notes             string
	VendorNotes       string
	CompletionNotes   string
	CustomerSignature string
	LaborHours        float64
	TotalPartsCost    float64
	TotalLaborCost    float64
	TotalCost         float64
	Reschedule        *RescheduleInfo
	Invoice           *Invoice
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AssignmentDetail embeds the job summary, parts and photos returned by
// the single-assignment fetch.
type AssignmentDetail struct {
	Assignment Assignment
	Job        Job
	Parts      []Part
	Photos     []Photo
}
