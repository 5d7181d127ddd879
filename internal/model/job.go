package model

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusAvailable  JobStatus = "available"
	JobStatusAssigned   JobStatus = "assigned"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
	JobStatusOnHold     JobStatus = "on_hold"
)

type JobPriority string

const (
	JobPriorityLow    JobPriority = "low"
	JobPriorityMedium JobPriority = "medium"
	JobPriorityHigh   JobPriority = "high"
	JobPriorityUrgent JobPriority = "urgent"
)

// Job is a unit of requested service work, keyed by the service-order
// number assigned by dispatch.
type Job struct {
	ID                  uuid.UUID
	SONumber            string
	CustomerName        string
	CustomerLastName    string
	CustomerAddress     string
	CustomerCity        string
	CustomerState       string
	CustomerZip         string
	CustomerPhone       string
	CustomerEmail       string
	ApplianceType       string
	ApplianceBrand      string
	ModelNumber         string
	SerialNumber        string
	ServiceDescription  string
	ScheduledDate       time.Time
	ScheduledTimeWindow string
	Priority            JobPriority
	Status              JobStatus
	Notes               string
	InternalNotes       string
	CreatedBy           *uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// PriorityRank orders priorities for listing, highest first.
func PriorityRank(p JobPriority) int {
	switch p {
	case JobPriorityUrgent:
		return 4
	case JobPriorityHigh:
		return 3
	case JobPriorityMedium:
		return 2
	case JobPriorityLow:
		return 1
	default:
		return 0
	}
}

// JobStatusForAssignment maps an assignment status to the job status that
// must be mirrored when the assignment is persisted. The bool reports
// whether the job status changes at all.
func JobStatusForAssignment(s AssignmentStatus) (JobStatus, bool) {
	switch s {
	case AssignmentStatusCompleted:
		return JobStatusCompleted, true
	case AssignmentStatusInProgress, AssignmentStatusArrived:
		return JobStatusInProgress, true
	case AssignmentStatusCancelled:
		// Cancelling an assignment frees the job for reclaiming.
		return JobStatusAvailable, true
	default:
		return "", false
	}
}
