package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/techmate/dispatch/internal/model"
)

// Store contracts consumed by the services. The gorm repositories
// implement them in production; tests substitute in-memory fakes.

type JobFilter struct {
	City          string
	ApplianceType string
	Page          int
	PageSize      int
}

type AssignmentFilter struct {
	VendorID *uuid.UUID
	Status   *model.AssignmentStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

type JobStore interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Job, error)
	ListAvailable(ctx context.Context, filter JobFilter) ([]model.Job, int64, error)
	Update(ctx context.Context, job *model.Job) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.JobStatus) error
	// UpdateSchedule moves the job's display schedule. An empty window
	// leaves the current time window untouched.
	UpdateSchedule(ctx context.Context, id uuid.UUID, date time.Time, window string) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ClaimAvailable performs the atomic available -> assigned transition
	// as a single conditional write. It reports false when the job was
	// not in available status at the moment of the write.
	ClaimAvailable(ctx context.Context, id uuid.UUID) (bool, error)
}

type AssignmentStore interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error)
	GetActiveByJobAndVendor(ctx context.Context, jobID, vendorID uuid.UUID) (*model.Assignment, error)
	List(ctx context.Context, filter AssignmentFilter) ([]model.Assignment, error)
	Update(ctx context.Context, assignment *model.Assignment) error
	UpdateCosts(ctx context.Context, id uuid.UUID, totalPartsCost, totalCost float64) error
}

type PartStore interface {
	Create(ctx context.Context, part *model.Part) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Part, error)
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]model.Part, error)
	SumLineTotals(ctx context.Context, assignmentID uuid.UUID) (float64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type VendorStore interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error)
	List(ctx context.Context) ([]model.Vendor, error)
	IncrementTotalJobs(ctx context.Context, id uuid.UUID, delta int64) error
	IncrementCompletedJobs(ctx context.Context, id uuid.UUID, delta int64) error
}

type PhotoStore interface {
	Create(ctx context.Context, photo *model.Photo) error
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]model.Photo, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Photo, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
}
