package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/techmate/dispatch/internal/model"
)

// JobService owns the job catalog and the claim coordinator.
type JobService struct {
	jobs        JobStore
	assignments AssignmentStore
	vendors     VendorStore
	log         zerolog.Logger
}

func NewJobService(jobs JobStore, assignments AssignmentStore, vendors VendorStore, log zerolog.Logger) *JobService {
	return &JobService{
		jobs:        jobs,
		assignments: assignments,
		vendors:     vendors,
		log:         log,
	}
}

type CreateJobInput struct {
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
	Priority            model.JobPriority
	Notes               string
	InternalNotes       string
}

func (s *JobService) Create(ctx context.Context, principal model.Principal, input CreateJobInput) (*model.Job, error) {
	if err := validateCreateJob(input); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = model.JobPriorityMedium
	}

	userID := principal.UserID
	job := &model.Job{
		ID:                  uuid.New(),
		SONumber:            strings.TrimSpace(input.SONumber),
		CustomerName:        input.CustomerName,
		CustomerLastName:    input.CustomerLastName,
		CustomerAddress:     input.CustomerAddress,
		CustomerCity:        input.CustomerCity,
		CustomerState:       input.CustomerState,
		CustomerZip:         input.CustomerZip,
		CustomerPhone:       input.CustomerPhone,
		CustomerEmail:       input.CustomerEmail,
		ApplianceType:       input.ApplianceType,
		ApplianceBrand:      input.ApplianceBrand,
		ModelNumber:         input.ModelNumber,
		SerialNumber:        input.SerialNumber,
		ServiceDescription:  input.ServiceDescription,
		ScheduledDate:       input.ScheduledDate,
		ScheduledTimeWindow: input.ScheduledTimeWindow,
		Priority:            priority,
		Status:              model.JobStatusAvailable,
		Notes:               input.Notes,
		InternalNotes:       input.InternalNotes,
		CreatedBy:           &userID,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func validateCreateJob(input CreateJobInput) error {
	required := map[string]string{
		"so_number":             input.SONumber,
		"customer_name":         input.CustomerName,
		"customer_last_name":    input.CustomerLastName,
		"customer_address":      input.CustomerAddress,
		"customer_city":         input.CustomerCity,
		"customer_state":        input.CustomerState,
		"customer_zip":          input.CustomerZip,
		"customer_phone":        input.CustomerPhone,
		"appliance_type":        input.ApplianceType,
		"service_description":   input.ServiceDescription,
		"scheduled_time_window": input.ScheduledTimeWindow,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
		}
	}
	if input.ScheduledDate.IsZero() {
		return fmt.Errorf("%w: scheduled_date is required", ErrInvalidInput)
	}
	switch input.Priority {
	case "", model.JobPriorityLow, model.JobPriorityMedium, model.JobPriorityHigh, model.JobPriorityUrgent:
	default:
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, input.Priority)
	}
	return nil
}

func (s *JobService) Get(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("%w: job %s", ErrNotFound, id)
	}
	return job, nil
}

type AvailableJobsPage struct {
	Jobs       []model.Job
	Page       int
	PageSize   int
	Total      int64
	TotalPages int64
}

// ListAvailable returns open jobs ordered by scheduled date ascending then
// priority descending. Internal notes never leave the dispatch side; the
// handler strips them for vendor-facing reads.
func (s *JobService) ListAvailable(ctx context.Context, filter JobFilter) (*AvailableJobsPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	jobs, total, err := s.jobs.ListAvailable(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := total / int64(filter.PageSize)
	if total%int64(filter.PageSize) != 0 {
		totalPages++
	}

	return &AvailableJobsPage{
		Jobs:       jobs,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

type UpdateJobInput struct {
	CustomerPhone       *string
	CustomerEmail       *string
	ServiceDescription  *string
	ScheduledDate       *time.Time
	ScheduledTimeWindow *string
	Priority            *model.JobPriority
	Notes               *string
	InternalNotes       *string
}

func (s *JobService) Update(ctx context.Context, id uuid.UUID, input UpdateJobInput) (*model.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CustomerPhone != nil {
		job.CustomerPhone = *input.CustomerPhone
	}
	if input.CustomerEmail != nil {
		job.CustomerEmail = *input.CustomerEmail
	}
	if input.ServiceDescription != nil {
		job.ServiceDescription = *input.ServiceDescription
	}
	if input.ScheduledDate != nil {
		job.ScheduledDate = *input.ScheduledDate
	}
	if input.ScheduledTimeWindow != nil {
		job.ScheduledTimeWindow = *input.ScheduledTimeWindow
	}
	if input.Priority != nil {
		switch *input.Priority {
		case model.JobPriorityLow, model.JobPriorityMedium, model.JobPriorityHigh, model.JobPriorityUrgent:
			job.Priority = *input.Priority
		default:
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *input.Priority)
		}
	}
	if input.Notes != nil {
		job.Notes = *input.Notes
	}
	if input.InternalNotes != nil {
		job.InternalNotes = *input.InternalNotes
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Delete removes a job. Assignments, parts and photos go with it through
// the cascade on the storage side.
func (s *JobService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, id)
}

type ClaimResult struct {
	AssignmentID uuid.UUID
	JobID        uuid.UUID
	VendorID     uuid.UUID
	Status       model.AssignmentStatus
	ClaimedAt    time.Time
}

// Claim gives at-most-one-winner semantics for a vendor taking a job.
// The available -> assigned job transition is a single conditional write;
// losing it means another claimant got there first and no assignment is
// created.
func (s *JobService) Claim(ctx context.Context, principal model.Principal, jobID uuid.UUID, vendorNotes string) (*ClaimResult, error) {
	if principal.VendorID == nil {
		return nil, fmt.Errorf("%w: no vendor profile associated with this user", ErrPermissionDenied)
	}
	vendorID := *principal.VendorID

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("%w: job %s", ErrNotFound, jobID)
	}

	existing, err := s.assignments.GetActiveByJobAndVendor(ctx, jobID, vendorID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateClaim
	}

	claimed, err := s.jobs.ClaimAvailable(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, fmt.Errorf("%w: job %s", ErrJobUnavailable, jobID)
	}

	scheduledArrival := job.ScheduledDate
	assignment := &model.Assignment{
		ID:               uuid.New(),
		JobID:            jobID,
		VendorID:         vendorID,
		Status:           model.AssignmentStatusAssigned,
		AssignedAt:       time.Now().UTC(),
		ScheduledArrival: &scheduledArrival,
		VendorNotes:      vendorNotes,
	}

	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, err
	}

	if err := s.vendors.IncrementTotalJobs(ctx, vendorID, 1); err != nil {
		// The claim itself stands; the counter is advisory.
		s.log.Error().Err(err).Str("vendor_id", vendorID.String()).Msg("increment vendor total jobs failed")
	}

	return &ClaimResult{
		AssignmentID: assignment.ID,
		JobID:        jobID,
		VendorID:     vendorID,
		Status:       assignment.Status,
		ClaimedAt:    assignment.AssignedAt,
	}, nil
}

type BulkClaimConfirmed struct {
	JobID        uuid.UUID
	AssignmentID uuid.UUID
}

type BulkClaimFailed struct {
	JobID  uuid.UUID
	Reason string
}

type BulkClaimResult struct {
	Confirmed []BulkClaimConfirmed
	Failed    []BulkClaimFailed
}

// BulkClaim processes each job id independently; a lost or invalid claim
// never rolls back the others.
func (s *JobService) BulkClaim(ctx context.Context, principal model.Principal, jobIDs []uuid.UUID) (*BulkClaimResult, error) {
	if principal.VendorID == nil {
		return nil, fmt.Errorf("%w: no vendor profile associated with this user", ErrPermissionDenied)
	}
	if len(jobIDs) == 0 {
		return nil, fmt.Errorf("%w: job ids are required", ErrInvalidInput)
	}

	result := &BulkClaimResult{}
	for _, jobID := range jobIDs {
		claim, err := s.Claim(ctx, principal, jobID, "")
		if err != nil {
			result.Failed = append(result.Failed, BulkClaimFailed{
				JobID:  jobID,
				Reason: err.Error(),
			})
			continue
		}
		result.Confirmed = append(result.Confirmed, BulkClaimConfirmed{
			JobID:        jobID,
			AssignmentID: claim.AssignmentID,
		})
	}
	return result, nil
}
