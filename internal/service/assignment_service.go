package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/techmate/dispatch/internal/model"
)

// AssignmentService owns the assignment state machine. Every status
// persist is followed by an explicit job-status mirror; there are no
// storage-side hooks.
type AssignmentService struct {
	assignments   AssignmentStore
	jobs          JobStore
	parts         PartStore
	photos        PhotoStore
	vendors       VendorStore
	invoicePrefix string
	log           zerolog.Logger

	now func() time.Time
}

func NewAssignmentService(
	assignments AssignmentStore,
	jobs JobStore,
	parts PartStore,
	photos PhotoStore,
	vendors VendorStore,
	invoicePrefix string,
	log zerolog.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignments:   assignments,
		jobs:          jobs,
		parts:         parts,
		photos:        photos,
		vendors:       vendors,
		invoicePrefix: invoicePrefix,
		log:           log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// getOwned loads an assignment and enforces vendor scoping: a
// vendor-scoped caller may only touch assignments bound to their own
// vendor. Fails closed on mismatch.
func (s *AssignmentService) getOwned(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, fmt.Errorf("%w: assignment %s", ErrNotFound, id)
	}
	if !principal.OwnsVendor(assignment.VendorID) {
		return nil, fmt.Errorf("%w: assignment belongs to another vendor", ErrPermissionDenied)
	}
	return assignment, nil
}

func (s *AssignmentService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.AssignmentDetail, error) {
	assignment, err := s.getOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, assignment.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("%w: job %s", ErrNotFound, assignment.JobID)
	}

	parts, err := s.parts.ListByAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	photos, err := s.photos.ListByAssignment(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.AssignmentDetail{
		Assignment: *assignment,
		Job:        *job,
		Parts:      parts,
		Photos:     photos,
	}, nil
}

// List returns assignments matching the filter. Vendor-scoped callers are
// always restricted to their own vendor regardless of the filter.
func (s *AssignmentService) List(ctx context.Context, principal model.Principal, filter AssignmentFilter) ([]model.Assignment, error) {
	if principal.VendorScoped() {
		filter.VendorID = principal.VendorID
	}
	if filter.Status != nil && !model.ValidAssignmentStatus(*filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *filter.Status)
	}
	return s.assignments.List(ctx, filter)
}

type UpdateStatusInput struct {
	Status            *model.AssignmentStatus
	ActualArrival     *time.Time
	WorkStarted       *time.Time
	CompletedAt       *time.Time
	Notes             *string
	CompletionNotes   *string
	CustomerSignature *string
	LaborHours        *float64
	TotalLaborCost    *float64
}

// UpdateStatus applies a status transition and/or field updates. Invalid
// edges in the lifecycle graph are rejected rather than silently applied,
// so operator mistakes surface early. After the persist the job status is
// mirrored.
func (s *AssignmentService) UpdateStatus(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateStatusInput) (*model.Assignment, error) {
	assignment, err := s.getOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	completedNow := false
	if input.Status != nil {
		next := *input.Status
		if !model.ValidAssignmentStatus(next) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, next)
		}
		if next != assignment.Status {
			if !model.CanTransition(assignment.Status, next) {
				return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, assignment.Status, next)
			}
			assignment.Status = next

			switch next {
			case model.AssignmentStatusArrived:
				if assignment.ActualArrival == nil {
					arrival := s.now()
					if input.ActualArrival != nil {
						arrival = *input.ActualArrival
					}
					assignment.ActualArrival = &arrival
				}
			case model.AssignmentStatusInProgress:
				if assignment.WorkStarted == nil {
					started := s.now()
					if input.WorkStarted != nil {
						started = *input.WorkStarted
					}
					assignment.WorkStarted = &started
				}
			case model.AssignmentStatusCompleted:
				completed := s.now()
				if input.CompletedAt != nil {
					completed = *input.CompletedAt
				}
				assignment.CompletedAt = &completed
				completedNow = true
				s.ensureInvoice(assignment)
			}
		}
	}

	if input.ActualArrival != nil {
		assignment.ActualArrival = input.ActualArrival
	}
	if input.WorkStarted != nil {
		assignment.WorkStarted = input.WorkStarted
	}
	if input.CompletedAt != nil && assignment.CompletedAt == nil {
		assignment.CompletedAt = input.CompletedAt
	}
	if input.Notes != nil {
		assignment.Notes = *input.Notes
	}
	if input.CompletionNotes != nil {
		assignment.CompletionNotes = *input.CompletionNotes
	}
	if input.CustomerSignature != nil {
		assignment.CustomerSignature = *input.CustomerSignature
	}
	if input.LaborHours != nil {
		if *input.LaborHours < 0 {
			return nil, fmt.Errorf("%w: labor_hours must not be negative", ErrInvalidInput)
		}
		assignment.LaborHours = *input.LaborHours
	}
	if input.TotalLaborCost != nil {
		if *input.TotalLaborCost < 0 {
			return nil, fmt.Errorf("%w: total_labor_cost must not be negative", ErrInvalidInput)
		}
		assignment.TotalLaborCost = *input.TotalLaborCost
		assignment.TotalCost = assignment.TotalPartsCost + assignment.TotalLaborCost
	}

	if err := s.assignments.Update(ctx, assignment); err != nil {
		return nil, err
	}

	if completedNow {
		if err := s.vendors.IncrementCompletedJobs(ctx, assignment.VendorID, 1); err != nil {
			s.log.Error().Err(err).Str("vendor_id", assignment.VendorID.String()).Msg("increment vendor completed jobs failed")
		}
	}

	if input.Status != nil {
		if err := s.mirrorJob(ctx, assignment); err != nil {
			return nil, err
		}
	}

	return assignment, nil
}

// ensureInvoice generates the invoice number at most once per assignment.
func (s *AssignmentService) ensureInvoice(assignment *model.Assignment) {
	if assignment.Invoice != nil && assignment.Invoice.InvoiceNumber != "" {
		return
	}
	id := assignment.ID.String()
	assignment.Invoice = &model.Invoice{
		InvoiceNumber: fmt.Sprintf("%s-%d-%s", s.invoicePrefix, s.now().Year(), id[len(id)-6:]),
		GeneratedAt:   s.now(),
	}
}

// mirrorJob pushes the assignment status onto the linked job. Runs after
// every status persist as an explicit step, not a storage trigger.
func (s *AssignmentService) mirrorJob(ctx context.Context, assignment *model.Assignment) error {
	jobStatus, changed := model.JobStatusForAssignment(assignment.Status)
	if !changed {
		return nil
	}
	return s.jobs.UpdateStatus(ctx, assignment.JobID, jobStatus)
}

type RescheduleInput struct {
	NewDate     time.Time
	NewWindow   string
	Reason      string
	VendorNotes string
}

// Reschedule records the reschedule history, moves the scheduled arrival
// and propagates the new date and window to the linked job's display
// fields.
func (s *AssignmentService) Reschedule(ctx context.Context, principal model.Principal, id uuid.UUID, input RescheduleInput) (*model.Assignment, error) {
	if input.NewDate.IsZero() {
		return nil, fmt.Errorf("%w: new scheduled date is required", ErrInvalidInput)
	}

	assignment, err := s.getOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if !model.CanTransition(assignment.Status, model.AssignmentStatusRescheduled) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, assignment.Status, model.AssignmentStatusRescheduled)
	}

	var originalDate time.Time
	if assignment.ScheduledArrival != nil {
		originalDate = *assignment.ScheduledArrival
	}

	assignment.Reschedule = &model.RescheduleInfo{
		OriginalDate: originalDate,
		NewDate:      input.NewDate,
		Reason:       input.Reason,
		RequestedAt:  s.now(),
	}
	newDate := input.NewDate
	assignment.ScheduledArrival = &newDate
	assignment.Status = model.AssignmentStatusRescheduled
	if input.VendorNotes != "" {
		assignment.VendorNotes = input.VendorNotes
	}

	if err := s.assignments.Update(ctx, assignment); err != nil {
		return nil, err
	}

	if err := s.jobs.UpdateSchedule(ctx, assignment.JobID, input.NewDate, input.NewWindow); err != nil {
		return nil, err
	}

	return assignment, nil
}
