package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techmate/dispatch/internal/model"
	"github.com/techmate/dispatch/internal/service"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

const assignmentColumns = `
	id,
	job_id,
	vendor_id,
	status,
	assigned_at,
	scheduled_arrival,
	actual_arrival,
	work_started,
	completed_at,
	notes,
	vendor_notes,
	completion_notes,
	customer_signature,
	labor_hours,
	total_parts_cost,
	total_labor_cost,
	total_cost,
	reschedule_original_date,
	reschedule_new_date,
	reschedule_reason,
	reschedule_requested_at,
	invoice_number,
	invoice_generated_at,
	created_at,
	updated_at
`

type assignmentRow struct {
	ID                     uuid.UUID
	JobID                  uuid.UUID
	VendorID               uuid.UUID
	Status                 string
	AssignedAt             time.Time
	ScheduledArrival       *time.Time
	ActualArrival          *time.Time
	WorkStarted            *time.Time
	CompletedAt            *time.Time
	Notes                  *string
	VendorNotes            *string
	CompletionNotes        *string
	CustomerSignature      *string
	LaborHours             float64
	TotalPartsCost         float64
	TotalLaborCost         float64
	TotalCost              float64
	RescheduleOriginalDate *time.Time
	RescheduleNewDate      *time.Time
	RescheduleReason       *string
	RescheduleRequestedAt  *time.Time
	InvoiceNumber          *string
	InvoiceGeneratedAt     *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (row assignmentRow) toModel() model.Assignment {
	assignment := model.Assignment{
		ID:                row.ID,
		JobID:             row.JobID,
		VendorID:          row.VendorID,
		Status:            model.AssignmentStatus(row.Status),
		AssignedAt:        row.AssignedAt,
		ScheduledArrival:  row.ScheduledArrival,
		ActualArrival:     row.ActualArrival,
		WorkStarted:       row.WorkStarted,
		CompletedAt:       row.CompletedAt,
		Notes:             deref(row.Notes),
		VendorNotes:       deref(row.VendorNotes),
		CompletionNotes:   deref(row.CompletionNotes),
		CustomerSignature: deref(row.CustomerSignature),
		LaborHours:        row.LaborHours,
		TotalPartsCost:    row.TotalPartsCost,
		TotalLaborCost:    row.TotalLaborCost,
		TotalCost:         row.TotalCost,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}

	if row.RescheduleNewDate != nil {
		var originalDate, requestedAt time.Time
		if row.RescheduleOriginalDate != nil {
			originalDate = *row.RescheduleOriginalDate
		}
		if row.RescheduleRequestedAt != nil {
			requestedAt = *row.RescheduleRequestedAt
		}
		assignment.Reschedule = &model.RescheduleInfo{
			OriginalDate: originalDate,
			NewDate:      *row.RescheduleNewDate,
			Reason:       deref(row.RescheduleReason),
			RequestedAt:  requestedAt,
		}
	}

	if row.InvoiceNumber != nil && *row.InvoiceNumber != "" {
		var generatedAt time.Time
		if row.InvoiceGeneratedAt != nil {
			generatedAt = *row.InvoiceGeneratedAt
		}
		assignment.Invoice = &model.Invoice{
			InvoiceNumber: *row.InvoiceNumber,
			GeneratedAt:   generatedAt,
		}
	}

	return assignment
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO assignments (
			id,
			job_id,
			vendor_id,
			status,
			assigned_at,
			scheduled_arrival,
			notes,
			vendor_notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		assignment.ID,
		assignment.JobID,
		assignment.VendorID,
		assignment.Status,
		assignment.AssignedAt,
		assignment.ScheduledArrival,
		assignment.Notes,
		assignment.VendorNotes,
	).Error
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	var row assignmentRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = ? LIMIT 1`, id,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	assignment := row.toModel()
	return &assignment, nil
}

func (r *AssignmentRepository) GetActiveByJobAndVendor(ctx context.Context, jobID, vendorID uuid.UUID) (*model.Assignment, error) {
	var row assignmentRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+assignmentColumns+`
		FROM assignments
		WHERE job_id = ? AND vendor_id = ? AND status <> 'cancelled'
		LIMIT 1
	`, jobID, vendorID).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	assignment := row.toModel()
	return &assignment, nil
}

func (r *AssignmentRepository) List(ctx context.Context, filter service.AssignmentFilter) ([]model.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE 1=1`
	var args []interface{}

	if filter.VendorID != nil {
		query += ` AND vendor_id = ?`
		args = append(args, *filter.VendorID)
	}
	if filter.Status != nil {
		query += ` AND status = ?`
		args = append(args, *filter.Status)
	}
	if filter.DateFrom != nil {
		query += ` AND scheduled_arrival >= ?`
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query += ` AND scheduled_arrival <= ?`
		args = append(args, *filter.DateTo)
	}
	query += ` ORDER BY scheduled_arrival ASC NULLS LAST`

	var rows []assignmentRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	assignments := make([]model.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, row.toModel())
	}
	return assignments, nil
}

func (r *AssignmentRepository) Update(ctx context.Context, assignment *model.Assignment) error {
	var (
		rescheduleOriginal, rescheduleNew, rescheduleRequested *time.Time
		rescheduleReason                                       *string
		invoiceNumber                                          *string
		invoiceGeneratedAt                                     *time.Time
	)
	if assignment.Reschedule != nil {
		rescheduleOriginal = &assignment.Reschedule.OriginalDate
		rescheduleNew = &assignment.Reschedule.NewDate
		rescheduleReason = &assignment.Reschedule.Reason
		rescheduleRequested = &assignment.Reschedule.RequestedAt
	}
	if assignment.Invoice != nil {
		invoiceNumber = &assignment.Invoice.InvoiceNumber
		invoiceGeneratedAt = &assignment.Invoice.GeneratedAt
	}

	return r.db.WithContext(ctx).Exec(`
		UPDATE assignments
		SET
			status = ?,
			scheduled_arrival = ?,
			actual_arrival = ?,
			work_started = ?,
			completed_at = ?,
			notes = ?,
			vendor_notes = ?,
			completion_notes = ?,
			customer_signature = ?,
			labor_hours = ?,
			total_parts_cost = ?,
			total_labor_cost = ?,
			total_cost = ?,
			reschedule_original_date = ?,
			reschedule_new_date = ?,
			reschedule_reason = ?,
			reschedule_requested_at = ?,
			invoice_number = ?,
			invoice_generated_at = ?,
			updated_at = NOW()
		WHERE id = ?
	`,
		assignment.Status,
		assignment.ScheduledArrival,
		assignment.ActualArrival,
		assignment.WorkStarted,
		assignment.CompletedAt,
		assignment.Notes,
		assignment.VendorNotes,
		assignment.CompletionNotes,
		assignment.CustomerSignature,
		assignment.LaborHours,
		assignment.TotalPartsCost,
		assignment.TotalLaborCost,
		assignment.TotalCost,
		rescheduleOriginal,
		rescheduleNew,
		rescheduleReason,
		rescheduleRequested,
		invoiceNumber,
		invoiceGeneratedAt,
		assignment.ID,
	).Error
}

func (r *AssignmentRepository) UpdateCosts(ctx context.Context, id uuid.UUID, totalPartsCost, totalCost float64) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE assignments
		SET total_parts_cost = ?, total_cost = ?, updated_at = NOW()
		WHERE id = ?
	`, totalPartsCost, totalCost, id).Error
}
