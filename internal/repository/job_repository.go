package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techmate/dispatch/internal/model"
	"github.com/techmate/dispatch/internal/service"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `
	id,
	so_number,
	customer_name,
	customer_last_name,
	customer_address,
	customer_city,
	customer_state,
	customer_zip,
	customer_phone,
	customer_email,
	appliance_type,
	appliance_brand,
	model_number,
	serial_number,
	service_description,
	scheduled_date,
	scheduled_time_window,
	priority,
	status,
	notes,
	internal_notes,
	created_by,
	created_at,
	updated_at
`

type jobRow struct {
	ID                  uuid.UUID
	SoNumber            string
	CustomerName        string
	CustomerLastName    string
	CustomerAddress     string
	CustomerCity        string
	CustomerState       string
	CustomerZip         string
	CustomerPhone       string
	CustomerEmail       *string
	ApplianceType       string
	ApplianceBrand      *string
	ModelNumber         *string
	SerialNumber        *string
	ServiceDescription  string
	ScheduledDate       time.Time
	ScheduledTimeWindow string
	Priority            string
	Status              string
	Notes               *string
	InternalNotes       *string
	CreatedBy           *uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (row jobRow) toModel() model.Job {
	return model.Job{
		ID:                  row.ID,
		SONumber:            row.SoNumber,
		CustomerName:        row.CustomerName,
		CustomerLastName:    row.CustomerLastName,
		CustomerAddress:     row.CustomerAddress,
		CustomerCity:        row.CustomerCity,
		CustomerState:       row.CustomerState,
		CustomerZip:         row.CustomerZip,
		CustomerPhone:       row.CustomerPhone,
		CustomerEmail:       deref(row.CustomerEmail),
		ApplianceType:       row.ApplianceType,
		ApplianceBrand:      deref(row.ApplianceBrand),
		ModelNumber:         deref(row.ModelNumber),
		SerialNumber:        deref(row.SerialNumber),
		ServiceDescription:  row.ServiceDescription,
		ScheduledDate:       row.ScheduledDate,
		ScheduledTimeWindow: row.ScheduledTimeWindow,
		Priority:            model.JobPriority(row.Priority),
		Status:              model.JobStatus(row.Status),
		Notes:               deref(row.Notes),
		InternalNotes:       deref(row.InternalNotes),
		CreatedBy:           row.CreatedBy,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *JobRepository) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO jobs (
			id,
			so_number,
			customer_name,
			customer_last_name,
			customer_address,
			customer_city,
			customer_state,
			customer_zip,
			customer_phone,
			customer_email,
			appliance_type,
			appliance_brand,
			model_number,
			serial_number,
			service_description,
			scheduled_date,
			scheduled_time_window,
			priority,
			status,
			notes,
			internal_notes,
			created_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		job.ID,
		job.SONumber,
		job.CustomerName,
		job.CustomerLastName,
		job.CustomerAddress,
		job.CustomerCity,
		job.CustomerState,
		job.CustomerZip,
		job.CustomerPhone,
		job.CustomerEmail,
		job.ApplianceType,
		job.ApplianceBrand,
		job.ModelNumber,
		job.SerialNumber,
		job.ServiceDescription,
		job.ScheduledDate,
		job.ScheduledTimeWindow,
		job.Priority,
		job.Status,
		job.Notes,
		job.InternalNotes,
		job.CreatedBy,
	).Error
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	var row jobRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT `+jobColumns+` FROM jobs WHERE id = ? LIMIT 1`, id,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	job := row.toModel()
	return &job, nil
}

func (r *JobRepository) ListAvailable(ctx context.Context, filter service.JobFilter) ([]model.Job, int64, error) {
	where := `status = 'available'`
	var args []interface{}

	if filter.City != "" {
		where += ` AND customer_city ILIKE ?`
		args = append(args, "%"+strings.TrimSpace(filter.City)+"%")
	}
	if filter.ApplianceType != "" {
		where += ` AND appliance_type ILIKE ?`
		args = append(args, "%"+strings.TrimSpace(filter.ApplianceType)+"%")
	}

	var total int64
	if err := r.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM jobs WHERE `+where, args...,
	).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	listArgs := append(append([]interface{}{}, args...), filter.PageSize, offset)

	var rows []jobRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+jobColumns+`
		FROM jobs
		WHERE `+where+`
		ORDER BY
			scheduled_date ASC,
			CASE priority
				WHEN 'urgent' THEN 4
				WHEN 'high' THEN 3
				WHEN 'medium' THEN 2
				ELSE 1
			END DESC
		LIMIT ? OFFSET ?
	`, listArgs...).Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	jobs := make([]model.Job, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, row.toModel())
	}
	return jobs, total, nil
}

func (r *JobRepository) Update(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE jobs
		SET
			customer_phone = ?,
			customer_email = ?,
			service_description = ?,
			scheduled_date = ?,
			scheduled_time_window = ?,
			priority = ?,
			notes = ?,
			internal_notes = ?,
			updated_at = NOW()
		WHERE id = ?
	`,
		job.CustomerPhone,
		job.CustomerEmail,
		job.ServiceDescription,
		job.ScheduledDate,
		job.ScheduledTimeWindow,
		job.Priority,
		job.Notes,
		job.InternalNotes,
		job.ID,
	).Error
}

func (r *JobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.JobStatus) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE jobs SET status = ?, updated_at = NOW() WHERE id = ?
	`, status, id).Error
}

func (r *JobRepository) UpdateSchedule(ctx context.Context, id uuid.UUID, date time.Time, window string) error {
	if window == "" {
		return r.db.WithContext(ctx).Exec(`
			UPDATE jobs SET scheduled_date = ?, updated_at = NOW() WHERE id = ?
		`, date, id).Error
	}
	return r.db.WithContext(ctx).Exec(`
		UPDATE jobs SET scheduled_date = ?, scheduled_time_window = ?, updated_at = NOW() WHERE id = ?
	`, date, window, id).Error
}

func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Assignments, parts and photos follow through ON DELETE CASCADE.
	return r.db.WithContext(ctx).Exec(`DELETE FROM jobs WHERE id = ?`, id).Error
}

// ClaimAvailable is the compare-and-set behind the claim coordinator: a
// single conditional UPDATE whose predicate and effect are evaluated as
// one statement by Postgres. Zero rows affected means the job was not
// available at the moment of the write.
func (r *JobRepository) ClaimAvailable(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE jobs
		SET status = 'assigned', updated_at = NOW()
		WHERE id = ? AND status = 'available'
	`, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
