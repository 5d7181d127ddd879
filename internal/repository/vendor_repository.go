package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techmate/dispatch/internal/model"
)

type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

const vendorColumns = `
	id,
	name,
	email,
	phone_number,
	street,
	city,
	state,
	zip,
	is_active,
	specialties,
	notes,
	total_jobs,
	completed_jobs,
	created_at,
	updated_at
`

type vendorRow struct {
	ID            uuid.UUID
	Name          string
	Email         string
	PhoneNumber   string
	Street        *string
	City          *string
	State         *string
	Zip           *string
	IsActive      bool
	Specialties   *string
	Notes         *string
	TotalJobs     int64
	CompletedJobs int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (row vendorRow) toModel() model.Vendor {
	return model.Vendor{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		PhoneNumber: row.PhoneNumber,
		Street:      deref(row.Street),
		City:        deref(row.City),
		State:       deref(row.State),
		Zip:         deref(row.Zip),
		IsActive:    row.IsActive,
		Specialties: splitList(deref(row.Specialties)),
		Notes:       deref(row.Notes),
		Stats: model.VendorStats{
			TotalJobs:     row.TotalJobs,
			CompletedJobs: row.CompletedJobs,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

func (r *VendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO vendors (
			id,
			name,
			email,
			phone_number,
			street,
			city,
			state,
			zip,
			is_active,
			specialties,
			notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		vendor.ID,
		vendor.Name,
		vendor.Email,
		vendor.PhoneNumber,
		vendor.Street,
		vendor.City,
		vendor.State,
		vendor.Zip,
		vendor.IsActive,
		strings.Join(vendor.Specialties, ","),
		vendor.Notes,
	).Error
}

func (r *VendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	var row vendorRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT `+vendorColumns+` FROM vendors WHERE id = ? LIMIT 1`, id,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	vendor := row.toModel()
	return &vendor, nil
}

func (r *VendorRepository) List(ctx context.Context) ([]model.Vendor, error) {
	var rows []vendorRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT ` + vendorColumns + ` FROM vendors ORDER BY name ASC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	vendors := make([]model.Vendor, 0, len(rows))
	for _, row := range rows {
		vendors = append(vendors, row.toModel())
	}
	return vendors, nil
}

// Counter updates are relative so concurrent lifecycle events never lose
// increments to a read-modify-write race.
func (r *VendorRepository) IncrementTotalJobs(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE vendors SET total_jobs = total_jobs + ?, updated_at = NOW() WHERE id = ?
	`, delta, id).Error
}

func (r *VendorRepository) IncrementCompletedJobs(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE vendors SET completed_jobs = completed_jobs + ?, updated_at = NOW() WHERE id = ?
	`, delta, id).Error
}
