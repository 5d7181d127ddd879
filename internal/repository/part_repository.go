package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techmate/dispatch/internal/model"
)

type PartRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) *PartRepository {
	return &PartRepository{db: db}
}

type partRow struct {
	ID           uuid.UUID
	AssignmentID uuid.UUID
	PartNumber   string
	PartName     string
	Quantity     int
	UnitCost     float64
	LineTotal    float64
	Notes        *string
	AddedBy      *uuid.UUID
	CreatedAt    time.Time
}

func (row partRow) toModel() model.Part {
	return model.Part{
		ID:           row.ID,
		AssignmentID: row.AssignmentID,
		PartNumber:   row.PartNumber,
		PartName:     row.PartName,
		Quantity:     row.Quantity,
		UnitCost:     row.UnitCost,
		LineTotal:    row.LineTotal,
		Notes:        deref(row.Notes),
		AddedBy:      row.AddedBy,
		CreatedAt:    row.CreatedAt,
	}
}

func (r *PartRepository) Create(ctx context.Context, part *model.Part) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO parts (
			id,
			assignment_id,
			part_number,
			part_name,
			quantity,
			unit_cost,
			line_total,
			notes,
			added_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		part.ID,
		part.AssignmentID,
		part.PartNumber,
		part.PartName,
		part.Quantity,
		part.UnitCost,
		part.LineTotal,
		part.Notes,
		part.AddedBy,
	).Error
}

func (r *PartRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Part, error) {
	var row partRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, assignment_id, part_number, part_name, quantity, unit_cost, line_total, notes, added_by, created_at
		FROM parts
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	part := row.toModel()
	return &part, nil
}

func (r *PartRepository) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]model.Part, error) {
	var rows []partRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, assignment_id, part_number, part_name, quantity, unit_cost, line_total, notes, added_by, created_at
		FROM parts
		WHERE assignment_id = ?
		ORDER BY created_at ASC
	`, assignmentID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	parts := make([]model.Part, 0, len(rows))
	for _, row := range rows {
		parts = append(parts, row.toModel())
	}
	return parts, nil
}

func (r *PartRepository) SumLineTotals(ctx context.Context, assignmentID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(line_total), 0) FROM parts WHERE assignment_id = ?
	`, assignmentID).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM parts WHERE id = ?`, id).Error
}
