package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techmate/dispatch/internal/model"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

const photoColumns = `
	id,
	assignment_id,
	part_id,
	filename,
	original_name,
	url,
	storage_key,
	mime_type,
	size,
	description,
	photo_type,
	uploaded_by,
	created_at
`

type photoRow struct {
	ID           uuid.UUID
	AssignmentID uuid.UUID
	PartID       *uuid.UUID
	Filename     string
	OriginalName *string
	URL          string
	StorageKey   *string
	MimeType     *string
	Size         *int64
	Description  *string
	PhotoType    string
	UploadedBy   *uuid.UUID
	CreatedAt    time.Time
}

func (row photoRow) toModel() model.Photo {
	var size int64
	if row.Size != nil {
		size = *row.Size
	}
	return model.Photo{
		ID:           row.ID,
		AssignmentID: row.AssignmentID,
		PartID:       row.PartID,
		Filename:     row.Filename,
		OriginalName: deref(row.OriginalName),
		URL:          row.URL,
		StorageKey:   deref(row.StorageKey),
		MimeType:     deref(row.MimeType),
		Size:         size,
		Description:  deref(row.Description),
		PhotoType:    model.PhotoType(row.PhotoType),
		UploadedBy:   row.UploadedBy,
		CreatedAt:    row.CreatedAt,
	}
}

func (r *PhotoRepository) Create(ctx context.Context, photo *model.Photo) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO photos (
			id,
			assignment_id,
			part_id,
			filename,
			original_name,
			url,
			storage_key,
			mime_type,
			size,
			description,
			photo_type,
			uploaded_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		photo.ID,
		photo.AssignmentID,
		photo.PartID,
		photo.Filename,
		photo.OriginalName,
		photo.URL,
		photo.StorageKey,
		photo.MimeType,
		photo.Size,
		photo.Description,
		photo.PhotoType,
		photo.UploadedBy,
	).Error
}

func (r *PhotoRepository) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]model.Photo, error) {
	var rows []photoRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+photoColumns+`
		FROM photos
		WHERE assignment_id = ?
		ORDER BY created_at ASC
	`, assignmentID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return photoRowsToModels(rows), nil
}

func (r *PhotoRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Photo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []photoRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT `+photoColumns+` FROM photos WHERE id IN ?`, ids,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return photoRowsToModels(rows), nil
}

func (r *PhotoRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Exec(`DELETE FROM photos WHERE id IN ?`, ids).Error
}

func photoRowsToModels(rows []photoRow) []model.Photo {
	photos := make([]model.Photo, 0, len(rows))
	for _, row := range rows {
		photos = append(photos, row.toModel())
	}
	return photos
}
