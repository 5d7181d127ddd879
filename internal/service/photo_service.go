package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/techmate/dispatch/internal/model"
	"github.com/techmate/dispatch/internal/storage"
)

// PhotoService attaches uploaded images to assignments and parts. Bytes
// go through object storage; only the reference is persisted.
type PhotoService struct {
	photos      PhotoStore
	parts       PartStore
	assignments AssignmentStore
	store       storage.Store
}

func NewPhotoService(photos PhotoStore, parts PartStore, assignments AssignmentStore, store storage.Store) *PhotoService {
	return &PhotoService{
		photos:      photos,
		parts:       parts,
		assignments: assignments,
		store:       store,
	}
}

type UploadFile struct {
	OriginalName string
	MimeType     string
	Size         int64
	Content      []byte
}

// AttachToPart uploads the files and records them against the part and
// its assignment.
func (s *PhotoService) AttachToPart(ctx context.Context, principal model.Principal, partID uuid.UUID, description string, files []UploadFile) ([]model.Photo, error) {
	part, err := s.parts.GetByID(ctx, partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("%w: part %s", ErrNotFound, partID)
	}
	pid := part.ID
	return s.attach(ctx, principal, part.AssignmentID, &pid, model.PhotoTypePart, description, files)
}

// AttachToAssignment uploads the files and records them against the
// assignment directly.
func (s *PhotoService) AttachToAssignment(ctx context.Context, principal model.Principal, assignmentID uuid.UUID, photoType model.PhotoType, description string, files []UploadFile) ([]model.Photo, error) {
	if photoType == "" {
		photoType = model.PhotoTypeGeneral
	}
	return s.attach(ctx, principal, assignmentID, nil, photoType, description, files)
}

func (s *PhotoService) attach(ctx context.Context, principal model.Principal, assignmentID uuid.UUID, partID *uuid.UUID, photoType model.PhotoType, description string, files []UploadFile) ([]model.Photo, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no photos uploaded", ErrInvalidInput)
	}

	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, fmt.Errorf("%w: assignment %s", ErrNotFound, assignmentID)
	}
	if !principal.OwnsVendor(assignment.VendorID) {
		return nil, fmt.Errorf("%w: assignment belongs to another vendor", ErrPermissionDenied)
	}

	userID := principal.UserID
	uploaded := make([]model.Photo, 0, len(files))
	for _, file := range files {
		id := uuid.New()
		filename := id.String() + filepath.Ext(file.OriginalName)
		key := fmt.Sprintf("photos/%s/%s", assignmentID, filename)

		ref, err := s.store.Put(ctx, key, file.MimeType, file.Content)
		if err != nil {
			return nil, fmt.Errorf("store photo: %w", err)
		}

		photo := model.Photo{
			ID:           id,
			AssignmentID: assignmentID,
			PartID:       partID,
			Filename:     filename,
			OriginalName: file.OriginalName,
			URL:          ref.URL,
			StorageKey:   ref.Key,
			MimeType:     file.MimeType,
			Size:         file.Size,
			Description:  description,
			PhotoType:    photoType,
			UploadedBy:   &userID,
		}
		if err := s.photos.Create(ctx, &photo); err != nil {
			return nil, err
		}
		uploaded = append(uploaded, photo)
	}

	return uploaded, nil
}

// Remove deletes photo records and best-effort removes the stored blobs.
func (s *PhotoService) Remove(ctx context.Context, principal model.Principal, partID uuid.UUID, photoIDs []uuid.UUID) error {
	if len(photoIDs) == 0 {
		return fmt.Errorf("%w: photo ids are required", ErrInvalidInput)
	}

	part, err := s.parts.GetByID(ctx, partID)
	if err != nil {
		return err
	}
	if part == nil {
		return fmt.Errorf("%w: part %s", ErrNotFound, partID)
	}

	assignment, err := s.assignments.GetByID(ctx, part.AssignmentID)
	if err != nil {
		return err
	}
	if assignment == nil {
		return fmt.Errorf("%w: assignment %s", ErrNotFound, part.AssignmentID)
	}
	if !principal.OwnsVendor(assignment.VendorID) {
		return fmt.Errorf("%w: assignment belongs to another vendor", ErrPermissionDenied)
	}

	photos, err := s.photos.ListByIDs(ctx, photoIDs)
	if err != nil {
		return err
	}

	// Only photos actually bound to this part are removed.
	owned := make([]model.Photo, 0, len(photos))
	ownedIDs := make([]uuid.UUID, 0, len(photos))
	for _, photo := range photos {
		if photo.PartID != nil && *photo.PartID == partID {
			owned = append(owned, photo)
			ownedIDs = append(ownedIDs, photo.ID)
		}
	}
	if len(owned) == 0 {
		return nil
	}

	if err := s.photos.DeleteByIDs(ctx, ownedIDs); err != nil {
		return err
	}

	for _, photo := range owned {
		if photo.StorageKey != "" {
			_ = s.store.Delete(ctx, photo.StorageKey)
		}
	}
	return nil
}
