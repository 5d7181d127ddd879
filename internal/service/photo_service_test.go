package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techmate/dispatch/internal/model"
	"github.com/techmate/dispatch/internal/storage"
)

type fakeBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(_ context.Context, key, _ string, content []byte) (storage.Ref, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = content
	return storage.Ref{Key: key, URL: "/uploads/" + key}, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blobs, key)
	return nil
}

type photoFixture struct {
	photos      *fakePhotoStore
	parts       *fakePartStore
	assignments *fakeAssignmentStore
	blobs       *fakeBlobStore
	svc         *PhotoService
}

func newPhotoFixture() *photoFixture {
	f := &photoFixture{
		photos:      newFakePhotoStore(),
		parts:       newFakePartStore(),
		assignments: newFakeAssignmentStore(),
		blobs:       newFakeBlobStore(),
	}
	f.svc = NewPhotoService(f.photos, f.parts, f.assignments, f.blobs)
	return f
}

func (f *photoFixture) seedAssignment(t *testing.T, vendorID uuid.UUID) uuid.UUID {
	t.Helper()
	assignment := model.Assignment{
		ID:         uuid.New(),
		JobID:      uuid.New(),
		VendorID:   vendorID,
		Status:     model.AssignmentStatusInProgress,
		AssignedAt: time.Now().UTC(),
	}
	require.NoError(t, f.assignments.Create(context.Background(), &assignment))
	return assignment.ID
}

func (f *photoFixture) seedPart(t *testing.T, assignmentID uuid.UUID) uuid.UUID {
	t.Helper()
	part := model.Part{
		ID:           uuid.New(),
		AssignmentID: assignmentID,
		PartNumber:   "W10006384",
		PartName:     "Drive belt",
		Quantity:     1,
		UnitCost:     50,
		LineTotal:    50,
	}
	require.NoError(t, f.parts.Create(context.Background(), &part))
	return part.ID
}

func jpegUpload(name string) UploadFile {
	return UploadFile{
		OriginalName: name,
		MimeType:     "image/jpeg",
		Size:         3,
		Content:      []byte{0xFF, 0xD8, 0xFF},
	}
}

func TestPhotoAttachToAssignment(t *testing.T) {
	f := newPhotoFixture()
	ctx := context.Background()
	vendorID := uuid.New()
	principal := vendorPrincipal(vendorID)
	assignmentID := f.seedAssignment(t, vendorID)

	photos, err := f.svc.AttachToAssignment(ctx, principal, assignmentID, model.PhotoTypeBefore, "arrival state", []UploadFile{
		jpegUpload("front.jpg"),
		jpegUpload("back.jpg"),
	})
	require.NoError(t, err)
	require.Len(t, photos, 2)
	for _, photo := range photos {
		assert.Equal(t, assignmentID, photo.AssignmentID)
		assert.Nil(t, photo.PartID)
		assert.Equal(t, model.PhotoTypeBefore, photo.PhotoType)
		assert.Contains(t, photo.StorageKey, "photos/"+assignmentID.String()+"/")
		assert.NotEmpty(t, photo.URL)
		assert.Contains(t, f.blobs.blobs, photo.StorageKey)
	}

	// Empty photo type defaults to general.
	general, err := f.svc.AttachToAssignment(ctx, principal, assignmentID, "", "", []UploadFile{jpegUpload("misc.jpg")})
	require.NoError(t, err)
	require.Len(t, general, 1)
	assert.Equal(t, model.PhotoTypeGeneral, general[0].PhotoType)

	_, err = f.svc.AttachToAssignment(ctx, principal, assignmentID, model.PhotoTypeBefore, "", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	stranger := vendorPrincipal(uuid.New())
	_, err = f.svc.AttachToAssignment(ctx, stranger, assignmentID, model.PhotoTypeBefore, "", []UploadFile{jpegUpload("x.jpg")})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestPhotoAttachToPartAndRemove(t *testing.T) {
	f := newPhotoFixture()
	ctx := context.Background()
	vendorID := uuid.New()
	principal := vendorPrincipal(vendorID)
	assignmentID := f.seedAssignment(t, vendorID)
	partID := f.seedPart(t, assignmentID)

	photos, err := f.svc.AttachToPart(ctx, principal, partID, "installed part", []UploadFile{jpegUpload("part.jpg")})
	require.NoError(t, err)
	require.Len(t, photos, 1)
	require.NotNil(t, photos[0].PartID)
	assert.Equal(t, partID, *photos[0].PartID)
	assert.Equal(t, model.PhotoTypePart, photos[0].PhotoType)

	// A photo bound to a different part is skipped by removal.
	otherPart := f.seedPart(t, assignmentID)
	otherPhotos, err := f.svc.AttachToPart(ctx, principal, otherPart, "", []UploadFile{jpegUpload("other.jpg")})
	require.NoError(t, err)

	err = f.svc.Remove(ctx, principal, partID, []uuid.UUID{photos[0].ID, otherPhotos[0].ID})
	require.NoError(t, err)

	remaining, err := f.photos.ListByAssignment(ctx, assignmentID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, otherPhotos[0].ID, remaining[0].ID)
	assert.NotContains(t, f.blobs.blobs, photos[0].StorageKey)

	_, err = f.svc.AttachToPart(ctx, principal, uuid.New(), "", []UploadFile{jpegUpload("x.jpg")})
	assert.ErrorIs(t, err, ErrNotFound)

	err = f.svc.Remove(ctx, principal, partID, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
