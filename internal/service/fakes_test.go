package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/techmate/dispatch/internal/model"
)

// In-memory store fakes. The job fake implements the conditional claim
// under a mutex so the compare-and-set semantics match the SQL
// implementation.

type fakeJobStore struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]model.Job
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[uuid.UUID]model.Job)}
}

func (f *fakeJobStore) Create(_ context.Context, job *model.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[job.ID] = *job
	return nil
}

func (f *fakeJobStore) GetByID(_ context.Context, id uuid.UUID) (*model.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	return &job, nil
}

func (f *fakeJobStore) ListAvailable(_ context.Context, filter JobFilter) ([]model.Job, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []model.Job
	for _, job := range f.jobs {
		if job.Status != model.JobStatusAvailable {
			continue
		}
		matched = append(matched, job)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].ScheduledDate.Equal(matched[j].ScheduledDate) {
			return matched[i].ScheduledDate.Before(matched[j].ScheduledDate)
		}
		return model.PriorityRank(matched[i].Priority) > model.PriorityRank(matched[j].Priority)
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeJobStore) Update(_ context.Context, job *model.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[job.ID] = *job
	return nil
}

func (f *fakeJobStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.JobStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return nil
	}
	job.Status = status
	f.jobs[id] = job
	return nil
}

func (f *fakeJobStore) UpdateSchedule(_ context.Context, id uuid.UUID, date time.Time, window string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return nil
	}
	job.ScheduledDate = date
	if window != "" {
		job.ScheduledTimeWindow = window
	}
	f.jobs[id] = job
	return nil
}

func (f *fakeJobStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobStore) ClaimAvailable(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok || job.Status != model.JobStatusAvailable {
		return false, nil
	}
	job.Status = model.JobStatusAssigned
	f.jobs[id] = job
	return true, nil
}

type fakeAssignmentStore struct {
	mu          sync.Mutex
	assignments map[uuid.UUID]model.Assignment
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{assignments: make(map[uuid.UUID]model.Assignment)}
}

func (f *fakeAssignmentStore) Create(_ context.Context, assignment *model.Assignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assignments[assignment.ID] = *assignment
	return nil
}

func (f *fakeAssignmentStore) GetByID(_ context.Context, id uuid.UUID) (*model.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	assignment, ok := f.assignments[id]
	if !ok {
		return nil, nil
	}
	return &assignment, nil
}

func (f *fakeAssignmentStore) GetActiveByJobAndVendor(_ context.Context, jobID, vendorID uuid.UUID) (*model.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, assignment := range f.assignments {
		if assignment.JobID == jobID && assignment.VendorID == vendorID &&
			assignment.Status != model.AssignmentStatusCancelled {
			found := assignment
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAssignmentStore) List(_ context.Context, filter AssignmentFilter) ([]model.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []model.Assignment
	for _, assignment := range f.assignments {
		if filter.VendorID != nil && assignment.VendorID != *filter.VendorID {
			continue
		}
		if filter.Status != nil && assignment.Status != *filter.Status {
			continue
		}
		if filter.DateFrom != nil && (assignment.ScheduledArrival == nil || assignment.ScheduledArrival.Before(*filter.DateFrom)) {
			continue
		}
		if filter.DateTo != nil && (assignment.ScheduledArrival == nil || assignment.ScheduledArrival.After(*filter.DateTo)) {
			continue
		}
		matched = append(matched, assignment)
	}
	sort.Slice(matched, func(i, j int) bool {
		left, right := matched[i].ScheduledArrival, matched[j].ScheduledArrival
		if left == nil {
			return false
		}
		if right == nil {
			return true
		}
		return left.Before(*right)
	})
	return matched, nil
}

func (f *fakeAssignmentStore) Update(_ context.Context, assignment *model.Assignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assignments[assignment.ID] = *assignment
	return nil
}

func (f *fakeAssignmentStore) UpdateCosts(_ context.Context, id uuid.UUID, totalPartsCost, totalCost float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	assignment, ok := f.assignments[id]
	if !ok {
		return nil
	}
	assignment.TotalPartsCost = totalPartsCost
	assignment.TotalCost = totalCost
	f.assignments[id] = assignment
	return nil
}

type fakePartStore struct {
	mu    sync.Mutex
	parts map[uuid.UUID]model.Part
}

func newFakePartStore() *fakePartStore {
	return &fakePartStore{parts: make(map[uuid.UUID]model.Part)}
}

func (f *fakePartStore) Create(_ context.Context, part *model.Part) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.parts[part.ID] = *part
	return nil
}

func (f *fakePartStore) GetByID(_ context.Context, id uuid.UUID) (*model.Part, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	part, ok := f.parts[id]
	if !ok {
		return nil, nil
	}
	return &part, nil
}

func (f *fakePartStore) ListByAssignment(_ context.Context, assignmentID uuid.UUID) ([]model.Part, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []model.Part
	for _, part := range f.parts {
		if part.AssignmentID == assignmentID {
			matched = append(matched, part)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}

func (f *fakePartStore) SumLineTotals(_ context.Context, assignmentID uuid.UUID) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum float64
	for _, part := range f.parts {
		if part.AssignmentID == assignmentID {
			sum += part.LineTotal
		}
	}
	return sum, nil
}

func (f *fakePartStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.parts, id)
	return nil
}

type fakeVendorStore struct {
	mu      sync.Mutex
	vendors map[uuid.UUID]model.Vendor
}

func newFakeVendorStore() *fakeVendorStore {
	return &fakeVendorStore{vendors: make(map[uuid.UUID]model.Vendor)}
}

func (f *fakeVendorStore) Create(_ context.Context, vendor *model.Vendor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vendors[vendor.ID] = *vendor
	return nil
}

func (f *fakeVendorStore) GetByID(_ context.Context, id uuid.UUID) (*model.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	vendor, ok := f.vendors[id]
	if !ok {
		return nil, nil
	}
	return &vendor, nil
}

func (f *fakeVendorStore) List(_ context.Context) ([]model.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var vendors []model.Vendor
	for _, vendor := range f.vendors {
		vendors = append(vendors, vendor)
	}
	sort.Slice(vendors, func(i, j int) bool { return vendors[i].Name < vendors[j].Name })
	return vendors, nil
}

func (f *fakeVendorStore) IncrementTotalJobs(_ context.Context, id uuid.UUID, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	vendor, ok := f.vendors[id]
	if !ok {
		return nil
	}
	vendor.Stats.TotalJobs += delta
	f.vendors[id] = vendor
	return nil
}

func (f *fakeVendorStore) IncrementCompletedJobs(_ context.Context, id uuid.UUID, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	vendor, ok := f.vendors[id]
	if !ok {
		return nil
	}
	vendor.Stats.CompletedJobs += delta
	f.vendors[id] = vendor
	return nil
}

type fakePhotoStore struct {
	mu     sync.Mutex
	photos map[uuid.UUID]model.Photo
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{photos: make(map[uuid.UUID]model.Photo)}
}

func (f *fakePhotoStore) Create(_ context.Context, photo *model.Photo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.photos[photo.ID] = *photo
	return nil
}

func (f *fakePhotoStore) ListByAssignment(_ context.Context, assignmentID uuid.UUID) ([]model.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []model.Photo
	for _, photo := range f.photos {
		if photo.AssignmentID == assignmentID {
			matched = append(matched, photo)
		}
	}
	return matched, nil
}

func (f *fakePhotoStore) ListByIDs(_ context.Context, ids []uuid.UUID) ([]model.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []model.Photo
	for _, id := range ids {
		if photo, ok := f.photos[id]; ok {
			matched = append(matched, photo)
		}
	}
	return matched, nil
}

func (f *fakePhotoStore) DeleteByIDs(_ context.Context, ids []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.photos, id)
	}
	return nil
}
