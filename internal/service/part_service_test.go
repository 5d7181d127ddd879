package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techmate/dispatch/internal/model"
)

type partFixture struct {
	parts       *fakePartStore
	assignments *fakeAssignmentStore
	svc         *PartService
}

func newPartFixture() *partFixture {
	parts := newFakePartStore()
	assignments := newFakeAssignmentStore()
	return &partFixture{
		parts:       parts,
		assignments: assignments,
		svc:         NewPartService(parts, assignments),
	}
}

func (f *partFixture) seedAssignment(t *testing.T, vendorID uuid.UUID, laborCost float64) uuid.UUID {
	t.Helper()
	assignment := model.Assignment{
		ID:             uuid.New(),
		JobID:          uuid.New(),
		VendorID:       vendorID,
		Status:         model.AssignmentStatusInProgress,
		AssignedAt:     time.Now().UTC(),
		TotalLaborCost: laborCost,
		TotalCost:      laborCost,
	}
	require.NoError(t, f.assignments.Create(context.Background(), &assignment))
	return assignment.ID
}

func TestPartCostLedger(t *testing.T) {
	f := newPartFixture()
	ctx := context.Background()
	vendorID := uuid.New()
	principal := vendorPrincipal(vendorID)
	assignmentID := f.seedAssignment(t, vendorID, 75)

	belt, err := f.svc.AddPart(ctx, principal, assignmentID, AddPartInput{
		PartNumber: "W10006384",
		PartName:   "Drive belt",
		Quantity:   2,
		UnitCost:   50,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, belt.LineTotal)

	pulley, err := f.svc.AddPart(ctx, principal, assignmentID, AddPartInput{
		PartNumber: "W10721967",
		PartName:   "Idler pulley",
		Quantity:   1,
		UnitCost:   30,
	})
	require.NoError(t, err)
	assert.Equal(t, 30.0, pulley.LineTotal)

	assignment, err := f.assignments.GetByID(ctx, assignmentID)
	require.NoError(t, err)
	assert.Equal(t, 130.0, assignment.TotalPartsCost)
	assert.Equal(t, 205.0, assignment.TotalCost)

	require.NoError(t, f.svc.DeletePart(ctx, principal, belt.ID))

	assignment, err = f.assignments.GetByID(ctx, assignmentID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, assignment.TotalPartsCost)
	assert.Equal(t, 105.0, assignment.TotalCost)
}

func TestPartLineTotalIsSnapshotted(t *testing.T) {
	f := newPartFixture()
	ctx := context.Background()
	vendorID := uuid.New()
	principal := vendorPrincipal(vendorID)
	assignmentID := f.seedAssignment(t, vendorID, 0)

	part, err := f.svc.AddPart(ctx, principal, assignmentID, AddPartInput{
		PartNumber: "DC97-16782A",
		PartName:   "Suspension rod kit",
		Quantity:   4,
		UnitCost:   12.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, part.LineTotal)

	stored, err := f.parts.GetByID(ctx, part.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, stored.LineTotal)
}

func TestPartValidation(t *testing.T) {
	f := newPartFixture()
	ctx := context.Background()
	vendorID := uuid.New()
	principal := vendorPrincipal(vendorID)
	assignmentID := f.seedAssignment(t, vendorID, 0)

	cases := []struct {
		name  string
		input AddPartInput
	}{
		{"missing part number", AddPartInput{PartName: "Belt", Quantity: 1, UnitCost: 10}},
		{"missing part name", AddPartInput{PartNumber: "X1", Quantity: 1, UnitCost: 10}},
		{"zero quantity", AddPartInput{PartNumber: "X1", PartName: "Belt", Quantity: 0, UnitCost: 10}},
		{"negative unit cost", AddPartInput{PartNumber: "X1", PartName: "Belt", Quantity: 1, UnitCost: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.AddPart(ctx, principal, assignmentID, tc.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestPartVendorScoping(t *testing.T) {
	f := newPartFixture()
	ctx := context.Background()
	owner := uuid.New()
	assignmentID := f.seedAssignment(t, owner, 0)

	part, err := f.svc.AddPart(ctx, vendorPrincipal(owner), assignmentID, AddPartInput{
		PartNumber: "X1", PartName: "Belt", Quantity: 1, UnitCost: 10,
	})
	require.NoError(t, err)

	stranger := vendorPrincipal(uuid.New())
	_, err = f.svc.AddPart(ctx, stranger, assignmentID, AddPartInput{
		PartNumber: "X2", PartName: "Pulley", Quantity: 1, UnitCost: 5,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = f.svc.ListParts(ctx, stranger, assignmentID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = f.svc.DeletePart(ctx, stranger, part.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = f.svc.DeletePart(ctx, vendorPrincipal(owner), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
