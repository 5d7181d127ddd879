package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/techmate/dispatch/internal/model"
)

// PartService owns part line-items and the cost ledger. Every part
// mutation recomputes the owning assignment's totals before returning;
// totals are billing-facing and must never be stale.
type PartService struct {
	parts       PartStore
	assignments AssignmentStore
}

func NewPartService(parts PartStore, assignments AssignmentStore) *PartService {
	return &PartService{parts: parts, assignments: assignments}
}

type AddPartInput struct {
	PartNumber string
	PartName   string
	Quantity   int
	UnitCost   float64
	Notes      string
}

func (s *PartService) AddPart(ctx context.Context, principal model.Principal, assignmentID uuid.UUID, input AddPartInput) (*model.Part, error) {
	if input.PartNumber == "" {
		return nil, fmt.Errorf("%w: part_number is required", ErrInvalidInput)
	}
	if input.PartName == "" {
		return nil, fmt.Errorf("%w: part_name is required", ErrInvalidInput)
	}
	if input.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if input.UnitCost < 0 {
		return nil, fmt.Errorf("%w: unit_cost must not be negative", ErrInvalidInput)
	}

	assignment, err := s.ownedAssignment(ctx, principal, assignmentID)
	if err != nil {
		return nil, err
	}

	userID := principal.UserID
	part := &model.Part{
		ID:           uuid.New(),
		AssignmentID: assignmentID,
		PartNumber:   input.PartNumber,
		PartName:     input.PartName,
		Quantity:     input.Quantity,
		UnitCost:     input.UnitCost,
		// Snapshotted at creation; later price changes never touch it.
		LineTotal: float64(input.Quantity) * input.UnitCost,
		Notes:     input.Notes,
		AddedBy:   &userID,
	}

	if err := s.parts.Create(ctx, part); err != nil {
		return nil, err
	}

	if err := s.recompute(ctx, assignment.ID); err != nil {
		return nil, err
	}

	return part, nil
}

func (s *PartService) ListParts(ctx context.Context, principal model.Principal, assignmentID uuid.UUID) ([]model.Part, error) {
	if _, err := s.ownedAssignment(ctx, principal, assignmentID); err != nil {
		return nil, err
	}
	return s.parts.ListByAssignment(ctx, assignmentID)
}

func (s *PartService) DeletePart(ctx context.Context, principal model.Principal, partID uuid.UUID) error {
	part, err := s.parts.GetByID(ctx, partID)
	if err != nil {
		return err
	}
	if part == nil {
		return fmt.Errorf("%w: part %s", ErrNotFound, partID)
	}

	if _, err := s.ownedAssignment(ctx, principal, part.AssignmentID); err != nil {
		return err
	}

	if err := s.parts.Delete(ctx, partID); err != nil {
		return err
	}

	return s.recompute(ctx, part.AssignmentID)
}

// recompute rebuilds the assignment totals from the current part set and
// the current labor cost. Runs synchronously inside the triggering
// operation.
func (s *PartService) recompute(ctx context.Context, assignmentID uuid.UUID) error {
	totalPartsCost, err := s.parts.SumLineTotals(ctx, assignmentID)
	if err != nil {
		return err
	}

	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return err
	}
	if assignment == nil {
		return fmt.Errorf("%w: assignment %s", ErrNotFound, assignmentID)
	}

	return s.assignments.UpdateCosts(ctx, assignmentID, totalPartsCost, totalPartsCost+assignment.TotalLaborCost)
}

func (s *PartService) ownedAssignment(ctx context.Context, principal model.Principal, assignmentID uuid.UUID) (*model.Assignment, error) {
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
	return assignment, nil
}
