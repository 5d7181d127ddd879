package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/techmate/dispatch/internal/model"
)

// VendorService is thin admin-side plumbing feeding the claim flow.
// Stats counters are never mutated here; they belong to lifecycle events.
type VendorService struct {
	vendors VendorStore
}

func NewVendorService(vendors VendorStore) *VendorService {
	return &VendorService{vendors: vendors}
}

type CreateVendorInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Street      string
	City        string
	State       string
	Zip         string
	Specialties []string
	Notes       string
}

func (s *VendorService) Create(ctx context.Context, input CreateVendorInput) (*model.Vendor, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.PhoneNumber) == "" {
		return nil, fmt.Errorf("%w: phone_number is required", ErrInvalidInput)
	}

	vendor := &model.Vendor{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		PhoneNumber: input.PhoneNumber,
		Street:      input.Street,
		City:        input.City,
		State:       input.State,
		Zip:         input.Zip,
		IsActive:    true,
		Specialties: input.Specialties,
		Notes:       input.Notes,
	}

	if err := s.vendors.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *VendorService) Get(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	vendor, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, fmt.Errorf("%w: vendor %s", ErrNotFound, id)
	}
	return vendor, nil
}

func (s *VendorService) List(ctx context.Context) ([]model.Vendor, error) {
	return s.vendors.List(ctx)
}
