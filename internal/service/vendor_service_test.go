package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorCreate(t *testing.T) {
	store := newFakeVendorStore()
	svc := NewVendorService(store)
	ctx := context.Background()

	vendor, err := svc.Create(ctx, CreateVendorInput{
		Name:        "  Rapid Appliance Repair  ",
		Email:       "Dispatch@RapidRepair.test",
		PhoneNumber: "555-0100",
		Specialties: []string{"washer", "dryer"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Rapid Appliance Repair", vendor.Name)
	assert.Equal(t, "dispatch@rapidrepair.test", vendor.Email)
	assert.True(t, vendor.IsActive)

	fetched, err := svc.Get(ctx, vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, vendor.ID, fetched.ID)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	for _, input := range []CreateVendorInput{
		{Email: "a@b.test", PhoneNumber: "555-0100"},
		{Name: "No Email", PhoneNumber: "555-0100"},
		{Name: "No Phone", Email: "a@b.test"},
	} {
		_, err := svc.Create(ctx, input)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	vendors, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, vendors, 1)
}
