package model

import (
	"time"

	"github.com/google/uuid"
)

type VendorStats struct {
	TotalJobs     int64
	CompletedJobs int64
}

// Vendor is a third-party service provider. Stats counters are mutated
// only through lifecycle events (claim, completion).
type Vendor struct {
	ID          uuid.UUID
	Name        string
	Email       string
	PhoneNumber string
	Street      string
	City        string
	State       string
	Zip         string
	IsActive    bool
	Specialties []string
	Notes       string
	Stats       VendorStats
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
