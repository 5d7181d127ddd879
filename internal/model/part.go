package model

import (
	"time"

	"github.com/google/uuid"
)

// Part is a billable line-item attached to an assignment. LineTotal is
// snapshotted at creation from quantity and unit cost; it is never
// recomputed from live prices later.
type Part struct {
	ID           uuid.UUID
	AssignmentID uuid.UUID
	PartNumber   string
	PartName     string
	Quantity     int
	UnitCost     float64
	LineTotal    float64
	Notes        string
	AddedBy      *uuid.UUID
	CreatedAt    time.Time
}
