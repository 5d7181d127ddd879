package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/techmate/dispatch/internal/model"
)

func TestGenerateSchedule(t *testing.T) {
	jobID := uuid.New()
	arrival := time.Date(2026, 9, 3, 9, 0, 0, 0, time.UTC)

	assignments := []model.Assignment{{
		ID:               uuid.New(),
		JobID:            jobID,
		Status:           model.AssignmentStatusAssigned,
		ScheduledArrival: &arrival,
		LaborHours:       2.5,
		TotalPartsCost:   130,
		TotalLaborCost:   75,
		TotalCost:        205,
	}}
	jobs := map[string]model.Job{
		jobID.String(): {
			ID:               jobID,
			SONumber:         "SO-1001",
			CustomerName:     "Dana",
			CustomerLastName: "Whitfield",
			CustomerCity:     "Springfield",
			ApplianceType:    "washer",
		},
	}

	content, err := NewGenerator().Generate(assignments, jobs)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	header, err := file.GetCellValue("Schedule", "A1")
	require.NoError(t, err)
	assert.Equal(t, "SO Number", header)

	soNumber, err := file.GetCellValue("Schedule", "A2")
	require.NoError(t, err)
	assert.Equal(t, "SO-1001", soNumber)

	scheduled, err := file.GetCellValue("Schedule", "C2")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-03 09:00", scheduled)
}

func TestGenerateScheduleEmpty(t *testing.T) {
	content, err := NewGenerator().Generate(nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}
