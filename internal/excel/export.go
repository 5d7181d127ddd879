package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/techmate/dispatch/internal/model"
)

// Generator renders an assignment schedule as a spreadsheet.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(assignments []model.Assignment, jobs map[string]model.Job) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Schedule"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"SO Number", "Status", "Scheduled Arrival", "Customer", "City",
		"Appliance", "Labor Hours", "Parts Cost", "Labor Cost", "Total Cost",
	}
	for i, header := range headers {
		column, _ := excelize.ColumnNumberToName(i + 1)
		set(fmt.Sprintf("%s1", column), header)
	}

	for i, assignment := range assignments {
		row := i + 2
		job := jobs[assignment.JobID.String()]

		set(fmt.Sprintf("A%d", row), job.SONumber)
		set(fmt.Sprintf("B%d", row), string(assignment.Status))
		set(fmt.Sprintf("C%d", row), formatDate(assignment.ScheduledArrival))
		set(fmt.Sprintf("D%d", row), fmt.Sprintf("%s %s", job.CustomerName, job.CustomerLastName))
		set(fmt.Sprintf("E%d", row), job.CustomerCity)
		set(fmt.Sprintf("F%d", row), job.ApplianceType)
		set(fmt.Sprintf("G%d", row), assignment.LaborHours)
		set(fmt.Sprintf("H%d", row), assignment.TotalPartsCost)
		set(fmt.Sprintf("I%d", row), assignment.TotalLaborCost)
		set(fmt.Sprintf("J%d", row), assignment.TotalCost)
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "C", 18)
	_ = file.SetColWidth(sheet, "D", "F", 24)
	_ = file.SetColWidth(sheet, "G", "J", 12)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
