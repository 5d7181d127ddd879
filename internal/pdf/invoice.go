package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/techmate/dispatch/internal/model"
)

// Generator renders the invoice for a completed assignment.
type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(detail model.AssignmentDetail, vendor model.Vendor) ([]byte, error) {
	assignment := detail.Assignment
	if assignment.Invoice == nil || assignment.Invoice.InvoiceNumber == "" {
		return nil, fmt.Errorf("assignment %s has no invoice", assignment.ID)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, "Service Invoice", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice %s, issued %s", assignment.Invoice.InvoiceNumber, formatDate(assignment.Invoice.GeneratedAt)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Service order %s", detail.Job.SONumber), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Customer", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	customerLines := []string{
		fmt.Sprintf("%s %s", detail.Job.CustomerName, detail.Job.CustomerLastName),
		detail.Job.CustomerAddress,
		fmt.Sprintf("%s, %s %s", detail.Job.CustomerCity, detail.Job.CustomerState, detail.Job.CustomerZip),
		fmt.Sprintf("Phone: %s", safeValue(detail.Job.CustomerPhone)),
	}
	for _, line := range customerLines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Serviced by", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.MultiCell(0, 5, vendor.Name, "", "L", false)
	pdf.MultiCell(0, 5, fmt.Sprintf("Phone: %s", safeValue(vendor.PhoneNumber)), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Work performed", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.MultiCell(0, 5, fmt.Sprintf("%s %s - %s", detail.Job.ApplianceBrand, detail.Job.ApplianceType, detail.Job.ServiceDescription), "", "L", false)
	if assignment.CompletedAt != nil {
		pdf.MultiCell(0, 5, fmt.Sprintf("Completed: %s", formatDate(*assignment.CompletedAt)), "", "L", false)
	}
	pdf.Ln(2)

	headers := []string{"Part", "Qty", "Unit cost", "Line total"}
	colWidths := []float64{95, 20, 30, 35}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)
	for _, part := range detail.Parts {
		row := []string{
			fmt.Sprintf("%s (%s)", part.PartName, part.PartNumber),
			fmt.Sprintf("%d", part.Quantity),
			formatAmount(part.UnitCost),
			formatAmount(part.LineTotal),
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Parts: $%s", formatAmount(assignment.TotalPartsCost)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Labor (%.1f h): $%s", assignment.LaborHours, formatAmount(assignment.TotalLaborCost)), "", 1, "R", false, 0, "")
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total due: $%s", formatAmount(assignment.TotalCost)), "", 1, "R", false, 0, "")

	if assignment.CompletionNotes != "" {
		pdf.Ln(2)
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 10)
		pdf.MultiCell(0, 5, assignment.CompletionNotes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("01/02/2006")
}
