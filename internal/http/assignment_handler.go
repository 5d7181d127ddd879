package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/techmate/dispatch/internal/http/middleware"
	"github.com/techmate/dispatch/internal/model"
	"github.com/techmate/dispatch/internal/service"
)

func (h *Handler) listAssignments(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing principal"})
		return
	}

	filter := service.AssignmentFilter{}
	if raw := c.Query("status"); raw != "" {
		status := model.AssignmentStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("date_from"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid date_from"})
			return
		}
		filter.DateFrom = &from
	}
	if raw := c.Query("date_to"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid date_to"})
			return
		}
		filter.DateTo = &to
	}

	assignments, err := h.assignments.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	data := make([]gin.H, 0, len(assignments))
	for i := range assignments {
		data = append(data, assignmentResponse(&assignments[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (h *Handler) getAssignment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing principal"})
		return
	}

	detail, err := h.assignments.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response := assignmentResponse(&detail.Assignment)
	response["job"] = gin.H{
		"so_number":             detail.Job.SONumber,
		"customer_name":         fmt.Sprintf("%s %s", detail.Job.CustomerName, detail.Job.CustomerLastName),
		"customer_address":      detail.Job.CustomerAddress,
		"customer_city":         detail.Job.CustomerCity,
		"customer_state":        detail.Job.CustomerState,
		"customer_zip":          detail.Job.CustomerZip,
		"customer_phone":        detail.Job.CustomerPhone,
		"appliance_type":        detail.Job.ApplianceType,
		"appliance_brand":       detail.Job.ApplianceBrand,
		"model_number":          detail.Job.ModelNumber,
		"serial_number":         detail.Job.SerialNumber,
		"service_description":   detail.Job.ServiceDescription,
		"scheduled_date":        detail.Job.ScheduledDate,
		"scheduled_time_window": detail.Job.ScheduledTimeWindow,
	}

	parts := make([]gin.H, 0, len(detail.Parts))
	for _, part := range detail.Parts {
		parts = append(parts, partResponse(part))
	}
	response["parts"] = parts

	photos := make([]gin.H, 0, len(detail.Photos))
	for _, photo := range detail.Photos {
		photos = append(photos, photoResponse(photo))
	}
	response["photos"] = photos

	c.JSON(http.StatusOK, gin.H{"success": true, "data": response})
}

type updateAssignmentRequest struct {
	Status            *string  `json:"status"`
	ActualArrival     *string  `json:"actual_arrival"`
	WorkStarted       *string  `json:"work_started"`
	CompletedAt       *string  `json:"completed_at"`
	Notes             *string  `json:"notes"`
	CompletionNotes   *string  `json:"completion_notes"`
	CustomerSignature *string  `json:"customer_signature"`
	LaborHours        *float64 `json:"labor_hours"`
	TotalLaborCost    *float64 `json:"total_labor_cost"`
}

func (h *Handler) updateAssignment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing principal"})
		return
	}

	var req updateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	input := service.UpdateStatusInput{
		Notes:             req.Notes,
		CompletionNotes:   req.CompletionNotes,
		CustomerSignature: req.CustomerSignature,
		LaborHours:        req.LaborHours,
		TotalLaborCost:    req.TotalLaborCost,
	}
	if req.Status != nil {
		status := model.AssignmentStatus(strings.TrimSpace(*req.Status))
		input.Status = &status
	}
	if req.ActualArrival != nil {
		t, err := parseDate(*req.ActualArrival)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid actual_arrival"})
			return
		}
		input.ActualArrival = &t
	}
	if req.WorkStarted != nil {
		t, err := parseDate(*req.WorkStarted)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid work_started"})
			return
		}
		input.WorkStarted = &t
	}
	if req.CompletedAt != nil {
		t, err := parseDate(*req.CompletedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid completed_at"})
			return
		}
		input.CompletedAt = &t
	}

	assignment, err := h.assignments.UpdateStatus(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	message := "assignment updated"
	if assignment.Status == model.AssignmentStatusCompleted {
		message = "assignment completed"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "data": assignmentResponse(assignment)})
}

type rescheduleRequest struct {
	NewScheduledDate string `json:"new_scheduled_date" binding:"required"`
	NewTimeWindow    string `json:"new_time_window"`
	RescheduleReason string `json:"reschedule_reason"`
	VendorNotes      string `json:"vendor_notes"`
}

func (h *Handler) rescheduleAssignment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing principal"})
		return
	}

	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	newDate, err := parseDate(req.NewScheduledDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid new_scheduled_date"})
		return
	}

	assignment, err := h.assignments.Reschedule(c.Request.Context(), principal, id, service.RescheduleInput{
		NewDate:     newDate,
		NewWindow:   req.NewTimeWindow,
		Reason:      req.RescheduleReason,
		VendorNotes: req.VendorNotes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "assignment rescheduled",
		"data":    assignmentResponse(assignment),
	})
}

func (h *Handler) assignmentInvoice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing principal"})
		return
	}

	detail, err := h.assignments.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if detail.Assignment.Invoice == nil {
		h.handleError(c, fmt.Errorf("%w: no invoice for assignment %s", service.ErrNotFound, id))
		return
	}

	vendor, err := h.vendors.Get(c.Request.Context(), detail.Assignment.VendorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	content, err := h.invoicePDF.Generate(*detail, *vendor)
	if err != nil {
		h.handleError(c, err)
		return
	}

	filename := detail.Assignment.Invoice.InvoiceNumber + ".pdf"
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Data(http.StatusOK, "application/pdf", content)
}

func (h *Handler) exportAssignments(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing principal"})
		return
	}

	assignments, err := h.assignments.List(c.Request.Context(), principal, service.AssignmentFilter{})
	if err != nil {
		h.handleError(c, err)
		return
	}

	jobs := make(map[string]model.Job, len(assignments))
	for _, assignment := range assignments {
		key := assignment.JobID.String()
		if _, seen := jobs[key]; seen {
			continue
		}
		job, err := h.jobs.Get(c.Request.Context(), assignment.JobID)
		if err != nil {
			h.handleError(c, err)
			return
		}
		jobs[key] = *job
	}

	content, err := h.scheduleXLS.Generate(assignments, jobs)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\"assignments.xlsx\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

func assignmentResponse(assignment *model.Assignment) gin.H {
	response := gin.H{
		"id":                assignment.ID,
		"job_id":            assignment.JobID,
		"vendor_id":         assignment.VendorID,
		"status":            assignment.Status,
		"assigned_at":       assignment.AssignedAt,
		"scheduled_arrival": assignment.ScheduledArrival,
		"actual_arrival":    assignment.ActualArrival,
		"work_started":      assignment.WorkStarted,
		"completed_at":      assignment.CompletedAt,
		"notes":             assignment.Notes,
		"vendor_notes":      assignment.VendorNotes,
		"completion_notes":  assignment.CompletionNotes,
		"labor_hours":       assignment.LaborHours,
		"total_parts_cost":  assignment.TotalPartsCost,
		"total_labor_cost":  assignment.TotalLaborCost,
		"total_cost":        assignment.TotalCost,
	}
	if assignment.Reschedule != nil {
		response["reschedule_info"] = gin.H{
			"original_date": assignment.Reschedule.OriginalDate,
			"new_date":      assignment.Reschedule.NewDate,
			"reason":        assignment.Reschedule.Reason,
			"requested_at":  assignment.Reschedule.RequestedAt,
		}
	}
	if assignment.Invoice != nil {
		response["invoice"] = gin.H{
			"invoice_number": assignment.Invoice.InvoiceNumber,
			"generated_at":   assignment.Invoice.GeneratedAt,
		}
	}
	return response
}
