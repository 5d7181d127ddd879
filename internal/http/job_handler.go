package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/techmate/dispatch/internal/http/middleware"
	"github.com/techmate/dispatch/internal/model"
	"github.com/techmate/dispatch/internal/service"
)

type createJobRequest struct {
	SONumber            string `json:"so_number" binding:"required"`
	CustomerName        string `json:"customer_name" binding:"required"`
	CustomerLastName    string `json:"customer_last_name" binding:"required"`
	CustomerAddress     string `json:"customer_address" binding:"required"`
	CustomerCity        string `json:"customer_city" binding:"required"`
	CustomerState       string `json:"customer_state" binding:"required"`
	CustomerZip         string `json:"customer_zip" binding:"required"`
	CustomerPhone       string `json:"customer_phone" binding:"required"`
	CustomerEmail       string `json:"customer_email"`
	ApplianceType       string `json:"appliance_type" binding:"required"`
	ApplianceBrand      string `json:"appliance_brand"`
	ModelNumber         string `json:"model_number"`
	SerialNumber        string `json:"serial_number"`
	ServiceDescription  string `json:"service_description" binding:"required"`
	ScheduledDate       string `json:"scheduled_date" binding:"required"`
	ScheduledTimeWindow string `json:"scheduled_time_window" binding:"required"`
	Priority            string `json:"priority"`
	Notes               string `json:"notes"`
	InternalNotes       string `json:"internal_notes"`
}

func (h *Handler) createJob(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing principal"})
		return
	}

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	scheduledDate, err := parseDate(req.ScheduledDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid scheduled_date"})
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), principal, service.CreateJobInput{
		SONumber:            req.SONumber,
		CustomerName:        req.CustomerName,
		CustomerLastName:    req.CustomerLastName,
		CustomerAddress:     req.CustomerAddress,
		CustomerCity:        req.CustomerCity,
		CustomerState:       req.CustomerState,
		CustomerZip:         req.CustomerZip,
		CustomerPhone:       req.CustomerPhone,
		CustomerEmail:       req.CustomerEmail,
		ApplianceType:       req.ApplianceType,
		ApplianceBrand:      req.ApplianceBrand,
		ModelNumber:         req.ModelNumber,
		SerialNumber:        req.SerialNumber,
		ServiceDescription:  req.ServiceDescription,
		ScheduledDate:       scheduledDate,
		ScheduledTimeWindow: req.ScheduledTimeWindow,
		Priority:            model.JobPriority(req.Priority),
		Notes:               req.Notes,
		InternalNotes:       req.InternalNotes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": jobResponse(job, true)})
}

func (h *Handler) listAvailableJobs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.jobs.ListAvailable(c.Request.Context(), service.JobFilter{
		City:          c.Query("city"),
		ApplianceType: c.Query("appliance_type"),
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	jobs := make([]gin.H, 0, len(result.Jobs))
	for i := range result.Jobs {
		jobs = append(jobs, jobResponse(&result.Jobs[i], false))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"jobs": jobs,
			"pagination": gin.H{
				"page":        result.Page,
				"page_size":   result.PageSize,
				"total":       result.Total,
				"total_pages": result.TotalPages,
			},
		},
	})
}

func (h *Handler) getJob(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	principal, _ := middleware.MustPrincipal(c)

	job, err := h.jobs.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// Internal notes stay on the dispatch side.
	includeInternal := !principal.VendorScoped()
	c.JSON(http.StatusOK, gin.H{"success": true, "data": jobResponse(job, includeInternal)})
}

type updateJobRequest struct {
	CustomerPhone       *string `json:"customer_phone"`
	CustomerEmail       *string `json:"customer_email"`
	ServiceDescription  *string `json:"service_description"`
	ScheduledDate       *string `json:"scheduled_date"`
	ScheduledTimeWindow *string `json:"scheduled_time_window"`
	Priority            *string `json:"priority"`
	Notes               *string `json:"notes"`
	InternalNotes       *string `json:"internal_notes"`
}

func (h *Handler) updateJob(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	input := service.UpdateJobInput{
		CustomerPhone:       req.CustomerPhone,
		CustomerEmail:       req.CustomerEmail,
		ServiceDescription:  req.ServiceDescription,
		ScheduledTimeWindow: req.ScheduledTimeWindow,
		Notes:               req.Notes,
		InternalNotes:       req.InternalNotes,
	}
	if req.ScheduledDate != nil {
		date, err := parseDate(*req.ScheduledDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid scheduled_date"})
			return
		}
		input.ScheduledDate = &date
	}
	if req.Priority != nil {
		priority := model.JobPriority(*req.Priority)
		input.Priority = &priority
	}

	job, err := h.jobs.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": jobResponse(job, true)})
}

func (h *Handler) deleteJob(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.jobs.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "job deleted"})
}

type claimJobRequest struct {
	VendorNotes string `json:"vendor_notes"`
}

func (h *Handler) claimJob(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing principal"})
		return
	}

	var req claimJobRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.jobs.Claim(c.Request.Context(), principal, id, req.VendorNotes)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "job successfully claimed",
		"data": gin.H{
			"assignment_id": result.AssignmentID,
			"job_id":        result.JobID,
			"vendor_id":     result.VendorID,
			"status":        result.Status,
			"claimed_at":    result.ClaimedAt,
		},
	})
}

type bulkClaimRequest struct {
	JobIDs []string `json:"job_ids" binding:"required"`
}

func (h *Handler) bulkClaimJobs(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing principal"})
		return
	}

	var req bulkClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	jobIDs := make([]uuid.UUID, 0, len(req.JobIDs))
	for _, raw := range req.JobIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid job id " + raw})
			return
		}
		jobIDs = append(jobIDs, id)
	}

	result, err := h.jobs.BulkClaim(c.Request.Context(), principal, jobIDs)
	if err != nil {
		h.handleError(c, err)
		return
	}

	confirmed := make([]gin.H, 0, len(result.Confirmed))
	for _, item := range result.Confirmed {
		confirmed = append(confirmed, gin.H{"job_id": item.JobID, "assignment_id": item.AssignmentID})
	}
	failed := make([]gin.H, 0, len(result.Failed))
	for _, item := range result.Failed {
		failed = append(failed, gin.H{"job_id": item.JobID, "reason": item.Reason})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"confirmed": confirmed, "failed": failed},
	})
}

func jobResponse(job *model.Job, includeInternal bool) gin.H {
	response := gin.H{
		"id":                    job.ID,
		"so_number":             job.SONumber,
		"customer_name":         job.CustomerName,
		"customer_last_name":    job.CustomerLastName,
		"customer_address":      job.CustomerAddress,
		"customer_city":         job.CustomerCity,
		"customer_state":        job.CustomerState,
		"customer_zip":          job.CustomerZip,
		"customer_phone":        job.CustomerPhone,
		"customer_email":        job.CustomerEmail,
		"appliance_type":        job.ApplianceType,
		"appliance_brand":       job.ApplianceBrand,
		"model_number":          job.ModelNumber,
		"serial_number":         job.SerialNumber,
		"service_description":   job.ServiceDescription,
		"scheduled_date":        job.ScheduledDate,
		"scheduled_time_window": job.ScheduledTimeWindow,
		"priority":              job.Priority,
		"status":                job.Status,
		"notes":                 job.Notes,
		"created_at":            job.CreatedAt,
		"updated_at":            job.UpdatedAt,
	}
	if includeInternal {
		response["internal_notes"] = job.InternalNotes
	}
	return response
}
