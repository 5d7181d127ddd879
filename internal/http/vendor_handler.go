package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techmate/dispatch/internal/model"
	"github.com/techmate/dispatch/internal/service"
)

type createVendorRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"required"`
	PhoneNumber string   `json:"phone_number" binding:"required"`
	Street      string   `json:"street"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Zip         string   `json:"zip"`
	Specialties []string `json:"specialties"`
	Notes       string   `json:"notes"`
}

func (h *Handler) createVendor(c *gin.Context) {
	var req createVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	vendor, err := h.vendors.Create(c.Request.Context(), service.CreateVendorInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		Zip:         req.Zip,
		Specialties: req.Specialties,
		Notes:       req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": vendorResponse(vendor)})
}

func (h *Handler) getVendor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	vendor, err := h.vendors.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": vendorResponse(vendor)})
}

func (h *Handler) listVendors(c *gin.Context) {
	vendors, err := h.vendors.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	data := make([]gin.H, 0, len(vendors))
	for i := range vendors {
		data = append(data, vendorResponse(&vendors[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func vendorResponse(vendor *model.Vendor) gin.H {
	return gin.H{
		"id":           vendor.ID,
		"name":         vendor.Name,
		"email":        vendor.Email,
		"phone_number": vendor.PhoneNumber,
		"street":       vendor.Street,
		"city":         vendor.City,
		"state":        vendor.State,
		"zip":          vendor.Zip,
		"is_active":    vendor.IsActive,
		"specialties":  vendor.Specialties,
		"notes":        vendor.Notes,
		"stats": gin.H{
			"total_jobs":     vendor.Stats.TotalJobs,
			"completed_jobs": vendor.Stats.CompletedJobs,
		},
		"created_at": vendor.CreatedAt,
	}
}
