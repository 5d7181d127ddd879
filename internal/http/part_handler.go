package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/techmate/dispatch/internal/http/middleware"
	"github.com/techmate/dispatch/internal/model"
	"github.com/techmate/dispatch/internal/service"
)

type addPartRequest struct {
	PartNumber string  `json:"part_number" binding:"required"`
	PartName   string  `json:"part_name" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required"`
	UnitCost   float64 `json:"unit_cost"`
	Notes      string  `json:"notes"`
}

func (h *Handler) addPart(c *gin.Context) {
	assignmentID, ok := parseID(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing principal"})
		return
	}

	var req addPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	part, err := h.parts.AddPart(c.Request.Context(), principal, assignmentID, service.AddPartInput{
		PartNumber: req.PartNumber,
		PartName:   req.PartName,
		Quantity:   req.Quantity,
		UnitCost:   req.UnitCost,
		Notes:      req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": partResponse(*part)})
}

func (h *Handler) listParts(c *gin.Context) {
	assignmentID, ok := parseID(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing principal"})
		return
	}

	parts, err := h.parts.ListParts(c.Request.Context(), principal, assignmentID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	data := make([]gin.H, 0, len(parts))
	for _, part := range parts {
		data = append(data, partResponse(part))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (h *Handler) deletePart(c *gin.Context) {
	partID, ok := parseID(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing principal"})
		return
	}

	if err := h.parts.DeletePart(c.Request.Context(), principal, partID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "part deleted"})
}

func (h *Handler) attachPartPhotos(c *gin.Context) {
	partID, ok := parseID(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing principal"})
		return
	}

	files, description, ok := h.collectUploads(c)
	if !ok {
		return
	}

	photos, err := h.photos.AttachToPart(c.Request.Context(), principal, partID, description, files)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.respondUploaded(c, photos)
}

func (h *Handler) attachAssignmentPhotos(c *gin.Context) {
	assignmentID, ok := parseID(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing principal"})
		return
	}

	files, description, ok := h.collectUploads(c)
	if !ok {
		return
	}

	photoType := model.PhotoType(c.PostForm("photo_type"))
	photos, err := h.photos.AttachToAssignment(c.Request.Context(), principal, assignmentID, photoType, description, files)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.respondUploaded(c, photos)
}

type removePhotosRequest struct {
	PhotoIDs []string `json:"photo_ids" binding:"required"`
}

func (h *Handler) removePartPhotos(c *gin.Context) {
	partID, ok := parseID(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing principal"})
		return
	}

	var req removePhotosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	photoIDs := make([]uuid.UUID, 0, len(req.PhotoIDs))
	for _, raw := range req.PhotoIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid photo id " + raw})
			return
		}
		photoIDs = append(photoIDs, id)
	}

	if err := h.photos.Remove(c.Request.Context(), principal, partID, photoIDs); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "photos deleted"})
}

const maxPhotoUploads = 10

func (h *Handler) collectUploads(c *gin.Context) ([]service.UploadFile, string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "multipart form required"})
		return nil, "", false
	}

	headers := form.File["photos"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no photos uploaded"})
		return nil, "", false
	}
	if len(headers) > maxPhotoUploads {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "too many photos"})
		return nil, "", false
	}

	files := make([]service.UploadFile, 0, len(headers))
	for _, header := range headers {
		opened, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unreadable upload " + header.Filename})
			return nil, "", false
		}
		content, err := io.ReadAll(opened)
		opened.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unreadable upload " + header.Filename})
			return nil, "", false
		}
		files = append(files, service.UploadFile{
			OriginalName: header.Filename,
			MimeType:     header.Header.Get("Content-Type"),
			Size:         header.Size,
			Content:      content,
		})
	}

	return files, c.PostForm("description"), true
}

func (h *Handler) respondUploaded(c *gin.Context, photos []model.Photo) {
	uploaded := make([]gin.H, 0, len(photos))
	for _, photo := range photos {
		uploaded = append(uploaded, photoResponse(photo))
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"uploaded": len(uploaded), "files": uploaded},
	})
}

func partResponse(part model.Part) gin.H {
	return gin.H{
		"id":            part.ID,
		"assignment_id": part.AssignmentID,
		"part_number":   part.PartNumber,
		"part_name":     part.PartName,
		"quantity":      part.Quantity,
		"unit_cost":     part.UnitCost,
		"line_total":    part.LineTotal,
		"notes":         part.Notes,
		"added_at":      part.CreatedAt,
	}
}

func photoResponse(photo model.Photo) gin.H {
	return gin.H{
		"id":            photo.ID,
		"assignment_id": photo.AssignmentID,
		"part_id":       photo.PartID,
		"filename":      photo.Filename,
		"url":           photo.URL,
		"photo_type":    photo.PhotoType,
		"description":   photo.Description,
		"uploaded_at":   photo.CreatedAt,
	}
}
