package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/techmate/dispatch/internal/excel"
	"github.com/techmate/dispatch/internal/pdf"
	"github.com/techmate/dispatch/internal/service"
)

type Handler struct {
	jobs        *service.JobService
	assignments *service.AssignmentService
	parts       *service.PartService
	photos      *service.PhotoService
	vendors     *service.VendorService
	invoicePDF  *pdf.Generator
	scheduleXLS *excel.Generator
	log         zerolog.Logger
}

func NewHandler(
	jobs *service.JobService,
	assignments *service.AssignmentService,
	parts *service.PartService,
	photos *service.PhotoService,
	vendors *service.VendorService,
	invoicePDF *pdf.Generator,
	scheduleXLS *excel.Generator,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		jobs:        jobs,
		assignments: assignments,
		parts:       parts,
		photos:      photos,
		vendors:     vendors,
		invoicePDF:  invoicePDF,
		scheduleXLS: scheduleXLS,
		log:         log,
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrDuplicateClaim):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrJobUnavailable), errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
	}
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(param)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
