package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/techmate/dispatch/internal/http/middleware"
	"github.com/techmate/dispatch/internal/model"
)

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, environment string, allowedOrigins []string) *gin.Engine {
	if environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	api.Use(authMiddleware)

	jobs := api.Group("/jobs")
	jobs.POST("", middleware.RequirePermission(model.PermManageAllJobs), handler.createJob)
	jobs.GET("/available", middleware.RequirePermission(model.PermViewAssignedJobs), handler.listAvailableJobs)
	jobs.POST("/confirm", middleware.RequirePermission(model.PermViewAssignedJobs), handler.bulkClaimJobs)
	jobs.GET("/:id", middleware.RequirePermission(model.PermViewAssignedJobs), handler.getJob)
	jobs.PUT("/:id", middleware.RequirePermission(model.PermManageAllJobs), handler.updateJob)
	jobs.DELETE("/:id", middleware.RequirePermission(model.PermManageAllJobs), handler.deleteJob)
	jobs.POST("/:id/claims", middleware.RequirePermission(model.PermViewAssignedJobs), handler.claimJob)

	assignments := api.Group("/assignments")
	assignments.GET("", middleware.RequirePermission(model.PermViewAssignedJobs), handler.listAssignments)
	assignments.GET("/export", middleware.RequirePermission(model.PermViewAssignedJobs), handler.exportAssignments)
	assignments.GET("/:id", middleware.RequirePermission(model.PermViewAssignedJobs), handler.getAssignment)
	assignments.PATCH("/:id", middleware.RequirePermission(model.PermUpdateJobStatus), handler.updateAssignment)
	assignments.PUT("/:id/schedule", middleware.RequirePermission(model.PermUpdateJobStatus), handler.rescheduleAssignment)
	assignments.GET("/:id/invoice", middleware.RequirePermission(model.PermViewAssignedJobs), handler.assignmentInvoice)
	assignments.POST("/:id/parts", middleware.RequirePermission(model.PermUploadParts), handler.addPart)
	assignments.GET("/:id/parts", middleware.RequirePermission(model.PermViewAssignedJobs), handler.listParts)
	assignments.POST("/:id/photos", middleware.RequirePermission(model.PermUploadParts), handler.attachAssignmentPhotos)

	parts := api.Group("/parts")
	parts.DELETE("/:id", middleware.RequirePermission(model.PermUploadParts), handler.deletePart)
	parts.POST("/:id/photos", middleware.RequirePermission(model.PermUploadParts), handler.attachPartPhotos)
	parts.DELETE("/:id/photos", middleware.RequirePermission(model.PermUploadParts), handler.removePartPhotos)

	vendors := api.Group("/vendors")
	vendors.POST("", middleware.RequirePermission(model.PermManageVendors), handler.createVendor)
	vendors.GET("", middleware.RequirePermission(model.PermManageVendors), handler.listVendors)
	vendors.GET("/:id", middleware.RequirePermission(model.PermManageVendors), handler.getVendor)

	return router
}
