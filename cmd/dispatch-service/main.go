package main

import (
	"fmt"
	"os"

	"github.com/techmate/dispatch/internal/auth"
	"github.com/techmate/dispatch/internal/config"
	"github.com/techmate/dispatch/internal/db"
	"github.com/techmate/dispatch/internal/excel"
	httphandler "github.com/techmate/dispatch/internal/http"
	"github.com/techmate/dispatch/internal/http/middleware"
	"github.com/techmate/dispatch/internal/logger"
	"github.com/techmate/dispatch/internal/pdf"
	"github.com/techmate/dispatch/internal/repository"
	"github.com/techmate/dispatch/internal/service"
	"github.com/techmate/dispatch/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	var photoStore storage.Store
	switch cfg.Storage.Driver {
	case "s3":
		photoStore, err = storage.NewS3Store(cfg.Storage.S3Bucket, cfg.Storage.S3Region)
	default:
		photoStore, err = storage.NewLocalStore(cfg.Storage.LocalDir)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init photo storage")
	}

	jobRepo := repository.NewJobRepository(database)
	assignmentRepo := repository.NewAssignmentRepository(database)
	partRepo := repository.NewPartRepository(database)
	vendorRepo := repository.NewVendorRepository(database)
	photoRepo := repository.NewPhotoRepository(database)

	jobService := service.NewJobService(jobRepo, assignmentRepo, vendorRepo, log)
	assignmentService := service.NewAssignmentService(
		assignmentRepo, jobRepo, partRepo, photoRepo, vendorRepo,
		cfg.Billing.InvoicePrefix, log,
	)
	partService := service.NewPartService(partRepo, assignmentRepo)
	photoService := service.NewPhotoService(photoRepo, partRepo, assignmentRepo, photoStore)
	vendorService := service.NewVendorService(vendorRepo)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(
		jobService, assignmentService, partService, photoService, vendorService,
		pdf.NewGenerator(), excel.NewGenerator(), log,
	)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting dispatch service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
