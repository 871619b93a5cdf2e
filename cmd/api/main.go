package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/rjnotas/notas-api/internal/application/service"
	"github.com/rjnotas/notas-api/internal/config"
	"github.com/rjnotas/notas-api/internal/infrastructure/database"
	"github.com/rjnotas/notas-api/internal/infrastructure/repository"
	"github.com/rjnotas/notas-api/internal/infrastructure/storage"
	"github.com/rjnotas/notas-api/internal/presentation/http/handler"
	"github.com/rjnotas/notas-api/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Open the local database
	db, err := database.NewSQLiteDB(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize the key-value store and repositories
	store := storage.NewSQLiteStore(db)
	invoiceRepo := repository.NewInvoiceRepository(store)
	settingsRepo := repository.NewSettingsRepository(store)

	// Initialize services
	invoiceService := service.NewInvoiceService(context.Background(), invoiceRepo, settingsRepo)
	settingsService := service.NewSettingsService(settingsRepo, cfg.Storage.MaxLogoSize)
	exportService := service.NewExportService(invoiceService, settingsRepo, cfg.Export)

	// Initialize handlers
	handlers := &routes.Handlers{
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Settings: handler.NewSettingsHandler(settingsService),
		Export:   handler.NewExportHandler(exportService),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
