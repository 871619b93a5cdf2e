package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/rjnotas/notas-api/internal/config"
	"github.com/rjnotas/notas-api/internal/infrastructure/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens (creating if needed) the local SQLite database file.
func NewSQLiteDB(cfg *config.StorageConfig) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	log.Printf("Using local database at %s", cfg.Path)
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all persisted models
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&storage.StorageEntry{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
