package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageEntry is one persisted key-value row.
type StorageEntry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for the StorageEntry model
func (StorageEntry) TableName() string {
	return "storage_entries"
}

type sqliteStore struct {
	db *gorm.DB
}

// NewSQLiteStore creates a Store backed by the local SQLite database.
func NewSQLiteStore(db *gorm.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Load(ctx context.Context, key string, dest any) bool {
	var entry StorageEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("storage: read of %q failed, using default: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(entry.Value), dest); err != nil {
		log.Printf("storage: corrupt value under %q, using default: %v", key, err)
		return false
	}
	return true
}

func (s *sqliteStore) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := StorageEntry{Key: key, Value: string(data), UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entry).Error
}

func (s *sqliteStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&StorageEntry{}, "key = ?", key).Error
}
