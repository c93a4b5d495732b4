package storage

import (
	"errors"
	"fmt"

	"github.com/pkowalski/codeplay/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists the key-value namespace in a storage_entries table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(key string) (string, bool, error) {
	var entry models.StorageEntry
	// Struct condition so GORM quotes the reserved "key" column per dialect.
	err := s.db.Where(&models.StorageEntry{Key: key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *GormStore) Set(key, value string) error {
	entry := models.StorageEntry{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *GormStore) Remove(key string) error {
	return s.db.Where(&models.StorageEntry{Key: key}).Delete(&models.StorageEntry{}).Error
}

// probeKey is written and removed once at startup to verify the store works.
const probeKey = "__storage_probe__"

// Probe performs a write-read-remove cycle to detect an inaccessible or
// full backing store before any user action depends on it.
func Probe(s Store) error {
	if err := s.Set(probeKey, "ok"); err != nil {
		return fmt.Errorf("storage probe write: %w", err)
	}
	v, ok, err := s.Get(probeKey)
	if err != nil {
		return fmt.Errorf("storage probe read: %w", err)
	}
	if !ok || v != "ok" {
		return fmt.Errorf("storage probe read back %q, want %q", v, "ok")
	}
	if err := s.Remove(probeKey); err != nil {
		return fmt.Errorf("storage probe remove: %w", err)
	}
	return nil
}
