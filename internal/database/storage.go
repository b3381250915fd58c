package database

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/mushaf/internal/entities"
	"github.com/mrlokans/mushaf/internal/kvstore"
)

var _ kvstore.Backend = (*Database)(nil)

// Get returns the raw value stored under key, or kvstore.ErrNotFound.
func (d *Database) Get(key string) (string, error) {
	var entry entities.StorageEntry
	err := d.DB.Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", kvstore.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// Set creates or replaces the value under key in a single statement.
func (d *Database) Set(key, value string) error {
	entry := entities.StorageEntry{Key: key, Value: value}
	return d.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}
