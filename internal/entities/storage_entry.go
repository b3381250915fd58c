package entities

import (
	"time"
)

// StorageEntry is one key of the per-origin persistent storage. Value holds a
// JSON document written by kvstore.
type StorageEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}

// Storage keys shared with existing browser data.
const (
	StorageKeyBookmarks      = "quran-bookmarks"
	StorageKeyReadingHistory = "quran-reading-history"
	StorageKeySettings       = "quran-settings"
	StorageKeySelectedCity   = "selectedShalatCity"
)
