package models

import "time"

// StorageEntry is one key in the flat storage namespace. Whole collections
// are serialized as JSON into Value, there are no per-project rows.
type StorageEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100;not null" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StorageEntry) TableName() string { return "storage_entries" }
