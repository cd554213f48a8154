package models

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry is one row of the SQL-backed key-value store.
type KVEntry struct {
	Key       string         `gorm:"size:191;primaryKey" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
