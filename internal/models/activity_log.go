package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog records one bot API command for auditing.
type ActivityLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp  time.Time      `gorm:"not null;index" json:"timestamp"`
	Operation  string         `gorm:"size:50;not null;index" json:"operation"`
	Actor      string         `gorm:"size:100;index" json:"actor"`
	Parameters datatypes.JSON `json:"parameters"`
	Success    bool           `gorm:"not null" json:"success"`
	Error      string         `gorm:"type:text" json:"error,omitempty"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (ActivityLog) TableName() string {
	return "bot_activity_logs"
}
