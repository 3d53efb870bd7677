package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	SyncStatusSuccess = "SUCCESS"
	SyncStatusError   = "ERROR"

	SyncTypeManual    = "MANUAL"
	SyncTypeAuto      = "AUTO"
	SyncTypeScheduled = "SCHEDULED"
	SyncTypeStartup   = "STARTUP"
)

// SyncLogEntry is append-only: exactly one row per orchestrator invocation,
// success or failure. Breakdown carries per-table record counts as JSON.
type SyncLogEntry struct {
	ID                  uint64    `gorm:"primaryKey;autoIncrement"`
	SyncTimestamp       time.Time `gorm:"not null;index"`
	FilePath            string    `gorm:"type:text"`
	FileModifiedTime    *time.Time
	Status              string         `gorm:"type:varchar(16);not null"`
	RecordsProcessed    int            `gorm:"not null;default:0"`
	ErrorMessage        *string        `gorm:"type:text"`
	SyncDurationSeconds float64        `gorm:"not null;default:0"`
	SyncType            string         `gorm:"type:varchar(16);not null;default:MANUAL"`
	Breakdown           datatypes.JSON `gorm:"type:json"`
}

func (SyncLogEntry) TableName() string {
	return "sync_log"
}
