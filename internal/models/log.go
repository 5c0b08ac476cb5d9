package models

import "time"

// LogEntry is an append-only application log record.
type LogEntry struct {
	BaseModel
	Level     string    `gorm:"not null" json:"level"`
	Message   string    `gorm:"not null" json:"message"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}
