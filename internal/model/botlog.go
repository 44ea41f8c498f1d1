package model

import (
	"time"

	"gorm.io/datatypes"
)

// BotLog is an append-only operational event record.
type BotLog struct {
	ID         uint   `gorm:"primaryKey"`
	TelegramID *int64 `gorm:"index"`

	Level   string `gorm:"size:50;index"`
	Event   string `gorm:"size:255"`
	Message string `gorm:"type:text"`
	Data    datatypes.JSON

	CreatedAt time.Time
}
