package model

import (
	"time"

	"gorm.io/datatypes"
)

// Recommendation is the narrative produced for one completed session.
// Immutable once created except for the user-supplied rating and feedback.
type Recommendation struct {
	ID         uint  `gorm:"primaryKey"`
	SessionID  uint  `gorm:"index;not null"`
	UserID     uint  `gorm:"index;not null"`
	TelegramID int64 `gorm:"index;not null"`

	Content string `gorm:"type:text"`
	// ProfileJSON is the Profile snapshot the recommendation was generated from.
	ProfileJSON datatypes.JSON

	ModelUsed      string  `gorm:"size:100"`
	GenerationTime float64 // seconds

	UserRating   *int
	UserFeedback string `gorm:"type:text"`

	CreatedAt time.Time
}
