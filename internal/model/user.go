// Package model defines the persisted entities and core value types.
package model

import "time"

// Script is the display-locale tag governing which text table is used.
type Script string

const (
	ScriptLatin    Script = "latin"
	ScriptCyrillic Script = "cyrillic"
)

// User represents one Telegram chat identity.
//
// The verification flag is monotonic: once a user is confirmed as a GetCourse
// client it is never reset by normal flow.
type User struct {
	ID         uint  `gorm:"primaryKey"`
	TelegramID int64 `gorm:"uniqueIndex;not null"`

	Username     string `gorm:"size:255"`
	FirstName    string `gorm:"size:255"`
	LastName     string `gorm:"size:255"`
	LanguageCode string `gorm:"size:10"`

	IsGetCourseClient   bool       `gorm:"default:false"`
	GetCourseEmail      string     `gorm:"size:255"`
	GetCourseVerifiedAt *time.Time

	PreferredScript Script `gorm:"size:10;default:latin"`

	TotalInterviews     int `gorm:"default:0"`
	CompletedInterviews int `gorm:"default:0"`

	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastActivity time.Time
}

// DisplayName returns the best human-readable name for reports.
func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		name = u.Username
	}
	return name
}
