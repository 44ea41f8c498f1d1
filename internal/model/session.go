package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// SessionStatus enumerates the lifecycle of an interview session.
type SessionStatus string

const (
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
	StatusAbandoned SessionStatus = "abandoned"
)

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of a session's conversation history. Immutable once
// appended.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// InterviewSession is one attempt at the interview. At most one active
// session exists per user; creating a new one demotes the previous active
// session to abandoned.
type InterviewSession struct {
	ID         uint  `gorm:"primaryKey"`
	UserID     uint  `gorm:"index;not null"`
	TelegramID int64 `gorm:"index;not null"`

	Status SessionStatus `gorm:"size:50;index;default:active"`

	// ConversationHistory is an append-only ordered []Turn stored as JSON.
	ConversationHistory datatypes.JSON
	// CollectedData is the Profile accumulator, written only on completion.
	CollectedData datatypes.JSON

	PreferredScript Script `gorm:"size:10;default:latin"`
	QuestionsAsked  int    `gorm:"default:0"`

	CreatedAt   time.Time
	CompletedAt *time.Time
}

// History decodes the stored turn log. An empty column yields a nil slice.
func (s *InterviewSession) History() ([]Turn, error) {
	if len(s.ConversationHistory) == 0 {
		return nil, nil
	}
	var turns []Turn
	if err := json.Unmarshal(s.ConversationHistory, &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

// Profile decodes the collected profile, or nil if the session never
// completed.
func (s *InterviewSession) Profile() (*Profile, error) {
	if len(s.CollectedData) == 0 {
		return nil, nil
	}
	var p Profile
	if err := json.Unmarshal(s.CollectedData, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
