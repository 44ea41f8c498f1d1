package store

import (
	"context"
	"encoding/json"

	"github.com/ozodbekAI/uznetix-bot/internal/model"
)

// LogEvent appends an operational event record. Failures here are logged and
// swallowed: the audit trail must never break a user-facing operation.
func (s *Store) LogEvent(ctx context.Context, telegramID *int64, level, event, message string, data map[string]interface{}) {
	entry := model.BotLog{
		TelegramID: telegramID,
		Level:      level,
		Event:      event,
		Message:    message,
	}
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			entry.Data = raw
		}
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.Warn("failed to write bot log", "event", event, "error", err)
	}
}
