package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ozodbekAI/uznetix-bot/internal/model"
	"github.com/ozodbekAI/uznetix-bot/pkg/metrics"
)

// CreateSession opens a new interview session for the user. Any pre-existing
// active session is demoted to abandoned within the same transaction, so at
// most one active session exists per user at any time. The user's
// started-interview counter is bumped as part of the same unit.
func (s *Store) CreateSession(ctx context.Context, user *model.User) (*model.InterviewSession, error) {
	session := &model.InterviewSession{
		UserID:          user.ID,
		TelegramID:      user.TelegramID,
		Status:          model.StatusActive,
		PreferredScript: user.PreferredScript,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.InterviewSession{}).
			Where("telegram_id = ? AND status = ?", user.TelegramID, model.StatusActive).
			Update("status", model.StatusAbandoned).Error; err != nil {
			return err
		}
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).
			Where("id = ?", user.ID).
			Update("total_interviews", gorm.Expr("total_interviews + 1")).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	metrics.InterviewsStarted.Inc()
	s.log.Info("interview session created", "telegram_id", user.TelegramID, "session_id", session.ID)
	return session, nil
}

// GetActiveSession returns the user's single active session, or nil.
func (s *Store) GetActiveSession(ctx context.Context, telegramID int64) (*model.InterviewSession, error) {
	var session model.InterviewSession
	err := s.db.WithContext(ctx).
		Where("telegram_id = ? AND status = ?", telegramID, model.StatusActive).
		Order("created_at DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSessionByID returns nil without error when the session does not exist.
func (s *Store) GetSessionByID(ctx context.Context, id uint) (*model.InterviewSession, error) {
	var session model.InterviewSession
	err := s.db.WithContext(ctx).First(&session, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// AppendTurn appends one turn to the session's conversation history. This is
// a read-modify-write against the stored JSON sequence; concurrent turns for
// the same session are not supported.
func (s *Store) AppendTurn(ctx context.Context, sessionID uint, role model.Role, content string) error {
	session, err := s.GetSessionByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("append turn: session %d not found", sessionID)
	}

	turns, err := session.History()
	if err != nil {
		return fmt.Errorf("append turn: decode history: %w", err)
	}
	turns = append(turns, model.Turn{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})

	raw, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("append turn: encode history: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&model.InterviewSession{}).
		Where("id = ?", sessionID).
		Update("conversation_history", raw).Error; err != nil {
		return err
	}

	metrics.TurnsTotal.WithLabelValues(string(role)).Inc()
	return nil
}

// IncrementQuestions bumps the session's question counter by one.
func (s *Store) IncrementQuestions(ctx context.Context, sessionID uint) error {
	return s.db.WithContext(ctx).Model(&model.InterviewSession{}).
		Where("id = ?", sessionID).
		Update("questions_asked", gorm.Expr("questions_asked + 1")).Error
}

// CompleteSession finalizes a session: the profile and completion timestamp
// are written together with the status flip, and the user's completed-
// interview counter is bumped, all in one transaction so a completed session
// is never visible without its profile.
func (s *Store) CompleteSession(ctx context.Context, sessionID uint, profile *model.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("complete session: encode profile: %w", err)
	}
	now := time.Now()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session model.InterviewSession
		if err := tx.First(&session, sessionID).Error; err != nil {
			return err
		}
		if err := tx.Model(&session).Updates(map[string]interface{}{
			"status":         model.StatusCompleted,
			"collected_data": raw,
			"completed_at":   now,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).
			Where("id = ?", session.UserID).
			Update("completed_interviews", gorm.Expr("completed_interviews + 1")).Error
	})
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}

	metrics.InterviewsCompleted.Inc()
	s.log.Info("interview session completed", "session_id", sessionID)
	return nil
}

// ListUserSessions returns the user's sessions, newest first. limit <= 0
// means no limit.
func (s *Store) ListUserSessions(ctx context.Context, telegramID int64, limit int) ([]model.InterviewSession, error) {
	q := s.db.WithContext(ctx).
		Where("telegram_id = ?", telegramID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var sessions []model.InterviewSession
	err := q.Find(&sessions).Error
	return sessions, err
}
