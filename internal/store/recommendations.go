package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ozodbekAI/uznetix-bot/internal/model"
)

// CreateRecommendation stores the narrative produced for a completed session
// together with the profile snapshot it was generated from.
func (s *Store) CreateRecommendation(ctx context.Context, session *model.InterviewSession, profile *model.Profile, content, modelUsed string, generationSec float64) (*model.Recommendation, error) {
	raw, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("create recommendation: encode profile: %w", err)
	}

	rec := &model.Recommendation{
		SessionID:      session.ID,
		UserID:         session.UserID,
		TelegramID:     session.TelegramID,
		Content:        content,
		ProfileJSON:    raw,
		ModelUsed:      modelUsed,
		GenerationTime: generationSec,
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// GetRecommendationBySession returns nil without error when none exists.
func (s *Store) GetRecommendationBySession(ctx context.Context, sessionID uint) (*model.Recommendation, error) {
	var rec model.Recommendation
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListUserRecommendations returns the user's recommendations, newest first.
// limit <= 0 means no limit.
func (s *Store) ListUserRecommendations(ctx context.Context, telegramID int64, limit int) ([]model.Recommendation, error) {
	q := s.db.WithContext(ctx).
		Where("telegram_id = ?", telegramID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []model.Recommendation
	err := q.Find(&recs).Error
	return recs, err
}

// RateRecommendation records post-hoc user feedback. The narrative itself is
// never rewritten.
func (s *Store) RateRecommendation(ctx context.Context, id uint, rating int, feedback string) error {
	return s.db.WithContext(ctx).Model(&model.Recommendation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"user_rating":   rating,
			"user_feedback": feedback,
		}).Error
}
