package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ozodbekAI/uznetix-bot/internal/model"
)

// NewUserParams carries the Telegram identity fields captured on first contact.
type NewUserParams struct {
	TelegramID   int64
	Username     string
	FirstName    string
	LastName     string
	LanguageCode string
	Script       model.Script
}

// GetOrCreateUser looks a user up by Telegram ID, creating the record on
// first contact and touching last-activity on every later one.
func (s *Store) GetOrCreateUser(ctx context.Context, p NewUserParams) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("telegram_id = ?", p.TelegramID).First(&user).Error
	if err == nil {
		now := time.Now()
		if err := s.db.WithContext(ctx).Model(&user).Update("last_activity", now).Error; err != nil {
			return nil, err
		}
		user.LastActivity = now
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = model.User{
		TelegramID:      p.TelegramID,
		Username:        p.Username,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		LanguageCode:    p.LanguageCode,
		PreferredScript: p.Script,
		LastActivity:    time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	s.log.Info("user created", "telegram_id", p.TelegramID)
	return &user, nil
}

// GetUserByTelegramID returns nil without error when no record exists.
func (s *Store) GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// MarkVerified records a successful membership verification. The flag is
// monotonic: nothing in normal flow ever resets it.
func (s *Store) MarkVerified(ctx context.Context, telegramID int64, email string, script model.Script) error {
	now := time.Now()
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("telegram_id = ?", telegramID).
		Updates(map[string]interface{}{
			"is_get_course_client":   true,
			"get_course_email":       email,
			"get_course_verified_at": now,
			"preferred_script":       script,
		}).Error
}

// SetPreferredScript stores the user's display-locale choice.
func (s *Store) SetPreferredScript(ctx context.Context, telegramID int64, script model.Script) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("telegram_id = ?", telegramID).
		Update("preferred_script", script).Error
}

// SearchUsersByUsername finds users by their Telegram handle.
func (s *Store) SearchUsersByUsername(ctx context.Context, username string) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).Find(&users).Error
	return users, err
}

// SearchUsersByEmail finds users by their verified GetCourse email.
func (s *Store) SearchUsersByEmail(ctx context.Context, email string) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).Where("get_course_email = ?", email).Find(&users).Error
	return users, err
}

// AllUsers pages through every known user, for broadcasts. limit <= 0
// means no limit.
func (s *Store) AllUsers(ctx context.Context, limit, offset int) ([]model.User, error) {
	q := s.db.WithContext(ctx)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	var users []model.User
	err := q.Find(&users).Error
	return users, err
}

// TopCompleters returns the users with the most completed interviews.
func (s *Store) TopCompleters(ctx context.Context, n int) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).
		Order("completed_interviews DESC").
		Limit(n).
		Find(&users).Error
	return users, err
}
