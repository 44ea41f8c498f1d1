package store

import (
	"context"
	"time"

	"github.com/ozodbekAI/uznetix-bot/internal/model"
)

// Stats is the aggregate picture shown to operators.
type Stats struct {
	TotalUsers    int64
	ActiveUsers7d int64
	VerifiedUsers int64

	TotalInterviews     int64
	CompletedInterviews int64
	CompletionRate      float64

	// Funnel: for abandoned sessions, the question number users most often
	// stopped at and its share of all abandoned sessions.
	AbandonedSessions   int64
	DropoffQuestion     int
	DropoffShare        float64
	AbandonedByQuestion map[int]int64

	NewUsersToday  int64
	CompletedToday int64

	AvgGenerationTime float64
}

// CollectStats gathers aggregate counters and the abandonment funnel.
func (s *Store) CollectStats(ctx context.Context) (*Stats, error) {
	db := s.db.WithContext(ctx)
	today := time.Now().Truncate(24 * time.Hour)
	weekAgo := time.Now().AddDate(0, 0, -7)

	st := &Stats{AbandonedByQuestion: make(map[int]int64)}

	if err := db.Model(&model.User{}).Count(&st.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.User{}).
		Where("last_activity >= ?", weekAgo).
		Count(&st.ActiveUsers7d).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.User{}).
		Where("is_get_course_client = ?", true).
		Count(&st.VerifiedUsers).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.InterviewSession{}).Count(&st.TotalInterviews).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.InterviewSession{}).
		Where("status = ?", model.StatusCompleted).
		Count(&st.CompletedInterviews).Error; err != nil {
		return nil, err
	}
	if st.TotalInterviews > 0 {
		st.CompletionRate = float64(st.CompletedInterviews) / float64(st.TotalInterviews) * 100
	}

	// Per-question dropoff over abandoned sessions.
	type bucket struct {
		QuestionsAsked int
		N              int64
	}
	var buckets []bucket
	if err := db.Model(&model.InterviewSession{}).
		Select("questions_asked, COUNT(*) AS n").
		Where("status = ?", model.StatusAbandoned).
		Group("questions_asked").
		Scan(&buckets).Error; err != nil {
		return nil, err
	}
	var modal int64
	for _, b := range buckets {
		st.AbandonedByQuestion[b.QuestionsAsked] = b.N
		st.AbandonedSessions += b.N
		if b.N > modal {
			modal = b.N
			st.DropoffQuestion = b.QuestionsAsked
		}
	}
	if st.AbandonedSessions > 0 {
		st.DropoffShare = float64(modal) / float64(st.AbandonedSessions) * 100
	}

	if err := db.Model(&model.User{}).
		Where("created_at >= ?", today).
		Count(&st.NewUsersToday).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.InterviewSession{}).
		Where("status = ? AND completed_at >= ?", model.StatusCompleted, today).
		Count(&st.CompletedToday).Error; err != nil {
		return nil, err
	}

	var avg *float64
	if err := db.Model(&model.Recommendation{}).
		Select("AVG(generation_time)").
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg != nil {
		st.AvgGenerationTime = *avg
	}

	return st, nil
}
