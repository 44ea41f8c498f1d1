package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ozodbekAI/uznetix-bot/internal/model"
	"github.com/ozodbekAI/uznetix-bot/pkg/logger"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	s, err := NewWithDB(db, logger.NewNop())
	require.NoError(t, err)
	return s
}

func seedUser(t *testing.T, s *Store, telegramID int64) *model.User {
	t.Helper()
	user, err := s.GetOrCreateUser(context.Background(), NewUserParams{
		TelegramID: telegramID,
		Username:   "tester",
		FirstName:  "Aziz",
		Script:     model.ScriptLatin,
	})
	require.NoError(t, err)
	return user
}

func TestCreateSession_DemotesPreviousActive(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	user := seedUser(t, s, 42)

	first, err := s.CreateSession(ctx, user)
	require.NoError(t, err)

	second, err := s.CreateSession(ctx, user)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	old, err := s.GetSessionByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAbandoned, old.Status)

	active, err := s.GetActiveSession(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)

	u, err := s.GetUserByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 2, u.TotalInterviews)
}

func TestGetActiveSession_NoneReturnsNil(t *testing.T) {
	s := testStore(t)

	active, err := s.GetActiveSession(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestAppendTurn_PreservesOrder(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	user := seedUser(t, s, 42)

	sess, err := s.CreateSession(ctx, user)
	require.NoError(t, err)

	require.NoError(t, s.AppendTurn(ctx, sess.ID, model.RoleAssistant, "Assalomu alaykum!"))
	require.NoError(t, s.AppendTurn(ctx, sess.ID, model.RoleUser, "Salom"))
	require.NoError(t, s.AppendTurn(ctx, sess.ID, model.RoleAssistant, "Maqsadingiz nima?"))

	reloaded, err := s.GetSessionByID(ctx, sess.ID)
	require.NoError(t, err)

	history, err := reloaded.History()
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, model.RoleAssistant, history[0].Role)
	assert.Equal(t, "Salom", history[1].Content)
	assert.Equal(t, "Maqsadingiz nima?", history[2].Content)
}

func TestAppendTurn_MissingSession(t *testing.T) {
	s := testStore(t)

	err := s.AppendTurn(context.Background(), 12345, model.RoleUser, "hello")
	assert.Error(t, err)
}

func TestCompleteSession_WritesProfileAndCounter(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	user := seedUser(t, s, 42)

	sess, err := s.CreateSession(ctx, user)
	require.NoError(t, err)

	profile := &model.Profile{
		Goal:          "uy olish",
		Horizon:       "10 yil",
		Budget:        "1000$",
		RiskTolerance: "yuqori",
		Currency:      "USD",
	}
	require.NoError(t, s.CompleteSession(ctx, sess.ID, profile))

	reloaded, err := s.GetSessionByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, reloaded.Status)
	require.NotNil(t, reloaded.CompletedAt)

	stored, err := reloaded.Profile()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "uy olish", stored.Goal)
	assert.False(t, stored.HalalFilter)

	u, err := s.GetUserByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, u.CompletedInterviews)

	active, err := s.GetActiveSession(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestIncrementQuestions(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	user := seedUser(t, s, 42)

	sess, err := s.CreateSession(ctx, user)
	require.NoError(t, err)

	require.NoError(t, s.IncrementQuestions(ctx, sess.ID))
	require.NoError(t, s.IncrementQuestions(ctx, sess.ID))

	reloaded, err := s.GetSessionByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.QuestionsAsked)
}

func TestListUserSessions_NewestFirstAndLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	user := seedUser(t, s, 42)

	var last *model.InterviewSession
	for i := 0; i < 3; i++ {
		sess, err := s.CreateSession(ctx, user)
		require.NoError(t, err)
		last = sess
	}

	all, err := s.ListUserSessions(ctx, 42, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	limited, err := s.ListUserSessions(ctx, 42, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, last.ID, limited[0].ID)
}

func TestRecommendationRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	user := seedUser(t, s, 42)

	sess, err := s.CreateSession(ctx, user)
	require.NoError(t, err)

	profile := &model.Profile{Goal: "pensiya", Currency: "USD"}
	require.NoError(t, s.CompleteSession(ctx, sess.ID, profile))

	completed, err := s.GetSessionByID(ctx, sess.ID)
	require.NoError(t, err)

	rec, err := s.CreateRecommendation(ctx, completed, profile, "portfolio text", "gpt-4o-mini", 3.5)
	require.NoError(t, err)
	require.NotZero(t, rec.ID)

	bySession, err := s.GetRecommendationBySession(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, bySession)
	assert.Equal(t, "portfolio text", bySession.Content)
	assert.Equal(t, "gpt-4o-mini", bySession.ModelUsed)

	require.NoError(t, s.RateRecommendation(ctx, rec.ID, 5, "zo'r"))
	rated, err := s.GetRecommendationBySession(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, rated.UserRating)
	assert.Equal(t, 5, *rated.UserRating)
	assert.Equal(t, "zo'r", rated.UserFeedback)

	list, err := s.ListUserRecommendations(ctx, 42, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestMarkVerified(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	seedUser(t, s, 42)

	require.NoError(t, s.MarkVerified(ctx, 42, "user@example.com", model.ScriptCyrillic))

	u, err := s.GetUserByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.True(t, u.IsGetCourseClient)
	assert.Equal(t, "user@example.com", u.GetCourseEmail)
	assert.Equal(t, model.ScriptCyrillic, u.PreferredScript)
	require.NotNil(t, u.GetCourseVerifiedAt)
}

func TestCollectStats_Funnel(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	user := seedUser(t, s, 42)

	// Two sessions abandoned at question 3, one at question 5, one completed.
	for _, questions := range []int{3, 3, 5} {
		sess, err := s.CreateSession(ctx, user)
		require.NoError(t, err)
		for i := 0; i < questions; i++ {
			require.NoError(t, s.IncrementQuestions(ctx, sess.ID))
		}
	}
	final, err := s.CreateSession(ctx, user)
	require.NoError(t, err)
	require.NoError(t, s.CompleteSession(ctx, final.ID, &model.Profile{Goal: "uy"}))

	stats, err := s.CollectStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(4), stats.TotalInterviews)
	assert.Equal(t, int64(1), stats.CompletedInterviews)
	assert.Equal(t, int64(3), stats.AbandonedSessions)
	assert.Equal(t, 3, stats.DropoffQuestion)
	assert.InDelta(t, 200.0/3.0, stats.DropoffShare, 0.01)
	assert.Equal(t, int64(2), stats.AbandonedByQuestion[3])
	assert.Equal(t, int64(1), stats.AbandonedByQuestion[5])
}
