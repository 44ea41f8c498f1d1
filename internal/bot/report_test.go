package bot

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozodbekAI/uznetix-bot/internal/model"
	"github.com/ozodbekAI/uznetix-bot/internal/store"
)

func TestBuildStatsReport(t *testing.T) {
	s := &store.Stats{
		TotalUsers:          120,
		VerifiedUsers:       80,
		ActiveUsers7d:       30,
		TotalInterviews:     200,
		CompletedInterviews: 150,
		CompletionRate:      75,
		AbandonedSessions:   40,
		DropoffQuestion:     3,
		DropoffShare:        50,
		AbandonedByQuestion: map[int]int64{3: 20, 5: 10, 7: 10},
		AvgGenerationTime:   4.2,
	}

	report := buildStatsReport(s)

	assert.Contains(t, report, "120")
	assert.Contains(t, report, "75.0%")
	assert.Contains(t, report, "3-savol (50.0%)")
	assert.Contains(t, report, "savol 3: 20 ta")
	assert.Contains(t, report, "savol 7: 10 ta")
}

func TestBuildStatsReport_NoAbandoned(t *testing.T) {
	report := buildStatsReport(&store.Stats{TotalUsers: 1})
	assert.NotContains(t, report, "Tashlab ketilgan")
}

func TestBuildTranscript(t *testing.T) {
	user := &model.User{TelegramID: 42, FirstName: "Aziz", Username: "aziz"}
	sessions := []model.InterviewSession{
		{
			ID:                  7,
			Status:              model.StatusCompleted,
			CreatedAt:           time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			ConversationHistory: []byte(`[{"role":"assistant","content":"Salom!"},{"role":"user","content":"Uy olmoqchiman"}]`),
			CollectedData:       []byte(`{"goal":"uy","budget":"1000$","currency":"USD"}`),
		},
	}

	out, err := buildTranscript(user, sessions)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "telegram_id=42")
	assert.Contains(t, text, "[assistant] Salom!")
	assert.Contains(t, text, "[user] Uy olmoqchiman")
	assert.Contains(t, text, `goal="uy"`)
}

func TestBuildStatsCSV(t *testing.T) {
	s := &store.Stats{
		TotalUsers:          120,
		VerifiedUsers:       80,
		TotalInterviews:     200,
		CompletedInterviews: 150,
		CompletionRate:      75,
		AbandonedSessions:   40,
		DropoffQuestion:     3,
		DropoffShare:        50,
		AbandonedByQuestion: map[int]int64{3: 20, 5: 10},
		AvgGenerationTime:   4.2,
	}

	out, err := buildStatsCSV(s)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Metrika", "Qiymat"}, records[0])
	assert.Contains(t, records, []string{"Jami foydalanuvchilar", "120"})
	assert.Contains(t, records, []string{"Yakunlanish foizi", "75.0%"})
	assert.Contains(t, records, []string{"Savol 3 da to'xtaganlar", "20"})
}

func TestAdminDisplayName(t *testing.T) {
	assert.Equal(t, "Aziz (@aziz)", adminDisplayName(&model.User{FirstName: "Aziz", Username: "aziz"}))
	assert.Equal(t, "@aziz", adminDisplayName(&model.User{Username: "aziz"}))
	assert.Equal(t, "id:42", adminDisplayName(&model.User{TelegramID: 42}))
}
