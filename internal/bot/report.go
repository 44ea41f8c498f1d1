package bot

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ozodbekAI/uznetix-bot/internal/model"
	"github.com/ozodbekAI/uznetix-bot/internal/store"
)

// buildStatsReport renders the operator statistics message.
func buildStatsReport(s *store.Stats) string {
	var sb strings.Builder

	sb.WriteString("📊 <b>Bot statistikasi</b>\n\n")
	fmt.Fprintf(&sb, "👥 Foydalanuvchilar: %d\n", s.TotalUsers)
	fmt.Fprintf(&sb, "✅ Tasdiqlangan: %d\n", s.VerifiedUsers)
	fmt.Fprintf(&sb, "🔥 Faol (7 kun): %d\n", s.ActiveUsers7d)
	fmt.Fprintf(&sb, "🆕 Bugun qo'shilgan: %d\n\n", s.NewUsersToday)

	fmt.Fprintf(&sb, "🎯 Intervyular: %d\n", s.TotalInterviews)
	fmt.Fprintf(&sb, "🏁 Yakunlangan: %d (%.1f%%)\n", s.CompletedInterviews, s.CompletionRate)
	fmt.Fprintf(&sb, "📅 Bugun yakunlangan: %d\n", s.CompletedToday)
	fmt.Fprintf(&sb, "⏱ O'rtacha tavsiya vaqti: %.1fs\n\n", s.AvgGenerationTime)

	if s.AbandonedSessions > 0 {
		fmt.Fprintf(&sb, "🚪 Tashlab ketilgan: %d\n", s.AbandonedSessions)
		fmt.Fprintf(&sb, "📉 Eng ko'p to'xtagan savol: %d-savol (%.1f%%)\n",
			s.DropoffQuestion, s.DropoffShare)

		questions := make([]int, 0, len(s.AbandonedByQuestion))
		for q := range s.AbandonedByQuestion {
			questions = append(questions, q)
		}
		sort.Ints(questions)
		for _, q := range questions {
			fmt.Fprintf(&sb, "   savol %d: %d ta\n", q, s.AbandonedByQuestion[q])
		}
	}
	return sb.String()
}

// buildTranscript renders a user's interview sessions as plain text
// for the .txt history export.
func buildTranscript(user *model.User, sessions []model.InterviewSession) ([]byte, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "User: %s (telegram_id=%d)\n", adminDisplayName(user), user.TelegramID)
	fmt.Fprintf(&sb, "Sessions: %d\n", len(sessions))
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")

	for i, s := range sessions {
		fmt.Fprintf(&sb, "--- Session %d (#%d, %s, started %s) ---\n",
			i+1, s.ID, s.Status, s.CreatedAt.Format("2006-01-02 15:04"))

		history, err := s.History()
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", s.ID, err)
		}
		for _, t := range history {
			fmt.Fprintf(&sb, "[%s] %s\n\n", t.Role, t.Content)
		}

		if s.Status == model.StatusCompleted {
			if profile, err := s.Profile(); err == nil && profile != nil {
				fmt.Fprintf(&sb, "Profile: goal=%q horizon=%q budget=%q risk=%q currency=%q\n",
					profile.Goal, profile.Horizon, profile.Budget, profile.RiskTolerance, profile.Currency)
			}
		}
		sb.WriteString("\n")
	}
	return []byte(sb.String()), nil
}

// buildStatsCSV renders the operator statistics as metric/value rows
// for the admin export.
func buildStatsCSV(s *store.Stats) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Metrika", "Qiymat"},
		{"Jami foydalanuvchilar", strconv.FormatInt(s.TotalUsers, 10)},
		{"Faol 7 kun", strconv.FormatInt(s.ActiveUsers7d, 10)},
		{"Tasdiqlangan", strconv.FormatInt(s.VerifiedUsers, 10)},
		{"Jami intervyular", strconv.FormatInt(s.TotalInterviews, 10)},
		{"Yakunlangan", strconv.FormatInt(s.CompletedInterviews, 10)},
		{"Yakunlanish foizi", fmt.Sprintf("%.1f%%", s.CompletionRate)},
		{"Tashlab ketilgan", strconv.FormatInt(s.AbandonedSessions, 10)},
		{"Eng ko'p drop-off savol", strconv.Itoa(s.DropoffQuestion)},
		{"Drop-off foizi", fmt.Sprintf("%.1f%%", s.DropoffShare)},
		{"Bugungi yangilar", strconv.FormatInt(s.NewUsersToday, 10)},
		{"Bugungi yakunlangan", strconv.FormatInt(s.CompletedToday, 10)},
		{"O'rtacha tavsiya vaqti", fmt.Sprintf("%.1fs", s.AvgGenerationTime)},
	}

	questions := make([]int, 0, len(s.AbandonedByQuestion))
	for q := range s.AbandonedByQuestion {
		questions = append(questions, q)
	}
	sort.Ints(questions)
	for _, q := range questions {
		rows = append(rows, []string{
			fmt.Sprintf("Savol %d da to'xtaganlar", q),
			strconv.FormatInt(s.AbandonedByQuestion[q], 10),
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// userCard renders one user for admin search results.
func userCard(u *model.User) string {
	verified := "❌"
	if u.IsGetCourseClient {
		verified = "✅ " + u.GetCourseEmail
	}
	return fmt.Sprintf(
		"<b>%s</b>\nID: <code>%d</code>\nTasdiqlangan: %s\nIntervyular: %d (%d yakunlangan)\nOxirgi faollik: %s\n",
		adminDisplayName(u), u.TelegramID, verified,
		u.TotalInterviews, u.CompletedInterviews,
		u.LastActivity.Format("2006-01-02 15:04"),
	)
}

func adminDisplayName(u *model.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if u.Username != "" {
		if name != "" {
			return fmt.Sprintf("%s (@%s)", name, u.Username)
		}
		return "@" + u.Username
	}
	if name == "" {
		return fmt.Sprintf("id:%d", u.TelegramID)
	}
	return name
}
