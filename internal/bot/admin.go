package bot

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v3"

	"github.com/ozodbekAI/uznetix-bot/internal/model"
	"github.com/ozodbekAI/uznetix-bot/pkg/metrics"
)

// onAdmin opens the operator console. Silently ignored for everyone
// not on the allow-list so the command does not leak its existence.
func (b *Bot) onAdmin(c tele.Context) error {
	if !b.auth.IsAdmin(c.Sender().ID) {
		return nil
	}
	return c.Send("🛠 Admin panel", adminMenuMarkup())
}

func (b *Bot) onAdminStats(c tele.Context) error {
	defer func() { _ = c.Respond() }()

	ctx, cancel := b.ctx()
	defer cancel()

	stats, err := b.store.CollectStats(ctx)
	if err != nil {
		b.log.Error("collect stats", "error", err)
		return c.Send("❌ Statistika yig'ishda xatolik: " + err.Error())
	}
	return c.Send(buildStatsReport(stats), tele.ModeHTML)
}

func (b *Bot) onAdminSearch(c tele.Context) error {
	defer func() { _ = c.Respond() }()

	sess := b.states.get(c.Chat().ID)
	sess.State = StateAdminSearch
	return c.Send("🔍 @username yoki email yuboring:")
}

// onAdminSearchQuery resolves an @username or email to user cards.
func (b *Bot) onAdminSearchQuery(c tele.Context, sess *chatSession) error {
	query := strings.TrimSpace(c.Text())
	sess.State = StateMainMenu

	ctx, cancel := b.ctx()
	defer cancel()

	var (
		users []model.User
		err   error
	)
	if strings.HasPrefix(query, "@") {
		users, err = b.store.SearchUsersByUsername(ctx, strings.TrimPrefix(query, "@"))
	} else {
		users, err = b.store.SearchUsersByEmail(ctx, query)
	}
	if err != nil {
		b.log.Error("search users", "query", query, "error", err)
		return c.Send("❌ Qidiruvda xatolik: " + err.Error())
	}
	if len(users) == 0 {
		return c.Send("Hech kim topilmadi: " + query)
	}

	var sb strings.Builder
	for i, u := range users {
		if i >= 10 {
			fmt.Fprintf(&sb, "... va yana %d ta\n", len(users)-10)
			break
		}
		sb.WriteString(userCard(&u))
		sb.WriteString("\n")
	}
	return c.Send(sb.String(), tele.ModeHTML)
}

func (b *Bot) onAdminTop(c tele.Context) error {
	defer func() { _ = c.Respond() }()

	ctx, cancel := b.ctx()
	defer cancel()

	users, err := b.store.TopCompleters(ctx, 10)
	if err != nil {
		b.log.Error("top completers", "error", err)
		return c.Send("❌ Xatolik: " + err.Error())
	}
	if len(users) == 0 {
		return c.Send("Hali yakunlangan intervyular yo'q.")
	}

	var sb strings.Builder
	sb.WriteString("🏆 <b>Eng faol foydalanuvchilar</b>\n\n")
	for i, u := range users {
		fmt.Fprintf(&sb, "%d. %s — %d ta yakunlangan / %d ta jami\n",
			i+1, adminDisplayName(&u), u.CompletedInterviews, u.TotalInterviews)
	}
	return c.Send(sb.String(), tele.ModeHTML)
}

func (b *Bot) onAdminHistory(c tele.Context) error {
	defer func() { _ = c.Respond() }()

	sess := b.states.get(c.Chat().ID)
	sess.State = StateAdminHistory
	return c.Send("📜 Telegram ID yoki @username yuboring, suhbat tarixini fayl qilib beraman:")
}

// onAdminHistoryQuery exports a user's full interview transcripts as
// a .txt document.
func (b *Bot) onAdminHistoryQuery(c tele.Context, sess *chatSession) error {
	query := strings.TrimSpace(c.Text())
	sess.State = StateMainMenu

	ctx, cancel := b.ctx()
	defer cancel()

	target, err := b.resolveUser(c, query)
	if err != nil {
		return c.Send("❌ " + err.Error())
	}
	if target == nil {
		return c.Send("Foydalanuvchi topilmadi: " + query)
	}

	sessions, err := b.store.ListUserSessions(ctx, target.TelegramID, 0)
	if err != nil {
		b.log.Error("list sessions", "telegram_id", target.TelegramID, "error", err)
		return c.Send("❌ Tarixni olishda xatolik: " + err.Error())
	}
	if len(sessions) == 0 {
		return c.Send("Bu foydalanuvchida suhbatlar yo'q.")
	}

	transcript, err := buildTranscript(target, sessions)
	if err != nil {
		b.log.Error("build transcript", "telegram_id", target.TelegramID, "error", err)
		return c.Send("❌ Tarixni tayyorlashda xatolik.")
	}

	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(transcript)),
		FileName: fmt.Sprintf("history_%d.txt", target.TelegramID),
	}
	return c.Send(doc)
}

func (b *Bot) onAdminExport(c tele.Context) error {
	defer func() { _ = c.Respond() }()

	ctx, cancel := b.ctx()
	defer cancel()

	stats, err := b.store.CollectStats(ctx)
	if err != nil {
		b.log.Error("export stats", "error", err)
		return c.Send("❌ Eksportda xatolik: " + err.Error())
	}

	csv, err := buildStatsCSV(stats)
	if err != nil {
		b.log.Error("build csv", "error", err)
		return c.Send("❌ CSV tayyorlashda xatolik.")
	}

	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(csv)),
		FileName: fmt.Sprintf("uznetix_stats_%s.csv", time.Now().Format("2006-01-02")),
	}
	return c.Send(doc)
}

func (b *Bot) onAdminBroadcast(c tele.Context) error {
	defer func() { _ = c.Respond() }()

	sess := b.states.get(c.Chat().ID)
	sess.State = StateAdminBroadcast
	return c.Send("📣 Broadcast matnini yuboring. Bekor qilish uchun /menu.")
}

// onAdminBroadcastText sends the message to every known user. Each
// delivery is isolated; blocked bots and dead chats are counted, not
// fatal.
func (b *Bot) onAdminBroadcastText(c tele.Context, sess *chatSession) error {
	text := strings.TrimSpace(c.Text())
	sess.State = StateMainMenu
	if text == "" {
		return c.Send("Bo'sh xabar yuborilmaydi.")
	}

	ctx, cancel := b.ctx()
	defer cancel()

	users, err := b.store.AllUsers(ctx, 0, 0)
	if err != nil {
		b.log.Error("broadcast: load users", "error", err)
		return c.Send("❌ Foydalanuvchilarni olishda xatolik: " + err.Error())
	}

	batchID := uuid.NewString()
	log := b.log.With("batch_id", batchID)
	log.Info("broadcast started", "recipients", len(users))

	var sent, failed int
	for _, u := range users {
		_, err := b.tb.Send(&tele.User{ID: u.TelegramID}, text, tele.ModeHTML)
		if err != nil {
			failed++
			metrics.BroadcastsTotal.WithLabelValues("failed").Inc()
			log.Warn("broadcast delivery failed", "telegram_id", u.TelegramID, "error", err)
			continue
		}
		sent++
		metrics.BroadcastsTotal.WithLabelValues("sent").Inc()
	}

	log.Info("broadcast finished", "sent", sent, "failed", failed)
	adminID := c.Sender().ID
	b.store.LogEvent(ctx, &adminID, "info", "broadcast", text, map[string]interface{}{
		"batch_id": batchID,
		"sent":     sent,
		"failed":   failed,
	})
	return c.Send(fmt.Sprintf("✅ Yuborildi: %d, xatolik: %d", sent, failed))
}

// resolveUser finds a user by raw Telegram ID or @username.
func (b *Bot) resolveUser(c tele.Context, query string) (*model.User, error) {
	ctx, cancel := b.ctx()
	defer cancel()

	if strings.HasPrefix(query, "@") {
		users, err := b.store.SearchUsersByUsername(ctx, strings.TrimPrefix(query, "@"))
		if err != nil {
			return nil, fmt.Errorf("qidiruvda xatolik: %w", err)
		}
		if len(users) == 0 {
			return nil, nil
		}
		return &users[0], nil
	}

	var id int64
	if _, err := fmt.Sscanf(query, "%d", &id); err != nil {
		return nil, fmt.Errorf("ID yoki @username kutilgan edi")
	}
	return b.store.GetUserByTelegramID(ctx, id)
}
