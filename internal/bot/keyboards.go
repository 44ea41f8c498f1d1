package bot

import (
	"fmt"

	tele "gopkg.in/telebot.v3"

	"github.com/ozodbekAI/uznetix-bot/internal/model"
	"github.com/ozodbekAI/uznetix-bot/internal/texts"
)

// Callback uniques. Handlers are registered against these in Bot.wire.
const (
	cbStartInterview = "start_interview"
	cbContinueChat   = "continue_chat"
	cbBackToMenu     = "back_to_menu"
	cbRate           = "rate_rec"

	cbAdminStats     = "admin_stats"
	cbAdminSearch    = "admin_search"
	cbAdminTop       = "admin_top"
	cbAdminHistory   = "admin_history"
	cbAdminBroadcast = "admin_broadcast"
	cbAdminExport    = "admin_export"
)

func mainMenuMarkup(script model.Script, hasRecommendation bool) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	rows := []tele.Row{
		m.Row(m.Data(texts.Get("button_new_interview", script), cbStartInterview)),
	}
	if hasRecommendation {
		rows = append(rows, m.Row(m.Data(texts.Get("button_continue_chat", script), cbContinueChat)))
	}
	m.Inline(rows...)
	return m
}

func afterRecommendationMarkup(script model.Script) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	m.Inline(
		m.Row(m.Data(texts.Get("button_continue_chat", script), cbContinueChat)),
		m.Row(m.Data(texts.Get("button_new_interview", script), cbStartInterview)),
		m.Row(m.Data(texts.Get("button_back_to_menu", script), cbBackToMenu)),
	)
	return m
}

func ratingMarkup(recommendationID uint) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	row := make(tele.Row, 0, 5)
	for stars := 1; stars <= 5; stars++ {
		label := fmt.Sprintf("%d⭐", stars)
		row = append(row, m.Data(label, cbRate, fmt.Sprintf("%d:%d", recommendationID, stars)))
	}
	m.Inline(row)
	return m
}

func adminMenuMarkup() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	m.Inline(
		m.Row(m.Data("📊 Statistika", cbAdminStats)),
		m.Row(
			m.Data("🔍 Foydalanuvchi qidirish", cbAdminSearch),
			m.Data("🏆 Top foydalanuvchilar", cbAdminTop),
		),
		m.Row(
			m.Data("📜 Suhbat tarixi", cbAdminHistory),
			m.Data("📥 CSV eksport", cbAdminExport),
		),
		m.Row(m.Data("📣 Broadcast", cbAdminBroadcast)),
	)
	return m
}
