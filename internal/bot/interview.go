package bot

import (
	"encoding/json"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/ozodbekAI/uznetix-bot/internal/model"
	"github.com/ozodbekAI/uznetix-bot/internal/texts"
)

// onStartInterview begins a new interview. Any previous active
// session is abandoned by the store, so pressing the button twice is
// always safe.
func (b *Bot) onStartInterview(c tele.Context) error {
	defer func() { _ = c.Respond() }()

	sess := b.states.get(c.Chat().ID)
	ctx, cancel := b.ctx()
	defer cancel()

	user, err := b.store.GetUserByTelegramID(ctx, c.Sender().ID)
	if err != nil {
		b.log.Error("load user", "error", err)
		return c.Send(texts.Get("error_general", sess.Script))
	}
	if user == nil || !user.IsGetCourseClient {
		sess.State = StateAwaitingEmail
		if err := c.Send(texts.Get("verification_required", sess.Script)); err != nil {
			return err
		}
		return c.Send(texts.Get("verification_prompt", sess.Script))
	}
	sess.Script = user.PreferredScript

	dbSess, err := b.store.CreateSession(ctx, user)
	if err != nil {
		b.log.Error("create session", "telegram_id", user.TelegramID, "error", err)
		return c.Send(texts.Get("error_general", sess.Script))
	}

	greeting := texts.Get("interview_greeting", sess.Script)
	if err := b.store.AppendTurn(ctx, dbSess.ID, model.RoleAssistant, greeting); err != nil {
		b.log.Error("append greeting", "session_id", dbSess.ID, "error", err)
		return c.Send(texts.Get("error_general", sess.Script))
	}
	if err := b.store.IncrementQuestions(ctx, dbSess.ID); err != nil {
		b.log.Warn("increment questions", "session_id", dbSess.ID, "error", err)
	}

	sess.State = StateInterview
	sess.SessionID = dbSess.ID
	sess.Profile = nil
	sess.Recommendation = ""
	sess.RecommendationID = 0

	if err := c.Send(texts.Get("interview_start", sess.Script), tele.ModeHTML); err != nil {
		return err
	}
	return c.Send(greeting, tele.ModeHTML)
}

// onInterviewMessage advances the active interview by one exchange.
func (b *Bot) onInterviewMessage(c tele.Context, sess *chatSession) error {
	if !b.states.tryAcquire(c.Chat().ID) {
		return nil
	}
	defer b.states.release(c.Chat().ID)

	ctx, cancel := b.ctx()
	defer cancel()

	dbSess, err := b.store.GetActiveSession(ctx, c.Sender().ID)
	if err != nil {
		b.log.Error("load active session", "error", err)
		return c.Send(texts.Get("error_general", sess.Script))
	}
	if dbSess == nil {
		sess.State = StateMainMenu
		return b.sendMainMenu(c, sess)
	}

	// Let the user switch alphabet mid-interview; every reply from
	// here on follows the script of their latest message.
	if script := texts.DetectScript(c.Text()); script != sess.Script {
		sess.Script = script
		dbSess.PreferredScript = script
		if err := b.store.SetPreferredScript(ctx, c.Sender().ID, script); err != nil {
			b.log.Warn("set preferred script", "error", err)
		}
	}

	_ = c.Notify(tele.Typing)

	result, err := b.driver.Advance(ctx, dbSess, c.Text())
	if err != nil {
		b.log.Error("advance interview", "session_id", dbSess.ID, "error", err)
		return c.Send(texts.Get("error_general", sess.Script))
	}

	if !result.Completed {
		if result.Reply == "" {
			return c.Send(texts.Get("error_general", sess.Script))
		}
		return c.Send(result.Reply, tele.ModeHTML)
	}

	if result.Reply != "" {
		if err := c.Send(result.Reply, tele.ModeHTML); err != nil {
			return err
		}
	}
	return b.finishInterview(c, sess, dbSess.ID, result.Profile)
}

// finishInterview closes the session, generates the recommendation
// and moves the chat into advisor mode.
func (b *Bot) finishInterview(c tele.Context, sess *chatSession, sessionID uint, profile *model.Profile) error {
	ctx, cancel := b.ctx()
	defer cancel()

	if err := b.store.CompleteSession(ctx, sessionID, profile); err != nil {
		b.log.Error("complete session", "session_id", sessionID, "error", err)
		return c.Send(texts.Get("error_general", sess.Script))
	}

	if err := c.Send(texts.Get("generating_recommendation", sess.Script)); err != nil {
		return err
	}
	_ = c.Notify(tele.Typing)

	content, modelUsed, seconds, err := b.gen.Generate(ctx, profile, sess.Script)
	if err != nil {
		b.log.Error("generate recommendation", "session_id", sessionID, "error", err)
		sess.State = StateMainMenu
		return c.Send(texts.Get("error_recommendation", sess.Script))
	}

	dbSess, err := b.store.GetSessionByID(ctx, sessionID)
	if err != nil {
		b.log.Error("reload session", "session_id", sessionID, "error", err)
		return c.Send(texts.Get("error_general", sess.Script))
	}

	rec, err := b.store.CreateRecommendation(ctx, dbSess, profile, content, modelUsed, seconds)
	if err != nil {
		b.log.Error("store recommendation", "session_id", sessionID, "error", err)
	}

	sess.State = StateAdvisorChat
	sess.Profile = profile
	sess.Recommendation = content
	if rec != nil {
		sess.RecommendationID = rec.ID
	}

	id := c.Sender().ID
	b.store.LogEvent(ctx, &id, "info", "interview_completed", "", map[string]interface{}{
		"session_id":     sessionID,
		"model":          modelUsed,
		"generation_sec": seconds,
	})

	if err := c.Send(content, tele.ModeHTML); err != nil {
		// HTML from the model occasionally fails Telegram's parser;
		// fall back to plain text rather than losing the result.
		if err := c.Send(content); err != nil {
			return err
		}
	}
	if err := c.Send(texts.Get("disclaimer", sess.Script)); err != nil {
		return err
	}
	if sess.RecommendationID != 0 {
		if err := c.Send(texts.Get("rate_prompt", sess.Script), ratingMarkup(sess.RecommendationID)); err != nil {
			return err
		}
	}
	return c.Send(
		texts.Get("continue_chat_offer", sess.Script),
		afterRecommendationMarkup(sess.Script),
		tele.ModeHTML,
	)
}

// onContinueChat re-enters advisor mode from the menu using the
// user's latest completed profile and recommendation.
func (b *Bot) onContinueChat(c tele.Context) error {
	defer func() { _ = c.Respond() }()

	sess := b.states.get(c.Chat().ID)
	ctx, cancel := b.ctx()
	defer cancel()

	recs, err := b.store.ListUserRecommendations(ctx, c.Sender().ID, 1)
	if err != nil || len(recs) == 0 {
		if err != nil {
			b.log.Error("list recommendations", "error", err)
		}
		sess.State = StateMainMenu
		return b.sendMainMenu(c, sess)
	}
	rec := recs[0]

	var profile model.Profile
	if len(rec.ProfileJSON) > 0 {
		if err := json.Unmarshal(rec.ProfileJSON, &profile); err != nil {
			b.log.Warn("decode stored profile", "recommendation_id", rec.ID, "error", err)
		}
	}

	sess.State = StateAdvisorChat
	sess.Profile = &profile
	sess.Recommendation = rec.Content
	sess.RecommendationID = rec.ID

	return c.Send(texts.Get("chat_ready", sess.Script), tele.ModeHTML)
}

func (b *Bot) onAdvisorMessage(c tele.Context, sess *chatSession) error {
	if !b.states.tryAcquire(c.Chat().ID) {
		return nil
	}
	defer b.states.release(c.Chat().ID)

	if sess.Profile == nil {
		sess.State = StateMainMenu
		return b.sendMainMenu(c, sess)
	}

	if script := texts.DetectScript(c.Text()); script != sess.Script {
		sess.Script = script
	}

	_ = c.Notify(tele.Typing)

	ctx, cancel := b.ctx()
	defer cancel()

	reply, err := b.advisor.Respond(ctx, c.Text(), sess.Profile, sess.Recommendation, sess.Script)
	if err != nil {
		b.log.Error("advisor respond", "telegram_id", c.Sender().ID, "error", err)
		return c.Send(texts.Get("error_general", sess.Script))
	}

	if err := c.Send(reply, tele.ModeHTML); err != nil {
		return c.Send(reply)
	}
	return nil
}

func (b *Bot) onBackToMenu(c tele.Context) error {
	defer func() { _ = c.Respond() }()

	sess := b.states.get(c.Chat().ID)
	sess.State = StateMainMenu
	return b.sendMainMenu(c, sess)
}

// onRate stores a 1-5 star rating from the inline keyboard. Payload
// is "<recommendation_id>:<stars>".
func (b *Bot) onRate(c tele.Context) error {
	parts := strings.SplitN(c.Data(), ":", 2)
	if len(parts) != 2 {
		return c.Respond()
	}
	recID, err1 := strconv.ParseUint(parts[0], 10, 64)
	stars, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || stars < 1 || stars > 5 {
		return c.Respond()
	}

	ctx, cancel := b.ctx()
	defer cancel()

	if err := b.store.RateRecommendation(ctx, uint(recID), stars, ""); err != nil {
		b.log.Warn("rate recommendation", "recommendation_id", recID, "error", err)
	}
	return c.Respond(&tele.CallbackResponse{Text: "Rahmat! 🙏"})
}
