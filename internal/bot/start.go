package bot

import (
	"regexp"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/ozodbekAI/uznetix-bot/internal/store"
	"github.com/ozodbekAI/uznetix-bot/internal/texts"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (b *Bot) onStart(c tele.Context) error {
	sender := c.Sender()
	ctx, cancel := b.ctx()
	defer cancel()

	user, err := b.store.GetOrCreateUser(ctx, store.NewUserParams{
		TelegramID:   sender.ID,
		Username:     sender.Username,
		FirstName:    sender.FirstName,
		LastName:     sender.LastName,
		LanguageCode: sender.LanguageCode,
	})
	if err != nil {
		b.log.Error("get or create user", "telegram_id", sender.ID, "error", err)
		return c.Send(texts.Get("error_general", texts.DetectScript(sender.FirstName)))
	}

	sess := b.states.get(c.Chat().ID)
	sess.Script = user.PreferredScript
	if sess.Script == "" {
		sess.Script = texts.DetectScript(sender.FirstName)
	}

	id := sender.ID
	b.store.LogEvent(ctx, &id, "info", "start", "user issued /start", nil)

	name := ""
	if user.DisplayName() != "" {
		name = ", " + user.DisplayName()
	}

	if user.IsGetCourseClient {
		sess.State = StateMainMenu
		if err := c.Send(texts.Getf("welcome_back", sess.Script, user.DisplayName()), tele.ModeHTML); err != nil {
			return err
		}
		return b.sendMainMenu(c, sess)
	}

	sess.State = StateAwaitingEmail
	if err := c.Send(texts.Getf("welcome", sess.Script, name), tele.ModeHTML); err != nil {
		return err
	}
	if err := c.Send(texts.Get("disclaimer", sess.Script)); err != nil {
		return err
	}
	return c.Send(texts.Get("verification_prompt", sess.Script))
}

func (b *Bot) onMenu(c tele.Context) error {
	sess := b.states.get(c.Chat().ID)
	return b.onUnrouted(c, sess)
}

// onEmail handles the membership verification step.
func (b *Bot) onEmail(c tele.Context, sess *chatSession) error {
	email := strings.TrimSpace(strings.ToLower(c.Text()))
	if !emailRe.MatchString(email) {
		return c.Send(texts.Get("invalid_email", sess.Script))
	}

	if !b.states.tryAcquire(c.Chat().ID) {
		return nil
	}
	defer b.states.release(c.Chat().ID)

	if err := c.Send(texts.Get("checking_access", sess.Script)); err != nil {
		return err
	}
	_ = c.Notify(tele.Typing)

	ctx, cancel := b.ctx()
	defer cancel()

	verified, err := b.verifier.Verify(ctx, email)
	if err != nil {
		b.log.Warn("verification error", "telegram_id", c.Sender().ID, "error", err)
	}

	// The user may message an email before ever issuing /start.
	if _, err := b.store.GetOrCreateUser(ctx, store.NewUserParams{
		TelegramID: c.Sender().ID,
		Username:   c.Sender().Username,
		FirstName:  c.Sender().FirstName,
		LastName:   c.Sender().LastName,
		Script:     sess.Script,
	}); err != nil {
		b.log.Error("get or create user", "error", err)
		return c.Send(texts.Get("error_general", sess.Script))
	}

	id := c.Sender().ID
	if !verified {
		b.store.LogEvent(ctx, &id, "info", "verification_failed", email, nil)
		return c.Send(texts.Get("verification_failed", sess.Script))
	}

	if err := b.store.MarkVerified(ctx, id, email, sess.Script); err != nil {
		b.log.Error("mark verified", "telegram_id", id, "error", err)
		return c.Send(texts.Get("error_general", sess.Script))
	}
	b.store.LogEvent(ctx, &id, "info", "verification_success", email, nil)

	sess.State = StateMainMenu
	return c.Send(
		texts.Get("verification_success", sess.Script),
		mainMenuMarkup(sess.Script, false),
		tele.ModeHTML,
	)
}
