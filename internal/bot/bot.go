// Package bot wires the Telegram surface: user onboarding, membership
// verification, the interview loop, advisor chat and the admin console.
package bot

import (
	"context"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/ozodbekAI/uznetix-bot/internal/config"
	"github.com/ozodbekAI/uznetix-bot/internal/getcourse"
	"github.com/ozodbekAI/uznetix-bot/internal/interview"
	"github.com/ozodbekAI/uznetix-bot/internal/store"
	"github.com/ozodbekAI/uznetix-bot/internal/texts"
	"github.com/ozodbekAI/uznetix-bot/pkg/logger"
	"github.com/ozodbekAI/uznetix-bot/pkg/metrics"
)

// Bot is the Telegram front end.
type Bot struct {
	tb       *tele.Bot
	cfg      *config.Config
	store    *store.Store
	verifier getcourse.Verifier
	driver   *interview.Driver
	gen      *interview.Generator
	advisor  *interview.Advisor
	auth     Authorizer
	states   *stateManager
	log      *logger.Logger
}

type Deps struct {
	Config   *config.Config
	Store    *store.Store
	Verifier getcourse.Verifier
	Driver   *interview.Driver
	Gen      *interview.Generator
	Advisor  *interview.Advisor
	Auth     Authorizer
	Log      *logger.Logger
}

func New(d Deps) (*Bot, error) {
	tb, err := tele.NewBot(tele.Settings{
		Token:  d.Config.BotToken,
		Poller: &tele.LongPoller{Timeout: 30 * time.Second},
	})
	if err != nil {
		return nil, err
	}

	b := &Bot{
		tb:       tb,
		cfg:      d.Config,
		store:    d.Store,
		verifier: d.Verifier,
		driver:   d.Driver,
		gen:      d.Gen,
		advisor:  d.Advisor,
		auth:     d.Auth,
		states:   newStateManager(),
		log:      d.Log.With("component", "bot"),
	}
	b.wire()
	return b, nil
}

func (b *Bot) wire() {
	b.tb.Use(b.countUpdates)

	b.tb.Handle("/start", b.onStart)
	b.tb.Handle("/menu", b.onMenu)
	b.tb.Handle("/admin", b.onAdmin)
	b.tb.Handle(tele.OnText, b.onText)

	b.tb.Handle(&tele.Btn{Unique: cbStartInterview}, b.onStartInterview)
	b.tb.Handle(&tele.Btn{Unique: cbContinueChat}, b.onContinueChat)
	b.tb.Handle(&tele.Btn{Unique: cbBackToMenu}, b.onBackToMenu)
	b.tb.Handle(&tele.Btn{Unique: cbRate}, b.onRate)

	b.tb.Handle(&tele.Btn{Unique: cbAdminStats}, b.adminOnly(b.onAdminStats))
	b.tb.Handle(&tele.Btn{Unique: cbAdminSearch}, b.adminOnly(b.onAdminSearch))
	b.tb.Handle(&tele.Btn{Unique: cbAdminTop}, b.adminOnly(b.onAdminTop))
	b.tb.Handle(&tele.Btn{Unique: cbAdminHistory}, b.adminOnly(b.onAdminHistory))
	b.tb.Handle(&tele.Btn{Unique: cbAdminBroadcast}, b.adminOnly(b.onAdminBroadcast))
	b.tb.Handle(&tele.Btn{Unique: cbAdminExport}, b.adminOnly(b.onAdminExport))
}

func (b *Bot) countUpdates(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		kind := "message"
		if c.Callback() != nil {
			kind = "callback"
		}
		metrics.UpdatesTotal.WithLabelValues(kind).Inc()
		return next(c)
	}
}

func (b *Bot) adminOnly(h tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if !b.auth.IsAdmin(c.Sender().ID) {
			return nil
		}
		return h(c)
	}
}

// Start begins long polling. It blocks until Stop is called.
func (b *Bot) Start() {
	b.log.Info("bot started", "name", b.cfg.BotName)
	b.tb.Start()
}

func (b *Bot) Stop() {
	b.tb.Stop()
}

// onText routes free-form messages by conversational state.
func (b *Bot) onText(c tele.Context) error {
	sess := b.states.get(c.Chat().ID)

	switch sess.State {
	case StateAwaitingEmail:
		return b.onEmail(c, sess)
	case StateInterview:
		return b.onInterviewMessage(c, sess)
	case StateAdvisorChat:
		return b.onAdvisorMessage(c, sess)
	case StateAdminSearch:
		return b.onAdminSearchQuery(c, sess)
	case StateAdminHistory:
		return b.onAdminHistoryQuery(c, sess)
	case StateAdminBroadcast:
		return b.onAdminBroadcastText(c, sess)
	default:
		return b.onUnrouted(c, sess)
	}
}

// onUnrouted handles text arriving outside any flow: nudge verified
// users to the menu, everyone else to verification.
func (b *Bot) onUnrouted(c tele.Context, sess *chatSession) error {
	ctx, cancel := b.ctx()
	defer cancel()

	user, err := b.store.GetUserByTelegramID(ctx, c.Sender().ID)
	if err != nil {
		b.log.Error("load user", "error", err)
		return c.Send(texts.Get("error_general", sess.Script))
	}
	if user == nil || !user.IsGetCourseClient {
		sess.State = StateAwaitingEmail
		return c.Send(texts.Get("verification_prompt", sess.Script))
	}

	sess.State = StateMainMenu
	sess.Script = user.PreferredScript
	return b.sendMainMenu(c, sess)
}

func (b *Bot) sendMainMenu(c tele.Context, sess *chatSession) error {
	ctx, cancel := b.ctx()
	defer cancel()

	recs, err := b.store.ListUserRecommendations(ctx, c.Sender().ID, 1)
	if err != nil {
		b.log.Warn("list recommendations", "error", err)
	}
	return c.Send(
		texts.Get("back_to_menu", sess.Script),
		mainMenuMarkup(sess.Script, len(recs) > 0),
		tele.ModeHTML,
	)
}

func (b *Bot) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), b.cfg.LLMTimeout)
}
