// Package interview runs the LLM-driven profile interview, the
// recommendation generator and the post-interview advisor chat.
package interview

import (
	"context"
	"fmt"
	"time"

	"github.com/ozodbekAI/uznetix-bot/internal/config"
	"github.com/ozodbekAI/uznetix-bot/internal/llm"
	"github.com/ozodbekAI/uznetix-bot/internal/model"
	"github.com/ozodbekAI/uznetix-bot/pkg/logger"
	"github.com/ozodbekAI/uznetix-bot/pkg/metrics"
)

// Sessions is the slice of the store the driver needs.
type Sessions interface {
	AppendTurn(ctx context.Context, sessionID uint, role model.Role, content string) error
	IncrementQuestions(ctx context.Context, sessionID uint) error
}

// TurnResult is the outcome of one interview exchange.
type TurnResult struct {
	// Reply is the user-visible assistant text, with any completion
	// markers stripped.
	Reply string
	// Profile is non-nil only when Completed is true.
	Profile   *model.Profile
	Completed bool
}

// Driver advances interview sessions one user message at a time.
type Driver struct {
	llm      llm.Client
	sessions Sessions
	cfg      *config.Config
	log      *logger.Logger
}

func NewDriver(client llm.Client, sessions Sessions, cfg *config.Config, log *logger.Logger) *Driver {
	return &Driver{
		llm:      client,
		sessions: sessions,
		cfg:      cfg,
		log:      log.With("component", "interview"),
	}
}

// Advance records the user's message, asks the model for the next
// interviewer turn and persists it. The user turn is appended before
// the model call, so a failed call leaves the transcript consistent
// and the user can simply resend.
func (d *Driver) Advance(ctx context.Context, sess *model.InterviewSession, userMessage string) (*TurnResult, error) {
	history, err := sess.History()
	if err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	if err := d.sessions.AppendTurn(ctx, sess.ID, model.RoleUser, userMessage); err != nil {
		return nil, fmt.Errorf("append user turn: %w", err)
	}

	messages := make([]llm.ChatMessage, 0, len(history)+2)
	messages = append(messages, llm.ChatMessage{
		Role:    "system",
		Content: interviewSystemPrompt(sess.PreferredScript),
	})
	for _, t := range history {
		messages = append(messages, llm.ChatMessage{Role: string(t.Role), Content: t.Content})
	}
	messages = append(messages, llm.ChatMessage{Role: string(model.RoleUser), Content: userMessage})

	start := time.Now()
	resp, err := d.llm.Complete(ctx, &llm.CompletionRequest{
		Model:       d.cfg.Model,
		Messages:    messages,
		MaxTokens:   d.cfg.MaxTokens,
		Temperature: d.cfg.Temperature,
	})
	if err != nil {
		metrics.RecordLLMCall(d.cfg.Model, "error", time.Since(start).Seconds(), 0, 0)
		return nil, fmt.Errorf("interview completion: %w", err)
	}
	metrics.RecordLLMCall(resp.Model, "ok", time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)

	clean, profile, completed := ParseCompletion(resp.Content)

	if err := d.sessions.AppendTurn(ctx, sess.ID, model.RoleAssistant, clean); err != nil {
		return nil, fmt.Errorf("append assistant turn: %w", err)
	}
	if !completed {
		if err := d.sessions.IncrementQuestions(ctx, sess.ID); err != nil {
			d.log.Warn("increment questions", "session_id", sess.ID, "error", err)
		}
	}

	d.log.Info("interview turn",
		"session_id", sess.ID,
		"completed", completed,
		"latency_ms", resp.LatencyMs)

	return &TurnResult{Reply: clean, Profile: profile, Completed: completed}, nil
}
