package interview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ozodbekAI/uznetix-bot/internal/config"
	"github.com/ozodbekAI/uznetix-bot/internal/llm"
	"github.com/ozodbekAI/uznetix-bot/internal/model"
	"github.com/ozodbekAI/uznetix-bot/pkg/logger"
	"github.com/ozodbekAI/uznetix-bot/pkg/metrics"
)

// Advisor answers free-form investment questions after an interview
// has completed. Each question is a fresh call grounded on the user's
// profile and their latest recommendation; there is no rolling chat
// transcript.
type Advisor struct {
	llm llm.Client
	cfg *config.Config
	log *logger.Logger
}

func NewAdvisor(client llm.Client, cfg *config.Config, log *logger.Logger) *Advisor {
	return &Advisor{
		llm: client,
		cfg: cfg,
		log: log.With("component", "advisor"),
	}
}

func (a *Advisor) Respond(ctx context.Context, question string, profile *model.Profile, recommendation string, script model.Script) (string, error) {
	start := time.Now()
	resp, err := a.llm.Complete(ctx, &llm.CompletionRequest{
		Model: a.cfg.Model,
		Messages: []llm.ChatMessage{
			{Role: "system", Content: advisorSystemPrompt(script, profile, recommendation)},
			{Role: "user", Content: question},
		},
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		metrics.RecordLLMCall(a.cfg.Model, "error", time.Since(start).Seconds(), 0, 0)
		return "", fmt.Errorf("advisor completion: %w", err)
	}
	metrics.RecordLLMCall(resp.Model, "ok", time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)

	return strings.TrimSpace(resp.Content), nil
}
