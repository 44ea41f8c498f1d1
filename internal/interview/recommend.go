package interview

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ozodbekAI/uznetix-bot/internal/config"
	"github.com/ozodbekAI/uznetix-bot/internal/llm"
	"github.com/ozodbekAI/uznetix-bot/internal/model"
	"github.com/ozodbekAI/uznetix-bot/pkg/logger"
	"github.com/ozodbekAI/uznetix-bot/pkg/metrics"
)

// usdRates holds static conversion rates into USD, used only to pick
// a portfolio size tier. Precision does not matter here.
var usdRates = map[string]float64{
	"USD": 1,
	"UZS": 0.000081,
	"RUB": 0.011,
	"EUR": 1.09,
	"GBP": 1.27,
	"CNY": 0.14,
	"TRY": 0.029,
	"KZT": 0.002,
	"JPY": 0.0067,
	"AED": 0.27,
}

var amountRe = regexp.MustCompile(`[\d,]+`)

// parseBudgetAmount pulls the first number out of a free-form budget
// answer and normalizes it to USD. Unknown currencies are treated as
// USD; unparseable budgets come back as zero.
func parseBudgetAmount(budget, currency string) float64 {
	matches := amountRe.FindAllString(strings.ReplaceAll(budget, " ", ""), -1)
	if len(matches) == 0 {
		return 0
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(matches[0], ",", ""), 64)
	if err != nil {
		return 0
	}

	rate, ok := usdRates[strings.ToUpper(currency)]
	if !ok {
		rate = 1
	}
	return amount * rate
}

// portfolioSize maps a USD-normalized budget to the number of
// instruments to recommend.
func portfolioSize(usd float64) string {
	switch {
	case usd < 1000:
		return "1-2"
	case usd <= 10000:
		return "2-4"
	default:
		return "4-6"
	}
}

// Generator produces portfolio recommendations for completed profiles.
type Generator struct {
	llm llm.Client
	cfg *config.Config
	log *logger.Logger
}

func NewGenerator(client llm.Client, cfg *config.Config, log *logger.Logger) *Generator {
	return &Generator{
		llm: client,
		cfg: cfg,
		log: log.With("component", "recommend"),
	}
}

// Generate builds a recommendation for the profile and returns the
// text, the model used and the generation time in seconds.
func (g *Generator) Generate(ctx context.Context, profile *model.Profile, script model.Script) (string, string, float64, error) {
	usd := parseBudgetAmount(profile.Budget, profile.Currency)
	size := portfolioSize(usd)

	start := time.Now()
	resp, err := g.llm.Complete(ctx, &llm.CompletionRequest{
		Model: g.cfg.Model,
		Messages: []llm.ChatMessage{
			{Role: "system", Content: recommendationSystemPrompt},
			{Role: "user", Content: recommendationPrompt(profile, script, size)},
		},
		MaxTokens:   g.cfg.RecMaxTokens,
		Temperature: g.cfg.Temperature,
	})
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordLLMCall(g.cfg.Model, "error", elapsed.Seconds(), 0, 0)
		return "", "", 0, fmt.Errorf("generate recommendation: %w", err)
	}
	metrics.RecordLLMCall(resp.Model, "ok", elapsed.Seconds(), resp.TokensIn, resp.TokensOut)

	g.log.Info("recommendation generated",
		"budget_usd", usd,
		"portfolio_size", size,
		"generation_sec", elapsed.Seconds())

	return strings.TrimSpace(resp.Content), resp.Model, elapsed.Seconds(), nil
}
