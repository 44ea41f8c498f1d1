// Package config provides environment configuration for the bot.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application.
type Config struct {
	// Telegram
	BotToken string `envconfig:"BOT_TOKEN" required:"true"`
	BotName  string `envconfig:"BOT_NAME" default:"Uznetix Advisor"`

	// Operator allow-list, comma separated Telegram IDs.
	AdminIDs []int64 `envconfig:"ADMIN_IDS"`

	// GetCourse membership API
	GetCourseAPIURL   string        `envconfig:"GETCOURSE_API_URL" default:"https://uznetix.getcourse.ru/pl/api"`
	GetCourseKey      string        `envconfig:"GETCOURSE_SECRET_KEY"`
	GetCourseTimeout  time.Duration `envconfig:"GETCOURSE_TIMEOUT" default:"10s"`
	GetCoursePollWait time.Duration `envconfig:"GETCOURSE_POLL_WAIT" default:"5s"`

	// LLM backend
	LLMProvider     string        `envconfig:"LLM_PROVIDER" default:"openai"`
	OpenAIAPIKey    string        `envconfig:"OPENAI_API_KEY"`
	AnthropicAPIKey string        `envconfig:"ANTHROPIC_API_KEY"`
	Model           string        `envconfig:"LLM_MODEL" default:"gpt-4o-mini"`
	MaxTokens       int           `envconfig:"LLM_MAX_TOKENS" default:"1500"`
	Temperature     float64       `envconfig:"LLM_TEMPERATURE" default:"0.7"`
	RecMaxTokens    int           `envconfig:"LLM_REC_MAX_TOKENS" default:"4000"`
	LLMTimeout      time.Duration `envconfig:"LLM_TIMEOUT" default:"120s"`

	// Database. Driver is "postgres" or "sqlite".
	DBDriver    string `envconfig:"DB_DRIVER" default:"postgres"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"uznetix.db"`

	// Ops HTTP server (health + metrics)
	OpsAddr string `envconfig:"OPS_ADDR" default:":8080"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
