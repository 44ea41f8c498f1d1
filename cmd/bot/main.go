package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ozodbekAI/uznetix-bot/internal/bot"
	"github.com/ozodbekAI/uznetix-bot/internal/config"
	"github.com/ozodbekAI/uznetix-bot/internal/getcourse"
	"github.com/ozodbekAI/uznetix-bot/internal/interview"
	"github.com/ozodbekAI/uznetix-bot/internal/llm"
	"github.com/ozodbekAI/uznetix-bot/internal/ops"
	"github.com/ozodbekAI/uznetix-bot/internal/store"
	"github.com/ozodbekAI/uznetix-bot/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine in production; env vars win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting", "bot_name", cfg.BotName, "llm_provider", cfg.LLMProvider, "db_driver", cfg.DBDriver)

	db, err := store.Open(cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	apiKey := cfg.OpenAIAPIKey
	if llm.Provider(cfg.LLMProvider) == llm.ProviderAnthropic {
		apiKey = cfg.AnthropicAPIKey
	}
	llmClient, err := llm.NewClient(llm.Provider(cfg.LLMProvider), apiKey)
	if err != nil {
		return fmt.Errorf("init llm client: %w", err)
	}

	verifier := getcourse.New(cfg, log)
	driver := interview.NewDriver(llmClient, db, cfg, log)
	gen := interview.NewGenerator(llmClient, cfg, log)
	advisor := interview.NewAdvisor(llmClient, cfg, log)

	tgBot, err := bot.New(bot.Deps{
		Config:   cfg,
		Store:    db,
		Verifier: verifier,
		Driver:   driver,
		Gen:      gen,
		Advisor:  advisor,
		Auth:     bot.NewStaticAllowList(cfg.AdminIDs),
		Log:      log,
	})
	if err != nil {
		return fmt.Errorf("init bot: %w", err)
	}

	opsSrv := ops.NewServer(cfg.OpsAddr, db, log)

	errCh := make(chan error, 1)
	go func() {
		if err := opsSrv.Start(); err != nil {
			errCh <- fmt.Errorf("ops server: %w", err)
		}
	}()
	go tgBot.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		log.Error("server error, shutting down", "error", err)
	}

	tgBot.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := opsSrv.Shutdown(ctx); err != nil {
		log.Warn("ops server shutdown", "error", err)
	}

	log.Info("stopped")
	return nil
}
