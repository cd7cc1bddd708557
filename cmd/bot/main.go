package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/faraaway90/telegram/internal/config"
	"github.com/faraaway90/telegram/internal/engine"
	"github.com/faraaway90/telegram/internal/handler"
	"github.com/faraaway90/telegram/internal/ledger"
	"github.com/faraaway90/telegram/internal/middleware"
	"github.com/faraaway90/telegram/internal/server"
	"github.com/faraaway90/telegram/internal/telegram"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the ledger snapshot
	led, err := ledger.Open(ledger.NewFileStore(cfg.DataPath))
	if err != nil {
		slog.Error("failed to open ledger", "error", err)
		os.Exit(1)
	}
	slog.Info("ledger loaded",
		"accounts", led.AccountCount(),
		"withdrawals", len(led.Withdrawals()),
		"timers", led.TimerCount(),
	)

	// Initialize the reward engine
	eng := engine.New(engine.Params{
		Ledger:         led,
		Catalog:        settings.Catalog(),
		DailyTaskLimit: settings.DailyTaskLimit,
		ReferralBonus:  settings.ReferralBonus,
		MinWithdrawals: settings.MinWithdrawals(),
	})

	var adminChatID int64
	if len(cfg.AdminIDs) > 0 {
		adminChatID = cfg.AdminIDs[0]
	}
	notifier := telegram.NewNotifier(adminChatID, settings.Currency)

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.RateLimit(config.RateLimitPerMinute),
			middleware.AccountLoader(eng, notifier, settings.Currency),
		),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}
	notifier.Bind(b)

	if cfg.DropPendingUpdates {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			slog.Warn("failed to drop pending updates", "error", err)
		}
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}
	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	// Initialize handler
	h := handler.New(handler.Deps{
		Bot:         b,
		Cfg:         cfg,
		Settings:    settings,
		Engine:      eng,
		Notifier:    notifier,
		BotUsername: me.Username,
	})

	// Register all handlers
	h.Register()

	// Register default text handler for payout address input
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, func(ctx context.Context, b *bot.Bot, update *models.Update) {
		h.HandleText(ctx, b, update)
	})

	// Start status server
	srv := server.New(cfg.Port, eng)
	go func() {
		slog.Info("status server listening", "port", cfg.Port)
		if err := srv.Start(); err != nil {
			slog.Error("status server failed", "error", err)
		}
	}()

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	// Graceful shutdown: stop the status server, persist a final snapshot
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("status server shutdown", "error", err)
	}
	eng.Shutdown()
	slog.Info("bot stopped gracefully")
}
