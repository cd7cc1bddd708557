package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type rateWindow struct {
	start time.Time
	count int
}

// RateLimit returns middleware that enforces a fixed-window per-chat message
// limit per minute. Callback queries are not limited; tapping "check again"
// while a timer runs is expected traffic.
func RateLimit(perMinute int) bot.Middleware {
	var mu sync.Mutex
	windows := make(map[int64]*rateWindow)

	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			now := time.Now()

			mu.Lock()
			w, ok := windows[chatID]
			if !ok || now.Sub(w.start) >= time.Minute {
				w = &rateWindow{start: now}
				windows[chatID] = w
			}
			w.count++
			count := w.count
			mu.Unlock()

			if count > perMinute {
				slog.Debug("rate limited", "chat_id", chatID, "count", count, "limit", perMinute)
				if count == perMinute+1 {
					b.SendMessage(ctx, &bot.SendMessageParams{
						ChatID: chatID,
						Text:   "⏳ Too many requests. Please wait a moment.",
					})
				}
				return
			}

			next(ctx, b, update)
		}
	}
}
