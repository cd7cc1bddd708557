package middleware

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Recover returns middleware that recovers from handler panics. The panic is
// logged and the user gets a generic retry-later message; the process keeps
// running.
func Recover() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("panic recovered in handler",
						"panic", r,
						"stack", string(debug.Stack()),
					)
					if chatID := updateChatID(update); chatID != 0 {
						b.SendMessage(ctx, &bot.SendMessageParams{
							ChatID: chatID,
							Text:   "⚠️ Something went wrong. Please try again later.",
						})
					}
				}
			}()
			next(ctx, b, update)
		}
	}
}

// updateChatID extracts the chat id from a message or callback update.
func updateChatID(update *models.Update) int64 {
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil {
		return update.CallbackQuery.Message.Message.Chat.ID
	}
	return 0
}
