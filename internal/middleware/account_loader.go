package middleware

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/faraaway90/telegram/internal/domain"
	"github.com/faraaway90/telegram/internal/engine"
	tg "github.com/faraaway90/telegram/internal/telegram"
)

type ctxKey string

const accountKey ctxKey = "account"

// GetAccount extracts the account loaded for the current update.
func GetAccount(ctx context.Context) *domain.Account {
	acc, ok := ctx.Value(accountKey).(*domain.Account)
	if !ok {
		return nil
	}
	return acc
}

// AccountLoader returns middleware that provisions the sender's account
// before handlers run. A referral payload on "/start <referrerID>" is applied
// here, so the one-time referrer credit happens during first-time creation.
func AccountLoader(eng *engine.Engine, notifier *tg.Notifier, currency string) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var from *models.User
			if update.Message != nil {
				from = update.Message.From
			} else if update.CallbackQuery != nil {
				from = &update.CallbackQuery.From
			}

			if from == nil || from.IsBot {
				next(ctx, b, update)
				return
			}

			referrerID := referralPayload(update)
			acc, created := eng.EnsureAccount(from.ID, from.FirstName, from.Username, referrerID)

			if created && acc.ReferredBy != 0 {
				bonus := eng.ReferralBonus()
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: acc.ReferredBy,
					Text:   "🎉 You got a new referral! Bonus: " + tg.FormatMoney(bonus, currency),
				})
				notifier.ReferralCredited(acc.ReferredBy, acc.ID, bonus)
			}

			ctx = context.WithValue(ctx, accountKey, &acc)
			next(ctx, b, update)
		}
	}
}

// referralPayload parses the numeric referrer id from a "/start <id>" deep
// link. Anything else (no payload, non-numeric payload) counts as no
// referrer.
func referralPayload(update *models.Update) int64 {
	if update.Message == nil {
		return 0
	}
	text := update.Message.Text
	if !strings.HasPrefix(text, "/start ") {
		return 0
	}
	payload := strings.TrimSpace(strings.TrimPrefix(text, "/start "))
	id, err := strconv.ParseInt(payload, 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
