package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/faraaway90/telegram/internal/config"
	"github.com/faraaway90/telegram/internal/middleware"
	tg "github.com/faraaway90/telegram/internal/telegram"
)

func (h *Handler) handleAdminStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	acc := middleware.GetAccount(ctx)
	if acc == nil || !h.cfg.IsAdmin(acc.ID) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Access denied.",
		})
		return
	}

	stats := h.engine.AggregateStats()

	text := fmt.Sprintf(
		"📊 *Bot Statistics*\n\n"+
			"👥 *Users:* %d\n"+
			"💰 *Total Balance:* %s\n"+
			"📈 *Total Earned:* %s\n"+
			"🔥 *Active Today:* %d\n"+
			"⏰ *Active Timers:* %d\n"+
			"💸 *Pending Payouts:* %d\n\n"+
			"ℹ️ *Daily Limit:* %d tasks\n"+
			"🎁 *Referral Bonus:* %s",
		stats.TotalAccounts,
		h.money(stats.TotalBalance),
		h.money(stats.TotalEarned),
		stats.ActiveToday,
		stats.ActiveTimers,
		stats.PendingWithdrawals,
		h.engine.DailyTaskLimit(),
		h.money(h.engine.ReferralBonus()),
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
}

func (h *Handler) handleAdminPayouts(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	acc := middleware.GetAccount(ctx)
	if acc == nil || !h.cfg.IsAdmin(acc.ID) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Access denied.",
		})
		return
	}

	pending := h.engine.PendingWithdrawals()
	if len(pending) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "ℹ️ No pending payout requests.",
		})
		return
	}

	send := func(text string) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    update.Message.Chat.ID,
			Text:      text,
			ParseMode: models.ParseModeMarkdownV1,
		})
	}

	var sb strings.Builder
	sb.WriteString("💸 *Pending Payout Requests*\n\n")
	for _, req := range pending {
		entry := fmt.Sprintf(
			"*ID:* `%s`\n*User:* @%s (ID: %d)\n*Amount:* %s\n*Method:* %s\n*Address:* `%s`\n*Date:* %s\n---\n",
			req.ID,
			req.Username,
			req.AccountID,
			tg.FormatMoney(req.Amount, h.settings.Currency),
			req.Method,
			req.Destination,
			req.RequestedAt.Format("2006-01-02 15:04"),
		)
		// Stay under the Telegram message size cap; long queues go out in
		// several messages.
		if sb.Len()+len(entry) > config.MaxTelegramMessageLen {
			send(sb.String())
			sb.Reset()
		}
		sb.WriteString(entry)
	}

	send(sb.String())
}
