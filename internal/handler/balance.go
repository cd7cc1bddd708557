package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/faraaway90/telegram/internal/domain"
	"github.com/faraaway90/telegram/internal/middleware"
	tg "github.com/faraaway90/telegram/internal/telegram"
)

func (h *Handler) handleBalanceCommand(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}

	current, err := h.engine.BalanceOf(acc.ID)
	if err != nil {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        h.balanceText(&current),
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: h.balanceKeyboard(),
	})
}

func (h *Handler) handleBalanceMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update, "", false)

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}

	current, err := h.engine.BalanceOf(acc.ID)
	if err != nil {
		return
	}

	h.editMessage(ctx, b, update, h.balanceText(&current), h.balanceKeyboard())
}

func (h *Handler) balanceText(acc *domain.Account) string {
	limit := h.engine.DailyTaskLimit()

	withdrawStatus := "❌ Below minimum"
	for _, m := range h.settings.PayoutMethods {
		if m.IsEnabled() && acc.Balance.GreaterThanOrEqual(m.Min) {
			withdrawStatus = "✅ Available"
			break
		}
	}

	return fmt.Sprintf(
		"📊 *Your Earnings Dashboard*\n\n"+
			"💰 *Current Balance:* %s\n"+
			"📈 *Total Earned:* %s\n"+
			"✅ *Tasks Completed:* %d\n"+
			"👥 *Referrals:* %d\n\n"+
			"⏱ *Today's Progress:* %d/%d tasks\n\n"+
			"💸 *Withdrawal:* %s\n"+
			"🎁 *Referral Bonus:* %s per referral",
		h.money(acc.Balance),
		h.money(acc.TotalEarned),
		acc.TasksCompleted,
		acc.Referrals,
		acc.CompletedCount(), limit,
		withdrawStatus,
		h.money(h.engine.ReferralBonus()),
	)
}

func (h *Handler) balanceKeyboard() *models.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.ButtonRow(tg.InlineButton("💰 Start Tasks", "tasks")),
		tg.ButtonRow(tg.InlineButton("💸 Withdraw", "withdraw")),
		backToMenuRow(),
	)
}
