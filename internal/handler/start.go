package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/faraaway90/telegram/internal/domain"
	"github.com/faraaway90/telegram/internal/middleware"
	tg "github.com/faraaway90/telegram/internal/telegram"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        h.welcomeText(acc),
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: h.mainMenuKeyboard(),
	})
}

func (h *Handler) handleStartMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update, "", false)

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}

	h.editMessage(ctx, b, update, h.welcomeText(acc), h.mainMenuKeyboard())
}

func (h *Handler) welcomeText(acc *domain.Account) string {
	var sb strings.Builder
	sb.WriteString("🚀 *Welcome to the Earning Bot!*\n\n")
	sb.WriteString("💰 *Earn by completing simple tasks:*\n")
	for _, t := range h.settings.Tasks {
		sb.WriteString(fmt.Sprintf("• %s: %s\n", t.Title, h.money(t.Reward)))
	}

	sb.WriteString(fmt.Sprintf(
		"\n💎 *Your Stats:*\n"+
			"💰 Balance: %s\n"+
			"📈 Total Earned: %s\n"+
			"✅ Tasks Completed: %d\n"+
			"👥 Referrals: %d\n\n"+
			"📊 *Daily Limit:* %d tasks\n"+
			"🎁 *Referral Bonus:* %s\n\n"+
			"Ready to start earning? Choose an option below! 👇",
		h.money(acc.Balance),
		h.money(acc.TotalEarned),
		acc.TasksCompleted,
		acc.Referrals,
		h.engine.DailyTaskLimit(),
		h.money(h.engine.ReferralBonus()),
	))
	return sb.String()
}

func (h *Handler) mainMenuKeyboard() *models.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.ButtonRow(
			tg.InlineButton("💰 Start Tasks", "tasks"),
			tg.InlineButton("📊 My Balance", "balance"),
		),
		tg.ButtonRow(
			tg.InlineButton("💸 Withdraw", "withdraw"),
			tg.InlineButton("👥 Invite Friends", "invite"),
		),
		tg.ButtonRow(
			tg.InlineButton("ℹ️ Info", "info"),
			tg.InlineButton("📋 My Tasks", "my_tasks"),
		),
	)
}

func backToMenuRow() []models.InlineKeyboardButton {
	return tg.ButtonRow(tg.InlineButton("🔙 Back to Menu", "start_menu"))
}
