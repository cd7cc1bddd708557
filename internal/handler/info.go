package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/faraaway90/telegram/internal/config"
	tg "github.com/faraaway90/telegram/internal/telegram"
)

func (h *Handler) handleInfo(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update, "", false)

	var sb strings.Builder
	sb.WriteString("ℹ️ *Bot Information*\n\n")
	sb.WriteString("💰 *How to Earn:*\n")
	sb.WriteString(fmt.Sprintf("• Complete up to %d tasks per day\n", h.engine.DailyTaskLimit()))
	sb.WriteString("• Invite friends for referral bonuses\n\n")

	sb.WriteString("🎯 *Task Rewards:*\n")
	for _, t := range h.settings.Tasks {
		sb.WriteString(fmt.Sprintf("• %s: %s\n", t.Title, h.money(t.Reward)))
	}

	sb.WriteString("\n💸 *Withdrawals:*\n")
	for _, key := range h.payoutMethodKeys() {
		m := h.settings.PayoutMethods[key]
		sb.WriteString(fmt.Sprintf("• %s — minimum %s\n", m.Name, h.money(m.Min)))
	}
	sb.WriteString(fmt.Sprintf("• Requests processed within %s\n\n", config.PayoutProcessingNote))

	sb.WriteString(fmt.Sprintf("🎁 *Referral Program:*\n• Earn %s per successful referral\n• Bonus credited instantly when a friend joins\n\n",
		h.money(h.engine.ReferralBonus())))

	sb.WriteString("⚠️ *Important Rules:*\n")
	sb.WriteString("• Complete tasks honestly\n")
	sb.WriteString("• Wait for task timers before claiming\n")
	sb.WriteString("• One account per person\n")

	if h.cfg.AdminUsername != "" {
		sb.WriteString(fmt.Sprintf("\n❤️ *Support:* contact @%s", h.cfg.AdminUsername))
	}

	h.editMessage(ctx, b, update, sb.String(), tg.InlineKeyboard(
		tg.ButtonRow(
			tg.InlineButton("💰 Start Tasks", "tasks"),
			tg.InlineButton("👥 Invite Friends", "invite"),
		),
		backToMenuRow(),
	))
}
