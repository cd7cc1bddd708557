package handler

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"

	"github.com/faraaway90/telegram/internal/middleware"
	tg "github.com/faraaway90/telegram/internal/telegram"
)

func (h *Handler) handleInvite(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update, "", false)

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}

	bonus := h.engine.ReferralBonus()
	refLink := fmt.Sprintf("https://t.me/%s?start=%d", h.botUsername, acc.ID)
	earned := bonus.Mul(decimal.NewFromInt(int64(acc.Referrals)))

	text := fmt.Sprintf(
		"👥 *Invite Friends & Earn More!*\n\n"+
			"🎁 *Referral Bonus:* %s per friend\n"+
			"🤝 *Your Referrals:* %d friends\n"+
			"💰 *Earned from Referrals:* %s\n\n"+
			"🔗 *Your Referral Link:*\n`%s`\n\n"+
			"🚀 *How it works:*\n"+
			"1. Share your referral link with friends\n"+
			"2. When they join, you get %s\n"+
			"3. No limit on referrals — invite more, earn more!",
		h.money(bonus),
		acc.Referrals,
		h.money(earned),
		refLink,
		h.money(bonus),
	)

	shareURL := fmt.Sprintf("https://t.me/share/url?url=%s&text=%s",
		url.QueryEscape(refLink),
		url.QueryEscape("Join this earning bot!"),
	)

	h.editMessage(ctx, b, update, text, tg.InlineKeyboard(
		tg.ButtonRow(tg.URLButton("🔗 Share Link", shareURL)),
		backToMenuRow(),
	))
}
