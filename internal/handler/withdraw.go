package handler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/faraaway90/telegram/internal/config"
	"github.com/faraaway90/telegram/internal/domain"
	"github.com/faraaway90/telegram/internal/middleware"
	tg "github.com/faraaway90/telegram/internal/telegram"
)

// payoutMethodKeys returns the enabled method keys in stable order.
func (h *Handler) payoutMethodKeys() []string {
	keys := make([]string, 0, len(h.settings.PayoutMethods))
	for key, m := range h.settings.PayoutMethods {
		if m.IsEnabled() {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func (h *Handler) handleWithdrawMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update, "", false)

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}

	current, err := h.engine.BalanceOf(acc.ID)
	if err != nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("💸 *Withdrawal Menu*\n\n")
	sb.WriteString(fmt.Sprintf("💰 *Available Balance:* %s\n\n", h.money(current.Balance)))
	sb.WriteString("💳 *Choose your payout method:*\n\n")

	var rows [][]models.InlineKeyboardButton
	for _, key := range h.payoutMethodKeys() {
		m := h.settings.PayoutMethods[key]
		sb.WriteString(fmt.Sprintf("• *%s* — min %s\n", m.Name, h.money(m.Min)))
		rows = append(rows, tg.ButtonRow(tg.InlineButton("💳 "+m.Name, "wd_"+key)))
	}
	rows = append(rows, backToMenuRow())

	h.editMessage(ctx, b, update, sb.String(), tg.InlineKeyboard(rows...))
}

func (h *Handler) handleWithdrawMethod(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}

	key := strings.TrimPrefix(update.CallbackQuery.Data, "wd_")
	m, ok := h.settings.PayoutMethods[key]
	if !ok || !m.IsEnabled() {
		answerCallback(ctx, b, update, "Invalid payout method.", true)
		return
	}

	answerCallback(ctx, b, update, "", false)
	h.setPendingPayout(acc.ID, key)

	format := m.Format
	if format == "" {
		format = "your " + m.Name + " account id"
	}

	text := fmt.Sprintf(
		"💸 *%s Withdrawal*\n\n"+
			"ℹ️ Please send your %s address in the next message.\n"+
			"Format: *%s*\n\n"+
			"⚠️ *Important:*\n"+
			"• Double-check your address before sending\n"+
			"• Minimum withdrawal: %s\n"+
			"• Requests are processed within %s",
		m.Name, m.Name, format,
		h.money(m.Min),
		config.PayoutProcessingNote,
	)

	h.editMessage(ctx, b, update, text, tg.InlineKeyboard(
		tg.ButtonRow(tg.InlineButton("🔙 Back", "withdraw")),
	))
}

// HandleText processes free-form text messages. Its only job is collecting
// the payout address after a method was selected; anything else gets the
// default hint.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}
	chatID := update.Message.Chat.ID

	method, awaiting := h.takePendingPayout(acc.ID)
	if !awaiting {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Use /start to begin or choose an option from the menu.",
		})
		return
	}

	address := strings.TrimSpace(update.Message.Text)

	current, err := h.engine.BalanceOf(acc.ID)
	if err != nil {
		return
	}

	// The bot flow always cashes out the full balance; the engine still
	// validates it against the method minimum.
	res, err := h.engine.RequestWithdrawal(acc.ID, method, address, current.Balance)
	switch {
	case errors.Is(err, domain.ErrUnknownMethod):
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Invalid payment method. Please try again with /start",
		})
		return
	case errors.Is(err, domain.ErrBelowMinimum), errors.Is(err, domain.ErrInvalidAmount):
		minAmount, _ := h.engine.MinWithdrawal(method)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: fmt.Sprintf(
				"⚠️ *Insufficient Balance*\n\nYour balance: %s\nMinimum withdrawal: %s\n\n💰 Complete more tasks to reach the minimum!",
				h.money(current.Balance), h.money(minAmount)),
			ParseMode: models.ParseModeMarkdownV1,
		})
		return
	case errors.Is(err, domain.ErrInsufficientBalance):
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "⚠️ Insufficient balance for this withdrawal.",
		})
		return
	case err != nil:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "⚠️ Something went wrong. Please try again later.",
		})
		return
	}

	h.notifier.WithdrawalRequested(res.Request)

	text := fmt.Sprintf(
		"✨ *Withdrawal Request Submitted!*\n\n"+
			"📋 *Request ID:* `%s`\n"+
			"💰 *Amount:* %s\n"+
			"💳 *Method:* %s\n\n"+
			"⏰ *Processing Time:* %s\n"+
			"💰 Keep earning while you wait!",
		res.Request.ID,
		h.money(res.Request.Amount),
		h.settings.PayoutMethods[method].Name,
		config.PayoutProcessingNote,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
		ReplyMarkup: tg.InlineKeyboard(
			tg.ButtonRow(tg.InlineButton("💰 Start Tasks", "tasks")),
			backToMenuRow(),
		),
	})
}
