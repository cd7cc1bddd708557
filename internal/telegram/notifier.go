package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"

	"github.com/faraaway90/telegram/internal/domain"
)

// Notifier pushes noteworthy events (new withdrawal requests, new referrals)
// to the admin chat. Best-effort: failures are logged and ignored.
type Notifier struct {
	bot      *bot.Bot
	chatID   int64
	currency string
}

// NewNotifier creates a notifier for the given admin chat. A zero chatID
// disables all notifications. Bind must be called before the notifier is
// used.
func NewNotifier(chatID int64, currency string) *Notifier {
	return &Notifier{chatID: chatID, currency: currency}
}

// Bind attaches the bot client once it has been constructed.
func (n *Notifier) Bind(b *bot.Bot) {
	n.bot = b
}

func (n *Notifier) send(text string) {
	if n.chatID == 0 || n.bot == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
	if err != nil {
		slog.Warn("admin notification failed", "error", err)
	}
}

// WithdrawalRequested reports a freshly queued withdrawal request.
func (n *Notifier) WithdrawalRequested(req domain.WithdrawalRequest) {
	n.send(fmt.Sprintf(
		"💸 *New Withdrawal Request*\n\n"+
			"Request ID: `%s`\n"+
			"User: @%s (ID: %d)\n"+
			"Amount: %s\n"+
			"Method: %s\n"+
			"Address: `%s`\n"+
			"Date: %s",
		req.ID,
		req.Username,
		req.AccountID,
		FormatMoney(req.Amount, n.currency),
		req.Method,
		req.Destination,
		req.RequestedAt.Format("2006-01-02 15:04:05"),
	))
}

// ReferralCredited reports a referral bonus grant.
func (n *Notifier) ReferralCredited(referrerID, referredID int64, bonus decimal.Decimal) {
	n.send(fmt.Sprintf(
		"🤝 *New Referral*\n\nReferrer: `%d`\nNew user: `%d`\nBonus: %s",
		referrerID,
		referredID,
		FormatMoney(bonus, n.currency),
	))
}
