// Package handler renders the bot's menus and routes user actions into the
// reward engine.
package handler

import (
	"context"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"

	"github.com/faraaway90/telegram/internal/config"
	"github.com/faraaway90/telegram/internal/engine"
	tg "github.com/faraaway90/telegram/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot         *bot.Bot
	cfg         *config.Config
	settings    *config.Settings
	engine      *engine.Engine
	notifier    *tg.Notifier
	botUsername string

	// pendingPayout tracks accounts that picked a payout method and owe us
	// a destination address in their next message.
	mu            sync.Mutex
	pendingPayout map[int64]string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot         *bot.Bot
	Cfg         *config.Config
	Settings    *config.Settings
	Engine      *engine.Engine
	Notifier    *tg.Notifier
	BotUsername string
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:           deps.Bot,
		cfg:           deps.Cfg,
		settings:      deps.Settings,
		engine:        deps.Engine,
		notifier:      deps.Notifier,
		botUsername:   deps.BotUsername,
		pendingPayout: make(map[int64]string),
	}
}

func (h *Handler) money(amount decimal.Decimal) string {
	return tg.FormatMoney(amount, h.settings.Currency)
}

// callbackChat returns the chat and message of the callback's origin.
func callbackChat(update *models.Update) (int64, int) {
	if update.CallbackQuery == nil || update.CallbackQuery.Message.Message == nil {
		return 0, 0
	}
	msg := update.CallbackQuery.Message.Message
	return msg.Chat.ID, msg.ID
}

// answerCallback acknowledges a callback query, optionally with an alert.
func answerCallback(ctx context.Context, b *bot.Bot, update *models.Update, text string, alert bool) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
		Text:            text,
		ShowAlert:       alert,
	})
}

// editMessage replaces the callback's origin message with new text and
// keyboard, falling back to a fresh message when editing fails (e.g. the
// message is too old).
func (h *Handler) editMessage(ctx context.Context, b *bot.Bot, update *models.Update, text string, kb *models.InlineKeyboardMarkup) {
	chatID, messageID := callbackChat(update)
	if chatID == 0 {
		return
	}

	_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: kb,
	})
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        text,
			ParseMode:   models.ParseModeMarkdownV1,
			ReplyMarkup: kb,
		})
	}
}

func (h *Handler) setPendingPayout(accountID int64, method string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pendingPayout[accountID] = method
}

func (h *Handler) takePendingPayout(accountID int64) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	method, ok := h.pendingPayout[accountID]
	if ok {
		delete(h.pendingPayout, accountID)
	}
	return method, ok
}
