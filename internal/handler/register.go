package handler

import (
	"github.com/go-telegram/bot"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/balance", bot.MatchTypePrefix, h.handleBalanceCommand)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin_stats", bot.MatchTypePrefix, h.handleAdminStats)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin_payouts", bot.MatchTypePrefix, h.handleAdminPayouts)

	// Menu callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "start_menu", bot.MatchTypeExact, h.handleStartMenu)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "tasks", bot.MatchTypeExact, h.handleTasksMenu)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "balance", bot.MatchTypeExact, h.handleBalanceMenu)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "withdraw", bot.MatchTypeExact, h.handleWithdrawMenu)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "invite", bot.MatchTypeExact, h.handleInvite)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "info", bot.MatchTypeExact, h.handleInfo)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "my_tasks", bot.MatchTypeExact, h.handleMyTasks)

	// Task callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "task_", bot.MatchTypePrefix, h.handleTaskStart)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "claim_", bot.MatchTypePrefix, h.handleTaskClaim)

	// Withdrawal callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "wd_", bot.MatchTypePrefix, h.handleWithdrawMethod)

	// Note: the payout-address text handler is registered as the default
	// text handler in main.go.
}
