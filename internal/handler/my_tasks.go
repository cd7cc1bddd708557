package handler

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/faraaway90/telegram/internal/middleware"
	tg "github.com/faraaway90/telegram/internal/telegram"
)

func (h *Handler) handleMyTasks(ctx context.Context, b *bot.Bot, update *models.Update) {
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
	sb.WriteString("📋 *My Tasks*\n\n")
	sb.WriteString(fmt.Sprintf(
		"📊 *Your Stats:*\n"+
			"• Total tasks completed: %d\n"+
			"• Total earned: %s\n"+
			"• Today: %d/%d tasks\n\n",
		current.TasksCompleted,
		h.money(current.TotalEarned),
		current.CompletedCount(), h.engine.DailyTaskLimit(),
	))

	timers := h.engine.ActiveTimers(acc.ID)
	sort.Slice(timers, func(i, j int) bool {
		return timers[i].RemainingSeconds < timers[j].RemainingSeconds
	})

	sb.WriteString("⏰ *Active Tasks:*\n")
	if len(timers) == 0 {
		sb.WriteString("No active tasks. Start new tasks to earn more!")
	} else {
		for _, t := range timers {
			if t.RemainingSeconds > 0 {
				sb.WriteString(fmt.Sprintf("• %s — %s remaining\n",
					t.Task.Title, tg.FormatDuration(t.RemainingSeconds)))
			} else {
				sb.WriteString(fmt.Sprintf("• %s — ready to claim!\n", t.Task.Title))
			}
		}
	}

	rows := [][]models.InlineKeyboardButton{}
	for _, t := range timers {
		if t.RemainingSeconds == 0 {
			rows = append(rows, tg.ButtonRow(
				tg.InlineButton("✅ Claim "+t.Task.Title, "claim_"+t.Task.Key),
			))
		}
	}
	rows = append(rows,
		tg.ButtonRow(tg.InlineButton("💰 Start New Tasks", "tasks")),
		backToMenuRow(),
	)

	h.editMessage(ctx, b, update, sb.String(), tg.InlineKeyboard(rows...))
}
