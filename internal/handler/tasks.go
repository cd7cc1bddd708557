package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/faraaway90/telegram/internal/domain"
	"github.com/faraaway90/telegram/internal/middleware"
	tg "github.com/faraaway90/telegram/internal/telegram"
)

func (h *Handler) handleTasksMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update, "", false)

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}

	// Re-read under the engine so the daily reset is applied.
	current, err := h.engine.BalanceOf(acc.ID)
	if err != nil {
		return
	}

	limit := h.engine.DailyTaskLimit()
	if current.CompletedCount() >= limit {
		h.editMessage(ctx, b, update, fmt.Sprintf(
			"⚠️ *Daily Limit Reached*\n\n"+
				"You've completed all %d tasks for today.\n"+
				"Come back tomorrow to earn more!",
			limit,
		), tg.InlineKeyboard(backToMenuRow()))
		return
	}

	var sb strings.Builder
	sb.WriteString("🎯 *Available Tasks*\n\nChoose a task to start earning:\n\n")

	var rows [][]models.InlineKeyboardButton
	for _, t := range h.settings.Tasks {
		if current.HasCompletedToday(t.Key) {
			rows = append(rows, tg.ButtonRow(
				tg.InlineButton("✅ "+t.Title, "my_tasks"),
			))
			continue
		}
		sb.WriteString(fmt.Sprintf("• *%s* — %s (wait %s)\n",
			t.Title, h.money(t.Reward), tg.FormatDuration(int64(t.WaitSeconds))))
		rows = append(rows, tg.ButtonRow(
			tg.InlineButton(t.Title, "task_"+t.Key),
		))
	}

	sb.WriteString(fmt.Sprintf("\n📈 *Today's Progress:* %d/%d tasks", current.CompletedCount(), limit))
	rows = append(rows, backToMenuRow())

	h.editMessage(ctx, b, update, sb.String(), tg.InlineKeyboard(rows...))
}

func (h *Handler) handleTaskStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}

	taskKey := strings.TrimPrefix(update.CallbackQuery.Data, "task_")

	res, err := h.engine.StartTask(acc.ID, taskKey)
	switch {
	case errors.Is(err, domain.ErrUnknownTask):
		answerCallback(ctx, b, update, "Invalid task selected.", true)
		return
	case errors.Is(err, domain.ErrDailyLimitReached):
		answerCallback(ctx, b, update, "", false)
		h.editMessage(ctx, b, update,
			"⚠️ *Daily Limit Reached*\n\nCome back tomorrow to earn more!",
			tg.InlineKeyboard(backToMenuRow()))
		return
	case errors.Is(err, domain.ErrTaskAlreadyDone):
		answerCallback(ctx, b, update, "You already completed this task today!", true)
		return
	case err != nil:
		answerCallback(ctx, b, update, "Please try again later.", true)
		return
	}

	answerCallback(ctx, b, update, "", false)

	task := res.Task
	text := fmt.Sprintf(
		"🎯 *%s*\n\n"+
			"💰 *Reward:* %s\n"+
			"⏰ *Wait Time:* %s\n\n"+
			"ℹ️ *Instructions:*\n%s\n\n"+
			"⚠️ Complete the task, then wait for the timer before claiming your reward.",
		task.Title,
		h.money(task.Reward),
		tg.FormatDuration(int64(task.WaitSeconds)),
		task.Description,
	)

	rows := [][]models.InlineKeyboardButton{}
	if task.Link != "" {
		rows = append(rows, tg.ButtonRow(tg.URLButton("🔗 Open Task", task.Link)))
	}
	rows = append(rows,
		tg.ButtonRow(tg.InlineButton(
			fmt.Sprintf("⏳ Claim Reward (%s)", tg.FormatDuration(int64(task.WaitSeconds))),
			"claim_"+task.Key,
		)),
		tg.ButtonRow(tg.InlineButton("🔙 Back to Tasks", "tasks")),
	)

	h.editMessage(ctx, b, update, text, tg.InlineKeyboard(rows...))
}

func (h *Handler) handleTaskClaim(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}

	taskKey := strings.TrimPrefix(update.CallbackQuery.Data, "claim_")

	res, err := h.engine.ClaimTask(acc.ID, taskKey)
	var notElapsed *domain.TimerNotElapsedError
	switch {
	case errors.As(err, &notElapsed):
		// Routine while the user is waiting; just show the countdown.
		answerCallback(ctx, b, update,
			fmt.Sprintf("⏳ Please wait %s before claiming.", tg.FormatDuration(notElapsed.Remaining)),
			false)
		return
	case errors.Is(err, domain.ErrNoActiveTimer):
		answerCallback(ctx, b, update, "Start the task first!", true)
		return
	case errors.Is(err, domain.ErrTaskAlreadyDone):
		answerCallback(ctx, b, update, "You already completed this task today!", true)
		return
	case errors.Is(err, domain.ErrDailyLimitReached):
		answerCallback(ctx, b, update, "Daily limit reached. Come back tomorrow!", true)
		return
	case err != nil:
		answerCallback(ctx, b, update, "Please try again later.", true)
		return
	}

	answerCallback(ctx, b, update, "", false)

	text := fmt.Sprintf(
		"✨ *Task Completed!*\n\n"+
			"💰 *Reward Earned:* %s\n"+
			"📊 *New Balance:* %s\n\n"+
			"📈 *Daily Progress:* %d/%d tasks\n\n"+
			"🎉 Great job! Ready for another task?",
		h.money(res.Reward),
		h.money(res.NewBalance),
		res.CompletedCount,
		h.engine.DailyTaskLimit(),
	)

	h.editMessage(ctx, b, update, text, tg.InlineKeyboard(
		tg.ButtonRow(tg.InlineButton("💰 More Tasks", "tasks")),
		tg.ButtonRow(tg.InlineButton("📊 My Balance", "balance")),
		backToMenuRow(),
	))
}
