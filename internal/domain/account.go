package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is one user's balance, referral and task-completion state. JSON tags
// define the persisted snapshot layout.
type Account struct {
	ID             int64           `json:"id"`
	FirstName      string          `json:"first_name"`
	Username       string          `json:"username"`
	Balance        decimal.Decimal `json:"balance"`
	TotalEarned    decimal.Decimal `json:"total_earned"`
	TasksCompleted int             `json:"tasks_completed"`
	Referrals      int             `json:"referrals"`
	ReferredBy     int64           `json:"referred_by,omitempty"`
	CompletedToday map[string]bool `json:"completed_today,omitempty"`
	LastResetDate  string          `json:"last_reset_date"`
	JoinedAt       time.Time       `json:"joined_at"`
}

// HasCompletedToday reports whether taskKey was already claimed since the
// last daily reset.
func (a *Account) HasCompletedToday(taskKey string) bool {
	return a.CompletedToday[taskKey]
}

// CompletedCount is the number of tasks claimed since the last daily reset.
func (a *Account) CompletedCount() int {
	return len(a.CompletedToday)
}

// MarkCompleted records taskKey in today's completed set.
func (a *Account) MarkCompleted(taskKey string) {
	if a.CompletedToday == nil {
		a.CompletedToday = make(map[string]bool)
	}
	a.CompletedToday[taskKey] = true
}
