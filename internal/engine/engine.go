// Package engine implements the reward state machine: account provisioning
// with referral bonuses, timer-gated task rewards under a daily quota, and
// the withdrawal request lifecycle.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/faraaway90/telegram/internal/domain"
	"github.com/faraaway90/telegram/internal/ledger"
)

const dateLayout = "2006-01-02"

// Engine owns all mutation of account, timer and withdrawal state. The
// account is the unit of mutual exclusion: every read-modify-write sequence
// for one account runs under that account's lock, so overlapping actions
// from the same user (a double-tapped claim, two simultaneous withdrawal
// requests) serialize. Different accounts proceed in parallel.
type Engine struct {
	ledger         *ledger.Ledger
	catalog        map[string]domain.TaskDefinition
	dailyTaskLimit int
	referralBonus  decimal.Decimal
	minWithdrawals map[string]decimal.Decimal
	clock          Clock

	mu           sync.Mutex
	accountLocks map[int64]*sync.Mutex
}

// Params contains everything needed to construct an Engine.
type Params struct {
	Ledger         *ledger.Ledger
	Catalog        map[string]domain.TaskDefinition
	DailyTaskLimit int
	ReferralBonus  decimal.Decimal
	MinWithdrawals map[string]decimal.Decimal
	Clock          Clock // optional; defaults to the system clock
}

func New(p Params) *Engine {
	clock := p.Clock
	if clock == nil {
		clock = SystemClock()
	}
	return &Engine{
		ledger:         p.Ledger,
		catalog:        p.Catalog,
		dailyTaskLimit: p.DailyTaskLimit,
		referralBonus:  p.ReferralBonus,
		minWithdrawals: p.MinWithdrawals,
		clock:          clock,
		accountLocks:   make(map[int64]*sync.Mutex),
	}
}

// Task returns the catalog entry for key.
func (e *Engine) Task(key string) (domain.TaskDefinition, bool) {
	t, ok := e.catalog[key]
	return t, ok
}

// Catalog returns the full task catalog.
func (e *Engine) Catalog() map[string]domain.TaskDefinition {
	return e.catalog
}

// DailyTaskLimit returns the configured per-day completed-task quota.
func (e *Engine) DailyTaskLimit() int { return e.dailyTaskLimit }

// ReferralBonus returns the configured one-time referrer credit.
func (e *Engine) ReferralBonus() decimal.Decimal { return e.referralBonus }

// MinWithdrawal returns the minimum amount for a payout method.
func (e *Engine) MinWithdrawal(method string) (decimal.Decimal, bool) {
	min, ok := e.minWithdrawals[method]
	return min, ok
}

func (e *Engine) accountLock(id int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.accountLocks[id]
	if !ok {
		l = &sync.Mutex{}
		e.accountLocks[id] = l
	}
	return l
}

// lockAccount serializes access to one account. Returns the unlock func.
func (e *Engine) lockAccount(id int64) func() {
	l := e.accountLock(id)
	l.Lock()
	return l.Unlock
}

// lockAccountPair locks two distinct accounts in ascending-id order, the
// fixed ordering that keeps referral crediting deadlock-free.
func (e *Engine) lockAccountPair(a, b int64) func() {
	if a > b {
		a, b = b, a
	}
	first, second := e.accountLock(a), e.accountLock(b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}

func (e *Engine) today() string {
	return e.clock.Now().Format(dateLayout)
}

// applyDailyReset clears the completed-task set when the calendar day has
// rolled over since the account's last reset. Idempotent within a day. Every
// account-touching operation runs this before any quota check.
func applyDailyReset(acc *domain.Account, today string) bool {
	if acc.LastResetDate == today {
		return false
	}
	acc.CompletedToday = nil
	acc.LastResetDate = today
	return true
}

// persist saves the ledger snapshot. A save failure is an infrastructure
// fault: it is logged and the in-memory mutation stands.
func (e *Engine) persist(op string) {
	if err := e.ledger.Persist(); err != nil {
		slog.Error("persist ledger", "op", op, "error", err)
	}
}

// EnsureAccount finds or creates the account. Idempotent: repeat calls
// return the existing record and never re-credit the referrer. On first-time
// creation with a valid referrer (an existing, different account) the
// referrer's balance is credited the referral bonus exactly once. The second
// return value reports whether the account was created by this call.
func (e *Engine) EnsureAccount(id int64, firstName, username string, referrerID int64) (domain.Account, bool) {
	// Self-referrals and unknown referrer ids are ignored, not errors.
	if referrerID == id {
		referrerID = 0
	}

	if referrerID != 0 {
		defer e.lockAccountPair(id, referrerID)()
	} else {
		defer e.lockAccount(id)()
	}

	now := e.clock.Now()
	today := e.today()

	if acc, ok := e.ledger.Account(id); ok {
		dirty := applyDailyReset(&acc, today)
		if acc.FirstName != firstName || acc.Username != username {
			acc.FirstName = firstName
			acc.Username = username
			dirty = true
		}
		if dirty {
			e.ledger.PutAccount(acc)
			e.persist("ensure_account")
		}
		return acc, false
	}

	acc := domain.Account{
		ID:            id,
		FirstName:     firstName,
		Username:      username,
		Balance:       decimal.Zero,
		TotalEarned:   decimal.Zero,
		LastResetDate: today,
		JoinedAt:      now,
	}

	if referrerID != 0 {
		if referrer, ok := e.ledger.Account(referrerID); ok {
			acc.ReferredBy = referrerID
			referrer.Balance = referrer.Balance.Add(e.referralBonus)
			referrer.TotalEarned = referrer.TotalEarned.Add(e.referralBonus)
			referrer.Referrals++
			e.ledger.PutAccount(referrer)
			slog.Info("referral bonus credited",
				"referrer_id", referrerID,
				"referred_id", id,
				"bonus", e.referralBonus,
			)
		}
	}

	e.ledger.PutAccount(acc)
	e.persist("ensure_account")
	return acc, true
}

// StartResult describes a started task for display.
type StartResult struct {
	Task        domain.TaskDefinition
	WaitSeconds int
	Reward      decimal.Decimal
}

// StartTask validates the task against the catalog and today's quota, then
// records (or overwrites) the active timer for (account, taskKey).
func (e *Engine) StartTask(accountID int64, taskKey string) (StartResult, error) {
	defer e.lockAccount(accountID)()

	acc, ok := e.ledger.Account(accountID)
	if !ok {
		return StartResult{}, domain.ErrAccountNotFound
	}

	// Persist a day rollover even when the operation itself is rejected.
	dirty := applyDailyReset(&acc, e.today())
	if dirty {
		e.ledger.PutAccount(acc)
	}
	defer func() {
		if dirty {
			e.persist("start_task")
		}
	}()

	task, known := e.catalog[taskKey]
	if !known {
		return StartResult{}, domain.ErrUnknownTask
	}
	if acc.CompletedCount() >= e.dailyTaskLimit {
		return StartResult{}, domain.ErrDailyLimitReached
	}
	if acc.HasCompletedToday(taskKey) {
		return StartResult{}, domain.ErrTaskAlreadyDone
	}

	e.ledger.SetTimer(accountID, taskKey, e.clock.Now())
	dirty = true

	return StartResult{
		Task:        task,
		WaitSeconds: task.WaitSeconds,
		Reward:      task.Reward,
	}, nil
}

// ClaimResult reports a successful reward credit.
type ClaimResult struct {
	Reward         decimal.Decimal
	NewBalance     decimal.Decimal
	CompletedCount int
}

// ClaimTask verifies the active timer for (account, taskKey) and, once the
// required wait has elapsed, atomically marks the task completed, credits
// the reward and consumes the timer. Before the wait elapses it returns
// TimerNotElapsedError and changes nothing, so polling is safe. The account
// lock makes the claim a compare-and-swap on "timer present and unclaimed":
// of N concurrent claims exactly one succeeds and the rest fail with
// ErrTaskAlreadyDone.
func (e *Engine) ClaimTask(accountID int64, taskKey string) (ClaimResult, error) {
	defer e.lockAccount(accountID)()

	acc, ok := e.ledger.Account(accountID)
	if !ok {
		return ClaimResult{}, domain.ErrAccountNotFound
	}

	dirty := applyDailyReset(&acc, e.today())
	if dirty {
		e.ledger.PutAccount(acc)
	}
	defer func() {
		if dirty {
			e.persist("claim_task")
		}
	}()

	task, known := e.catalog[taskKey]
	if !known {
		return ClaimResult{}, domain.ErrUnknownTask
	}
	if acc.HasCompletedToday(taskKey) {
		return ClaimResult{}, domain.ErrTaskAlreadyDone
	}
	if acc.CompletedCount() >= e.dailyTaskLimit {
		return ClaimResult{}, domain.ErrDailyLimitReached
	}

	startedAt, active := e.ledger.Timer(accountID, taskKey)
	if !active {
		return ClaimResult{}, domain.ErrNoActiveTimer
	}

	elapsed := e.clock.Now().Sub(startedAt)
	if elapsed < task.Wait() {
		remaining := task.Wait() - elapsed
		return ClaimResult{}, &domain.TimerNotElapsedError{
			Remaining: int64(remaining.Seconds()),
		}
	}

	acc.MarkCompleted(taskKey)
	acc.Balance = acc.Balance.Add(task.Reward)
	acc.TotalEarned = acc.TotalEarned.Add(task.Reward)
	acc.TasksCompleted++
	e.ledger.PutAccount(acc)
	e.ledger.DeleteTimer(accountID, taskKey)
	dirty = true

	return ClaimResult{
		Reward:         task.Reward,
		NewBalance:     acc.Balance,
		CompletedCount: acc.CompletedCount(),
	}, nil
}

// WithdrawResult reports an accepted withdrawal request.
type WithdrawResult struct {
	Request          domain.WithdrawalRequest
	RemainingBalance decimal.Decimal
}

// RequestWithdrawal validates method and amount, debits the balance and
// appends a pending withdrawal request. Debit and append happen under the
// account lock, so two overlapping requests can never spend more than the
// balance.
func (e *Engine) RequestWithdrawal(accountID int64, method, destination string, amount decimal.Decimal) (WithdrawResult, error) {
	defer e.lockAccount(accountID)()

	acc, ok := e.ledger.Account(accountID)
	if !ok {
		return WithdrawResult{}, domain.ErrAccountNotFound
	}

	dirty := applyDailyReset(&acc, e.today())
	if dirty {
		e.ledger.PutAccount(acc)
	}
	defer func() {
		if dirty {
			e.persist("request_withdrawal")
		}
	}()

	minAmount, known := e.minWithdrawals[method]
	if !known {
		return WithdrawResult{}, domain.ErrUnknownMethod
	}
	if !amount.IsPositive() {
		return WithdrawResult{}, domain.ErrInvalidAmount
	}
	if amount.LessThan(minAmount) {
		return WithdrawResult{}, domain.ErrBelowMinimum
	}
	if amount.GreaterThan(acc.Balance) {
		return WithdrawResult{}, domain.ErrInsufficientBalance
	}

	acc.Balance = acc.Balance.Sub(amount)
	req := domain.WithdrawalRequest{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		Username:    acc.Username,
		Method:      method,
		Destination: destination,
		Amount:      amount,
		RequestedAt: e.clock.Now(),
		Status:      domain.WithdrawalPending,
	}
	e.ledger.PutAccount(acc)
	e.ledger.AppendWithdrawal(req)
	dirty = true

	return WithdrawResult{Request: req, RemainingBalance: acc.Balance}, nil
}

// BalanceOf returns the account with daily-reset semantics applied.
func (e *Engine) BalanceOf(accountID int64) (domain.Account, error) {
	defer e.lockAccount(accountID)()

	acc, ok := e.ledger.Account(accountID)
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	if applyDailyReset(&acc, e.today()) {
		e.ledger.PutAccount(acc)
		e.persist("balance_of")
	}
	return acc, nil
}

// ActiveTimer describes one running task timer for display.
type ActiveTimer struct {
	Task             domain.TaskDefinition
	StartedAt        time.Time
	RemainingSeconds int64
}

// ActiveTimers lists the account's running timers with their remaining
// waits; order is unspecified.
func (e *Engine) ActiveTimers(accountID int64) []ActiveTimer {
	now := e.clock.Now()
	timers := e.ledger.TimersFor(accountID)

	out := make([]ActiveTimer, 0, len(timers))
	for key, startedAt := range timers {
		task, ok := e.catalog[key]
		if !ok {
			continue
		}
		remaining := task.Wait() - now.Sub(startedAt)
		if remaining < 0 {
			remaining = 0
		}
		out = append(out, ActiveTimer{
			Task:             task,
			StartedAt:        startedAt,
			RemainingSeconds: int64(remaining.Seconds()),
		})
	}
	return out
}

// PendingWithdrawals returns all withdrawal requests still awaiting review,
// in request order.
func (e *Engine) PendingWithdrawals() []domain.WithdrawalRequest {
	all := e.ledger.Withdrawals()
	pending := make([]domain.WithdrawalRequest, 0, len(all))
	for _, w := range all {
		if w.Status == domain.WithdrawalPending {
			pending = append(pending, w)
		}
	}
	return pending
}

// Stats is the aggregate view over the whole ledger.
type Stats struct {
	TotalAccounts      int             `json:"total_accounts"`
	TotalBalance       decimal.Decimal `json:"total_balance"`
	TotalEarned        decimal.Decimal `json:"total_earned"`
	ActiveToday        int             `json:"active_today"`
	ActiveTimers       int             `json:"active_timers"`
	PendingWithdrawals int             `json:"pending_withdrawals"`
}

// AggregateStats computes totals across all accounts. "Active today" counts
// accounts whose last reset date is the current day, i.e. accounts that
// performed any operation today.
func (e *Engine) AggregateStats() Stats {
	today := e.today()

	stats := Stats{
		TotalBalance: decimal.Zero,
		TotalEarned:  decimal.Zero,
	}
	for _, acc := range e.ledger.Accounts() {
		stats.TotalAccounts++
		stats.TotalBalance = stats.TotalBalance.Add(acc.Balance)
		stats.TotalEarned = stats.TotalEarned.Add(acc.TotalEarned)
		if acc.LastResetDate == today {
			stats.ActiveToday++
		}
	}
	stats.ActiveTimers = e.ledger.TimerCount()
	stats.PendingWithdrawals = len(e.PendingWithdrawals())
	return stats
}

// Shutdown persists the final snapshot, best-effort.
func (e *Engine) Shutdown() {
	e.persist("shutdown")
}
