package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/faraaway90/telegram/internal/domain"
)

// Ledger is the owned in-memory aggregate of all accounts, withdrawal
// requests and active task timers, backed by a Store. It is pure storage:
// get/put/delete plus snapshotting. Business rules live in the engine, which
// serializes read-modify-write sequences per account on top of this.
//
// Accounts cross the boundary by value (deep-copied), so callers never alias
// internal state.
type Ledger struct {
	mu          sync.RWMutex
	accounts    map[int64]*domain.Account
	withdrawals []domain.WithdrawalRequest
	timers      map[int64]map[string]time.Time
	store       Store
}

// Open loads the persisted snapshot (or starts empty) and returns the ledger.
func Open(store Store) (*Ledger, error) {
	snap, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	l := &Ledger{
		accounts:    snap.Accounts,
		withdrawals: snap.Withdrawals,
		timers:      snap.Timers,
		store:       store,
	}
	if l.accounts == nil {
		l.accounts = make(map[int64]*domain.Account)
	}
	if l.withdrawals == nil {
		l.withdrawals = []domain.WithdrawalRequest{}
	}
	if l.timers == nil {
		l.timers = make(map[int64]map[string]time.Time)
	}
	return l, nil
}

// Account returns a copy of the account, if it exists.
func (l *Ledger) Account(id int64) (domain.Account, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	acc, ok := l.accounts[id]
	if !ok {
		return domain.Account{}, false
	}
	return copyAccount(acc), true
}

// PutAccount inserts or replaces the account record.
func (l *Ledger) PutAccount(acc domain.Account) {
	l.mu.Lock()
	defer l.mu.Unlock()
	stored := copyAccount(&acc)
	l.accounts[acc.ID] = &stored
}

// Accounts returns copies of every account, in no particular order.
func (l *Ledger) Accounts() []domain.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Account, 0, len(l.accounts))
	for _, acc := range l.accounts {
		out = append(out, copyAccount(acc))
	}
	return out
}

// AccountCount returns the number of accounts.
func (l *Ledger) AccountCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.accounts)
}

// Timer returns the start time of the (account, taskKey) timer, if present.
func (l *Ledger) Timer(accountID int64, taskKey string) (time.Time, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	startedAt, ok := l.timers[accountID][taskKey]
	return startedAt, ok
}

// SetTimer records (or overwrites) the start time for (account, taskKey).
func (l *Ledger) SetTimer(accountID int64, taskKey string, startedAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	byTask, ok := l.timers[accountID]
	if !ok {
		byTask = make(map[string]time.Time)
		l.timers[accountID] = byTask
	}
	byTask[taskKey] = startedAt
}

// DeleteTimer removes the (account, taskKey) timer if present.
func (l *Ledger) DeleteTimer(accountID int64, taskKey string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	byTask, ok := l.timers[accountID]
	if !ok {
		return
	}
	delete(byTask, taskKey)
	if len(byTask) == 0 {
		delete(l.timers, accountID)
	}
}

// TimersFor returns a copy of all active timers for one account.
func (l *Ledger) TimersFor(accountID int64) map[string]time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]time.Time, len(l.timers[accountID]))
	for key, startedAt := range l.timers[accountID] {
		out[key] = startedAt
	}
	return out
}

// TimerCount returns the total number of active timers across all accounts.
func (l *Ledger) TimerCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, byTask := range l.timers {
		n += len(byTask)
	}
	return n
}

// AppendWithdrawal appends a withdrawal request to the ledger-wide list.
func (l *Ledger) AppendWithdrawal(w domain.WithdrawalRequest) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.withdrawals = append(l.withdrawals, w)
}

// Withdrawals returns a copy of all withdrawal requests in request order.
func (l *Ledger) Withdrawals() []domain.WithdrawalRequest {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.WithdrawalRequest, len(l.withdrawals))
	copy(out, l.withdrawals)
	return out
}

// Snapshot returns a deep copy of the full ledger state.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snap := NewSnapshot()
	for id, acc := range l.accounts {
		stored := copyAccount(acc)
		snap.Accounts[id] = &stored
	}
	snap.Withdrawals = make([]domain.WithdrawalRequest, len(l.withdrawals))
	copy(snap.Withdrawals, l.withdrawals)
	for id, byTask := range l.timers {
		inner := make(map[string]time.Time, len(byTask))
		for key, startedAt := range byTask {
			inner[key] = startedAt
		}
		snap.Timers[id] = inner
	}
	return snap
}

// Persist saves the current snapshot through the store.
func (l *Ledger) Persist() error {
	return l.store.Save(l.Snapshot())
}

func copyAccount(acc *domain.Account) domain.Account {
	out := *acc
	if acc.CompletedToday != nil {
		out.CompletedToday = make(map[string]bool, len(acc.CompletedToday))
		for key, done := range acc.CompletedToday {
			out.CompletedToday[key] = done
		}
	}
	return out
}
