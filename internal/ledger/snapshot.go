package ledger

import (
	"time"

	"github.com/faraaway90/telegram/internal/domain"
)

// Snapshot is the full persisted state: every account, the append-only
// withdrawal list (ordered by request time) and all active task timers
// (accountID -> taskKey -> start time). It round-trips losslessly through
// the Store.
type Snapshot struct {
	Accounts    map[int64]*domain.Account      `json:"accounts"`
	Withdrawals []domain.WithdrawalRequest     `json:"withdrawals"`
	Timers      map[int64]map[string]time.Time `json:"timers"`
}

// NewSnapshot returns an empty snapshot with all containers allocated.
func NewSnapshot() Snapshot {
	return Snapshot{
		Accounts:    make(map[int64]*domain.Account),
		Withdrawals: []domain.WithdrawalRequest{},
		Timers:      make(map[int64]map[string]time.Time),
	}
}

// Store is the durability contract for the ledger: load the whole snapshot at
// startup (an empty snapshot if nothing was saved yet) and save the whole
// snapshot after each mutation.
type Store interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
}
