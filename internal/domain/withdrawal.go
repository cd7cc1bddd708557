package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "pending"
	WithdrawalProcessed WithdrawalStatus = "processed"
	WithdrawalRejected  WithdrawalStatus = "rejected"
)

// WithdrawalRequest is a debit-and-queue record for a manual-review payout.
// The engine only ever creates them in the pending state; advancing the
// status is an external review concern.
type WithdrawalRequest struct {
	ID          string           `json:"id"`
	AccountID   int64            `json:"account_id"`
	Username    string           `json:"username"`
	Method      string           `json:"method"`
	Destination string           `json:"destination"`
	Amount      decimal.Decimal  `json:"amount"`
	RequestedAt time.Time        `json:"requested_at"`
	Status      WithdrawalStatus `json:"status"`
}
