package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskDefinition is one entry of the static task catalog: a completable
// action, its reward and the minimum wait before the reward can be claimed.
type TaskDefinition struct {
	Key         string          `json:"key"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Reward      decimal.Decimal `json:"reward"`
	WaitSeconds int             `json:"wait_seconds"`
	Link        string          `json:"link"`
}

// Wait returns the required wait as a duration.
func (t TaskDefinition) Wait() time.Duration {
	return time.Duration(t.WaitSeconds) * time.Second
}
