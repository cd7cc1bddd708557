package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/faraaway90/telegram/internal/domain"
)

// PayoutMethod is one configured withdrawal method with its minimum amount.
type PayoutMethod struct {
	Name    string          `json:"name"`
	Min     decimal.Decimal `json:"min"`
	Enabled *bool           `json:"enabled,omitempty"`
	Format  string          `json:"format,omitempty"`
}

// IsEnabled defaults to true when the flag is omitted.
func (m PayoutMethod) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// Settings is the business configuration supplied as a JSON file: the task
// catalog, the payout method table, the daily task limit and the referral
// bonus. Read-only at runtime.
type Settings struct {
	Currency       string                  `json:"currency"`
	DailyTaskLimit int                     `json:"daily_task_limit"`
	ReferralBonus  decimal.Decimal         `json:"referral_bonus"`
	Tasks          []domain.TaskDefinition `json:"tasks"`
	PayoutMethods  map[string]PayoutMethod `json:"payout_methods"`
}

// LoadSettings reads and validates the settings file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	s := &Settings{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// Validate checks the settings invariants: positive rewards and minimums,
// non-negative waits, unique task keys, a positive daily limit.
func (s *Settings) Validate() error {
	if s.Currency == "" {
		s.Currency = "$"
	}
	if s.DailyTaskLimit <= 0 {
		return fmt.Errorf("daily_task_limit must be positive, got %d", s.DailyTaskLimit)
	}
	if s.ReferralBonus.IsNegative() {
		return fmt.Errorf("referral_bonus must not be negative, got %s", s.ReferralBonus)
	}
	if len(s.Tasks) == 0 {
		return fmt.Errorf("no tasks configured")
	}

	seen := make(map[string]bool, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.Key == "" {
			return fmt.Errorf("task with empty key")
		}
		if seen[t.Key] {
			return fmt.Errorf("duplicate task key %q", t.Key)
		}
		seen[t.Key] = true
		if !t.Reward.IsPositive() {
			return fmt.Errorf("task %q: reward must be positive, got %s", t.Key, t.Reward)
		}
		if t.WaitSeconds < 0 {
			return fmt.Errorf("task %q: wait_seconds must not be negative, got %d", t.Key, t.WaitSeconds)
		}
	}

	for key, m := range s.PayoutMethods {
		if !m.Min.IsPositive() {
			return fmt.Errorf("payout method %q: min must be positive, got %s", key, m.Min)
		}
	}
	return nil
}

// Catalog returns the tasks as a key-indexed map.
func (s *Settings) Catalog() map[string]domain.TaskDefinition {
	catalog := make(map[string]domain.TaskDefinition, len(s.Tasks))
	for _, t := range s.Tasks {
		catalog[t.Key] = t
	}
	return catalog
}

// MinWithdrawals returns the per-method minimum table for enabled methods.
func (s *Settings) MinWithdrawals() map[string]decimal.Decimal {
	mins := make(map[string]decimal.Decimal, len(s.PayoutMethods))
	for key, m := range s.PayoutMethods {
		if m.IsEnabled() {
			mins[key] = m.Min
		}
	}
	return mins
}
