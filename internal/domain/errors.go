package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrUnknownTask         = errors.New("unknown task")
	ErrDailyLimitReached   = errors.New("daily task limit reached")
	ErrTaskAlreadyDone     = errors.New("task already completed today")
	ErrNoActiveTimer       = errors.New("no active timer for task")
	ErrUnknownMethod       = errors.New("unknown payout method")
	ErrBelowMinimum        = errors.New("amount below method minimum")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")
)

// TimerNotElapsedError is returned by a claim attempt made before the task's
// required wait has passed. It is routine: clients poll the claim operation
// until it stops returning this error.
type TimerNotElapsedError struct {
	Remaining int64 // whole seconds left, floored, never negative
}

func (e *TimerNotElapsedError) Error() string {
	return fmt.Sprintf("timer not elapsed: %ds remaining", e.Remaining)
}
