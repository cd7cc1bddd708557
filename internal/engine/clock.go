package engine

import "time"

// Clock supplies the current wall-clock time. Injected so tests can drive
// task timers and daily resets deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
