package ratelimiter

import "time"

// Clock is the time source used by the in-memory limiters. The limiters
// read it outside their critical sections, so a slow Clock can not extend
// lock hold times. Tests inject a fake to control the window boundary.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }
