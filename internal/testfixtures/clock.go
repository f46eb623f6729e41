package testfixtures

import (
	"sync"
	"time"
)

// Clock is a hand-driven time source for scheduling tests, letting a test
// walk a shift forward minute by minute without real sleeps.
type Clock struct {
	mu sync.Mutex
	at time.Time
}

// NewClock returns a clock pinned to start; the zero value pins it to the
// shared ReferenceTime so fixture dates and clock readings line up.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{at: start}
}

// Now reports the instant the clock is currently pinned to.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

// NowFunc adapts the clock to the `func() time.Time` shape the service
// constructors take. A nil clock degrades to the real time.Now.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

// Set pins the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.at = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new reading.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = c.at.Add(d)
	return c.at
}

// Current is a read-only alias for Now for assertions that only observe.
func (c *Clock) Current() time.Time {
	return c.Now()
}
