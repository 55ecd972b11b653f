package clock

import (
	"sync"
	"time"

	"github.com/SscSPs/property_ledger/internal/utils/accounting"
)

// Clock supplies "now" to the ledger. Every date decision (grace periods, overdue sums,
// days until a mortgage payment) goes through Today so tests can pin it.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock returns a clock whose calendar days are evaluated in loc (UTC when nil).
func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return &SystemClock{loc: loc}
}

// LoadLocation resolves a tz database name, falling back to UTC when it is empty or unknown.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today returns the current calendar day in the clock's location.
func (c *SystemClock) Today() time.Time {
	return accounting.Day(c.Now())
}

// FixedClock is a settable clock for tests.
type FixedClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *FixedClock) Today() time.Time {
	return accounting.Day(c.Now())
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
