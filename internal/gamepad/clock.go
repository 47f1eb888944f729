package gamepad

import "time"

// Clock is the host's game clock. The gamepad never reads wall time directly.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to. Used by tests and headless replays.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// AdvanceSeconds moves the clock forward by s seconds.
func (c *ManualClock) AdvanceSeconds(s float64) {
	c.Advance(time.Duration(s * float64(time.Second)))
}

// elapsedSecondsSince returns the seconds between t and the clock's now.
func elapsedSecondsSince(c Clock, t time.Time) float64 {
	return c.Now().Sub(t).Seconds()
}
