package types

import "time"

// CycleClock maps instants to cycle indices. Cycle c covers
// [Origin + c*Length, Origin + (c+1)*Length).
type CycleClock struct {
	Origin time.Time
	Length time.Duration
}

// NewCycleClock returns a CycleClock. Length must be positive.
func NewCycleClock(origin time.Time, length time.Duration) CycleClock {
	if length <= 0 {
		panic("cycle length must be positive")
	}
	return CycleClock{Origin: origin, Length: length}
}

// CurrentCycle returns floor((now - Origin) / Length). Instants before the
// origin belong to cycle 0.
func (c CycleClock) CurrentCycle(now time.Time) uint64 {
	if !now.After(c.Origin) {
		return 0
	}
	return uint64(now.Sub(c.Origin) / c.Length)
}

// IsClosed reports whether cycle has fully elapsed at now.
func (c CycleClock) IsClosed(cycle uint64, now time.Time) bool {
	return c.CurrentCycle(now) > cycle
}

// LatestClosed returns the most recent fully elapsed cycle. The second return
// value is false while cycle 0 is still open.
func (c CycleClock) LatestClosed(now time.Time) (uint64, bool) {
	current := c.CurrentCycle(now)
	if current == 0 {
		return 0, false
	}
	return current - 1, true
}

// Start returns the first instant of cycle.
func (c CycleClock) Start(cycle uint64) time.Time {
	return c.Origin.Add(time.Duration(cycle) * c.Length)
}

// End returns the first instant after cycle.
func (c CycleClock) End(cycle uint64) time.Time {
	return c.Start(cycle + 1)
}
