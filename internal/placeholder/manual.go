package placeholder

import "time"

// ManualClock is a Scheduler driven by explicit calls to Advance. Callbacks
// run synchronously inside Advance, in deadline order, on the caller's
// goroutine.
type ManualClock struct {
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	seq     uint64
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() {
	t.stopped = true
}

func (t *manualTimer) live() bool {
	return !t.stopped && !t.fired
}

// NewManualClock returns a clock at virtual time zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// AfterFunc schedules f to run once the clock has advanced by d.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &manualTimer{at: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Now returns the elapsed virtual time.
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Pending returns the number of timers that are neither stopped nor fired.
func (c *ManualClock) Pending() int {
	n := 0
	for _, t := range c.timers {
		if t.live() {
			n++
		}
	}
	return n
}

// Next returns the deadline of the earliest live timer.
func (c *ManualClock) Next() (time.Duration, bool) {
	t := c.earliest()
	if t == nil {
		return 0, false
	}
	return t.at, true
}

// Advance moves the clock forward by d, firing every timer that falls due,
// including timers scheduled by callbacks along the way. It returns the
// number of callbacks run.
func (c *ManualClock) Advance(d time.Duration) int {
	target := c.now + d
	fired := 0
	for {
		t := c.earliest()
		if t == nil || t.at > target {
			break
		}
		c.now = t.at
		t.fired = true
		c.compact()
		t.f()
		fired++
	}
	c.now = target
	return fired
}

// Step jumps to the earliest live timer and fires it. It reports false when
// nothing is scheduled.
func (c *ManualClock) Step() bool {
	at, ok := c.Next()
	if !ok {
		return false
	}
	c.Advance(at - c.now)
	return true
}

func (c *ManualClock) earliest() *manualTimer {
	var best *manualTimer
	for _, t := range c.timers {
		if !t.live() {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (c *ManualClock) compact() {
	kept := c.timers[:0]
	for _, t := range c.timers {
		if t.live() {
			kept = append(kept, t)
		}
	}
	c.timers = kept
}
