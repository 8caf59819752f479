// Package reminder implements the break reminder cycle: a session arms a
// timer, the timer raises a prompt, and the user's answer either re-arms the
// timer or ends the session.
//
// Nothing in this package blocks or starts goroutines. The caller owns the
// clock and delivers timer expiry back through Fire with the sequence number
// it was given, which lets stale timers from a stopped session be ignored.
package reminder

import (
	"errors"
	"time"
)

var (
	ErrAlreadyRunning  = errors.New("reminder session already running")
	ErrNotRunning      = errors.New("no reminder session running")
	ErrNoPrompt        = errors.New("no break prompt outstanding")
	ErrInvalidInterval = errors.New("interval must be positive")
)

// State of a Cycle.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	default:
		return "idle"
	}
}

// Arm describes a timer the caller should schedule. When it expires the
// caller passes Seq back to Fire.
type Arm struct {
	Seq   uint64
	Delay time.Duration
	DueAt time.Time
}

// Cycle is the Idle/Running state machine. The zero value is Idle.
type Cycle struct {
	state     State
	interval  time.Duration
	seq       uint64
	armed     bool
	dueAt     time.Time
	prompting bool
}

// Start begins a session that reminds every interval. The interval is
// captured here; later configuration changes do not affect the session.
func (c *Cycle) Start(interval time.Duration, now time.Time) (Arm, error) {
	if c.state == Running {
		return Arm{}, ErrAlreadyRunning
	}
	if interval <= 0 {
		return Arm{}, ErrInvalidInterval
	}
	c.state = Running
	c.interval = interval
	c.prompting = false
	return c.arm(now), nil
}

// Fire reports whether a timer expiry should raise a prompt. Expiries for
// timers that were cancelled or superseded return false.
func (c *Cycle) Fire(seq uint64) bool {
	if c.state != Running || c.prompting || !c.armed || seq != c.seq {
		return false
	}
	c.armed = false
	c.prompting = true
	return true
}

// Continue answers the outstanding prompt and re-arms with the session
// interval.
func (c *Cycle) Continue(now time.Time) (Arm, error) {
	if c.state != Running {
		return Arm{}, ErrNotRunning
	}
	if !c.prompting {
		return Arm{}, ErrNoPrompt
	}
	c.prompting = false
	return c.arm(now), nil
}

// Stop ends the session and invalidates any armed timer. Stopping an idle
// cycle does nothing.
func (c *Cycle) Stop() {
	if c.state == Idle {
		return
	}
	c.state = Idle
	c.seq++
	c.armed = false
	c.prompting = false
	c.dueAt = time.Time{}
	c.interval = 0
}

func (c *Cycle) State() State             { return c.state }
func (c *Cycle) Running() bool            { return c.state == Running }
func (c *Cycle) Prompting() bool          { return c.prompting }
func (c *Cycle) Interval() time.Duration  { return c.interval }
func (c *Cycle) DueAt() (time.Time, bool) { return c.dueAt, c.armed }

// Remaining returns the time until the armed timer fires, never negative.
func (c *Cycle) Remaining(now time.Time) time.Duration {
	if !c.armed {
		return 0
	}
	if d := c.dueAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

func (c *Cycle) arm(now time.Time) Arm {
	c.seq++
	c.armed = true
	c.dueAt = now.Add(c.interval)
	return Arm{Seq: c.seq, Delay: c.interval, DueAt: c.dueAt}
}
