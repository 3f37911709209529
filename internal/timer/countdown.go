// Package timer models the game's scheduled work as tasks identified by a
// token. Cancelling a task bumps the owner's generation, so ticks that were
// already scheduled arrive stale and are ignored.
package timer

// Token identifies one scheduled run of a task.
type Token uint64

// TickResult reports what a countdown tick did.
type TickResult struct {
	Remaining int
	// Expired is true on the single tick that reaches zero.
	Expired bool
	// Stale is true when the tick belongs to a stopped or replaced run.
	Stale bool
}

// Countdown is a one-second countdown.
type Countdown struct {
	total     int
	remaining int
	running   bool
	gen       Token
}

// NewCountdown creates a stopped countdown of the given seconds.
func NewCountdown(seconds int) *Countdown {
	seconds = max(seconds, 0)
	return &Countdown{total: seconds, remaining: seconds}
}

// Start begins ticking. It returns the token the caller must attach to its
// ticks, and false when the countdown was already running or has nothing
// left to count.
func (c *Countdown) Start() (Token, bool) {
	if c.running || c.remaining == 0 {
		return c.gen, false
	}
	c.gen++
	c.running = true
	return c.gen, true
}

// Stop cancels every outstanding tick.
func (c *Countdown) Stop() {
	c.running = false
	c.gen++
}

// Reset stops the countdown and sets a new duration.
func (c *Countdown) Reset(seconds int) {
	c.Stop()
	c.total = max(seconds, 0)
	c.remaining = c.total
}

// Tick consumes one second for the run identified by tok.
func (c *Countdown) Tick(tok Token) TickResult {
	if !c.running || tok != c.gen {
		return TickResult{Remaining: c.remaining, Stale: true}
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.running = false
		c.gen++
		return TickResult{Remaining: 0, Expired: true}
	}
	return TickResult{Remaining: c.remaining}
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int { return c.remaining }

// Elapsed returns the seconds consumed since the last reset.
func (c *Countdown) Elapsed() int { return c.total - c.remaining }

// Running reports whether ticks are being accepted.
func (c *Countdown) Running() bool { return c.running }
