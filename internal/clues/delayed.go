package clues

import (
	"context"
	"time"

	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/timer"
)

// DefaultDelay is the minimum time clue generation takes.
const DefaultDelay = time.Second

// Delayed wraps a Synthesizer with a fixed minimum latency.
type Delayed struct {
	next    Synthesizer
	delay   time.Duration
	sleeper timer.Sleeper
}

// NewDelayed wraps next. A nil sleeper uses the wall clock.
func NewDelayed(next Synthesizer, delay time.Duration, sleeper timer.Sleeper) *Delayed {
	if sleeper == nil {
		sleeper = timer.RealSleeper{}
	}
	return &Delayed{next: next, delay: delay, sleeper: sleeper}
}

// Generate waits for the delay, then synthesizes. The wait always runs to
// completion; ctx only carries values for the sleeper.
func (d *Delayed) Generate(ctx context.Context, elementName string, theme game.Theme) []game.Clue {
	if d.delay > 0 {
		d.sleeper.Sleep(context.WithoutCancel(ctx), d.delay)
	}
	return d.next.Synthesize(elementName, theme)
}
