package timer

import "time"

const (
	ScrambleInterval = 100 * time.Millisecond
	ScrambleDuration = 3 * time.Second
)

// Scramble pairs a repeating display tick with a one-shot completion. Both
// share one generation, so Cancel invalidates them together.
type Scramble struct {
	gen    Token
	active bool
}

// Start begins a new run and returns its token.
func (s *Scramble) Start() Token {
	s.gen++
	s.active = true
	return s.gen
}

// Cancel invalidates the current run.
func (s *Scramble) Cancel() {
	s.gen++
	s.active = false
}

// Tick reports whether a repeating tick for tok should be handled and
// rescheduled.
func (s *Scramble) Tick(tok Token) bool {
	return s.active && tok == s.gen
}

// Fire reports whether the completion for tok should run. A valid fire
// ends the run, so later ticks for the same token are stale.
func (s *Scramble) Fire(tok Token) bool {
	if !s.active || tok != s.gen {
		return false
	}
	s.Cancel()
	return true
}

// Active reports whether a run is in progress.
func (s *Scramble) Active() bool { return s.active }
