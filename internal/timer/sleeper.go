package timer

import (
	"context"
	"sync"
	"time"
)

// Sleeper blocks for a duration.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration)
}

// RealSleeper sleeps on the wall clock, returning early if ctx is done.
type RealSleeper struct{}

func (RealSleeper) Sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// FakeSleeper records requested sleeps without blocking.
type FakeSleeper struct {
	mu    sync.Mutex
	slept []time.Duration
}

func (f *FakeSleeper) Sleep(_ context.Context, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slept = append(f.slept, d)
}

// Slept returns the recorded durations.
func (f *FakeSleeper) Slept() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Duration, len(f.slept))
	copy(out, f.slept)
	return out
}
