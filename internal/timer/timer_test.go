package timer

import (
	"context"
	"testing"
	"time"
)

func TestCountdownExpiresOnce(t *testing.T) {
	c := NewCountdown(60)
	tok, ok := c.Start()
	if !ok {
		t.Fatal("Start() should succeed on a fresh countdown")
	}

	expired := 0
	for i := 0; i < 60; i++ {
		res := c.Tick(tok)
		if res.Stale {
			t.Fatalf("tick %d unexpectedly stale", i+1)
		}
		if res.Expired {
			expired++
			if i != 59 {
				t.Errorf("expired on tick %d, want 60", i+1)
			}
		}
	}
	if expired != 1 {
		t.Fatalf("expired %d times, want 1", expired)
	}

	for i := 0; i < 5; i++ {
		res := c.Tick(tok)
		if res.Expired {
			t.Error("countdown expired twice")
		}
		if !res.Stale {
			t.Error("tick after expiry should be stale")
		}
		if res.Remaining != 0 || c.Remaining() != 0 {
			t.Errorf("remaining = %d, want 0", c.Remaining())
		}
	}
}

func TestCountdownStartWhileRunning(t *testing.T) {
	c := NewCountdown(10)
	tok, _ := c.Start()
	again, ok := c.Start()
	if ok {
		t.Error("second Start() should be a no-op")
	}
	if again != tok {
		t.Errorf("second Start() token = %d, want %d", again, tok)
	}
	c.Tick(tok)
	if c.Remaining() != 9 {
		t.Errorf("remaining = %d, want 9", c.Remaining())
	}
}

func TestCountdownStopCancelsTicks(t *testing.T) {
	c := NewCountdown(10)
	tok, _ := c.Start()
	c.Tick(tok)
	c.Stop()

	res := c.Tick(tok)
	if !res.Stale {
		t.Error("tick after Stop() should be stale")
	}
	if c.Remaining() != 9 {
		t.Errorf("remaining = %d, want 9", c.Remaining())
	}

	next, ok := c.Start()
	if !ok || next == tok {
		t.Fatalf("restart gave token %d ok=%v", next, ok)
	}
	if res := c.Tick(tok); !res.Stale {
		t.Error("old token must stay stale after restart")
	}
	if res := c.Tick(next); res.Stale || res.Remaining != 8 {
		t.Errorf("tick with new token = %+v", res)
	}
}

func TestCountdownReset(t *testing.T) {
	c := NewCountdown(5)
	tok, _ := c.Start()
	c.Tick(tok)
	c.Reset(120)
	if c.Running() {
		t.Error("Reset should stop the countdown")
	}
	if c.Remaining() != 120 || c.Elapsed() != 0 {
		t.Errorf("after reset remaining=%d elapsed=%d", c.Remaining(), c.Elapsed())
	}
	if !c.Tick(tok).Stale {
		t.Error("tick from before reset should be stale")
	}
}

func TestCountdownZero(t *testing.T) {
	c := NewCountdown(0)
	if _, ok := c.Start(); ok {
		t.Error("Start() on an empty countdown should be a no-op")
	}
}

func TestScramble(t *testing.T) {
	var s Scramble
	tok := s.Start()

	for i := 0; i < 3; i++ {
		if !s.Tick(tok) {
			t.Fatal("tick should be live")
		}
	}
	if !s.Fire(tok) {
		t.Fatal("fire should run once")
	}
	if s.Fire(tok) {
		t.Error("fire ran twice")
	}
	if s.Tick(tok) {
		t.Error("fire must cancel the repeating tick")
	}
}

func TestScrambleCancel(t *testing.T) {
	var s Scramble
	tok := s.Start()
	s.Cancel()

	if s.Tick(tok) {
		t.Error("tick after cancel should be ignored")
	}
	if s.Fire(tok) {
		t.Error("fire after cancel should be ignored")
	}
	if s.Active() {
		t.Error("scramble still active after cancel")
	}

	next := s.Start()
	if next == tok {
		t.Error("new run reused an old token")
	}
	if !s.Tick(next) {
		t.Error("new run should accept ticks")
	}
}

func TestFakeSleeper(t *testing.T) {
	var f FakeSleeper
	f.Sleep(context.Background(), time.Second)
	f.Sleep(context.Background(), 2*time.Second)
	got := f.Slept()
	if len(got) != 2 || got[0] != time.Second || got[1] != 2*time.Second {
		t.Errorf("Slept() = %v", got)
	}
}

func TestRealSleeperHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	RealSleeper{}.Sleep(ctx, time.Minute)
	if time.Since(start) > time.Second {
		t.Error("sleep ignored a cancelled context")
	}
}
