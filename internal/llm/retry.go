package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/periodica/internal/timer"
)

// RetryProvider retries transient errors with exponential backoff and
// jitter. Invalid responses are retried once.
type RetryProvider struct {
	inner   Provider
	config  RetryConfig
	sleeper timer.Sleeper
	jitter  func() float64
}

// RetryOption configures a RetryProvider.
type RetryOption func(*RetryProvider)

// WithSleeper replaces the wall-clock sleeper used between attempts.
func WithSleeper(s timer.Sleeper) RetryOption {
	return func(r *RetryProvider) { r.sleeper = s }
}

// WithoutJitter makes backoff deterministic.
func WithoutJitter() RetryOption {
	return func(r *RetryProvider) { r.jitter = func() float64 { return 0.5 } }
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig, opts ...RetryOption) Provider {
	r := &RetryProvider{inner: p, config: cfg, sleeper: timer.RealSleeper{}, jitter: rand.Float64}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidRetried := false

	attempts := max(r.config.MaxAttempts, 1)
	for attempt := range attempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err, &invalidRetried) || attempt == attempts-1 {
			break
		}

		r.sleeper.Sleep(ctx, r.backoff(attempt, err))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func retryable(err error, invalidRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
	}
	return true
}

func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = min(wait, float64(r.config.MaxWait))

	// ±20% jitter.
	wait += wait * 0.2 * (2*r.jitter() - 1)
	return time.Duration(max(wait, 0))
}
