package resilience

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// RetryConfig controls retry behavior for service calls.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts including the first.
	MaxAttempts int
	// InitialBackoff is the delay before the first retry; it doubles per
	// attempt up to MaxBackoff, with ±25% jitter.
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryConfig suits short per-pair merge calls: one retry inside the
// per-call timeout budget.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    2,
		InitialBackoff: 300 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
	}
}

// Do runs fn, retrying transient errors per cfg. Context cancellation
// stops retries immediately and returns the last error.
func Do(ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) error) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 300 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 2 * time.Second
	}

	backoff := cfg.InitialBackoff
	var err error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if attempt == cfg.MaxAttempts || !IsTransient(err) || ctx.Err() != nil {
			return err
		}

		jittered := backoff + time.Duration((rand.Float64()-0.5)*0.5*float64(backoff))
		zap.L().Debug("retrying transient failure",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", jittered),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return err
		case <-time.After(jittered):
		}
		backoff *= 2
		if backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}
	return err
}
