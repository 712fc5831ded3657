package shopsync

import (
	"context"
	"fmt"
	"time"
)

// sleepContext suspends the calling goroutine for d without blocking other
// work, returning early if the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retry drives fn through at most Config.MaxRetryAttempts attempts, sleeping
// 2^(attempt-1) seconds between failures. The final error is tagged with the
// label for diagnostics.
func (p *Pipeline) retry(ctx context.Context, label string, fn func() error) error {
	attempts := p.Config.MaxRetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		delay := time.Duration(1<<(attempt-1)) * time.Second
		p.Logger.Warn("%s failed (attempt %d/%d), retrying in %s: %v", label, attempt, attempts, delay, lastErr)
		if err := sleepContext(ctx, delay); err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
	}
	return fmt.Errorf("%s: %w", label, lastErr)
}

// rateLimitDelay is the fixed pause between successive page fetches. A policy
// value, not a retry.
func (p *Pipeline) rateLimitDelay() time.Duration {
	return p.Config.RateLimitDelay
}
