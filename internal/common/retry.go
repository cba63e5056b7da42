// Package common holds small shared utilities with no domain knowledge.
package common

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig controls the exponential backoff schedule used by Retry.
type RetryConfig struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

// RetryOption adjusts the backoff schedule.
type RetryOption func(*RetryConfig)

// WithMaxAttempts sets the total number of attempts, first try included.
func WithMaxAttempts(n int) RetryOption {
	return func(c *RetryConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBaseDelay sets the delay before the first retry; each subsequent retry
// doubles it, capped by WithMaxDelay.
func WithBaseDelay(d time.Duration) RetryOption {
	return func(c *RetryConfig) {
		if d > 0 {
			c.baseDelay = d
		}
	}
}

// WithMaxDelay caps the delay between retries.
func WithMaxDelay(d time.Duration) RetryOption {
	return func(c *RetryConfig) {
		if d > 0 {
			c.maxDelay = d
		}
	}
}

// Retry runs fn until it succeeds, attempts are exhausted, or the context is
// cancelled. Between attempts it sleeps with doubling delays. The last error
// is wrapped in the failure it returns.
func Retry(ctx context.Context, fn func() error, opts ...RetryOption) error {
	cfg := RetryConfig{maxAttempts: 3, baseDelay: time.Second, maxDelay: 30 * time.Second}
	for _, opt := range opts {
		opt(&cfg)
	}

	delay := cfg.baseDelay
	var lastErr error
	for attempt := 1; attempt <= cfg.maxAttempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt == cfg.maxAttempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted after %d attempts: %w", attempt, ctx.Err())
		case <-timer.C:
		}

		delay *= 2
		if delay > cfg.maxDelay {
			delay = cfg.maxDelay
		}
	}
	return fmt.Errorf("retry failed after %d attempts: %w", cfg.maxAttempts, lastErr)
}
