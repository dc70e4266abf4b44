package retry

import (
	"context"
	"fmt"
	"time"
)

// DefaultMaxAttempts is the number of clone attempts made before a
// repository is reported as failed.
const DefaultMaxAttempts = 3

// Policy is a bounded retry policy. It is immutable after construction.
type Policy struct {
	MaxAttempts int           // total attempts, including the first
	Delay       time.Duration // pause between attempts, zero for none
}

// DefaultPolicy returns 3 attempts with no delay in between.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts}
}

// NewPolicy builds a policy; non-positive attempts fall back to the default.
func NewPolicy(maxAttempts int, delay time.Duration) Policy {
	p := DefaultPolicy()
	if maxAttempts > 0 {
		p.MaxAttempts = maxAttempts
	}
	if delay > 0 {
		p.Delay = delay
	}
	return p
}

// Validate ensures invariants; returns error if policy impossible to apply.
func (p Policy) Validate() error {
	if p.MaxAttempts <= 0 {
		return fmt.Errorf("max attempts must be >0")
	}
	if p.Delay < 0 {
		return fmt.Errorf("delay cannot be negative")
	}
	return nil
}

// Do calls fn until it succeeds or MaxAttempts calls have been made.
// Attempts are numbered from 1. The last error is returned wrapped.
func (p Policy) Do(ctx context.Context, fn func(attempt int) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr == nil {
				return err
			}
			return fmt.Errorf("cancelled after %d attempt(s): %w", attempt-1, lastErr)
		}

		err := fn(attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == attempts || p.Delay <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
		case <-time.After(p.Delay):
		}
	}
	return fmt.Errorf("failed after %d attempt(s): %w", attempts, lastErr)
}
