// Package resilience retries tool invocations that fail for transient
// reasons, such as package downloads during flutter pub get.
package resilience

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Policy defines the retry behaviour for an operation.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration

	// UseJitter scales each delay by a random factor between 0.5 and 1.5.
	UseJitter bool

	// Retryable lists the errors worth retrying. Empty means every error
	// except context cancellation.
	Retryable []error

	// OnRetry, when set, is called before each retry.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultPolicy returns a policy with n retries starting at one second.
func DefaultPolicy(n int) Policy {
	return Policy{
		MaxRetries: n,
		BaseDelay:  time.Second,
		MaxDelay:   10 * time.Second,
		UseJitter:  true,
	}
}

// Retry calls fn until it succeeds, returns a non-retryable error, or the
// retries run out. It returns the last error.
func Retry(ctx context.Context, policy Policy, fn func() error) error {
	var lastErr error

	for attempt := range policy.MaxRetries + 1 {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err, policy.Retryable) || attempt == policy.MaxRetries {
			return err
		}

		delay := CalculateBackoff(attempt, policy.BaseDelay, policy.MaxDelay, policy.UseJitter)
		if policy.OnRetry != nil {
			policy.OnRetry(attempt+1, err, delay)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return lastErr
}

// CalculateBackoff returns baseDelay * 2^attempt capped at maxDelay.
func CalculateBackoff(attempt int, baseDelay, maxDelay time.Duration, useJitter bool) time.Duration {
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}
	if maxDelay <= 0 {
		maxDelay = 30 * time.Second
	}

	delay := baseDelay
	for range attempt {
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
			break
		}
	}

	if useJitter {
		delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))
	}
	return min(delay, maxDelay)
}

func retryable(err error, allowed []error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, target := range allowed {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
