// Package httputil provides the HTTP plumbing shared by registry clients:
// retry with exponential backoff and a file-based response cache.
package httputil

import (
	"context"
	"errors"
	"time"
)

const (
	defaultAttempts = 3
	defaultDelay    = time.Second
)

// RetryableError marks a failure as transient. Registry clients wrap
// timeouts, connection errors, and 5xx responses in it; anything else
// (a 404, a decode failure) fails the operation on the spot.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Backoff retries an operation with exponentially growing delays between
// attempts. The zero value retries 3 times starting at 1 second.
type Backoff struct {
	Attempts int           // Total tries, including the first
	Delay    time.Duration // Wait before the second try, doubled after each failure
}

// Do runs fn until it succeeds, fails with a non-retryable error, exhausts
// the attempts, or ctx is cancelled while waiting. It returns the last error
// seen, or ctx.Err() on cancellation.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := b.Attempts
	if attempts < 1 {
		attempts = defaultAttempts
	}
	delay := b.Delay
	if delay <= 0 {
		delay = defaultDelay
	}

	for try := 1; ; try++ {
		err := fn()
		if err == nil || !errors.As(err, new(*RetryableError)) || try == attempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}
