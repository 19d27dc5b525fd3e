package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastBackoff() Backoff {
	return Backoff{Attempts: 3, Delay: time.Millisecond}
}

func TestBackoffSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := fastBackoff().Do(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Do = %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBackoffRetriesRetryableErrors(t *testing.T) {
	calls := 0
	err := fastBackoff().Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errors.New("transient")}
		}
		return nil
	})
	if err != nil {
		t.Errorf("Do = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestBackoffStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("bad request")
	calls := 0
	err := fastBackoff().Do(context.Background(), func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Errorf("Do = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry for permanent errors)", calls)
	}
}

func TestBackoffZeroValueStillFailsFastOnPermanentError(t *testing.T) {
	// The zero value carries the default attempt count and a 1s initial
	// delay, but a non-retryable error must return before any waiting.
	permanent := errors.New("not found")
	calls := 0
	start := time.Now()
	err := (Backoff{}).Do(context.Background(), func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Errorf("Do = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Do took %v, should not have slept", elapsed)
	}
}

func TestBackoffExhaustsAttempts(t *testing.T) {
	transient := errors.New("still down")
	calls := 0
	err := fastBackoff().Do(context.Background(), func() error {
		calls++
		return &RetryableError{Err: transient}
	})
	if !errors.Is(err, transient) {
		t.Errorf("Do = %v, want last error %v", err, transient)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestBackoffRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Backoff{Attempts: 5, Delay: time.Minute}.Do(ctx, func() error {
		calls++
		cancel()
		return &RetryableError{Err: errors.New("transient")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (cancelled before second attempt)", calls)
	}
}

func TestRetryableErrorUnwraps(t *testing.T) {
	inner := errors.New("timeout")
	wrapped := &RetryableError{Err: inner}
	if !errors.Is(wrapped, inner) {
		t.Error("RetryableError should unwrap to its cause")
	}
	if wrapped.Error() != "timeout" {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), "timeout")
	}
}
