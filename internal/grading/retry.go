package grading

import (
	"context"
	"errors"
	"time"

	"google.golang.org/api/googleapi"
)

// RetryPolicy retries an operation on transient failures with exponential
// backoff. It exists as a value so retry behavior is testable apart from the
// network call it wraps.
type RetryPolicy struct {
	MaxAttempts int           // total attempts, including the first
	BaseDelay   time.Duration // wait after the first failure
	MaxDelay    time.Duration // backoff cap
	Retryable   func(error) bool

	// Sleep, when set, replaces the context-aware wait between attempts.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy matches the oracle contract: 3 attempts total,
// exponential backoff from 1s capped at 8s, transient failures only.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    8 * time.Second,
		Retryable:   Transient,
	}
}

// Do runs fn until it succeeds, fails non-retryably, the attempt budget is
// spent, or ctx is done. The wait between attempts respects ctx cancellation;
// there is no mid-attempt cancellation beyond what fn itself honors.
func (p RetryPolicy) Do(ctx context.Context, fn func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = Transient
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var lastErr error
	delay := p.BaseDelay
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) || attempt == attempts {
			return lastErr
		}
		if err := sleep(ctx, delay); err != nil {
			return lastErr
		}
		delay *= 2
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
	return lastErr
}

// Transient reports whether an oracle call failure is worth retrying:
// transport errors and 429/5xx service responses are; context cancellation
// and 4xx rejections are not. Semantic failures (a response that parses but
// says nothing) never reach here — the parser's fallback owns those.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == 429 || gerr.Code >= 500
	}
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
