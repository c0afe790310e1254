package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/chuckie/llmcommit/internal/adapters/llm/llmerr"
)

const (
	// DefaultMaxAttempts is the per-provider retry budget.
	DefaultMaxAttempts = 3
	// DefaultBaseDelay seeds the exponential backoff (base * 2^attempt).
	DefaultBaseDelay = time.Second
)

// Retrier applies a uniform exponential-backoff policy around one provider
// call. It is provider-agnostic and carries no state between invocations;
// choosing the next provider is the pipeline's job, not the retrier's.
type Retrier struct {
	MaxAttempts int
	BaseDelay   time.Duration
	// Sleep is injectable for tests; nil means a context-aware sleep.
	Sleep func(context.Context, time.Duration) error
}

// Do invokes call, retrying transient failures with exponential backoff.
// Non-retryable errors propagate immediately; exhausting the budget returns
// an error wrapping llmerr.ErrMaxRetries.
func (r Retrier) Do(ctx context.Context, call func(context.Context) (string, error)) (string, error) {
	attempts := r.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	base := r.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	sleep := r.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		text, err := call(ctx)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !llmerr.Retryable(err) {
			return "", err
		}
		if attempt == attempts-1 {
			break
		}

		delay := base << uint(attempt)
		if err := sleep(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("%w after %d attempts: %v", llmerr.ErrMaxRetries, attempts, lastErr)
}

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
