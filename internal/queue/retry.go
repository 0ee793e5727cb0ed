package queue

import (
	"context"
	"fmt"
	"time"
)

// retryBackoff is the base wait between attempts; attempt i waits (i+1) times it.
var retryBackoff = 500 * time.Millisecond

// retry calls fn up to attempts times, backing off linearly between failures.
func retry[T any](ctx context.Context, attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(time.Duration(i+1) * retryBackoff):
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
