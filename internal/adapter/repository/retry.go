package repository

import (
	"context"
	"time"

	"shopeasy/pkg/errors"
	"shopeasy/pkg/logger"
)

// withRetry runs op up to attempts times, doubling the delay between
// tries. Only transient failures are retried; Unauthorized, NotFound
// and other permanent errors are returned immediately.
func withRetry(ctx context.Context, attempts int, backoff time.Duration, op func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	delay := backoff
	for attempt := 1; attempt <= attempts; attempt++ {
		err = op()
		if err == nil || !errors.IsTransient(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		logger.Warn("Transient failure (attempt %d/%d), retrying in %s: %v", attempt, attempts, delay, err)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return errors.Transient("Retry interrupted", ctx.Err())
		}
		delay *= 2
	}

	return err
}
