package registry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/labstack/gommon/log"
)

const (
	retryInitialInterval = 500 * time.Millisecond
	retryMaxElapsed      = 15 * time.Second
)

// WithRetry runs fn until it succeeds, fails with a non-retryable error, or
// maxRetries extra attempts are used up.
func WithRetry[T any](ctx context.Context, maxRetries uint64, fn func(context.Context) (T, error)) (T, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInitialInterval
	bo.MaxElapsedTime = retryMaxElapsed

	var (
		result T
		err    error
	)
	ticker := backoff.NewTicker(backoff.WithContext(backoff.WithMaxRetries(bo, maxRetries), ctx))
	defer ticker.Stop()

	attempt := 0
	for range ticker.C {
		attempt++
		result, err = fn(ctx)
		if err == nil || !Retryable(err) {
			return result, err
		}
		log.Warnf("registry attempt %d failed: %v", attempt, err)
	}
	if attempt == 0 {
		err = ErrUnavailable
	}
	return result, err
}
