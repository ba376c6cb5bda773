package openaiutil

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
)

const (
	// MaxRetries applies only to rate-limited calls. Any other failure
	// degrades immediately.
	MaxRetries     = 2
	RetryBackoff   = 2 * time.Second
	RequestTimeout = 30 * time.Second
)

// IsRateLimited reports whether err is an upstream 429.
func IsRateLimited(err error) bool {
	var apiErr *openai.Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}

// WithRetry runs fn, retrying up to MaxRetries times with a fixed backoff,
// but only when the failure is a rate limit.
func WithRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
		err = fn(callCtx)
		cancel()

		if err == nil || !IsRateLimited(err) || attempt >= MaxRetries {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(RetryBackoff):
		}
	}
}
