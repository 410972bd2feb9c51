package providers

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// defaultMaxRetries bounds how often the providers retry a transient failure.
const defaultMaxRetries = 3

// One error type per failure class the backends can hit. The retry loop and
// the CLI exit-code mapping both dispatch on these.

type unreachableError struct {
	host string
	err  error
}

func (e *unreachableError) Error() string {
	return fmt.Sprintf("cannot reach %s: %v", e.host, e.err)
}

func (e *unreachableError) Unwrap() error { return e.err }

type rateLimitError struct {
	retryAfter time.Duration
}

func (e *rateLimitError) Error() string { return "rate limited" }

type serverError struct {
	statusCode int
	body       string
}

func (e *serverError) Error() string { return "server error: " + e.body }

type authError struct {
	message string
}

func (e *authError) Error() string { return "authentication error: " + e.message }

// IsAuthError checks if an error is an authentication error. Auth failures
// are permanent; retrying cannot fix a bad key.
func IsAuthError(err error) bool {
	var target *authError
	return errors.As(err, &target)
}

// IsUnreachable checks if an error means the provider endpoint could not be
// reached at all (connection refused, DNS failure).
func IsUnreachable(err error) bool {
	var target *unreachableError
	return errors.As(err, &target)
}

// isRetryable reports whether a later attempt could plausibly succeed.
// Auth errors and malformed responses are permanent.
func isRetryable(err error) bool {
	var (
		rl *rateLimitError
		se *serverError
		ue *unreachableError
	)
	return errors.As(err, &rl) || errors.As(err, &se) || errors.As(err, &ue)
}

// retryWithBackoff calls fn until it succeeds, fails permanently, or uses
// up maxRetries retries. The wait doubles from one second per attempt; a
// rate-limit reply carrying a Retry-After hint overrides it. Context
// cancellation aborts the wait.
func retryWithBackoff(ctx context.Context, maxRetries int, fn func() error) error {
	delay := time.Second
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil || !isRetryable(err) || attempt == maxRetries {
			return err
		}
		wait := delay
		var rl *rateLimitError
		if errors.As(err, &rl) && rl.retryAfter > 0 {
			wait = rl.retryAfter
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		delay *= 2
	}
}
