package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestErrorClassification(t *testing.T) {
	refused := errors.New("connection refused")
	tests := []struct {
		name      string
		err       error
		auth      bool
		unreach   bool
		retryable bool
	}{
		{"nil", nil, false, false, false},
		{"rate limit", &rateLimitError{}, false, false, true},
		{"server 500", &serverError{statusCode: 500, body: "oops"}, false, false, true},
		{"auth", &authError{message: "bad key"}, true, false, false},
		{"unreachable", &unreachableError{host: "http://localhost:11434", err: refused}, false, true, true},
		{"wrapped auth", fmt.Errorf("scoring failed: %w", &authError{message: "bad key"}), true, false, false},
		{"wrapped unreachable", fmt.Errorf("scoring failed: %w", &unreachableError{host: "h", err: refused}), false, true, true},
		{"context canceled", context.Canceled, false, false, false},
		{"plain error", fmt.Errorf("parsing response: boom"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAuthError(tt.err); got != tt.auth {
				t.Errorf("IsAuthError = %v, want %v", got, tt.auth)
			}
			if got := IsUnreachable(tt.err); got != tt.unreach {
				t.Errorf("IsUnreachable = %v, want %v", got, tt.unreach)
			}
			if got := isRetryable(tt.err); got != tt.retryable {
				t.Errorf("isRetryable = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestErrorStrings(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&rateLimitError{}, "rate limited"},
		{&serverError{statusCode: 500, body: "oops"}, "server error: oops"},
		{&authError{message: "bad key"}, "authentication error: bad key"},
		{&unreachableError{host: "http://localhost:11434", err: errors.New("refused")}, "cannot reach http://localhost:11434: refused"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestRetryWithBackoff(t *testing.T) {
	t.Run("first attempt succeeds", func(t *testing.T) {
		calls := 0
		err := retryWithBackoff(context.Background(), defaultMaxRetries, func() error {
			calls++
			return nil
		})
		if err != nil {
			t.Errorf("retryWithBackoff: %v", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("permanent error stops immediately", func(t *testing.T) {
		calls := 0
		err := retryWithBackoff(context.Background(), defaultMaxRetries, func() error {
			calls++
			return &authError{message: "expired key"}
		})
		if calls != 1 {
			t.Errorf("calls = %d, want 1 for an auth failure", calls)
		}
		if !IsAuthError(err) {
			t.Errorf("want the auth error back, got: %v", err)
		}
	})

	t.Run("canceled context aborts the wait", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := retryWithBackoff(ctx, defaultMaxRetries, func() error {
			return &rateLimitError{}
		})
		if err != context.Canceled {
			t.Errorf("want context.Canceled, got: %v", err)
		}
	})

	t.Run("retry-after hint overrides the backoff", func(t *testing.T) {
		calls := 0
		start := time.Now()
		err := retryWithBackoff(context.Background(), defaultMaxRetries, func() error {
			calls++
			if calls <= 2 {
				return &rateLimitError{retryAfter: time.Millisecond}
			}
			return nil
		})
		if err != nil {
			t.Errorf("retryWithBackoff: %v", err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
		// The default backoff would sleep three seconds across two retries.
		if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
			t.Errorf("waited %v, want the millisecond hints honored", elapsed)
		}
	})
}
