package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// endpoint is a single URL on a provider backend together with the client
// and headers needed to call it. The HTTP backends build one per API call
// instead of repeating the request plumbing in every method.
type endpoint struct {
	client *http.Client
	url    string
	host   string // shown in unreachable errors; falls back to url
	header http.Header
}

func (e endpoint) getJSON(ctx context.Context, out interface{}) error {
	return e.send(ctx, http.MethodGet, nil, out)
}

func (e endpoint) postJSON(ctx context.Context, payload []byte, out interface{}) error {
	return e.send(ctx, http.MethodPost, payload, out)
}

// send performs one round trip. Non-2xx statuses come back as the package
// error types so the retry loop can tell transient failures from permanent
// ones. A nil out skips decoding, which is all a health probe needs.
func (e endpoint) send(ctx context.Context, method string, payload []byte, out interface{}) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, e.url, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for name, values := range e.header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.client.Do(req)
	if err != nil {
		host := e.host
		if host == "" {
			host = e.url
		}
		return &unreachableError{host: host, err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if err := statusErr(resp.StatusCode, raw, resp.Header); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// statusErr maps a response status onto the package error types.
func statusErr(status int, body []byte, header http.Header) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusTooManyRequests:
		return &rateLimitError{retryAfter: parseRetryAfter(header.Get("Retry-After"))}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &authError{message: string(body)}
	case status >= 500:
		return &serverError{statusCode: status, body: string(body)}
	default:
		return fmt.Errorf("API error (status %d): %s", status, body)
	}
}

// parseRetryAfter reads the delay-seconds form of a Retry-After header.
// Waits from the header are capped at a minute; anything unparseable
// (including the HTTP-date form) falls back to the default backoff.
func parseRetryAfter(v string) time.Duration {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	d := time.Duration(n) * time.Second
	if d > time.Minute {
		return time.Minute
	}
	return d
}
