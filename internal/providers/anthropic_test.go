package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// redirectTransport lands every request on the test server, whatever URL the
// code under test asked for.
type redirectTransport struct {
	serverURL string
}

func (rt redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	target, err := url.Parse(rt.serverURL)
	if err != nil {
		return nil, err
	}
	clone := req.Clone(req.Context())
	clone.URL.Scheme = target.Scheme
	clone.URL.Host = target.Host
	return http.DefaultTransport.RoundTrip(clone)
}

func newTestAnthropic(serverURL string) *Anthropic {
	return &Anthropic{
		apiKey: "test-key",
		model:  "claude-sonnet-4-20250514",
		client: &http.Client{Transport: redirectTransport{serverURL: serverURL}},
	}
}

// anthropicText answers with a single text block and fixed token usage, in
// the messages API wire format.
func anthropicText(text string, inTokens, outTokens int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"content":[{"type":"text","text":"%s"}],"usage":{"input_tokens":%d,"output_tokens":%d}}`,
			text, inTokens, outTokens)
	}
}

func TestAnthropic_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Error("x-api-key header not sent")
		}
		if r.Header.Get("anthropic-version") != anthropicAPIVersion {
			t.Error("anthropic-version header not sent")
		}
		anthropicText("CLARITY: 90", 100, 10)(w, r)
	}))
	defer srv.Close()

	resp, err := newTestAnthropic(srv.URL).Complete(context.Background(), CompleteRequest{
		SystemPrompt: "score the file",
		UserPrompt:   "# CLAUDE.md",
		MaxTokens:    10,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "CLARITY: 90" {
		t.Errorf("Content = %q, want %q", resp.Content, "CLARITY: 90")
	}
	if resp.TokensUsed != 110 {
		t.Errorf("TokensUsed = %d, want input+output = 110", resp.TokensUsed)
	}
}

func TestAnthropic_MultiBlockContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"content":[`+
			`{"type":"thinking","text":"skipped"},`+
			`{"type":"text","text":"CLARITY: "},`+
			`{"type":"text","text":"88"}`+
			`],"usage":{"input_tokens":5,"output_tokens":5}}`)
	}))
	defer srv.Close()

	resp, err := newTestAnthropic(srv.URL).Complete(context.Background(), CompleteRequest{UserPrompt: "# CLAUDE.md"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "CLARITY: 88" {
		t.Errorf("Content = %q, want text blocks joined in order", resp.Content)
	}
}

func TestAnthropic_AuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestAnthropic(srv.URL).Complete(context.Background(), CompleteRequest{UserPrompt: "# CLAUDE.md"})
	if err == nil {
		t.Fatal("want an auth error, got nil")
	}
	if !IsAuthError(err) {
		t.Errorf("want an auth error, got %v", err)
	}
}

func TestAnthropic_ServerError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
			return
		}
		anthropicText("ok", 10, 5)(w, r)
	}))
	defer srv.Close()

	resp, err := newTestAnthropic(srv.URL).Complete(context.Background(), CompleteRequest{UserPrompt: "# CLAUDE.md"})
	if err != nil {
		t.Fatalf("Complete should recover after retries: %v", err)
	}
	if resp.Content != "ok" {
		t.Errorf("Content = %q, want %q", resp.Content, "ok")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3 (two 5xx retries then success)", attempts)
	}
}

func TestAnthropic_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"content":[],"usage":{"input_tokens":10,"output_tokens":0}}`)
	}))
	defer srv.Close()

	_, err := newTestAnthropic(srv.URL).Complete(context.Background(), CompleteRequest{UserPrompt: "# CLAUDE.md"})
	if err == nil {
		t.Error("want an error for a reply with no text blocks")
	}
}

func TestAnthropic_DefaultMaxTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MaxTokens int `json:"max_tokens"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.MaxTokens != 4096 {
			t.Errorf("max_tokens = %d, want default 4096", body.MaxTokens)
		}
		anthropicText("ok", 10, 5)(w, r)
	}))
	defer srv.Close()

	_, err := newTestAnthropic(srv.URL).Complete(context.Background(), CompleteRequest{UserPrompt: "# CLAUDE.md"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
}

func TestAnthropic_Models(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Error("x-api-key header not sent")
		}
		fmt.Fprint(w, `{"data":[{"id":"claude-sonnet-4-20250514"},{"id":"claude-opus-4-20250514"}]}`)
	}))
	defer srv.Close()

	models, err := newTestAnthropic(srv.URL).Models(context.Background())
	if err != nil {
		t.Fatalf("Models: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("len(models) = %d, want 2", len(models))
	}
	if models[0] != "claude-sonnet-4-20250514" {
		t.Errorf("models[0] = %q, want %q", models[0], "claude-sonnet-4-20250514")
	}
}

func TestAnthropic_Name(t *testing.T) {
	a := &Anthropic{model: "claude-sonnet-4-20250514"}
	if a.Name() != "anthropic" {
		t.Errorf("Name() = %q, want %q", a.Name(), "anthropic")
	}
	if a.Model() != "claude-sonnet-4-20250514" {
		t.Errorf("Model() = %q, want %q", a.Model(), "claude-sonnet-4-20250514")
	}
}
