package providers

import (
	"strings"
	"testing"
	"time"
)

func TestNew_RejectsUnknown(t *testing.T) {
	_, err := New("cohere", "model", Options{})
	if err == nil {
		t.Fatal("want an error for a provider New does not know")
	}
	if !strings.Contains(err.Error(), "unknown provider") {
		t.Errorf("err = %v, want it to name the unknown provider", err)
	}
}

func TestNew_LocalProviders(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	t.Setenv("LMSTUDIO_HOST", "")

	p, err := New("ollama", "llama3.1", Options{})
	if err != nil {
		t.Fatalf("New(ollama): %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("Name() = %q, want %q", p.Name(), "ollama")
	}
	if p.Model() != "llama3.1" {
		t.Errorf("Model() = %q, want %q", p.Model(), "llama3.1")
	}

	p, err = New("lmstudio", "qwen2.5-coder", Options{})
	if err != nil {
		t.Fatalf("New(lmstudio): %v", err)
	}
	if p.Name() != "lmstudio" {
		t.Errorf("Name() = %q, want %q", p.Name(), "lmstudio")
	}
}

func TestNew_GoogleIsGemini(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	// Without a key construction fails, but the failure has to be the
	// missing key, not an unrecognized name.
	_, err := New("google", "gemini-2.5-flash", Options{})
	if err == nil {
		t.Fatal("want a missing-key error")
	}
	if strings.Contains(err.Error(), "unknown provider") {
		t.Errorf("err = %v, want google accepted as an alias for gemini", err)
	}
}

func TestNew_AnthropicMissingKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, err := New("anthropic", "claude-sonnet-4-20250514", Options{}); err == nil {
		t.Error("want a missing-key error")
	}
}

func TestOptions_Timeout(t *testing.T) {
	if got := (Options{}).timeout(); got != defaultTimeout {
		t.Errorf("zero Options timeout = %v, want %v", got, defaultTimeout)
	}
	if got := (Options{Timeout: 5 * time.Second}).timeout(); got != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", got)
	}
}
