package providers

import (
	"context"
	"fmt"
	"time"
)

// CompleteRequest contains the data sent to an LLM for a completion.
type CompleteRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// CompleteResponse contains the raw response from an LLM.
type CompleteResponse struct {
	Content    string
	TokensUsed int
}

// Completer is the provider abstraction interface.
type Completer interface {
	Complete(ctx context.Context, req CompleteRequest) (CompleteResponse, error)
	Health(ctx context.Context) error
	Models(ctx context.Context) ([]string, error)
	Name() string
	Model() string
}

// Options carries provider settings shared by all backends. Zero values fall
// back to provider defaults.
type Options struct {
	Host    string
	Timeout time.Duration
}

const defaultTimeout = 120 * time.Second

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return defaultTimeout
}

// New creates a provider by name.
func New(provider, model string, opts Options) (Completer, error) {
	switch provider {
	case "ollama":
		return NewOllama(model, opts)
	case "lmstudio":
		return NewLMStudio(model, opts)
	case "anthropic":
		return NewAnthropic(model, opts)
	case "gemini", "google":
		return NewGemini(model, opts)
	default:
		return nil, fmt.Errorf("unknown provider: %s (valid: ollama, lmstudio, anthropic, gemini)", provider)
	}
}
