package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
)

const defaultOllamaHost = "http://localhost:11434"

// Ollama implements the Completer interface against Ollama's native API.
type Ollama struct {
	model  string
	host   string
	client *http.Client
}

// NewOllama creates a new Ollama provider. No API key is required.
func NewOllama(model string, opts Options) (*Ollama, error) {
	host := opts.Host
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host == "" {
		host = defaultOllamaHost
	}

	return &Ollama{
		model:  model,
		host:   normalizeHost(host),
		client: &http.Client{Timeout: opts.timeout()},
	}, nil
}

// normalizeHost strips trailing slashes and API paths users sometimes paste
// in, and defaults the scheme to http.
func normalizeHost(host string) string {
	host = strings.TrimRight(host, "/")
	host = strings.TrimSuffix(host, "/api/generate")
	host = strings.TrimSuffix(host, "/api/tags")
	host = strings.TrimSuffix(host, "/api")
	host = strings.TrimRight(host, "/")
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host
}

func (o *Ollama) Name() string { return "ollama" }

func (o *Ollama) Model() string { return o.model }

func (o *Ollama) api(path string) endpoint {
	return endpoint{client: o.client, url: o.host + path, host: o.host}
}

func (o *Ollama) Complete(ctx context.Context, req CompleteRequest) (CompleteResponse, error) {
	r := ollamaGenerateRequest{
		Model:  o.model,
		Prompt: req.UserPrompt,
		System: req.SystemPrompt,
	}
	if req.Temperature > 0 {
		r.Options = &ollamaOptions{Temperature: req.Temperature}
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return CompleteResponse{}, fmt.Errorf("marshaling request: %w", err)
	}
	ep := o.api("/api/generate")

	var resp CompleteResponse
	err = retryWithBackoff(ctx, defaultMaxRetries, func() error {
		var gen ollamaGenerateResponse
		if err := ep.postJSON(ctx, payload, &gen); err != nil {
			return err
		}
		if gen.Response == "" {
			return fmt.Errorf("model returned no text")
		}
		resp = CompleteResponse{
			Content:    gen.Response,
			TokensUsed: gen.PromptEvalCount + gen.EvalCount,
		}
		return nil
	})
	return resp, err
}

// Health checks that the Ollama server is reachable.
func (o *Ollama) Health(ctx context.Context) error {
	return o.api("/api/tags").getJSON(ctx, nil)
}

// Models lists the models installed on the Ollama server.
func (o *Ollama) Models(ctx context.Context) ([]string, error) {
	var tags ollamaTagsResponse
	if err := o.api("/api/tags").getJSON(ctx, &tags); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// Wire types for Ollama's /api/generate and /api/tags endpoints. Stream is
// always false; scoring needs the whole response in one piece.
type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system,omitempty"`
	Stream  bool           `json:"stream"`
	Options *ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaGenerateResponse struct {
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

type ollamaTagsResponse struct {
	Models []ollamaModel `json:"models"`
}

type ollamaModel struct {
	Name string `json:"name"`
}
