package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
)

const (
	anthropicAPIURL     = "https://api.anthropic.com/v1/messages"
	anthropicModelsURL  = "https://api.anthropic.com/v1/models"
	anthropicAPIVersion = "2023-06-01"
)

// Anthropic implements the Completer interface for Anthropic's API.
type Anthropic struct {
	apiKey string
	model  string
	client *http.Client
}

// NewAnthropic builds the hosted Anthropic provider from ANTHROPIC_API_KEY.
func NewAnthropic(model string, opts Options) (*Anthropic, error) {
	key := os.Getenv("ANTHROPIC_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}
	return &Anthropic{
		apiKey: key,
		model:  model,
		client: &http.Client{Timeout: opts.timeout()},
	}, nil
}

func (a *Anthropic) Name() string { return "anthropic" }

func (a *Anthropic) Model() string { return a.model }

// api builds an endpoint carrying the headers Anthropic requires on every
// call.
func (a *Anthropic) api(url string) endpoint {
	h := make(http.Header)
	h.Set("x-api-key", a.apiKey)
	h.Set("anthropic-version", anthropicAPIVersion)
	return endpoint{client: a.client, url: url, header: h}
}

func (a *Anthropic) Complete(ctx context.Context, req CompleteRequest) (CompleteResponse, error) {
	payload, err := json.Marshal(a.completeBody(req))
	if err != nil {
		return CompleteResponse{}, fmt.Errorf("marshaling request: %w", err)
	}
	ep := a.api(anthropicAPIURL)

	var resp CompleteResponse
	err = retryWithBackoff(ctx, defaultMaxRetries, func() error {
		var msg anthropicResponse
		if err := ep.postJSON(ctx, payload, &msg); err != nil {
			return err
		}
		text := msg.text()
		if text == "" {
			return fmt.Errorf("model returned no text")
		}
		resp = CompleteResponse{
			Content:    text,
			TokensUsed: msg.Usage.InputTokens + msg.Usage.OutputTokens,
		}
		return nil
	})
	return resp, err
}

func (a *Anthropic) completeBody(req CompleteRequest) anthropicRequest {
	r := anthropicRequest{
		Model:     a.model,
		MaxTokens: req.MaxTokens,
		System:    req.SystemPrompt,
		Messages:  []anthropicMessage{{Role: "user", Content: req.UserPrompt}},
	}
	if r.MaxTokens == 0 {
		r.MaxTokens = 4096
	}
	if req.Temperature > 0 {
		r.Temperature = &req.Temperature
	}
	return r
}

// Health checks that the API is reachable and the key is accepted.
func (a *Anthropic) Health(ctx context.Context) error {
	_, err := a.Models(ctx)
	return err
}

// Models lists the models available to the configured API key.
func (a *Anthropic) Models(ctx context.Context) ([]string, error) {
	var list anthropicModelsResponse
	if err := a.api(anthropicModelsURL).getJSON(ctx, &list); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(list.Data))
	for _, m := range list.Data {
		names = append(names, m.ID)
	}
	return names, nil
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature *float64           `json:"temperature,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicBlock `json:"content"`
	Usage   anthropicUsage   `json:"usage"`
}

// text concatenates the text blocks of a messages response, skipping any
// non-text blocks.
func (r anthropicResponse) text() string {
	var b strings.Builder
	for _, block := range r.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String()
}

type anthropicBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type anthropicModelsResponse struct {
	Data []anthropicModelEntry `json:"data"`
}

type anthropicModelEntry struct {
	ID string `json:"id"`
}
