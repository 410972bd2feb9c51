package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
)

const defaultLMStudioHost = "http://localhost:1234"

// LMStudio implements the Completer interface against LM Studio's
// OpenAI-compatible API.
type LMStudio struct {
	apiKey string
	model  string
	host   string
	client *http.Client
}

// NewLMStudio creates a new LM Studio provider. An API key is optional; LM
// Studio's local server accepts any value.
func NewLMStudio(model string, opts Options) (*LMStudio, error) {
	host := opts.Host
	if host == "" {
		host = os.Getenv("LMSTUDIO_HOST")
	}
	if host == "" {
		host = defaultLMStudioHost
	}

	return &LMStudio{
		apiKey: os.Getenv("LMSTUDIO_API_KEY"),
		model:  model,
		host:   normalizeLMStudioHost(host),
		client: &http.Client{Timeout: opts.timeout()},
	}, nil
}

// normalizeLMStudioHost strips trailing slashes and the /v1 path segments
// users sometimes paste in.
func normalizeLMStudioHost(host string) string {
	host = normalizeHost(host)
	host = strings.TrimSuffix(host, "/v1/chat/completions")
	host = strings.TrimSuffix(host, "/v1/models")
	host = strings.TrimSuffix(host, "/v1")
	return host
}

func (l *LMStudio) Name() string { return "lmstudio" }

func (l *LMStudio) Model() string { return l.model }

// api builds an endpoint for a path under the LM Studio host. The bearer
// header is only attached when a key is configured; the local server does
// not want one by default.
func (l *LMStudio) api(path string) endpoint {
	h := make(http.Header)
	if l.apiKey != "" {
		h.Set("Authorization", "Bearer "+l.apiKey)
	}
	return endpoint{client: l.client, url: l.host + path, host: l.host, header: h}
}

func (l *LMStudio) Complete(ctx context.Context, req CompleteRequest) (CompleteResponse, error) {
	payload, err := json.Marshal(l.chatBody(req))
	if err != nil {
		return CompleteResponse{}, fmt.Errorf("marshaling request: %w", err)
	}
	ep := l.api("/v1/chat/completions")

	var resp CompleteResponse
	err = retryWithBackoff(ctx, defaultMaxRetries, func() error {
		var reply chatResponse
		if err := ep.postJSON(ctx, payload, &reply); err != nil {
			return err
		}
		if len(reply.Choices) == 0 {
			return fmt.Errorf("model returned no choices")
		}
		content := reply.Choices[0].Message.Content
		if content == "" {
			return fmt.Errorf("model returned no text")
		}
		resp = CompleteResponse{
			Content:    content,
			TokensUsed: reply.Usage.TotalTokens,
		}
		return nil
	})
	return resp, err
}

func (l *LMStudio) chatBody(req CompleteRequest) chatRequest {
	r := chatRequest{
		Model:     l.model,
		MaxTokens: req.MaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
	}
	if r.MaxTokens == 0 {
		r.MaxTokens = 4096
	}
	if req.Temperature > 0 {
		r.Temperature = &req.Temperature
	}
	return r
}

// Health checks that the LM Studio server is reachable.
func (l *LMStudio) Health(ctx context.Context) error {
	return l.api("/v1/models").getJSON(ctx, nil)
}

// Models lists the models loaded in LM Studio.
func (l *LMStudio) Models(ctx context.Context) ([]string, error) {
	var list chatModelsResponse
	if err := l.api("/v1/models").getJSON(ctx, &list); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(list.Data))
	for _, m := range list.Data {
		names = append(names, m.ID)
	}
	return names, nil
}

// Wire types for the OpenAI-compatible chat completions format LM Studio
// serves.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatUsage struct {
	TotalTokens int `json:"total_tokens"`
}

type chatModelsResponse struct {
	Data []chatModelEntry `json:"data"`
}

type chatModelEntry struct {
	ID string `json:"id"`
}
