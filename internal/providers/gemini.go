package providers

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// GenerativeClient abstracts the Gemini generative AI client for testability.
type GenerativeClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ClientFactory creates a GenerativeClient. Production code uses
// DefaultClientFactory; tests inject a factory that returns a mock.
type ClientFactory func(ctx context.Context, apiKey string) (GenerativeClient, error)

// genaiClient wraps the real genai.Client to satisfy GenerativeClient.
type genaiClient struct {
	inner *genai.Client
}

func (g *genaiClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.inner.Models.GenerateContent(ctx, model, contents, config)
}

// DefaultClientFactory creates a real Gemini API client.
func DefaultClientFactory(ctx context.Context, apiKey string) (GenerativeClient, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &genaiClient{inner: c}, nil
}

// geminiKnownModels is returned by Models; the Gemini API has no cheap
// listing endpoint worth a round trip here.
var geminiKnownModels = []string{
	"gemini-2.5-pro",
	"gemini-2.5-flash",
	"gemini-2.0-flash",
}

// Gemini implements the Completer interface using the Google Gemini API.
type Gemini struct {
	apiKey  string
	model   string
	factory ClientFactory
}

// NewGemini creates a new Gemini provider.
func NewGemini(model string, opts Options) (*Gemini, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		key = os.Getenv("GOOGLE_API_KEY")
	}
	if key == "" {
		return nil, fmt.Errorf("neither GEMINI_API_KEY nor GOOGLE_API_KEY is set")
	}
	return &Gemini{
		apiKey:  key,
		model:   model,
		factory: DefaultClientFactory,
	}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Model() string { return g.model }

func (g *Gemini) Complete(ctx context.Context, req CompleteRequest) (CompleteResponse, error) {
	client, err := g.factory(ctx, g.apiKey)
	if err != nil {
		return CompleteResponse{}, fmt.Errorf("creating Gemini client: %w", err)
	}

	config := &genai.GenerateContentConfig{}
	if req.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	var resp CompleteResponse
	err = retryWithBackoff(ctx, defaultMaxRetries, func() error {
		result, err := client.GenerateContent(ctx, g.model, genai.Text(req.UserPrompt), config)
		if err != nil {
			// The SDK surfaces transport and server failures alike; treat
			// them all as retryable.
			return &serverError{body: err.Error()}
		}

		text, err := extractText(result)
		if err != nil {
			return err
		}

		var tokens int
		if result.UsageMetadata != nil {
			tokens = int(result.UsageMetadata.TotalTokenCount)
		}

		resp = CompleteResponse{Content: text, TokensUsed: tokens}
		return nil
	})

	return resp, err
}

// Health verifies that a client can be constructed with the configured key.
func (g *Gemini) Health(ctx context.Context) error {
	if _, err := g.factory(ctx, g.apiKey); err != nil {
		return fmt.Errorf("creating Gemini client: %w", err)
	}
	return nil
}

// Models returns the known Gemini model names.
func (g *Gemini) Models(ctx context.Context) ([]string, error) {
	models := make([]string, len(geminiKnownModels))
	copy(models, geminiKnownModels)
	return models, nil
}

// extractText pulls the text content from a Gemini response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content parts in response")
	}
	var content string
	for _, part := range candidate.Content.Parts {
		content += part.Text
	}
	if content == "" {
		return "", fmt.Errorf("empty text in response part")
	}
	return content, nil
}
