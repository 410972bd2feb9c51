package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cskiro/claude-md-bench/internal/cache"
	"github.com/cskiro/claude-md-bench/internal/logging"
	"github.com/cskiro/claude-md-bench/internal/providers"
	"github.com/cskiro/claude-md-bench/internal/redact"
)

// scoringTemperature keeps scoring runs near-deterministic.
const scoringTemperature = 0.3

// Options configures an Analyzer. The zero value disables the cache,
// redaction, and rubric adjustments.
type Options struct {
	Rubric *Rubric
	Cache  *cache.Cache
	Redact bool
}

// Analyzer scores CLAUDE.md files through an LLM provider.
type Analyzer struct {
	provider providers.Completer
	rubric   *Rubric
	cache    *cache.Cache
	redact   bool
}

// New creates an Analyzer. A nil Options.Rubric falls back to the built-in
// default rubric.
func New(provider providers.Completer, opts Options) *Analyzer {
	rubric := opts.Rubric
	if rubric == nil {
		rubric = DefaultRubric()
	}
	return &Analyzer{
		provider: provider,
		rubric:   rubric,
		cache:    opts.Cache,
		redact:   opts.Redact,
	}
}

// Analyze scores one file. Content is redacted before it reaches the provider
// or the cache key; cache hits skip the provider entirely and come back with
// Cached set. The returned error wraps ErrMalformed when the completion held
// no scores.
func (a *Analyzer) Analyze(ctx context.Context, file, content string) (*Result, error) {
	log := logging.FromContext(ctx)
	start := time.Now()
	fileSize := len(content)

	if a.redact {
		content = redact.Secrets(content)
	}

	key := cache.BuildKey(a.provider.Name(), a.provider.Model(), a.rubric.Hash(), content)
	if a.cache != nil {
		if raw, ok := a.cache.Get(key); ok {
			var cached Result
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				cached.Cached = true
				log.Debug("analysis served from cache", zap.String("file", file))
				return &cached, nil
			}
		}
	}

	name := projectName(file)
	req := providers.CompleteRequest{
		SystemPrompt: SystemPrompt(),
		UserPrompt:   BuildUserPrompt(name, content, a.rubric),
		Temperature:  scoringTemperature,
	}

	log.Debug("requesting analysis",
		zap.String("file", file),
		zap.String("provider", a.provider.Name()),
		zap.String("model", a.provider.Model()))

	resp, err := a.provider.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("provider completion: %w", err)
	}

	parsed, err := Parse(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	score := parsed.Overall
	if !parsed.HasOverall {
		score = a.rubric.Overall(parsed.Dimensions)
	}

	result := &Result{
		File:            file,
		Name:            name,
		FileSize:        fileSize,
		Provider:        a.provider.Name(),
		Model:           a.provider.Model(),
		RunID:           uuid.NewString(),
		Score:           score,
		Dimensions:      parsed.Dimensions,
		Strengths:       parsed.Strengths,
		Weaknesses:      parsed.Weaknesses,
		Recommendations: parsed.Recommendations,
		Detailed:        parsed.Detailed,
		CreatedAt:       start.UTC(),
		DurationMs:      time.Since(start).Milliseconds(),
		TokensUsed:      resp.TokensUsed,
	}

	log.Info("analysis complete",
		zap.String("file", file),
		zap.Float64("score", result.Score),
		zap.Int64("durationMs", result.DurationMs))

	if a.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := a.cache.Put(key, string(data)); err != nil {
				log.Debug("cache write failed", zap.Error(err))
			}
		}
	}

	return result, nil
}

// Compare analyzes two files sequentially and derives the comparison.
func (a *Analyzer) Compare(ctx context.Context, fileA, contentA, fileB, contentB string) (*Comparison, error) {
	resA, err := a.Analyze(ctx, fileA, contentA)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", fileA, err)
	}
	resB, err := a.Analyze(ctx, fileB, contentB)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", fileB, err)
	}
	return Compare(resA, resB), nil
}

// projectName derives a display name for a file from its parent directory,
// mirroring how people name CLAUDE.md locations ("myproject/CLAUDE.md").
func projectName(file string) string {
	if file == "" {
		return "Unknown"
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		abs = file
	}
	parent := filepath.Base(filepath.Dir(abs))
	if parent == "." || parent == string(filepath.Separator) {
		return "Unknown"
	}
	return parent
}
