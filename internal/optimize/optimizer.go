package optimize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cskiro/claude-md-bench/internal/analysis"
	"github.com/cskiro/claude-md-bench/internal/logging"
	"github.com/cskiro/claude-md-bench/internal/providers"
)

const (
	// rewriteTemperature runs hotter than scoring; rewrites need variation.
	rewriteTemperature = 0.5

	minIterations = 1
	maxIterations = 10

	beginMarker = "<<<BEGIN_CLAUDE_MD>>>"
	endMarker   = "<<<END_CLAUDE_MD>>>"
)

// Step records one optimization iteration.
type Step struct {
	Iteration int
	Score     float64
	Previous  float64
	Delta     float64
}

// Outcome holds the full optimization trajectory. BestContent is the
// highest-scoring document seen, the baseline included, and is what gets
// written to OutputPath.
type Outcome struct {
	File         string
	OutputPath   string
	InitialScore float64
	BestScore    float64
	Improvement  float64
	BestContent  string
	Steps        []Step
}

// Optimizer iteratively rewrites a CLAUDE.md file using analysis feedback.
type Optimizer struct {
	provider providers.Completer
	analyzer *analysis.Analyzer
}

// New creates an Optimizer that scores with analyzer and rewrites through
// provider.
func New(provider providers.Completer, analyzer *analysis.Analyzer) *Optimizer {
	return &Optimizer{provider: provider, analyzer: analyzer}
}

// Run drives the loop: analyze, rewrite from the feedback, re-analyze.
// Each iteration continues from the latest rewrite even when its score
// dropped. Iterations clamp to [1,10]. The best content is written to
// outputPath, defaulting to CLAUDE.optimized.md beside the input.
func (o *Optimizer) Run(ctx context.Context, file, content string, iterations int, outputPath string) (*Outcome, error) {
	log := logging.FromContext(ctx)

	if iterations < minIterations {
		iterations = minIterations
	}
	if iterations > maxIterations {
		iterations = maxIterations
	}

	baseline, err := o.analyzer.Analyze(ctx, file, content)
	if err != nil {
		return nil, fmt.Errorf("baseline analysis: %w", err)
	}
	log.Info("baseline score", zap.String("file", file), zap.Float64("score", baseline.Score))

	outcome := &Outcome{
		File:         file,
		InitialScore: baseline.Score,
		BestScore:    baseline.Score,
		BestContent:  content,
	}

	currentContent := content
	current := baseline

	for i := 1; i <= iterations; i++ {
		improved, err := o.rewrite(ctx, currentContent, current, i)
		if err != nil {
			return nil, fmt.Errorf("iteration %d rewrite: %w", i, err)
		}
		if improved == "" {
			// A completion that extracted to nothing cannot be the next
			// document; stay on the current one.
			improved = currentContent
		}

		result, err := o.analyzer.Analyze(ctx, file, improved)
		if err != nil {
			return nil, fmt.Errorf("iteration %d analysis: %w", i, err)
		}

		step := Step{
			Iteration: i,
			Score:     result.Score,
			Previous:  current.Score,
			Delta:     result.Score - current.Score,
		}
		outcome.Steps = append(outcome.Steps, step)
		log.Info("optimization iteration",
			zap.Int("iteration", i),
			zap.Float64("score", result.Score),
			zap.Float64("delta", step.Delta))

		if result.Score > outcome.BestScore {
			outcome.BestScore = result.Score
			outcome.BestContent = improved
		}

		// Always continue from the latest rewrite, even on a score drop.
		currentContent = improved
		current = result
	}

	outcome.Improvement = outcome.BestScore - outcome.InitialScore

	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(file), "CLAUDE.optimized.md")
	}
	if err := os.WriteFile(outputPath, []byte(outcome.BestContent), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outputPath, err)
	}
	outcome.OutputPath = outputPath

	log.Info("optimization complete",
		zap.Float64("initial", outcome.InitialScore),
		zap.Float64("best", outcome.BestScore),
		zap.String("output", outputPath))

	return outcome, nil
}

func (o *Optimizer) rewrite(ctx context.Context, content string, latest *analysis.Result, iteration int) (string, error) {
	req := providers.CompleteRequest{
		SystemPrompt: rewriteSystemPrompt,
		UserPrompt:   buildRewritePrompt(content, latest, iteration),
		Temperature:  rewriteTemperature,
	}
	resp, err := o.provider.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	return extractDocument(resp.Content), nil
}

// extractDocument pulls the rewritten file out of a completion. Models wrap
// the document in the requested markers most of the time; fenced blocks and
// the raw completion are the fallbacks.
func extractDocument(raw string) string {
	if begin := strings.Index(raw, beginMarker); begin >= 0 {
		rest := raw[begin+len(beginMarker):]
		if end := strings.Index(rest, endMarker); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
	}

	if doc, ok := fencedBlock(raw, "```markdown"); ok {
		return doc
	}
	if doc, ok := fencedBlock(raw, "```"); ok {
		return doc
	}

	return strings.TrimSpace(raw)
}

// fencedBlock returns the content of the first fence opened by open. The
// opening line is discarded through its newline.
func fencedBlock(raw, open string) (string, bool) {
	start := strings.Index(raw, open)
	if start < 0 {
		return "", false
	}
	rest := raw[start+len(open):]
	nl := strings.Index(rest, "\n")
	if nl < 0 {
		return "", false
	}
	rest = rest[nl+1:]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}
