package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cskiro/claude-md-bench/internal/analysis"
	"github.com/cskiro/claude-md-bench/internal/cache"
	"github.com/cskiro/claude-md-bench/internal/config"
	"github.com/cskiro/claude-md-bench/internal/locate"
	"github.com/cskiro/claude-md-bench/internal/providers"
	"github.com/cskiro/claude-md-bench/internal/report"
)

// Scoring flags shared by audit and compare.
var (
	flagMinScore float64
	flagRubric   string
)

func addScoringFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&flagMinScore, "min-score", 0, "Exit 2 when the score falls below this threshold (0-100)")
	cmd.Flags().StringVar(&flagRubric, "rubric", "", "Rubric YAML file adjusting dimension weights and focus areas")
}

var auditCmd = &cobra.Command{
	Use:   "audit <path>",
	Short: "Audit a CLAUDE.md file for quality and completeness",
	Long: "Audit scores one CLAUDE.md file on five dimensions (clarity, completeness,\n" +
		"actionability, standards, context), prints the result, and saves report\n" +
		"files. <path> may be a directory containing a CLAUDE.md.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		file, err := locate.Load(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitError
			return nil
		}

		_, analyzer, err := newAnalyzer(cfg)
		if err != nil {
			return err
		}

		result, err := analyzer.Analyze(cmd.Context(), file.Path, file.Content)
		if err != nil {
			reportRunError(err, cfg)
			return nil
		}

		rep := report.NewAudit(result, version)
		if err := writeReports(rep, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing reports: %v\n", err)
			exitCode = ExitError
			return nil
		}

		if cfg.MinScore > 0 && result.Score < cfg.MinScore {
			fmt.Fprintf(os.Stderr, "Score %.1f is below the minimum score %.1f\n", result.Score, cfg.MinScore)
			exitCode = ExitBelowMinScore
		}
		return nil
	},
}

// newAnalyzer builds the provider and analyzer a scoring command needs from
// the effective config.
func newAnalyzer(cfg config.Config) (providers.Completer, *analysis.Analyzer, error) {
	provider, err := providers.New(cfg.Provider, cfg.Model, providers.Options{
		Host:    cfg.Host,
		Timeout: cfg.Timeout(),
	})
	if err != nil {
		return nil, nil, err
	}

	rubric, err := analysis.LoadRubric(cfg.RubricFile)
	if err != nil {
		return nil, nil, err
	}

	c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache: %w", err)
	}

	analyzer := analysis.New(provider, analysis.Options{
		Rubric: rubric,
		Cache:  c,
		Redact: cfg.Privacy.RedactSecrets,
	})
	return provider, analyzer, nil
}

// reportRunError prints an analysis or optimization error and maps it to an
// exit code.
func reportRunError(err error, cfg config.Config) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	switch {
	case providers.IsUnreachable(err):
		if hint := connectHint(cfg.Provider); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		exitCode = ExitUnreachable
	case errors.Is(err, analysis.ErrMalformed):
		exitCode = ExitMalformed
	default:
		exitCode = ExitError
	}
}

// connectHint returns a recovery hint for unreachable local providers.
func connectHint(provider string) string {
	switch provider {
	case "ollama":
		return "Ensure Ollama is running: ollama serve"
	case "lmstudio":
		return "Ensure the LM Studio local server is running"
	}
	return ""
}

// writeReports prints the console rendering and saves report files, listing
// the saved paths afterward.
func writeReports(rep *report.Report, cfg config.Config) error {
	console := &report.Console{NoColor: plainOutput()}
	if err := console.Write(os.Stdout, rep); err != nil {
		return err
	}

	dir, err := config.ReportsDir(cfg)
	if err != nil {
		return err
	}
	paths, err := report.WriteFiles(rep, dir, cfg.Format)
	if err != nil {
		return err
	}

	if len(paths) > 0 {
		fmt.Fprintln(os.Stdout, "\nReports saved:")
		for _, p := range paths {
			fmt.Fprintf(os.Stdout, "  %s\n", p)
			if filepath.Ext(p) == ".html" {
				fmt.Fprintf(os.Stdout, "  View in browser: file://%s\n", p)
			}
		}
	}
	return nil
}

func init() {
	addScoringFlags(auditCmd)
}
