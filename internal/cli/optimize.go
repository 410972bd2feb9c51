package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cskiro/claude-md-bench/internal/config"
	"github.com/cskiro/claude-md-bench/internal/locate"
	"github.com/cskiro/claude-md-bench/internal/optimize"
)

var (
	flagIterations int
	flagOutput     string
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize <path>",
	Short: "Iteratively rewrite a CLAUDE.md file toward a higher score",
	Long: "Optimize runs an analyze-rewrite loop: each iteration feeds the current\n" +
		"content and its scores back to the model, extracts the improved document,\n" +
		"and re-scores it. The best-scoring version is written next to the input\n" +
		"as CLAUDE.optimized.md unless --output says otherwise.",
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

		provider, analyzer, err := newAnalyzer(cfg)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Optimizing %s (%d iterations, model %s)\n", file.Path, cfg.Iterations, cfg.Model)

		opt := optimize.New(provider, analyzer)
		outcome, err := opt.Run(cmd.Context(), file.Path, file.Content, cfg.Iterations, flagOutput)
		if err != nil {
			reportRunError(err, cfg)
			return nil
		}

		printOutcome(outcome, len(file.Content))
		return nil
	},
}

func printOutcome(outcome *optimize.Outcome, originalSize int) {
	fmt.Fprintln(os.Stdout, "\nOptimization complete")
	fmt.Fprintf(os.Stdout, "  Initial score: %.1f/100\n", outcome.InitialScore)
	fmt.Fprintf(os.Stdout, "  Best score:    %.1f/100\n", outcome.BestScore)
	fmt.Fprintf(os.Stdout, "  Improvement:   %+.1f points\n", outcome.Improvement)

	fmt.Fprintln(os.Stdout, "\nIteration progress:")
	fmt.Fprintf(os.Stdout, "  %9s  %7s  %7s\n", "Iteration", "Score", "Delta")
	for _, step := range outcome.Steps {
		marker := ""
		if step.Score == outcome.BestScore {
			marker = "  best"
		}
		fmt.Fprintf(os.Stdout, "  %9d  %7.1f  %+7.1f%s\n", step.Iteration, step.Score, step.Delta, marker)
	}

	fmt.Fprintf(os.Stdout, "\nOptimized file written to %s\n", outcome.OutputPath)

	finalSize := len(outcome.BestContent)
	if originalSize > 0 {
		pct := float64(finalSize-originalSize) / float64(originalSize) * 100
		fmt.Fprintf(os.Stdout, "Size: %d -> %d chars (%+.1f%%)\n", originalSize, finalSize, pct)
	}
}

func init() {
	optimizeCmd.Flags().IntVar(&flagIterations, "iterations", 0, "Number of optimization iterations, 1-10 (default 3)")
	optimizeCmd.Flags().StringVar(&flagOutput, "output", "", "Output path for the optimized file")
}
