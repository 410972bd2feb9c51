package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cskiro/claude-md-bench/internal/config"
	"github.com/cskiro/claude-md-bench/internal/locate"
	"github.com/cskiro/claude-md-bench/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare <fileA> <fileB>",
	Short: "Compare two CLAUDE.md files and determine which is better",
	Long: "Compare analyzes both files on the five scoring dimensions, computes\n" +
		"per-dimension deltas, and declares a winner or a tie.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		fileA, err := locate.Load(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitError
			return nil
		}
		fileB, err := locate.Load(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitError
			return nil
		}

		_, analyzer, err := newAnalyzer(cfg)
		if err != nil {
			return err
		}

		cmp, err := analyzer.Compare(cmd.Context(), fileA.Path, fileA.Content, fileB.Path, fileB.Content)
		if err != nil {
			reportRunError(err, cfg)
			return nil
		}

		rep := report.NewComparison(cmp, version)
		if err := writeReports(rep, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing reports: %v\n", err)
			exitCode = ExitError
			return nil
		}

		if cfg.MinScore > 0 {
			low := cmp.A
			if cmp.B.Score < low.Score {
				low = cmp.B
			}
			if low.Score < cfg.MinScore {
				fmt.Fprintf(os.Stderr, "%s scored %.1f, below the minimum score %.1f\n", low.Name, low.Score, cfg.MinScore)
				exitCode = ExitBelowMinScore
			}
		}
		return nil
	},
}

func init() {
	addScoringFlags(compareCmd)
}
