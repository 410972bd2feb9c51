package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cskiro/claude-md-bench/internal/logging"
)

// Build metadata, overridden at release time via
// -ldflags "-X github.com/cskiro/claude-md-bench/internal/cli.version=...".
var (
	version = "0.1.0"
	commit  = "none"
	date    = "unknown"
)

// Exit codes, stable for CI gating and the pre-commit hook.
const (
	ExitSuccess       = 0
	ExitError         = 1
	ExitBelowMinScore = 2
	ExitUnreachable   = 3
	ExitMalformed     = 4
)

// exitCode carries the code a handler wants the process to exit with.
// Handlers set it instead of calling os.Exit so deferred cleanup still runs.
var exitCode = ExitSuccess

// Persistent flags shared by all commands.
var (
	flagProvider string
	flagModel    string
	flagHost     string
	flagTimeout  int
	flagFormat   string
	flagOutDir   string
	flagNoCache  bool
	flagNoColor  bool
	flagVerbose  bool
	flagConfig   string
)

// log is the process logger, built in PersistentPreRunE and synced after the
// command finishes.
var log *zap.Logger

var rootCmd = &cobra.Command{
	Use:     "claude-md-bench",
	Short:   "Benchmark and optimize CLAUDE.md files",
	Long:    "claude-md-bench scores CLAUDE.md files with an LLM, compares versions, and iteratively rewrites them toward higher scores.",
	Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(flagVerbose)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		log = l
		cmd.SetContext(logging.WithContext(cmd.Context(), log))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// Run dispatches to the subcommands and returns the process exit code.
func Run() int {
	rootCmd.AddCommand(
		checkCmd, auditCmd, compareCmd, optimizeCmd,
		modelsCmd, configCmd, cacheCmd, hookCmd, versionCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		// cobra has printed the error already
		return ExitError
	}

	return exitCode
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagProvider, "provider", "", "LLM provider (ollama, lmstudio, anthropic, gemini)")
	pf.StringVar(&flagModel, "model", "", "Model name")
	pf.StringVar(&flagHost, "host", "", "Provider host URL (local providers)")
	pf.IntVar(&flagTimeout, "timeout", 0, "Request timeout in seconds")
	pf.StringVar(&flagFormat, "format", "", "Report file format (text, html, json, sarif, both)")
	pf.StringVar(&flagOutDir, "out-dir", "", "Directory for saved reports")
	pf.BoolVar(&flagNoCache, "no-cache", false, "Bypass the response cache")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	pf.StringVar(&flagConfig, "config", "", "Config file path")
}

// buildOverrides collects set flags into a config override map. Unset flags
// stay out of the map so file and environment values survive the merge.
func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagConfig != "" {
		m["config"] = flagConfig
	}
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagHost != "" {
		m["host"] = flagHost
	}
	if flagTimeout > 0 {
		m["timeout"] = strconv.Itoa(flagTimeout)
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagOutDir != "" {
		m["outDir"] = flagOutDir
	}
	if flagNoCache {
		m["noCache"] = "true"
	}
	if flagMinScore > 0 {
		m["minScore"] = strconv.FormatFloat(flagMinScore, 'f', -1, 64)
	}
	if flagRubric != "" {
		m["rubricFile"] = flagRubric
	}
	if flagIterations > 0 {
		m["iterations"] = strconv.Itoa(flagIterations)
	}
	return m
}

// plainOutput reports whether console styling should be suppressed: either
// the user asked for it or stdout is not a terminal.
func plainOutput() bool {
	if flagNoColor {
		return true
	}
	return !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print claude-md-bench version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "claude-md-bench version %s (commit %s, built %s)\n", version, commit, date)
	},
}
