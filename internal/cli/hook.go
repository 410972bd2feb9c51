package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const (
	hookMarkerStart = "# >>> claude-md-bench pre-commit hook >>>"
	hookMarkerEnd   = "# <<< claude-md-bench pre-commit hook <<<"
)

// hookScriptFormat is the managed pre-commit section. The staged-file filter
// matches the same candidate names the locate package probes. Exit code 2
// (score below minimum) blocks the commit; any other failure warns and lets
// the commit through so a stopped Ollama never wedges a repository.
const hookScriptFormat = hookMarkerStart + `
STAGED=$(git diff --cached --name-only --diff-filter=ACM | grep -E '(^|/)(CLAUDE\.md|CLAUDE\.local\.md|\.claude/CLAUDE\.md)$')
for f in $STAGED; do
  claude-md-bench audit "$f" --min-score %g --format %s --no-color
  BENCH_EXIT=$?
  if [ $BENCH_EXIT -eq 2 ]; then
    echo "claude-md-bench: $f scored below the minimum, commit blocked"
    exit 1
  elif [ $BENCH_EXIT -ne 0 ]; then
    echo "claude-md-bench: audit failed with exit $BENCH_EXIT, allowing commit"
  fi
done
` + hookMarkerEnd + "\n"

var (
	hookMinScore float64
	hookFormat   string
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Install or remove the pre-commit audit hook",
}

// hookFail reports a hook management failure on stderr and flags the exit
// code. It returns nil so cobra does not print the error a second time.
func hookFail(err error) error {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exitCode = ExitError
	return nil
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install a pre-commit hook auditing staged CLAUDE.md files",
	RunE: func(cmd *cobra.Command, args []string) error {
		hooksDir, err := gitHooksDir()
		if err != nil {
			return hookFail(err)
		}
		hookPath := filepath.Join(hooksDir, "pre-commit")
		section := generateHookScript(hookMinScore, hookFormat)

		current, err := os.ReadFile(hookPath)
		if err != nil && !os.IsNotExist(err) {
			return hookFail(fmt.Errorf("reading %s: %w", hookPath, err))
		}

		script := "#!/bin/sh\n" + section
		if len(current) > 0 {
			script = replaceBenchSection(string(current), section)
		}

		if err := os.MkdirAll(hooksDir, 0o755); err != nil {
			return hookFail(fmt.Errorf("creating %s: %w", hooksDir, err))
		}
		if err := os.WriteFile(hookPath, []byte(script), 0o755); err != nil {
			return hookFail(fmt.Errorf("installing hook: %w", err))
		}

		fmt.Fprintf(os.Stdout, "Installed claude-md-bench pre-commit hook at %s\n", hookPath)
		return nil
	},
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the claude-md-bench pre-commit hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		hooksDir, err := gitHooksDir()
		if err != nil {
			return hookFail(err)
		}
		hookPath := filepath.Join(hooksDir, "pre-commit")

		current, err := os.ReadFile(hookPath)
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "No pre-commit hook is installed.")
			return nil
		}
		if err != nil {
			return hookFail(fmt.Errorf("reading %s: %w", hookPath, err))
		}

		remaining := removeBenchSection(string(current))
		if s := strings.TrimSpace(remaining); s == "" || s == "#!/bin/sh" || s == "#!/bin/bash" {
			// Nothing but the shebang left, drop the hook file entirely.
			if err := os.Remove(hookPath); err != nil {
				return hookFail(fmt.Errorf("removing hook: %w", err))
			}
			fmt.Fprintf(os.Stdout, "Removed claude-md-bench pre-commit hook at %s\n", hookPath)
			return nil
		}

		if err := os.WriteFile(hookPath, []byte(remaining), 0o755); err != nil {
			return hookFail(fmt.Errorf("updating hook: %w", err))
		}
		fmt.Fprintf(os.Stdout, "Removed claude-md-bench section from %s\n", hookPath)
		return nil
	},
}

// gitHooksDir resolves the repository hook directory through git itself,
// which stays correct in worktrees and with a relocated GIT_DIR.
func gitHooksDir() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--git-dir").Output()
	if err != nil {
		return "", fmt.Errorf("not inside a git repository: %w", err)
	}
	return filepath.Join(strings.TrimSpace(string(out)), "hooks"), nil
}

func generateHookScript(minScore float64, format string) string {
	return fmt.Sprintf(hookScriptFormat, minScore, format)
}

// markerSpan locates the managed section, returning the byte range covering
// both markers.
func markerSpan(script string) (start, end int, ok bool) {
	start = strings.Index(script, hookMarkerStart)
	stop := strings.Index(script, hookMarkerEnd)
	if start == -1 || stop == -1 {
		return 0, 0, false
	}
	return start, stop + len(hookMarkerEnd), true
}

// replaceBenchSection swaps the managed section in script for section,
// appending it when no markers are present.
func replaceBenchSection(script, section string) string {
	start, end, ok := markerSpan(script)
	if !ok {
		if !strings.HasSuffix(script, "\n") {
			script += "\n"
		}
		return script + section
	}
	return script[:start] + section + strings.TrimPrefix(script[end:], "\n")
}

// removeBenchSection strips the managed section, leaving the rest of the
// hook untouched.
func removeBenchSection(script string) string {
	start, end, ok := markerSpan(script)
	if !ok {
		return script
	}
	return script[:start] + strings.TrimPrefix(script[end:], "\n")
}

func init() {
	hookCmd.AddCommand(hookInstallCmd, hookUninstallCmd)
	hookInstallCmd.Flags().Float64Var(&hookMinScore, "min-score", 70, "Minimum score below which the commit is blocked")
	hookInstallCmd.Flags().StringVar(&hookFormat, "format", "text", "Report format used by the hook")
}
