package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/cskiro/claude-md-bench/internal/config"
	"github.com/cskiro/claude-md-bench/internal/providers"
)

// checkTimeout bounds the connectivity probe independently of the configured
// request timeout; a health check should answer fast or not at all.
const checkTimeout = 30 * time.Second

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check provider connectivity and model availability",
	Long: "Check verifies that the configured provider is reachable and that the\n" +
		"configured model is available on it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		provider, err := providers.New(cfg.Provider, cfg.Model, providers.Options{
			Host:    cfg.Host,
			Timeout: cfg.Timeout(),
		})
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
		defer cancel()

		if cfg.Host != "" {
			fmt.Fprintf(os.Stdout, "Checking %s at %s...\n", cfg.Provider, cfg.Host)
		} else {
			fmt.Fprintf(os.Stdout, "Checking %s...\n", cfg.Provider)
		}

		if err := provider.Health(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if hint := connectHint(cfg.Provider); hint != "" {
				fmt.Fprintln(os.Stderr, hint)
			}
			exitCode = ExitUnreachable
			return nil
		}
		fmt.Fprintf(os.Stdout, "%s is reachable\n", cfg.Provider)

		models, err := provider.Models(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing models: %v\n", err)
			exitCode = ExitUnreachable
			return nil
		}

		sort.Strings(models)
		found := false
		fmt.Fprintln(os.Stdout, "\nAvailable models:")
		for _, m := range models {
			marker := ""
			if m == cfg.Model {
				marker = "  (selected)"
				found = true
			}
			fmt.Fprintf(os.Stdout, "  - %s%s\n", m, marker)
		}

		if !found {
			fmt.Fprintf(os.Stderr, "\nModel %q not found on %s.\n", cfg.Model, cfg.Provider)
			if cfg.Provider == "ollama" {
				fmt.Fprintf(os.Stderr, "Pull it with: ollama pull %s\n", cfg.Model)
			}
			exitCode = ExitUnreachable
			return nil
		}

		fmt.Fprintf(os.Stdout, "\nModel %s is available.\n", cfg.Model)
		return nil
	},
}
