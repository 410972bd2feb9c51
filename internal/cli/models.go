package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cskiro/claude-md-bench/internal/config"
	"github.com/cskiro/claude-md-bench/internal/providers"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available on the configured provider",
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

		models, err := provider.Models(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if hint := connectHint(cfg.Provider); hint != "" {
				fmt.Fprintln(os.Stderr, hint)
			}
			exitCode = ExitUnreachable
			return nil
		}

		if len(models) == 0 {
			fmt.Fprintf(os.Stdout, "No models found on %s.\n", cfg.Provider)
			if cfg.Provider == "ollama" {
				fmt.Fprintf(os.Stdout, "Pull one with: ollama pull %s\n", cfg.Model)
			}
			return nil
		}

		sort.Strings(models)
		fmt.Fprintf(os.Stdout, "Models on %s:\n", cfg.Provider)
		for _, m := range models {
			fmt.Fprintf(os.Stdout, "  %s\n", m)
		}
		fmt.Fprintf(os.Stdout, "\n%d models available\n", len(models))
		return nil
	},
}
