package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cskiro/claude-md-bench/internal/cache"
	"github.com/cskiro/claude-md-bench/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the analysis response cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the size and age of cached results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		store, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
		if err != nil {
			return fmt.Errorf("preparing cache: %w", err)
		}
		if !store.Enabled() {
			fmt.Fprintln(os.Stdout, "Caching is disabled in the current configuration.")
			return nil
		}
		stats, err := store.GetStats()
		if err != nil {
			return fmt.Errorf("collecting cache stats: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Cache directory: %s\n", stats.Dir)
		fmt.Fprintf(os.Stdout, "Entries:         %d (%d expired)\n", stats.Entries, stats.Expired)
		fmt.Fprintf(os.Stdout, "Total size:      %d bytes\n", stats.TotalBytes)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all cached analysis results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		// Open enabled even when caching is off so stale entries can still
		// be cleaned up.
		store, err := cache.New(true, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
		if err != nil {
			return fmt.Errorf("preparing cache: %w", err)
		}
		if err := store.Clear(); err != nil {
			return fmt.Errorf("removing cached results: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Cleared analysis cache at %s\n", store.Dir())
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd)
}
