package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cskiro/claude-md-bench/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and manage claude-md-bench configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(os.Stderr, "A config file already exists at %s\n", path)
			return nil
		}
		if err := config.Save(config.Default()); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Wrote default config to %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a single config field",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		cfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			// First set with no config file: seed every other field from
			// defaults so the saved file stands on its own.
			cfg = config.Default()
		}

		if err := config.SetField(&cfg, key, value); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("updating config: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Set %s = %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configSetCmd)
}
