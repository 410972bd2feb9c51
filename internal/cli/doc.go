// Package cli wires together the Cobra command tree for the claude-md-bench binary.
//
// It defines the root command and all subcommands (check, audit, compare,
// optimize, models, config, cache, hook, version), binds flags, merges
// configuration, invokes the analyzer and optimizer, and returns deterministic
// exit codes for CI gating.
package cli
