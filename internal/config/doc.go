// Package config loads and merges claude-md-bench configuration from
// multiple sources.
//
// Sources are merged lowest to highest: built-in defaults, then the config
// file ($XDG_CONFIG_HOME/claude-md-bench/config.json, overridable with
// CLAUDE_MD_BENCH_CONFIG or --config), then CLAUDE_MD_BENCH_* environment
// variables, then CLI flags. A flag the user set always wins.
//
// Use [Load] to obtain a merged and validated [Config], [Save] to write a
// config file, and [SetField] to update a single key.
package config
