// Claude-md-bench is a CLI for benchmarking and optimizing CLAUDE.md files
// with LLM providers.
//
// It scores files on five dimensions (clarity, completeness, actionability,
// standards, context), compares versions, and iteratively rewrites files
// toward higher scores, emitting reports with deterministic exit codes
// suitable for CI gating and git hooks.
//
// Usage:
//
//	claude-md-bench check                  # verify provider connectivity
//	claude-md-bench audit CLAUDE.md        # score one file
//	claude-md-bench compare old.md new.md  # pick the better of two versions
//	claude-md-bench optimize CLAUDE.md     # rewrite toward a higher score
//	claude-md-bench models                 # list available models
//	claude-md-bench hook install           # audit staged CLAUDE.md files on commit
//
// See https://github.com/cskiro/claude-md-bench for full documentation.
package main
