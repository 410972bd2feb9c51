// Package cache provides a file-based cache for parsed analysis results.
//
// Entries are keyed by a SHA-256 hash of the provider name, model, rubric
// hash, and redacted file content, so re-auditing an unchanged CLAUDE.md with
// the same model is free. Each entry stores the marshaled analysis result
// with its creation time and an absolute expiry computed from the configured
// TTL. Expired entries are deleted on read and reported by cache stats.
//
// The default cache directory is $XDG_CACHE_HOME/claude-md-bench (or the
// OS-appropriate equivalent). All payloads stored in the cache have already
// been through secret redaction.
package cache
