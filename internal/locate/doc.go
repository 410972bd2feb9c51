// Package locate resolves audit targets to CLAUDE.md files.
//
// A file argument is used as-is. A directory argument is probed for
// CLAUDE.md, CLAUDE.local.md, and .claude/CLAUDE.md in that order, first
// match wins. Load additionally enforces a 10 MiB size cap and rejects
// binary content before it can reach a provider.
package locate
