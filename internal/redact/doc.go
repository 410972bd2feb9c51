// Package redact removes secrets from CLAUDE.md content before it is sent to
// any model provider or written to the response cache.
//
// Detection is regex based and aims at the shapes that show up in real
// CLAUDE.md files: API keys and password assignments, JWTs, private key
// blocks, AWS access key IDs and secret access keys, bearer tokens, and the
// token formats of Anthropic, OpenAI, GitHub, and Slack. Each match is
// replaced with a [REDACTED:<kind>] placeholder so report readers can still
// tell what category of secret was present.
//
// Local report files receive the original content; redaction applies only to
// data leaving the process.
package redact
