// Package logging constructs the zap logger used across the claude-md-bench
// binary and carries it through context.Context.
//
// The CLI builds one logger at startup (console encoder to stderr so report
// output on stdout stays machine-readable) and stores it in the command
// context with [WithContext]. Library packages retrieve it with [FromContext],
// which returns a no-op logger when none is present, so they never need nil
// checks.
package logging
