// Package report renders analysis results for people and machines.
//
// A Report wraps either one analysis result (audit) or a pair with deltas
// (comparison). Writers share the envelope: Console for the terminal
// (lipgloss styling, glamour markdown, both optional via NoColor), plus
// file writers for text, HTML (embedded templates), JSON, and SARIF 2.1.0.
// WriteFiles places timestamped files in the reports directory, expanding
// the "both" format to text plus HTML.
//
// Score styling uses two thresholds everywhere: 70 and above is high,
// 50 and above is medium, below that is low.
package report
