// Package analysis scores CLAUDE.md files by prompting an LLM provider and
// parsing the completion into structured results.
//
// Analyzer.Analyze drives one file end to end: redact, consult the response
// cache, build the scoring prompt, call the provider, and extract the five
// dimension scores, finding lists, and narrative from the completion. Parsing
// (parse.go) is best effort and tolerates the formatting drift of small local
// models; it fails only when no score of any kind was found.
//
// Compare (compare.go) derives per-dimension deltas and a winner from two
// results, calling overall differences under half a point a tie.
//
// Rubric files (rubric.go) reweight dimensions for the overall score and add
// focus areas to the prompt.
package analysis
