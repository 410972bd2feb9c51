// Package optimize iteratively rewrites CLAUDE.md files using scored
// analysis feedback.
//
// Each round feeds the latest document and its dimension scores,
// weaknesses, and recommendations back to the model and asks for an
// improved version wrapped in sentinel markers. The loop always continues
// from the newest rewrite, even when its score regressed, and the
// best-scoring document seen across all rounds (the starting document
// included) is what gets written out.
package optimize
