package optimize

import (
	"fmt"
	"strings"

	"github.com/cskiro/claude-md-bench/internal/analysis"
)

// maxRewriteChars caps how much of the document the rewrite prompt embeds.
const maxRewriteChars = 15000

const rewriteSystemPrompt = `You are an expert at optimizing CLAUDE.md files for AI coding assistants.

CRITICAL OUTPUT RULES:
- Output ONLY the complete, improved CLAUDE.md file content
- Start your response with the marker: <<<BEGIN_CLAUDE_MD>>>
- Then immediately output the CLAUDE.md content starting with "# CLAUDE.md"
- End your response with the marker: <<<END_CLAUDE_MD>>>
- Do NOT include any explanations, commentary, or meta-text outside the markers
- Do NOT say "Here's the improved version" or similar phrases
- Output the raw markdown file ready to save between the markers

Your task: Improve the CLAUDE.md file by:
1. Preserving all working guidance (keep what's good)
2. Strengthening areas that scored poorly in the evaluation
3. Adding concrete examples where needed
4. Maintaining the original structure and organization
5. Keeping it actionable and specific

EXAMPLE OUTPUT FORMAT:
<<<BEGIN_CLAUDE_MD>>>
# CLAUDE.md

## Project Overview
[Your improved content here]
<<<END_CLAUDE_MD>>>`

// buildRewritePrompt assembles the improvement prompt from the latest
// analysis of the document.
func buildRewritePrompt(content string, latest *analysis.Result, iteration int) string {
	runes := []rune(content)
	truncated := content
	notice := ""
	if len(runes) > maxRewriteChars {
		truncated = string(runes[:maxRewriteChars])
		notice = fmt.Sprintf("\n\n[Note: Full file is %d chars. Showing first %d for context.]\n", len(runes), maxRewriteChars)
	}

	var dims []string
	for _, dim := range analysis.Dimensions {
		if score, ok := latest.Dimensions[dim]; ok {
			dims = append(dims, fmt.Sprintf("  - %s: %.0f/100", dim, score))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# CLAUDE.md Improvement Task (Iteration %d)\n\n", iteration)

	b.WriteString("## Current CLAUDE.md\n")
	b.WriteString("```markdown\n")
	b.WriteString(truncated)
	b.WriteString("\n```")
	b.WriteString(notice)
	b.WriteString("\n\n")

	b.WriteString("## Current Performance\n")
	fmt.Fprintf(&b, "**Overall Score**: %.1f/100\n\n", latest.Score)
	b.WriteString("**Dimension Scores**:\n")
	b.WriteString(orPlaceholder(strings.Join(dims, "\n"), "  No dimension scores available"))
	b.WriteString("\n\n")

	b.WriteString("## Issues Identified\n\n")
	b.WriteString("**Weaknesses**:\n")
	b.WriteString(orPlaceholder(joinBullets(latest.Weaknesses), "  No specific weaknesses identified"))
	b.WriteString("\n\n")
	b.WriteString("**Recommendations**:\n")
	b.WriteString(orPlaceholder(joinBullets(latest.Recommendations), "  No specific recommendations"))
	b.WriteString("\n\n")

	b.WriteString("## Your Task\n\n")
	b.WriteString("Improve this CLAUDE.md file to address the weaknesses and recommendations above.\n\n")
	b.WriteString("**Focus Areas** (prioritize low-scoring dimensions):\n")
	b.WriteString("1. If Clarity is low: Make instructions more explicit and specific\n")
	b.WriteString("2. If Completeness is low: Add missing essential sections\n")
	b.WriteString("3. If Actionability is low: Add concrete examples and commands\n")
	b.WriteString("4. If Standards is low: Strengthen TDD, type safety, quality check requirements\n")
	b.WriteString("5. If Context is low: Add more project structure and architecture info\n\n")
	b.WriteString("**CRITICAL: Preservation Requirements**:\n")
	b.WriteString("- **PRESERVE ALL WORKING CONTENT**: Do NOT remove sections that aren't mentioned in weaknesses\n")
	b.WriteString("- **MAINTAIN OR INCREASE LENGTH**: Don't over-simplify\n")
	b.WriteString("- **KEEP ALL SECTIONS**: Preserve existing structure\n")
	b.WriteString("- **ADD, DON'T REPLACE**: Strengthen weak areas by adding, not removing\n")
	b.WriteString("- **TARGET ADDITIONS**: Only modify sections related to identified weaknesses\n\n")
	b.WriteString("**Output Format**:\n")
	b.WriteString("Provide ONLY the improved CLAUDE.md content between the markers.\n")
	b.WriteString("Do not include explanations or commentary.\n")

	return b.String()
}

func joinBullets(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "  - "+item)
	}
	return strings.Join(lines, "\n")
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}
