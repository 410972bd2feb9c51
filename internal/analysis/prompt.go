package analysis

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert at evaluating CLAUDE.md files for AI coding assistants.

A good CLAUDE.md file should:
1. **Be Clear & Specific**: Explicit commands, patterns, and examples
2. **Cover Key Areas**: Testing, quality checks, architecture, common pitfalls
3. **Be Actionable**: Concrete instructions, not vague guidelines
4. **Include Standards**: TDD workflow, type safety, code quality requirements
5. **Provide Context**: Project structure, common commands, troubleshooting

Evaluate files on these dimensions and provide constructive feedback.`

// maxContentChars caps how much of the file is embedded in the prompt so
// small local models keep context room for the response.
const maxContentChars = 4000

// SystemPrompt returns the system prompt for scoring.
func SystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt constructs the scoring prompt for one file. Content beyond
// maxContentChars is cut with an explicit marker so the model knows it saw a
// prefix. A rubric adds its focus and weighting instructions between the task
// and the response format.
func BuildUserPrompt(projectName, content string, rubric *Rubric) string {
	runes := []rune(content)
	charCount := len(runes)
	lineCount := strings.Count(content, "\n") + 1

	truncated := content
	if charCount > maxContentChars {
		truncated = string(runes[:maxContentChars]) +
			fmt.Sprintf("\n\n[... truncated, %d more chars ...]", charCount-maxContentChars)
	}

	var b strings.Builder

	b.WriteString("# CLAUDE.md File Analysis\n\n")
	b.WriteString("## Project Context\n")
	fmt.Fprintf(&b, "**Project**: %s\n", projectName)
	fmt.Fprintf(&b, "**File Size**: %d characters, %d lines\n\n", charCount, lineCount)

	b.WriteString("## File Content\n```markdown\n")
	b.WriteString(truncated)
	b.WriteString("\n```\n\n")

	b.WriteString(`## Your Task

Analyze this CLAUDE.md file and provide scores (0-100) for:

1. **Clarity** (0-100): Are instructions clear and specific?
2. **Completeness** (0-100): Covers all essential areas?
3. **Actionability** (0-100): Provides concrete, executable guidance?
4. **Standards** (0-100): Enforces quality standards (TDD, types, testing)?
5. **Context** (0-100): Adequate project context and structure?

Then provide:
- **Overall Score** (0-100): Weighted average
- **Strengths**: What this file does well (3-5 points)
- **Weaknesses**: What could be improved (3-5 points)
- **Recommendations**: Specific improvements (3-5 points)
`)

	if section := rubric.PromptSection(); section != "" {
		b.WriteString(section)
	}

	b.WriteString(`
Format your response as:

CLARITY: <score 0-100>
COMPLETENESS: <score 0-100>
ACTIONABILITY: <score 0-100>
STANDARDS: <score 0-100>
CONTEXT: <score 0-100>
OVERALL: <score 0-100>

STRENGTHS:
- <strength 1>
- <strength 2>
- <strength 3>

WEAKNESSES:
- <weakness 1>
- <weakness 2>
- <weakness 3>

RECOMMENDATIONS:
- <recommendation 1>
- <recommendation 2>
- <recommendation 3>

DETAILED_ANALYSIS:
<Your detailed analysis here>
`)

	return b.String()
}
