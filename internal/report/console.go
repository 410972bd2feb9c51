package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/cskiro/claude-md-bench/internal/analysis"
)

// Semantic colors shared with the HTML palette.
var (
	successColor = lipgloss.Color("#8BC34A")
	warningColor = lipgloss.Color("#FFC107")
	dangerColor  = lipgloss.Color("#e53935")
	infoColor    = lipgloss.Color("#2196F3")

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(infoColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(infoColor).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Foreground(successColor)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor)
	dangerStyle  = lipgloss.NewStyle().Foreground(dangerColor)
	infoStyle    = lipgloss.NewStyle().Foreground(infoColor)
	versionStyle = lipgloss.NewStyle().Bold(true).Foreground(infoColor)
)

// Console renders a report for the terminal. With NoColor set it emits the
// same layout without any styling and without glamour markdown rendering.
type Console struct {
	NoColor bool
}

func (c *Console) Write(w io.Writer, rep *Report) error {
	ew := &errWriter{w: w}
	if rep.Kind == KindComparison {
		c.writeComparison(ew, rep)
	} else {
		c.writeAudit(ew, rep)
	}
	return ew.err
}

func (c *Console) writeAudit(ew *errWriter, rep *Report) {
	res := rep.Result

	ew.println("")
	c.banner(ew, fmt.Sprintf("CLAUDE.md Audit: %s", res.Name))
	ew.println("")

	ew.printf("%s %s\n",
		c.styled(headingStyle, "Overall Score:"),
		c.styled(c.scoreStyle(res.Score), fmt.Sprintf("%.1f/100", res.Score)))
	ew.println(c.styled(mutedStyle, fmt.Sprintf("File size: %s characters", groupThousands(res.FileSize))))
	if res.Cached {
		ew.println(c.styled(mutedStyle, "(served from cache)"))
	}

	ew.printf("\n%s\n", c.styled(headingStyle, "Dimension Scores"))
	for _, dim := range analysis.Dimensions {
		score := dimensionScore(res, dim)
		ew.printf("  %-15s %s\n",
			analysis.DimensionLabel(dim),
			c.styled(c.scoreStyle(score), fmt.Sprintf("%3.0f", score)))
	}

	c.findingList(ew, "Strengths:", res.Strengths, "+", successStyle)
	c.findingList(ew, "Weaknesses:", res.Weaknesses, "-", warningStyle)
	c.findingList(ew, "Recommendations:", res.Recommendations, ">", infoStyle)

	if res.Detailed != "" {
		ew.printf("\n%s\n", c.styled(headingStyle, "Detailed Analysis"))
		ew.println(c.narrative(res.Detailed))
	}
}

func (c *Console) writeComparison(ew *errWriter, rep *Report) {
	cmp := rep.Comparison
	a, b := cmp.A, cmp.B

	ew.println("")
	c.banner(ew, "CLAUDE.md Comparison Results")
	ew.println("")

	c.summaryRow(ew, "A", a, cmp.Winner == analysis.WinnerA)
	c.summaryRow(ew, "B", b, cmp.Winner == analysis.WinnerB)

	if cmp.Winner == analysis.WinnerTie {
		ew.printf("\n%s\n", c.styled(warningStyle, "Result: TIE"))
	} else {
		ew.printf("\n%s\n", c.styled(successStyle,
			fmt.Sprintf("Winner: Version %s (+%.1f points)", cmp.Winner, abs(cmp.Overall))))
	}

	ew.printf("\n%s\n", c.styled(headingStyle, "Dimension Scores"))
	ew.printf("  %-15s %7s %7s %7s\n", "Dimension", "A", "B", "Delta")
	for _, dim := range analysis.Dimensions {
		scoreA := dimensionScore(a, dim)
		scoreB := dimensionScore(b, dim)
		delta := scoreB - scoreA
		ew.printf("  %-15s %7.0f %7.0f %s\n",
			analysis.DimensionLabel(dim), scoreA, scoreB,
			c.styled(c.deltaStyle(delta), fmt.Sprintf("%7s", deltaText(delta))))
	}

	c.versionDetails(ew, "A", a)
	c.versionDetails(ew, "B", b)
}

func (c *Console) summaryRow(ew *errWriter, label string, res *analysis.Result, winner bool) {
	score := fmt.Sprintf("%.1f/100", res.Score)
	if winner {
		score = c.styled(successStyle, score)
	}
	marker := ""
	if winner {
		marker = "  (winner)"
	}
	ew.printf("  %s: %-20s %s  %s chars%s\n",
		label, res.Name, score, groupThousands(res.FileSize), marker)
}

func (c *Console) versionDetails(ew *errWriter, label string, res *analysis.Result) {
	ew.printf("\n%s\n", c.styled(versionStyle, fmt.Sprintf("Version %s: %s", label, res.Name)))
	ew.println(c.styled(successStyle, "Strengths:"))
	for _, s := range res.Strengths {
		ew.printf("  %s %s\n", c.styled(successStyle, "+"), s)
	}
	ew.println(c.styled(warningStyle, "Weaknesses:"))
	for _, w := range res.Weaknesses {
		ew.printf("  %s %s\n", c.styled(warningStyle, "-"), w)
	}
}

func (c *Console) findingList(ew *errWriter, heading string, items []string, bullet string, style lipgloss.Style) {
	if len(items) == 0 {
		return
	}
	ew.printf("\n%s\n", c.styled(style, heading))
	for _, item := range items {
		ew.printf("  %s %s\n", c.styled(style, bullet), item)
	}
}

func (c *Console) banner(ew *errWriter, title string) {
	if c.NoColor {
		ew.println(title)
		ew.println(strings.Repeat("─", len([]rune(title))))
		return
	}
	ew.println(bannerStyle.Render(title))
}

// narrative renders markdown for the terminal; plain text when color is off
// or rendering fails.
func (c *Console) narrative(markdown string) string {
	if c.NoColor {
		return markdown
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return markdown
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(out, "\n")
}

func (c *Console) styled(style lipgloss.Style, text string) string {
	if c.NoColor {
		return text
	}
	return style.Render(text)
}

func (c *Console) scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= scoreHighThreshold:
		return successStyle
	case score >= scoreMediumThreshold:
		return warningStyle
	default:
		return dangerStyle
	}
}

func (c *Console) deltaStyle(delta float64) lipgloss.Style {
	switch {
	case delta > 0:
		return successStyle
	case delta < 0:
		return dangerStyle
	default:
		return mutedStyle
	}
}

func deltaText(delta float64) string {
	if delta > 0 {
		return fmt.Sprintf("+%.0f", delta)
	}
	return fmt.Sprintf("%.0f", delta)
}
