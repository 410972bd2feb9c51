package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cskiro/claude-md-bench/internal/analysis"
)

// TextWriter outputs a plain fixed-width report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, rep *Report) error {
	ew := &errWriter{w: w}
	if rep.Kind == KindComparison {
		t.writeComparison(ew, rep)
	} else {
		t.writeAudit(ew, rep)
	}
	return ew.err
}

func (t *TextWriter) writeAudit(ew *errWriter, rep *Report) {
	res := rep.Result

	ew.println("CLAUDE.md Audit Report")
	ew.println(strings.Repeat("=", 70))
	ew.println("")
	ew.printf("Generated: %s\n", rep.GeneratedAt.Format(time.RFC3339))
	ew.printf("File: %s\n", res.File)
	ew.printf("Size: %s characters\n\n", groupThousands(res.FileSize))
	ew.printf("Provider: %s (model: %s)\n\n", res.Provider, res.Model)

	ew.printf("Overall Score: %.1f/100\n\n", res.Score)

	rule(ew, "Dimension Scores")
	for _, dim := range analysis.Dimensions {
		ew.printf("%-15s %.0f/100\n", analysis.DimensionLabel(dim), dimensionScore(res, dim))
	}
	ew.println("")

	rule(ew, "Strengths")
	for _, s := range res.Strengths {
		ew.printf("  + %s\n", s)
	}
	ew.println("")

	rule(ew, "Weaknesses")
	for _, wk := range res.Weaknesses {
		ew.printf("  - %s\n", wk)
	}
	ew.println("")

	rule(ew, "Recommendations")
	for _, r := range res.Recommendations {
		ew.printf("  * %s\n", r)
	}
	ew.println("")

	if res.Detailed != "" {
		rule(ew, "Detailed Analysis")
		ew.println(res.Detailed)
	}
}

func (t *TextWriter) writeComparison(ew *errWriter, rep *Report) {
	cmp := rep.Comparison
	a, b := cmp.A, cmp.B

	ew.println("CLAUDE.md Comparison Report")
	ew.println(strings.Repeat("=", 70))
	ew.println("")
	ew.printf("Generated: %s\n\n", rep.GeneratedAt.Format(time.RFC3339))

	ew.printf("Version A: %s\n", a.File)
	ew.printf("Score: %.1f/100\n", a.Score)
	ew.printf("Size: %s chars\n\n", groupThousands(a.FileSize))

	ew.printf("Version B: %s\n", b.File)
	ew.printf("Score: %.1f/100\n", b.Score)
	ew.printf("Size: %s chars\n\n", groupThousands(b.FileSize))

	ew.printf("Winner: %s\n", winnerLabel(cmp.Winner))
	if cmp.Winner != analysis.WinnerTie {
		ew.printf("Margin: %.1f points\n", abs(cmp.Overall))
	}
	ew.println("")

	rule(ew, "Dimension Scores")
	for _, dim := range analysis.Dimensions {
		ew.printf("%-15s A: %.0f  B: %.0f\n",
			analysis.DimensionLabel(dim), dimensionScore(a, dim), dimensionScore(b, dim))
	}
	ew.println("")

	rule(ew, "Analysis Details")
	ew.println("Version A Strengths:")
	for _, s := range a.Strengths {
		ew.printf("  + %s\n", s)
	}
	ew.println("")
	ew.println("Version A Weaknesses:")
	for _, wk := range a.Weaknesses {
		ew.printf("  - %s\n", wk)
	}
	ew.println("")
	ew.println("Version B Strengths:")
	for _, s := range b.Strengths {
		ew.printf("  + %s\n", s)
	}
	ew.println("")
	ew.println("Version B Weaknesses:")
	for _, wk := range b.Weaknesses {
		ew.printf("  - %s\n", wk)
	}
}

// rule writes a section heading framed by divider lines.
func rule(ew *errWriter, heading string) {
	ew.println(strings.Repeat("-", 70))
	ew.println(heading)
	ew.println(strings.Repeat("-", 70))
	ew.println("")
}

func winnerLabel(winner string) string {
	if winner == analysis.WinnerTie {
		return "TIE"
	}
	return "Version " + winner
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
