package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestHTMLWriter_Audit(t *testing.T) {
	var buf bytes.Buffer
	if err := (&HTMLWriter{}).Write(&buf, fixedAudit()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<title>CLAUDE.md Audit: proj</title>",
		`class="overall score-high"`,
		"82.5",
		"score-medium", // standards at 65
		"width: 85%",
		"Clear build commands",
		"No testing guidance",
		"Add a testing section",
		"Solid overall, thin on testing.",
		"claude-md-bench 1.0.0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("audit HTML missing %q", want)
		}
	}
}

func TestHTMLWriter_AuditEscapes(t *testing.T) {
	rep := fixedAudit()
	rep.Result.Strengths = []string{`Uses <script> "examples"`}

	var buf bytes.Buffer
	if err := (&HTMLWriter{}).Write(&buf, rep); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>") {
		t.Error("audit HTML contains unescaped markup from the model output")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("audit HTML missing the escaped strength text")
	}
}

func TestHTMLWriter_Comparison(t *testing.T) {
	var buf bytes.Buffer
	if err := (&HTMLWriter{}).Write(&buf, fixedComparison()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"CLAUDE.md Comparison Results",
		"Winner: Version B",
		"+8.7 points",
		"WINNER",
		`class="card winner-card"`,
		"delta-positive",
		"Version A: proj",
		"Version B: other",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("comparison HTML missing %q", want)
		}
	}
}

func TestHTMLWriter_ComparisonTie(t *testing.T) {
	rep := fixedComparison()
	rep.Comparison.Winner = "TIE"

	var buf bytes.Buffer
	if err := (&HTMLWriter{}).Write(&buf, rep); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Result: TIE") {
		t.Error("tie HTML missing TIE verdict")
	}
	if strings.Contains(out, "WINNER") {
		t.Error("tie HTML shows a winner badge")
	}
}
