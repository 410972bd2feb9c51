package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsole_AuditPlain(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{NoColor: true}
	if err := c.Write(&buf, fixedAudit()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"CLAUDE.md Audit: proj",
		"Overall Score: 82.5/100",
		"File size: 1,234 characters",
		"Dimension Scores",
		"Clarity",
		"Strengths:",
		"+ Clear build commands",
		"Weaknesses:",
		"- No testing guidance",
		"Recommendations:",
		"> Add a testing section",
		"Detailed Analysis",
		"Solid overall, thin on testing.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("plain audit output missing %q", want)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("plain output contains ANSI escapes")
	}
}

func TestConsole_AuditCachedMarker(t *testing.T) {
	rep := fixedAudit()
	rep.Result.Cached = true

	var buf bytes.Buffer
	if err := (&Console{NoColor: true}).Write(&buf, rep); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(buf.String(), "(served from cache)") {
		t.Error("cached result output missing the cache marker")
	}
}

func TestConsole_ComparisonPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := (&Console{NoColor: true}).Write(&buf, fixedComparison()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"CLAUDE.md Comparison Results",
		"A: proj",
		"B: other",
		"(winner)",
		"Winner: Version B (+8.7 points)",
		"Dimension Scores",
		"Delta",
		"+10",
		"Version A: proj",
		"Version B: other",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("plain comparison output missing %q", want)
		}
	}
}

func TestConsole_ComparisonTie(t *testing.T) {
	rep := fixedComparison()
	rep.Comparison.Winner = "TIE"
	rep.Comparison.Overall = 0.2

	var buf bytes.Buffer
	if err := (&Console{NoColor: true}).Write(&buf, rep); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Result: TIE") {
		t.Error("tie output missing TIE verdict")
	}
	if strings.Contains(out, "(winner)") {
		t.Error("tie output marks a winner")
	}
}

func TestConsole_StyledSmoke(t *testing.T) {
	rep := fixedAudit()
	rep.Result.Detailed = ""

	var buf bytes.Buffer
	if err := (&Console{}).Write(&buf, rep); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "CLAUDE.md Audit: proj") {
		t.Error("styled output missing the banner title")
	}
	if !strings.Contains(out, "82.5/100") {
		t.Error("styled output missing the overall score")
	}
}
