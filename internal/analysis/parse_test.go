package analysis

import (
	"errors"
	"strings"
	"testing"
)

const sampleCompletion = `CLARITY: 85
COMPLETENESS: 70
ACTIONABILITY: 90
STANDARDS: 65
CONTEXT: 75
OVERALL: 77

STRENGTHS:
- Clear build commands
- Good test instructions
- Explicit code style rules

WEAKNESSES:
- No troubleshooting section
- Missing architecture overview

RECOMMENDATIONS:
- Add a project structure section
- Document common failure modes

DETAILED_ANALYSIS:
The file covers the basics well but leaves architecture implicit.`

func TestParse_FullCompletion(t *testing.T) {
	p, err := Parse(sampleCompletion)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	want := map[string]float64{
		"clarity":       85,
		"completeness":  70,
		"actionability": 90,
		"standards":     65,
		"context":       75,
	}
	if len(p.Dimensions) != len(want) {
		t.Fatalf("got %d dimensions, want %d: %v", len(p.Dimensions), len(want), p.Dimensions)
	}
	for dim, score := range want {
		if p.Dimensions[dim] != score {
			t.Errorf("Dimensions[%q] = %g, want %g", dim, p.Dimensions[dim], score)
		}
	}

	if !p.HasOverall {
		t.Error("HasOverall = false, want true")
	}
	if p.Overall != 77 {
		t.Errorf("Overall = %g, want 77", p.Overall)
	}

	if len(p.Strengths) != 3 {
		t.Errorf("got %d strengths, want 3: %v", len(p.Strengths), p.Strengths)
	}
	if len(p.Weaknesses) != 2 {
		t.Errorf("got %d weaknesses, want 2: %v", len(p.Weaknesses), p.Weaknesses)
	}
	if len(p.Recommendations) != 2 {
		t.Errorf("got %d recommendations, want 2: %v", len(p.Recommendations), p.Recommendations)
	}
	if p.Strengths[0] != "Clear build commands" {
		t.Errorf("Strengths[0] = %q", p.Strengths[0])
	}

	if p.Detailed != "The file covers the basics well but leaves architecture implicit." {
		t.Errorf("Detailed = %q", p.Detailed)
	}
}

func TestParse_ScoreFormats(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		dim   string
		score float64
	}{
		{"plain colon", "CLARITY: 85", "clarity", 85},
		{"lowercase", "clarity: 45", "clarity", 45},
		{"bold label", "**COMPLETENESS**: 70", "completeness", 70},
		{"heading", "### STANDARDS: 60", "standards", 60},
		{"bold value", "CONTEXT: **55**", "context", 55},
		{"paren form", "Clarity (90/100)", "clarity", 90},
		{"paren with bold", "**Actionability** (80/100)", "actionability", 80},
		{"decimal", "CLARITY: 87.5", "clarity", 87.5},
		{"trailing text", "CLARITY: 85 - instructions are specific", "clarity", 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.line, err)
			}
			if got := p.Dimensions[tt.dim]; got != tt.score {
				t.Errorf("Dimensions[%q] = %g, want %g", tt.dim, got, tt.score)
			}
		})
	}
}

func TestParse_ClampsScores(t *testing.T) {
	p, err := Parse("CLARITY: 150\nCOMPLETENESS: -20")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if p.Dimensions["clarity"] != 100 {
		t.Errorf("clarity = %g, want 100", p.Dimensions["clarity"])
	}
	if p.Dimensions["completeness"] != 0 {
		t.Errorf("completeness = %g, want 0", p.Dimensions["completeness"])
	}
}

func TestParse_MissingOverall(t *testing.T) {
	p, err := Parse("CLARITY: 80\nCOMPLETENESS: 60")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if p.HasOverall {
		t.Error("HasOverall = true, want false")
	}
}

func TestParse_ZeroOverallIgnored(t *testing.T) {
	p, err := Parse("CLARITY: 80\nOVERALL: 0")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if p.HasOverall {
		t.Error("an explicit OVERALL: 0 should not count as a parsed overall")
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse("I cannot evaluate this file, sorry.")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
}

func TestParse_TemplateEchoIgnored(t *testing.T) {
	// A model that echoes the format block back must not produce scores.
	_, err := Parse("CLARITY: <score 0-100>\nOVERALL: <score 0-100>")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
}

func TestParse_OverallOnly(t *testing.T) {
	p, err := Parse("OVERALL: 68")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if !p.HasOverall || p.Overall != 68 {
		t.Errorf("Overall = %g (has=%v), want 68", p.Overall, p.HasOverall)
	}
	if len(p.Dimensions) != 0 {
		t.Errorf("Dimensions = %v, want empty", p.Dimensions)
	}
}

func TestParse_DetailedFallback(t *testing.T) {
	completion := "CLARITY: 50\nno analysis marker here"
	p, err := Parse(completion)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if p.Detailed != completion {
		t.Errorf("Detailed = %q, want the whole completion", p.Detailed)
	}

	long := "CLARITY: 50\n" + strings.Repeat("x", 2000)
	p, err = Parse(long)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(p.Detailed) != 1000 {
		t.Errorf("fallback Detailed length = %d, want 1000", len(p.Detailed))
	}
}

func TestExtractBullets(t *testing.T) {
	text := `STRENGTHS:
- first
* second
• third

- fourth after blank
Next section starts here
- not collected`

	items := extractBullets(text, "STRENGTHS")
	want := []string{"first", "second", "third", "fourth after blank"}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d: %v", len(items), len(want), items)
	}
	for i, w := range want {
		if items[i] != w {
			t.Errorf("items[%d] = %q, want %q", i, items[i], w)
		}
	}
}

func TestExtractBullets_MaxFive(t *testing.T) {
	text := "WEAKNESSES:\n- a\n- b\n- c\n- d\n- e\n- f\n- g"
	items := extractBullets(text, "WEAKNESSES")
	if len(items) != 5 {
		t.Errorf("got %d items, want 5", len(items))
	}
}

func TestExtractBullets_MissingSection(t *testing.T) {
	if items := extractBullets("no sections at all", "STRENGTHS"); len(items) != 0 {
		t.Errorf("got %v, want empty", items)
	}
}

func TestExtractBullets_BoldHeader(t *testing.T) {
	text := "**Strengths:**\n- kept the bold header"
	items := extractBullets(text, "STRENGTHS")
	if len(items) != 1 || items[0] != "kept the bold header" {
		t.Errorf("items = %v", items)
	}
}

func TestTrimBullet(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"- plain", "plain"},
		{"* starred", "starred"},
		{"• unicode", "unicode"},
		{"- **bold item**", "**bold item**"},
	}
	for _, tt := range tests {
		if got := trimBullet(tt.in); got != tt.want {
			t.Errorf("trimBullet(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
