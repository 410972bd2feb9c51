package analysis

import (
	"errors"
	"strconv"
	"strings"
)

// ErrMalformed reports a completion with no recognizable scores at all.
var ErrMalformed = errors.New("no scores found in model response")

// scoreLabels are the uppercase markers scanned for in completions. OVERALL
// is kept out of the dimension map and handled separately.
var scoreLabels = []string{"CLARITY", "COMPLETENESS", "ACTIONABILITY", "STANDARDS", "CONTEXT", "OVERALL"}

const maxBullets = 5

// Parsed holds the raw fields extracted from a scoring completion, before
// result assembly.
type Parsed struct {
	Dimensions      map[string]float64
	Overall         float64
	HasOverall      bool
	Strengths       []string
	Weaknesses      []string
	Recommendations []string
	Detailed        string
}

// Parse extracts scores, finding lists, and the narrative tail from a scoring
// completion. Models drift on formatting, so extraction is best effort: both
// "CLARITY: 90" and "Clarity (90/100)" parse, markdown decoration is
// stripped, and unparseable lines are skipped. Scores clamp to [0,100].
// ErrMalformed is returned only when neither a dimension nor an overall score
// was found anywhere in the completion.
func Parse(completion string) (Parsed, error) {
	p := Parsed{Dimensions: make(map[string]float64)}

	for _, line := range strings.Split(completion, "\n") {
		upper := strings.ToUpper(line)
		for _, label := range scoreLabels {
			if !strings.Contains(upper, label) {
				continue
			}
			value, ok := parseScoreLine(line)
			if !ok {
				continue
			}
			if label == "OVERALL" {
				p.Overall = clampScore(value)
				// An explicit zero is indistinguishable from a refusal to
				// score; recompute from the dimensions in that case.
				p.HasOverall = p.Overall > 0
			} else {
				p.Dimensions[strings.ToLower(label)] = clampScore(value)
			}
		}
	}

	p.Strengths = extractBullets(completion, "STRENGTHS")
	p.Weaknesses = extractBullets(completion, "WEAKNESSES")
	p.Recommendations = extractBullets(completion, "RECOMMENDATIONS")

	if parts := strings.SplitN(completion, "DETAILED_ANALYSIS:", 2); len(parts) > 1 {
		p.Detailed = strings.TrimSpace(parts[1])
	}
	if p.Detailed == "" {
		p.Detailed = truncateRunes(completion, 1000)
	}

	if len(p.Dimensions) == 0 && !p.HasOverall {
		return p, ErrMalformed
	}
	return p, nil
}

// parseScoreLine pulls a numeric score out of one line. The colon form
// ("CLARITY: 90") takes the first token after the last colon; the
// parenthesized form ("Clarity (90/100)") takes the text between the opening
// parenthesis and the slash. Markdown bold and heading markers are removed
// first.
func parseScoreLine(line string) (float64, bool) {
	clean := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(line, "**", ""), "###", ""))

	if idx := strings.LastIndex(clean, ":"); idx >= 0 {
		fields := strings.Fields(clean[idx+1:])
		if len(fields) == 0 {
			return 0, false
		}
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	if open := strings.Index(clean, "("); open >= 0 {
		if slash := strings.Index(clean[open:], "/"); slash > 0 {
			v, err := strconv.ParseFloat(strings.TrimSpace(clean[open+1:open+slash]), 64)
			if err != nil {
				return 0, false
			}
			return v, true
		}
	}

	return 0, false
}

// extractBullets collects the bullet list under "<section>:". Collection
// skips blank lines and stops at the first non-bullet, non-empty line, which
// is usually the next section header.
func extractBullets(text, section string) []string {
	marker := section + ":"
	var items []string
	inSection := false

	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(strings.ToUpper(line), marker) {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !isBullet(trimmed) {
			break
		}
		items = append(items, trimBullet(trimmed))
	}

	if len(items) > maxBullets {
		items = items[:maxBullets]
	}
	return items
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•")
}

func trimBullet(line string) string {
	for _, prefix := range []string{"-", "*", "•"} {
		if strings.HasPrefix(line, prefix) {
			line = strings.TrimPrefix(line, prefix)
			break
		}
	}
	return strings.TrimSpace(line)
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
