package analysis

import (
	"strings"
	"time"
)

// Dimensions lists the five scoring dimensions, in prompt order. Parsing and
// rubric validation both key off this list.
var Dimensions = []string{"clarity", "completeness", "actionability", "standards", "context"}

// DimensionLabel returns the display form of a dimension name.
func DimensionLabel(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// Result is the outcome of scoring one CLAUDE.md file. It is built once per
// analysis and not mutated afterward.
type Result struct {
	File            string             `json:"file"`
	Name            string             `json:"name"`
	FileSize        int                `json:"fileSize"`
	Provider        string             `json:"provider"`
	Model           string             `json:"model"`
	RunID           string             `json:"runId"`
	Score           float64            `json:"score"`
	Dimensions      map[string]float64 `json:"dimensions"`
	Strengths       []string           `json:"strengths"`
	Weaknesses      []string           `json:"weaknesses"`
	Recommendations []string           `json:"recommendations"`
	Detailed        string             `json:"detailed,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	DurationMs      int64              `json:"durationMs"`
	TokensUsed      int                `json:"tokensUsed"`
	Cached          bool               `json:"cached"`
}

// Comparison pairs two results with their score deltas. Deltas are B minus A,
// so positive values favor B.
type Comparison struct {
	A       *Result            `json:"a"`
	B       *Result            `json:"b"`
	Deltas  map[string]float64 `json:"deltas"`
	Overall float64            `json:"overall"`
	Winner  string             `json:"winner"`
}
