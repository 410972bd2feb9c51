package analysis

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rubric adjusts scoring: per-dimension weights reshape the overall score and
// focus areas steer the model's attention. Dimensions absent from Weights
// carry weight 1.
type Rubric struct {
	Name    string             `yaml:"name,omitempty"`
	Weights map[string]float64 `yaml:"weights,omitempty"`
	Focus   []string           `yaml:"focus,omitempty"`
}

// DefaultRubric returns the built-in rubric: equal weights and no focus
// areas, matching the bare scoring prompt.
func DefaultRubric() *Rubric {
	return &Rubric{Name: "default"}
}

// LoadRubric loads a rubric file from disk. Returns nil Rubric and nil error
// if path is empty.
func LoadRubric(path string) (*Rubric, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rubric file: %w", err)
	}
	var rubric Rubric
	if err := yaml.Unmarshal(data, &rubric); err != nil {
		return nil, fmt.Errorf("parsing rubric file: %w", err)
	}
	if err := rubric.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rubric %s: %w", path, err)
	}
	return &rubric, nil
}

// Validate checks dimension names and weight signs.
func (r *Rubric) Validate() error {
	for dim, w := range r.Weights {
		if !isDimension(dim) {
			return fmt.Errorf("unknown dimension %q (valid: %s)", dim, strings.Join(Dimensions, ", "))
		}
		if w <= 0 {
			return fmt.Errorf("weight for %q must be positive, got %g", dim, w)
		}
	}
	return nil
}

// Overall computes the weighted mean of the given dimension scores. Only
// dimensions present in scores contribute; their weights renormalize so a
// partially parsed response still lands on the 0-100 scale. A nil rubric
// means equal weights.
func (r *Rubric) Overall(scores map[string]float64) float64 {
	var sum, weightSum float64
	for _, dim := range Dimensions {
		v, ok := scores[dim]
		if !ok {
			continue
		}
		w := 1.0
		if r != nil {
			if rw, ok := r.Weights[dim]; ok {
				w = rw
			}
		}
		sum += v * w
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}

// PromptSection returns extra prompt instructions derived from the rubric.
func (r *Rubric) PromptSection() string {
	if r == nil {
		return ""
	}

	var b strings.Builder

	if len(r.Focus) > 0 {
		fmt.Fprintf(&b, "\nFocus areas: %s. Weigh these especially when scoring.\n",
			strings.Join(r.Focus, ", "))
	}

	if len(r.Weights) > 0 {
		b.WriteString("\nScoring emphasis:\n")
		for _, dim := range Dimensions {
			w, ok := r.Weights[dim]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "- %s carries weight %g in the overall score.\n", DimensionLabel(dim), w)
		}
	}

	return b.String()
}

// Hash returns a stable digest of the rubric for cache keying. Weights are
// serialized in Dimensions order so two rubrics with the same settings hash
// alike.
func (r *Rubric) Hash() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(r.Name)
	for _, dim := range Dimensions {
		if w, ok := r.Weights[dim]; ok {
			fmt.Fprintf(&b, "|%s=%g", dim, w)
		}
	}
	for _, f := range r.Focus {
		b.WriteString("|" + f)
	}
	h := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%x", h[:8])
}

func isDimension(name string) bool {
	for _, dim := range Dimensions {
		if dim == name {
			return true
		}
	}
	return false
}
