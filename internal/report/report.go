package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cskiro/claude-md-bench/internal/analysis"
)

const (
	toolName = "claude-md-bench"
	toolURI  = "https://github.com/cskiro/claude-md-bench"

	timestampLayout = "20060102_150405"

	scoreHighThreshold   = 70
	scoreMediumThreshold = 50
)

// Kind selects which shape a Report carries.
type Kind string

const (
	KindAudit      Kind = "audit"
	KindComparison Kind = "comparison"
)

// Report is the envelope every writer renders: one analysis result for an
// audit, or a pair plus deltas for a comparison.
type Report struct {
	Kind        Kind                 `json:"kind"`
	Tool        string               `json:"tool"`
	Version     string               `json:"version"`
	GeneratedAt time.Time            `json:"generatedAt"`
	Result      *analysis.Result     `json:"result,omitempty"`
	Comparison  *analysis.Comparison `json:"comparison,omitempty"`
}

// NewAudit wraps a single analysis result.
func NewAudit(res *analysis.Result, version string) *Report {
	return &Report{
		Kind:        KindAudit,
		Tool:        toolName,
		Version:     version,
		GeneratedAt: time.Now().UTC(),
		Result:      res,
	}
}

// NewComparison wraps a comparison.
func NewComparison(cmp *analysis.Comparison, version string) *Report {
	return &Report{
		Kind:        KindComparison,
		Tool:        toolName,
		Version:     version,
		GeneratedAt: time.Now().UTC(),
		Comparison:  cmp,
	}
}

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, rep *Report) error
}

// GetWriter returns the writer for a report format name.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "html":
		return &HTMLWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "sarif":
		return &SARIFWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// FileFormats expands a --format value into concrete file formats;
// "both" means text plus html.
func FileFormats(format string) []string {
	if format == "both" {
		return []string{"text", "html"}
	}
	return []string{format}
}

// WriteFiles renders rep into dir once per expanded format and returns the
// written paths. All files of one call share the report's timestamp.
func WriteFiles(rep *Report, dir, format string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating reports directory: %w", err)
	}

	var paths []string
	for _, f := range FileFormats(format) {
		writer, err := GetWriter(f)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, fileName(rep, f))
		out, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("creating report file: %w", err)
		}
		werr := writer.Write(out, rep)
		cerr := out.Close()
		if werr != nil {
			return nil, fmt.Errorf("writing %s report: %w", f, werr)
		}
		if cerr != nil {
			return nil, fmt.Errorf("closing report file: %w", cerr)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func fileName(rep *Report, format string) string {
	ts := rep.GeneratedAt.Format(timestampLayout)
	ext := fileExt(format)
	if rep.Kind == KindComparison {
		return fmt.Sprintf("comparison_%s_vs_%s_%s.%s",
			sanitizeName(rep.Comparison.A.Name), sanitizeName(rep.Comparison.B.Name), ts, ext)
	}
	return fmt.Sprintf("audit_%s_%s.%s", sanitizeName(rep.Result.Name), ts, ext)
}

func fileExt(format string) string {
	if format == "text" {
		return "txt"
	}
	return format
}

// sanitizeName keeps report names filesystem-safe.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	return strings.ReplaceAll(name, "\\", "_")
}

// scoreClass buckets a score for HTML styling.
func scoreClass(score float64) string {
	switch {
	case score >= scoreHighThreshold:
		return "score-high"
	case score >= scoreMediumThreshold:
		return "score-medium"
	default:
		return "score-low"
	}
}

// scoreLevel maps a score bucket to a SARIF level.
func scoreLevel(score float64) string {
	switch {
	case score >= scoreHighThreshold:
		return "note"
	case score >= scoreMediumThreshold:
		return "warning"
	default:
		return "error"
	}
}

// dimensionScore reads a dimension with a zero default, so reports render
// stable rows even when the model skipped a dimension.
func dimensionScore(res *analysis.Result, dim string) float64 {
	return res.Dimensions[dim]
}

// groupThousands formats n with comma separators.
func groupThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
