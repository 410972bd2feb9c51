package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/cskiro/claude-md-bench/internal/analysis"
)

//go:embed templates
var templateFS embed.FS

var htmlTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const htmlTimeLayout = "2006-01-02 15:04:05"

// HTMLWriter renders the embedded report templates.
type HTMLWriter struct{}

func (h *HTMLWriter) Write(w io.Writer, rep *Report) error {
	if rep.Kind == KindComparison {
		if err := htmlTemplates.ExecuteTemplate(w, "comparison.html", newComparisonView(rep)); err != nil {
			return fmt.Errorf("rendering comparison template: %w", err)
		}
		return nil
	}
	if err := htmlTemplates.ExecuteTemplate(w, "audit.html", newAuditView(rep)); err != nil {
		return fmt.Errorf("rendering audit template: %w", err)
	}
	return nil
}

type scoreCell struct {
	Label string
	Score string
	Class string
	Width int
}

type auditView struct {
	Name            string
	File            string
	Generated       string
	Tool            string
	Version         string
	Provider        string
	Model           string
	Score           string
	Class           string
	Size            string
	Dims            []scoreCell
	Strengths       []string
	Weaknesses      []string
	Recommendations []string
	Detailed        string
}

func newAuditView(rep *Report) auditView {
	res := rep.Result
	return auditView{
		Name:            res.Name,
		File:            res.File,
		Generated:       rep.GeneratedAt.Format(htmlTimeLayout),
		Tool:            rep.Tool,
		Version:         rep.Version,
		Provider:        res.Provider,
		Model:           res.Model,
		Score:           fmt.Sprintf("%.1f", res.Score),
		Class:           scoreClass(res.Score),
		Size:            groupThousands(res.FileSize),
		Dims:            dimCells(res),
		Strengths:       res.Strengths,
		Weaknesses:      res.Weaknesses,
		Recommendations: res.Recommendations,
		Detailed:        res.Detailed,
	}
}

type versionCard struct {
	Label      string
	Name       string
	File       string
	Score      string
	Class      string
	Size       string
	Winner     bool
	Strengths  []string
	Weaknesses []string
}

type comparisonDim struct {
	Label      string
	A          string
	B          string
	Delta      string
	DeltaClass string
}

type comparisonView struct {
	Generated string
	Tool      string
	Version   string
	A         versionCard
	B         versionCard
	Tie       bool
	Winner    string
	Margin    string
	Dims      []comparisonDim
}

func newComparisonView(rep *Report) comparisonView {
	cmp := rep.Comparison
	view := comparisonView{
		Generated: rep.GeneratedAt.Format(htmlTimeLayout),
		Tool:      rep.Tool,
		Version:   rep.Version,
		A:         versionCardFor("A", cmp.A, cmp.Winner == analysis.WinnerA),
		B:         versionCardFor("B", cmp.B, cmp.Winner == analysis.WinnerB),
		Tie:       cmp.Winner == analysis.WinnerTie,
		Winner:    cmp.Winner,
		Margin:    fmt.Sprintf("%.1f", abs(cmp.Overall)),
	}
	for _, dim := range analysis.Dimensions {
		scoreA := dimensionScore(cmp.A, dim)
		scoreB := dimensionScore(cmp.B, dim)
		delta := scoreB - scoreA
		view.Dims = append(view.Dims, comparisonDim{
			Label:      analysis.DimensionLabel(dim),
			A:          fmt.Sprintf("%.0f", scoreA),
			B:          fmt.Sprintf("%.0f", scoreB),
			Delta:      deltaText(delta),
			DeltaClass: deltaClass(delta),
		})
	}
	return view
}

func versionCardFor(label string, res *analysis.Result, winner bool) versionCard {
	return versionCard{
		Label:      label,
		Name:       res.Name,
		File:       res.File,
		Score:      fmt.Sprintf("%.1f", res.Score),
		Class:      scoreClass(res.Score),
		Size:       groupThousands(res.FileSize),
		Winner:     winner,
		Strengths:  res.Strengths,
		Weaknesses: res.Weaknesses,
	}
}

func dimCells(res *analysis.Result) []scoreCell {
	cells := make([]scoreCell, 0, len(analysis.Dimensions))
	for _, dim := range analysis.Dimensions {
		score := dimensionScore(res, dim)
		cells = append(cells, scoreCell{
			Label: analysis.DimensionLabel(dim),
			Score: fmt.Sprintf("%.0f", score),
			Class: scoreClass(score),
			Width: int(score),
		})
	}
	return cells
}

func deltaClass(delta float64) string {
	switch {
	case delta > 0:
		return "delta-positive"
	case delta < 0:
		return "delta-negative"
	default:
		return "delta-neutral"
	}
}
