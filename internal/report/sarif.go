package report

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/cskiro/claude-md-bench/internal/analysis"
)

// SARIFWriter outputs results in SARIF v2.1.0 for code-scanning pipelines.
// Each dimension becomes a rule; each weakness and recommendation becomes a
// result anchored to the analyzed file.
type SARIFWriter struct{}

func (s *SARIFWriter) Write(w io.Writer, rep *Report) error {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("creating SARIF log: %w", err)
	}

	if rep.Kind == KindComparison {
		doc.AddRun(buildRun(rep.Comparison.A, rep.Version))
		doc.AddRun(buildRun(rep.Comparison.B, rep.Version))
	} else {
		doc.AddRun(buildRun(rep.Result, rep.Version))
	}

	if err := doc.PrettyWrite(w); err != nil {
		return fmt.Errorf("writing SARIF: %w", err)
	}
	return nil
}

func buildRun(res *analysis.Result, version string) *sarif.Run {
	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	run.Tool.Driver.WithVersion(version)

	// Weaknesses and recommendations are not dimension-tagged in the model
	// output, so findings attach to the lowest-scoring dimension.
	findingRule := "overall"
	findingScore := res.Score
	for _, dim := range analysis.Dimensions {
		score, ok := res.Dimensions[dim]
		if !ok {
			continue
		}
		run.AddRule(dim).
			WithDescription(fmt.Sprintf("%s score for %s", analysis.DimensionLabel(dim), res.Name)).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: scoreLevel(score)})
		if findingRule == "overall" || score < findingScore {
			findingRule = dim
			findingScore = score
		}
	}
	if findingRule == "overall" {
		run.AddRule(findingRule).
			WithDescription(fmt.Sprintf("Overall score for %s", res.Name)).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: scoreLevel(res.Score)})
	}

	for _, weakness := range res.Weaknesses {
		run.CreateResultForRule(findingRule).
			WithLevel(scoreLevel(findingScore)).
			WithMessage(sarif.NewTextMessage(weakness)).
			AddLocation(fileLocation(res.File))
	}
	for _, rec := range res.Recommendations {
		run.CreateResultForRule(findingRule).
			WithLevel("note").
			WithMessage(sarif.NewTextMessage(rec)).
			AddLocation(fileLocation(res.File))
	}

	return run
}

func fileLocation(path string) *sarif.Location {
	return sarif.NewLocationWithPhysicalLocation(
		sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewSimpleArtifactLocation(path)).
			WithRegion(sarif.NewSimpleRegion(1, 1)),
	)
}
