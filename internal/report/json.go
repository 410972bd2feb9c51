package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONWriter outputs the full report envelope as indented JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}
