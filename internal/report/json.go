package report

import (
	"encoding/json"
	"io"
)

// JSONGenerator writes the report as a single JSON document
type JSONGenerator struct {
	Indent bool
}

// Generate generates a JSON report
func (g *JSONGenerator) Generate(report *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if g.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}

// Extension returns the file extension
func (g *JSONGenerator) Extension() string {
	return "json"
}
