package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/sboxscope/sboxscope/internal/ui"
)

// TextGenerator renders a styled terminal summary.
// lipgloss drops the colours when w is not a terminal.
type TextGenerator struct{}

// Generate generates a text report
func (g *TextGenerator) Generate(report *Report, w io.Writer) error {
	var b strings.Builder

	b.WriteString(ui.GetBannerStyled())
	b.WriteString("\n")
	b.WriteString(ui.HeaderStyle.Render(report.Title))
	b.WriteString("\n")
	b.WriteString(ui.RenderLabelValue("SHA3-256", short(report.Fingerprint)))
	b.WriteString("\n")
	b.WriteString(ui.RenderLabelValue("Duration", report.Duration.String()))
	b.WriteString("\n\n")

	for _, row := range report.Rows() {
		b.WriteString(ui.RenderLabelValue(row.Label, row.Value))
		b.WriteString("\n")
	}
	if ext := report.ExtendedRows(); len(ext) > 0 {
		b.WriteString("\n")
		for _, row := range ext {
			b.WriteString(ui.RenderLabelValue(row.Label, row.Value))
			b.WriteString("\n")
		}
	}

	if len(report.Checks) > 0 {
		failed := len(report.FailedChecks())
		b.WriteString("\n")
		b.WriteString(ui.RenderLabelValue("Reference", fmt.Sprintf("%d/%d checks passed", len(report.Checks)-failed, len(report.Checks))))
		b.WriteString("\n")
		for _, c := range report.Checks {
			mark := ui.RenderSuccess("✓")
			if !c.Pass {
				mark = ui.RenderError("✗")
			}
			fmt.Fprintf(&b, "%s %s expected %g, got %g\n", mark, ui.LabelStyle.Render(c.Metric), c.Expected, c.Actual)
		}
	}

	if p := report.Permutation; p != nil {
		b.WriteString("\n")
		b.WriteString(ui.RenderWarning(fmt.Sprintf("not a permutation: %d missing, %d duplicated", len(p.Missing), len(p.Duplicates))))
		b.WriteString("\n")
	}

	var summary strings.Builder
	summary.WriteString(ui.RenderLabelValue("Security Level", ui.RenderLevel(string(report.Summary.Level))))
	for _, s := range report.Summary.Strengths {
		summary.WriteString("\n" + ui.RenderSuccess("+") + " " + s)
	}
	for _, s := range report.Summary.Weaknesses {
		summary.WriteString("\n" + ui.RenderError("-") + " " + s)
	}
	b.WriteString("\n")
	b.WriteString(ui.PanelStyle.Render(summary.String()))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Extension returns the file extension
func (g *TextGenerator) Extension() string {
	return "txt"
}

func short(fp string) string {
	if len(fp) <= 16 {
		return fp
	}
	return fp[:16] + "…"
}
